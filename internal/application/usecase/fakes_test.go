package usecase_test

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/CRM-api/internal/application/realtime"
	"github.com/jhoicas/CRM-api/internal/application/usecase"
	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los use cases. Replican los contratos de los
// repositorios: (nil, nil) cuando no hay fila, orden recientes-primero y el
// filtro por dueño aplicado dentro del repositorio.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	users      map[int64]*entity.User
	leads      map[int64]*entity.Lead
	activities map[int64]*entity.Activity
	nextID     int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      make(map[int64]*entity.User),
		leads:      make(map[int64]*entity.Lead),
		activities: make(map[int64]*entity.Activity),
		nextID:     1,
	}
}

func (s *fakeStore) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *fakeStore) addUser(u entity.User) *entity.User {
	u.ID = s.id()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	s.users[u.ID] = &u
	return &u
}

func (s *fakeStore) addLead(l entity.Lead) *entity.Lead {
	l.ID = s.id()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	if l.UpdatedAt.IsZero() {
		l.UpdatedAt = l.CreatedAt
	}
	s.leads[l.ID] = &l
	return &l
}

// ── UserRepository ────────────────────────────────────────────────────────────

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	created := r.s.addUser(*user)
	*user = *created
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		copied := *u
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// ── LeadRepository ────────────────────────────────────────────────────────────

type fakeLeadRepo struct{ s *fakeStore }

func (r *fakeLeadRepo) Create(_ context.Context, lead *entity.Lead) error {
	created := r.s.addLead(*lead)
	*lead = *created
	return nil
}

func (r *fakeLeadRepo) GetByID(_ context.Context, id int64) (*repository.LeadWithOwner, error) {
	l, ok := r.s.leads[id]
	if !ok {
		return nil, nil
	}
	return r.withOwner(l), nil
}

func (r *fakeLeadRepo) List(_ context.Context, scope repository.Scope) ([]*repository.LeadWithOwner, error) {
	out := make([]*repository.LeadWithOwner, 0, len(r.s.leads))
	for _, l := range r.s.leads {
		if scope.OwnerOnly() && l.OwnerID != scope.UserID {
			continue
		}
		out = append(out, r.withOwner(l))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeLeadRepo) Update(_ context.Context, lead *entity.Lead) error {
	existing, ok := r.s.leads[lead.ID]
	if !ok {
		return nil
	}
	updated := *lead
	updated.CreatedAt = existing.CreatedAt
	r.s.leads[lead.ID] = &updated
	return nil
}

func (r *fakeLeadRepo) Delete(_ context.Context, id int64) error {
	delete(r.s.leads, id)
	return nil
}

func (r *fakeLeadRepo) withOwner(l *entity.Lead) *repository.LeadWithOwner {
	copied := *l
	row := &repository.LeadWithOwner{Lead: copied}
	if owner, ok := r.s.users[l.OwnerID]; ok {
		o := *owner
		row.Owner = &o
	}
	return row
}

// ── ActivityRepository ────────────────────────────────────────────────────────

type fakeActivityRepo struct{ s *fakeStore }

func (r *fakeActivityRepo) Create(_ context.Context, activity *entity.Activity) error {
	activity.ID = r.s.id()
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}
	copied := *activity
	r.s.activities[activity.ID] = &copied
	return nil
}

func (r *fakeActivityRepo) ListByLead(_ context.Context, leadID int64) ([]*repository.ActivityWithAuthor, error) {
	out := make([]*repository.ActivityWithAuthor, 0)
	for _, a := range r.s.activities {
		if a.LeadID != leadID {
			continue
		}
		copied := *a
		row := &repository.ActivityWithAuthor{Activity: copied}
		if author, ok := r.s.users[a.UserID]; ok {
			u := *author
			row.Author = &u
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeActivityRepo) ListVisible(_ context.Context, scope repository.Scope) ([]*entity.Activity, error) {
	out := make([]*entity.Activity, 0)
	for _, a := range r.s.activities {
		lead, ok := r.s.leads[a.LeadID]
		if !ok {
			continue
		}
		if scope.OwnerOnly() && lead.OwnerID != scope.UserID {
			continue
		}
		copied := *a
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeActivityRepo) DeleteByLead(_ context.Context, leadID int64) error {
	for id, a := range r.s.activities {
		if a.LeadID == leadID {
			delete(r.s.activities, id)
		}
	}
	return nil
}

// ── TxRunner y ChangeNotifier ─────────────────────────────────────────────────

// fakeTxRunner ejecuta el callback directo contra los fakes: sin atomicidad
// real, suficiente para verificar la orquestación de la cascada.
type fakeTxRunner struct{ s *fakeStore }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(repository.LeadRepository, repository.ActivityRepository) error) error {
	return fn(&fakeLeadRepo{s: r.s}, &fakeActivityRepo{s: r.s})
}

// recordingNotifier acumula los eventos publicados, en orden.
type recordingNotifier struct {
	events []realtime.Event
}

func (n *recordingNotifier) Broadcast(ev realtime.Event) {
	n.events = append(n.events, ev)
}

func (n *recordingNotifier) types() []realtime.EventType {
	out := make([]realtime.EventType, 0, len(n.events))
	for _, ev := range n.events {
		out = append(out, ev.Type())
	}
	return out
}

// ── Armado ────────────────────────────────────────────────────────────────────

type fixture struct {
	store    *fakeStore
	notifier *recordingNotifier
	leadUC   *usecase.LeadUseCase
	actUC    *usecase.ActivityUseCase
}

func newFixture() *fixture {
	store := newFakeStore()
	notifier := &recordingNotifier{}
	leads := &fakeLeadRepo{s: store}
	activities := &fakeActivityRepo{s: store}
	users := &fakeUserRepo{s: store}
	return &fixture{
		store:    store,
		notifier: notifier,
		leadUC:   usecase.NewLeadUseCase(leads, activities, users, &fakeTxRunner{s: store}, notifier),
		actUC:    usecase.NewActivityUseCase(activities, leads, users, notifier),
	}
}
