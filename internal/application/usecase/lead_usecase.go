package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/CRM-api/internal/application/authz"
	"github.com/jhoicas/CRM-api/internal/application/dto"
	"github.com/jhoicas/CRM-api/internal/application/realtime"
	"github.com/jhoicas/CRM-api/internal/domain"
	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

// defaultSource canal asignado cuando el request no trae source.
const defaultSource = "other"

// LeadUseCase casos de uso CRUD para leads. Aplica las reglas de ownership
// (existencia primero: 404 antes que 403) y publica los eventos de cambio.
type LeadUseCase struct {
	leads      repository.LeadRepository
	activities repository.ActivityRepository
	users      repository.UserRepository
	tx         TxRunner
	notifier   ChangeNotifier
}

// NewLeadUseCase construye el caso de uso.
func NewLeadUseCase(
	leads repository.LeadRepository,
	activities repository.ActivityRepository,
	users repository.UserRepository,
	tx TxRunner,
	notifier ChangeNotifier,
) *LeadUseCase {
	return &LeadUseCase{leads: leads, activities: activities, users: users, tx: tx, notifier: notifier}
}

// List devuelve los leads visibles para el actor, recientes primero.
// El filtro por dueño para sales_executive se aplica dentro del repositorio.
func (uc *LeadUseCase) List(ctx context.Context, actor authz.Actor) ([]dto.LeadResponse, error) {
	rows, err := uc.leads.List(ctx, authz.VisibilityScope(actor))
	if err != nil {
		return nil, err
	}
	out := make([]dto.LeadResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, *dto.NewLeadResponse(row))
	}
	return out, nil
}

// Get devuelve el detalle del lead: dueño y actividades con autor.
// 404 si no existe; 403 si un sales_executive consulta un lead ajeno.
func (uc *LeadUseCase) Get(ctx context.Context, actor authz.Actor, id int64) (*dto.LeadDetailResponse, error) {
	lead, err := uc.leads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	if authz.OwnsOnly(actor.Role) && lead.OwnerID != actor.ID {
		return nil, domain.ErrForbidden
	}

	acts, err := uc.activities.ListByLead(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &dto.LeadDetailResponse{
		LeadResponse: *dto.NewLeadResponse(lead),
		Activities:   make([]dto.ActivityResponse, 0, len(acts)),
	}
	for _, a := range acts {
		detail.Activities = append(detail.Activities, *dto.NewActivityResponse(a))
	}
	return detail, nil
}

// Create crea un lead. Para sales_executive el ownerId del request se ignora
// y el dueño es siempre el actor; admin y manager pueden asignar cualquier
// usuario existente.
func (uc *LeadUseCase) Create(ctx context.Context, actor authz.Actor, in dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	ownerID := actor.ID
	if authz.CanAssignOwner(actor.Role) && in.OwnerID != nil {
		ownerID = *in.OwnerID
	}
	owner, err := uc.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrInvalidInput
	}

	status := in.Status
	if status == "" {
		status = entity.StatusNew
	}
	if !entity.ValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	source := in.Source
	if source == "" {
		source = defaultSource
	}

	lead := &entity.Lead{
		CompanyName: in.CompanyName,
		ContactName: in.ContactName,
		Email:       in.Email,
		Phone:       in.Phone,
		Status:      status,
		Source:      source,
		Value:       nullDecimal(in.Value),
		OwnerID:     ownerID,
	}
	if err := uc.leads.Create(ctx, lead); err != nil {
		return nil, err
	}

	out := dto.NewLeadResponse(&repository.LeadWithOwner{Lead: *lead, Owner: owner})
	uc.notifier.Broadcast(realtime.NewLeadCreated(*out))
	return out, nil
}

// Update aplica un merge parcial sobre el lead y siempre avanza UpdatedAt,
// incluso si ningún campo semántico cambió. Dos updates concurrentes sobre el
// mismo lead no se serializan: gana el último write (sin columna de versión).
func (uc *LeadUseCase) Update(ctx context.Context, actor authz.Actor, id int64, in dto.UpdateLeadRequest) (*dto.LeadResponse, error) {
	existing, err := uc.leads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	if authz.OwnsOnly(actor.Role) && existing.OwnerID != actor.ID {
		return nil, domain.ErrForbidden
	}

	lead := existing.Lead
	if in.CompanyName != nil {
		lead.CompanyName = *in.CompanyName
	}
	if in.ContactName != nil {
		lead.ContactName = *in.ContactName
	}
	if in.Email != nil {
		lead.Email = *in.Email
	}
	if in.Phone != nil {
		lead.Phone = *in.Phone
	}
	if in.Status != nil {
		if !entity.ValidStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		lead.Status = *in.Status
	}
	if in.Source != nil {
		lead.Source = *in.Source
	}
	if in.Value != nil {
		lead.Value = decimal.NullDecimal{Decimal: *in.Value, Valid: true}
	}
	if in.OwnerID != nil && authz.CanAssignOwner(actor.Role) {
		owner, err := uc.users.GetByID(ctx, *in.OwnerID)
		if err != nil {
			return nil, err
		}
		if owner == nil {
			return nil, domain.ErrInvalidInput
		}
		lead.OwnerID = *in.OwnerID
	}
	lead.UpdatedAt = time.Now()

	if err := uc.leads.Update(ctx, &lead); err != nil {
		return nil, err
	}

	// Releer tras el write para publicar el estado fresco con su dueño.
	fresh, err := uc.leads.GetByID(ctx, id)
	if err != nil || fresh == nil {
		// La fila pudo borrarse en paralelo: responder con lo escrito.
		out := dto.NewLeadResponse(&repository.LeadWithOwner{Lead: lead, Owner: existing.Owner})
		uc.notifier.Broadcast(realtime.NewLeadUpdated(*out))
		return out, nil
	}
	out := dto.NewLeadResponse(fresh)
	uc.notifier.Broadcast(realtime.NewLeadUpdated(*out))
	return out, nil
}

// Delete elimina el lead y todas sus actividades en una sola transacción.
// El permiso de rol (solo admin/manager) se exige en la ruta; aquí se
// verifica existencia (404) y se orquesta la cascada.
func (uc *LeadUseCase) Delete(ctx context.Context, actor authz.Actor, id int64) error {
	existing, err := uc.leads.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	err = uc.tx.Run(ctx, func(leads repository.LeadRepository, activities repository.ActivityRepository) error {
		if err := activities.DeleteByLead(ctx, id); err != nil {
			return err
		}
		return leads.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	uc.notifier.Broadcast(realtime.NewLeadDeleted(id))
	return nil
}

func nullDecimal(v *decimal.Decimal) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *v, Valid: true}
}
