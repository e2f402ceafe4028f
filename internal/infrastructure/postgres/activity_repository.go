package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo implementación del puerto ActivityRepository sobre PostgreSQL.
type ActivityRepo struct {
	db querier
}

// NewActivityRepository construye el adaptador de persistencia para actividades.
func NewActivityRepository(db querier) *ActivityRepo {
	return &ActivityRepo{db: db}
}

// Create persiste una nueva actividad y asigna ID y CreatedAt.
func (r *ActivityRepo) Create(ctx context.Context, activity *entity.Activity) error {
	query := `
		INSERT INTO activities (lead_id, user_id, type, subject, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		activity.LeadID, activity.UserID, activity.Type, activity.Subject, activity.Notes,
	).Scan(&activity.ID, &activity.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// ListByLead devuelve las actividades del lead con su autor resuelto en la
// misma consulta (LEFT JOIN: autor borrado => Author nil), recientes primero.
func (r *ActivityRepo) ListByLead(ctx context.Context, leadID int64) ([]*repository.ActivityWithAuthor, error) {
	query := `
		SELECT a.id, a.lead_id, a.user_id, a.type, a.subject, a.notes, a.created_at,
		       u.id, u.username, u.email, u.full_name, u.role, u.created_at
		FROM activities a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.lead_id = $1
		ORDER BY a.created_at DESC, a.id DESC`

	rows, err := r.db.Query(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var list []*repository.ActivityWithAuthor
	for rows.Next() {
		var (
			a         entity.Activity
			uID       *int64
			uUsername *string
			uEmail    *string
			uFullName *string
			uRole     *string
			uCreated  *time.Time
		)
		err := rows.Scan(
			&a.ID, &a.LeadID, &a.UserID, &a.Type, &a.Subject, &a.Notes, &a.CreatedAt,
			&uID, &uUsername, &uEmail, &uFullName, &uRole, &uCreated,
		)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		item := &repository.ActivityWithAuthor{Activity: a}
		if uID != nil {
			item.Author = &entity.User{
				ID:        *uID,
				Username:  *uUsername,
				Email:     *uEmail,
				FullName:  *uFullName,
				Role:      *uRole,
				CreatedAt: *uCreated,
			}
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// ListVisible devuelve las actividades de los leads visibles para el scope
// (join con leads para aplicar el filtro de dueño en SQL).
func (r *ActivityRepo) ListVisible(ctx context.Context, scope repository.Scope) ([]*entity.Activity, error) {
	query := `
		SELECT a.id, a.lead_id, a.user_id, a.type, a.subject, a.notes, a.created_at
		FROM activities a
		JOIN leads l ON l.id = a.lead_id`
	var args []any
	if scope.OwnerOnly() {
		query += ` WHERE l.owner_id = $1`
		args = append(args, scope.UserID)
	}
	query += ` ORDER BY a.created_at DESC, a.id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list visible activities: %w", err)
	}
	defer rows.Close()

	var list []*entity.Activity
	for rows.Next() {
		var a entity.Activity
		if err := rows.Scan(&a.ID, &a.LeadID, &a.UserID, &a.Type, &a.Subject, &a.Notes, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// DeleteByLead elimina todas las actividades del lead. Pensado para correr
// dentro de la transacción de borrado en cascada.
func (r *ActivityRepo) DeleteByLead(ctx context.Context, leadID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM activities WHERE lead_id = $1`, leadID); err != nil {
		return fmt.Errorf("delete activities by lead: %w", err)
	}
	return nil
}
