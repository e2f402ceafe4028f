package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

// LeadRepo implementación del puerto LeadRepository sobre PostgreSQL.
// Todas las lecturas "con dueño" son una sola consulta con LEFT JOIN:
// un dueño inexistente deja Owner en nil pero no esconde el lead.
type LeadRepo struct {
	db querier
}

// NewLeadRepository construye el adaptador de persistencia para leads.
func NewLeadRepository(db querier) *LeadRepo {
	return &LeadRepo{db: db}
}

const leadWithOwnerSelect = `
	SELECT l.id, l.company_name, l.contact_name, l.email, l.phone,
	       l.status, l.source, l.value, l.owner_id, l.created_at, l.updated_at,
	       o.id, o.username, o.email, o.full_name, o.role, o.created_at
	FROM leads l
	LEFT JOIN users o ON o.id = l.owner_id`

// Create persiste un nuevo lead y asigna ID y timestamps del servidor.
func (r *LeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (company_name, contact_name, email, phone, status, source, value, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		lead.CompanyName, lead.ContactName, lead.Email, lead.Phone,
		lead.Status, lead.Source, lead.Value, lead.OwnerID,
	).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// GetByID devuelve el lead con su dueño, (nil, nil) si no existe.
func (r *LeadRepo) GetByID(ctx context.Context, id int64) (*repository.LeadWithOwner, error) {
	row := r.db.QueryRow(ctx, leadWithOwnerSelect+` WHERE l.id = $1`, id)
	lead, err := scanLeadWithOwner(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead by id: %w", err)
	}
	return lead, nil
}

// List devuelve los leads visibles para el scope, más recientes primero.
// El filtro por dueño (sales_executive) va en la cláusula WHERE: es un
// invariante del store, no una cortesía para el caller.
func (r *LeadRepo) List(ctx context.Context, scope repository.Scope) ([]*repository.LeadWithOwner, error) {
	query := leadWithOwnerSelect
	var args []any
	if scope.OwnerOnly() {
		query += ` WHERE l.owner_id = $1`
		args = append(args, scope.UserID)
	}
	query += ` ORDER BY l.created_at DESC, l.id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var list []*repository.LeadWithOwner
	for rows.Next() {
		lead, err := scanLeadWithOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		list = append(list, lead)
	}
	return list, rows.Err()
}

// Update sobreescribe la fila completa. No toca created_at.
func (r *LeadRepo) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads
		SET company_name = $2, contact_name = $3, email = $4, phone = $5,
		    status = $6, source = $7, value = $8, owner_id = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		lead.ID, lead.CompanyName, lead.ContactName, lead.Email, lead.Phone,
		lead.Status, lead.Source, lead.Value, lead.OwnerID, lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	return nil
}

// Delete elimina la fila del lead.
func (r *LeadRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	return nil
}

// scanLeadWithOwner lee una fila del select con LEFT JOIN. Las columnas del
// dueño llegan como NULL si el usuario ya no existe.
func scanLeadWithOwner(row pgx.Row) (*repository.LeadWithOwner, error) {
	var (
		l         entity.Lead
		oID       *int64
		oUsername *string
		oEmail    *string
		oFullName *string
		oRole     *string
		oCreated  *time.Time
	)
	err := row.Scan(
		&l.ID, &l.CompanyName, &l.ContactName, &l.Email, &l.Phone,
		&l.Status, &l.Source, &l.Value, &l.OwnerID, &l.CreatedAt, &l.UpdatedAt,
		&oID, &oUsername, &oEmail, &oFullName, &oRole, &oCreated,
	)
	if err != nil {
		return nil, err
	}

	out := &repository.LeadWithOwner{Lead: l}
	if oID != nil {
		out.Owner = &entity.User{
			ID:        *oID,
			Username:  *oUsername,
			Email:     *oEmail,
			FullName:  *oFullName,
			Role:      *oRole,
			CreatedAt: *oCreated,
		}
	}
	return out, nil
}
