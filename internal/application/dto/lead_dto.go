package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

// CreateLeadRequest entrada para crear un lead. OwnerID solo lo respetan
// admin y manager; para sales_executive el servidor lo fuerza al propio.
type CreateLeadRequest struct {
	CompanyName string           `json:"companyName" validate:"required,min=1,max=200"`
	ContactName string           `json:"contactName" validate:"required,min=1,max=200"`
	Email       string           `json:"email" validate:"required,email"`
	Phone       string           `json:"phone" validate:"omitempty,max=50"`
	Status      string           `json:"status" validate:"omitempty,oneof=new contacted qualified proposal negotiation won lost"`
	Source      string           `json:"source" validate:"omitempty,max=100"`
	Value       *decimal.Decimal `json:"value"`
	OwnerID     *int64           `json:"ownerId"`
}

// UpdateLeadRequest entrada parcial para actualizar un lead: solo los campos
// presentes se aplican. UpdatedAt siempre avanza, aunque nada cambie.
type UpdateLeadRequest struct {
	CompanyName *string          `json:"companyName" validate:"omitempty,min=1,max=200"`
	ContactName *string          `json:"contactName" validate:"omitempty,min=1,max=200"`
	Email       *string          `json:"email" validate:"omitempty,email"`
	Phone       *string          `json:"phone" validate:"omitempty,max=50"`
	Status      *string          `json:"status" validate:"omitempty,oneof=new contacted qualified proposal negotiation won lost"`
	Source      *string          `json:"source" validate:"omitempty,max=100"`
	Value       *decimal.Decimal `json:"value"`
	OwnerID     *int64           `json:"ownerId"`
}

// LeadResponse salida de un lead con su dueño sanitizado.
type LeadResponse struct {
	ID          int64            `json:"id"`
	CompanyName string           `json:"companyName"`
	ContactName string           `json:"contactName"`
	Email       string           `json:"email"`
	Phone       string           `json:"phone,omitempty"`
	Status      string           `json:"status"`
	Source      string           `json:"source"`
	Value       *decimal.Decimal `json:"value"`
	OwnerID     int64            `json:"ownerId"`
	Owner       *UserResponse    `json:"owner,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// LeadDetailResponse lead con dueño y actividades ordenadas (recientes primero).
type LeadDetailResponse struct {
	LeadResponse
	Activities []ActivityResponse `json:"activities"`
}

// DeletedLeadResponse payload mínimo tras un borrado.
type DeletedLeadResponse struct {
	ID int64 `json:"id"`
}

// NewLeadResponse convierte el resultado del join lead+dueño en DTO.
func NewLeadResponse(l *repository.LeadWithOwner) *LeadResponse {
	if l == nil {
		return nil
	}
	var value *decimal.Decimal
	if l.Value.Valid {
		v := l.Value.Decimal
		value = &v
	}
	return &LeadResponse{
		ID:          l.ID,
		CompanyName: l.CompanyName,
		ContactName: l.ContactName,
		Email:       l.Email,
		Phone:       l.Phone,
		Status:      l.Status,
		Source:      l.Source,
		Value:       value,
		OwnerID:     l.OwnerID,
		Owner:       NewUserResponse(l.Owner),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
