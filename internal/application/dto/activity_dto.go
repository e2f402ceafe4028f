package dto

import (
	"time"

	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

// CreateActivityRequest entrada para registrar una interacción contra un lead.
// El userId no viene del cliente: siempre es el actor autenticado.
type CreateActivityRequest struct {
	LeadID  int64  `json:"leadId" validate:"required,gt=0"`
	Type    string `json:"type" validate:"required,min=1,max=50"`
	Subject string `json:"subject" validate:"required,min=1,max=200"`
	Notes   string `json:"notes" validate:"omitempty,max=2000"`
}

// ActivityResponse salida de una actividad con su autor sanitizado.
type ActivityResponse struct {
	ID        int64         `json:"id"`
	LeadID    int64         `json:"leadId"`
	UserID    int64         `json:"userId"`
	Type      string        `json:"type"`
	Subject   string        `json:"subject"`
	Notes     string        `json:"notes,omitempty"`
	Author    *UserResponse `json:"author,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// NewActivityResponse convierte el resultado del join actividad+autor en DTO.
func NewActivityResponse(a *repository.ActivityWithAuthor) *ActivityResponse {
	if a == nil {
		return nil
	}
	return &ActivityResponse{
		ID:        a.ID,
		LeadID:    a.LeadID,
		UserID:    a.UserID,
		Type:      a.Type,
		Subject:   a.Subject,
		Notes:     a.Notes,
		Author:    NewUserResponse(a.Author),
		CreatedAt: a.CreatedAt,
	}
}
