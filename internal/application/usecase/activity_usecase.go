package usecase

import (
	"context"

	"github.com/jhoicas/CRM-api/internal/application/authz"
	"github.com/jhoicas/CRM-api/internal/application/dto"
	"github.com/jhoicas/CRM-api/internal/application/realtime"
	"github.com/jhoicas/CRM-api/internal/domain"
	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

// ActivityUseCase registro de interacciones contra leads. Las actividades
// son inmutables: solo existe la creación.
type ActivityUseCase struct {
	activities repository.ActivityRepository
	leads      repository.LeadRepository
	users      repository.UserRepository
	notifier   ChangeNotifier
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(
	activities repository.ActivityRepository,
	leads repository.LeadRepository,
	users repository.UserRepository,
	notifier ChangeNotifier,
) *ActivityUseCase {
	return &ActivityUseCase{activities: activities, leads: leads, users: users, notifier: notifier}
}

// Create registra una interacción. El autor es siempre el actor autenticado.
// 404 si el lead no existe; 403 si un sales_executive apunta a un lead ajeno
// (en ese orden: la existencia se comprueba primero).
func (uc *ActivityUseCase) Create(ctx context.Context, actor authz.Actor, in dto.CreateActivityRequest) (*dto.ActivityResponse, error) {
	lead, err := uc.leads.GetByID(ctx, in.LeadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	if authz.OwnsOnly(actor.Role) && lead.OwnerID != actor.ID {
		return nil, domain.ErrForbidden
	}

	activity := &entity.Activity{
		LeadID:  in.LeadID,
		UserID:  actor.ID,
		Type:    in.Type,
		Subject: in.Subject,
		Notes:   in.Notes,
	}
	if err := uc.activities.Create(ctx, activity); err != nil {
		return nil, err
	}

	author, err := uc.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	out := dto.NewActivityResponse(&repository.ActivityWithAuthor{Activity: *activity, Author: author})
	uc.notifier.Broadcast(realtime.NewActivityCreated(*out))
	return out, nil
}
