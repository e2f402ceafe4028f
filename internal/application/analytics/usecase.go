package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/CRM-api/internal/application/authz"
	"github.com/jhoicas/CRM-api/internal/application/dto"
	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

// UseCase obtiene el snapshot role-scoped del Entity Store y delega el
// cálculo en las funciones puras de este paquete.
type UseCase struct {
	leads      repository.LeadRepository
	activities repository.ActivityRepository
	users      repository.UserRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	leads repository.LeadRepository,
	activities repository.ActivityRepository,
	users repository.UserRepository,
) *UseCase {
	return &UseCase{leads: leads, activities: activities, users: users}
}

// Stats calcula el resumen del dashboard sobre los leads y actividades
// visibles para el actor (para sales_executive: solo los propios).
func (uc *UseCase) Stats(ctx context.Context, actor authz.Actor) (*dto.StatsDTO, error) {
	scope := authz.VisibilityScope(actor)

	rows, err := uc.leads.List(ctx, scope)
	if err != nil {
		return nil, err
	}
	acts, err := uc.activities.ListVisible(ctx, scope)
	if err != nil {
		return nil, err
	}

	return ComputeStats(plainLeads(rows), acts, time.Now()), nil
}

// Analytics calcula las métricas de conversión. La ruta exige admin/manager,
// cuya visibilidad es total, así que el snapshot no lleva filtro de dueño.
func (uc *UseCase) Analytics(ctx context.Context, actor authz.Actor) (*dto.AnalyticsDTO, error) {
	rows, err := uc.leads.List(ctx, authz.VisibilityScope(actor))
	if err != nil {
		return nil, err
	}
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}

	return ComputeAnalytics(plainLeads(rows), users, time.Now()), nil
}

func plainLeads(rows []*repository.LeadWithOwner) []*entity.Lead {
	leads := make([]*entity.Lead, 0, len(rows))
	for _, r := range rows {
		l := r.Lead
		leads = append(leads, &l)
	}
	return leads
}
