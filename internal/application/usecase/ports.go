package usecase

import (
	"context"

	"github.com/jhoicas/CRM-api/internal/application/realtime"
	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con repositorios atados a una transacción.
// Se usa para el borrado en cascada lead + actividades: o se eliminan ambos
// o ninguno, sin actividades huérfanas bajo ningún camino de fallo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		leads repository.LeadRepository,
		activities repository.ActivityRepository,
	) error) error
}

// ChangeNotifier publica eventos de cambio a los clientes conectados tras
// una mutación exitosa. Es advisory: el use case no espera la entrega y un
// fallo de envío jamás se propaga a la mutación.
type ChangeNotifier interface {
	Broadcast(ev realtime.Event)
}
