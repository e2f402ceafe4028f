package repository

import (
	"context"

	"github.com/jhoicas/CRM-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las búsquedas devuelven (nil, nil) cuando no hay coincidencia.
type UserRepository interface {
	// Create persiste el usuario y asigna su ID. Devuelve
	// domain.ErrUsernameTaken o domain.ErrEmailAlreadyExists según el
	// constraint único violado.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// List devuelve todos los usuarios, más recientes primero.
	List(ctx context.Context) ([]*entity.User, error)
}
