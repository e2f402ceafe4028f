package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/CRM-api/internal/application/auth"
	"github.com/jhoicas/CRM-api/internal/application/dto"
)

var _ auth.SessionStore = (*SessionStore)(nil)

// sessionPrefix namespace de las claves de sesión en Redis.
const sessionPrefix = "crm:session:"

// SessionStore implementa el puerto auth.SessionStore sobre Redis: el token
// opaco de la cookie es la clave y el valor es el snapshot sanitizado del
// usuario en JSON con TTL. El TTL de Redis es la expiración de la sesión.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore construye el store con el cliente.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Put guarda el snapshot bajo el token con el TTL dado.
func (s *SessionStore) Put(ctx context.Context, token string, user dto.SessionUser, ttl time.Duration) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("serializar sesión: %w", err)
	}
	if err := s.client.Set(ctx, sessionPrefix+token, payload, ttl).Err(); err != nil {
		return fmt.Errorf("guardar sesión: %w", err)
	}
	return nil
}

// Get devuelve el snapshot o (nil, nil) si la sesión no existe o expiró.
func (s *SessionStore) Get(ctx context.Context, token string) (*dto.SessionUser, error) {
	payload, err := s.client.Get(ctx, sessionPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer sesión: %w", err)
	}
	var user dto.SessionUser
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, fmt.Errorf("deserializar sesión: %w", err)
	}
	return &user, nil
}

// Delete revoca la sesión. Borrar una clave inexistente no es error.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionPrefix+token).Err(); err != nil {
		return fmt.Errorf("revocar sesión: %w", err)
	}
	return nil
}
