package repository

import (
	"context"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// UserRepository puerto de lectura de usuarios.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
}
