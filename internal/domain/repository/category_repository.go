package repository

import (
	"context"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// CategoryRepository puerto de lectura de categorías.
type CategoryRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
}
