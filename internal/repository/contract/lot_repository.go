package contract

import (
	"context"

	"auction-desk-be/internal/entity"
	"auction-desk-be/internal/repository/specification"

	"github.com/google/uuid"
)

type LotRepository interface {
	Create(ctx context.Context, lot *entity.Lot) error
	Update(ctx context.Context, lot *entity.Lot) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lot, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lot, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
