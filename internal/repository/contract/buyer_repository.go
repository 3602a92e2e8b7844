package contract

import (
	"context"

	"auction-desk-be/internal/entity"
	"auction-desk-be/internal/repository/specification"

	"github.com/google/uuid"
)

type BuyerRepository interface {
	Create(ctx context.Context, buyer *entity.Buyer) error
	Update(ctx context.Context, buyer *entity.Buyer) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Buyer, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Buyer, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
