package contract

import (
	"context"

	"auction-desk-be/internal/entity"
	"auction-desk-be/internal/repository/specification"

	"github.com/google/uuid"
)

type LotImageRepository interface {
	Create(ctx context.Context, image *entity.LotImage) error
	Update(ctx context.Context, image *entity.LotImage) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LotImage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LotImage, error)
}
