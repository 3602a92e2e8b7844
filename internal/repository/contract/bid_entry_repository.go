package contract

import (
	"context"

	"auction-desk-be/internal/entity"
	"auction-desk-be/internal/repository/specification"

	"github.com/google/uuid"
)

type BidEntryRepository interface {
	Create(ctx context.Context, entry *entity.BidEntry) error
	Update(ctx context.Context, entry *entity.BidEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BidEntry, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BidEntry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
