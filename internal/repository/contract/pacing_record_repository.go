package contract

import (
	"context"

	"auction-desk-be/internal/entity"
	"auction-desk-be/internal/repository/specification"
)

type PacingRecordRepository interface {
	Create(ctx context.Context, record *entity.PacingRecord) error
	Update(ctx context.Context, record *entity.PacingRecord) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PacingRecord, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PacingRecord, error)
}
