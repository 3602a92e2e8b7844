package contract

import (
	"context"

	"auction-desk-be/internal/entity"
	"auction-desk-be/internal/repository/specification"
)

type OperationLogRepository interface {
	Create(ctx context.Context, log *entity.OperationLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.OperationLog, error)
}
