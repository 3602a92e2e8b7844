package service

import (
	"context"

	"auction-desk-be/internal/dto"
	"auction-desk-be/internal/repository/specification"
	"auction-desk-be/internal/repository/unitofwork"
)

const defaultLogLimit = 100

type ILogService interface {
	ListLogs(ctx context.Context, limit int) ([]dto.OperationLogResponse, error)
}

type logService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewLogService(uowFactory unitofwork.RepositoryFactory) ILogService {
	return &logService{uowFactory: uowFactory}
}

// ListLogs returns the most recent operation log entries, newest first.
func (s *logService) ListLogs(ctx context.Context, limit int) ([]dto.OperationLogResponse, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	logs, err := uow.OperationLogRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{N: limit},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.OperationLogResponse, 0, len(logs))
	for _, log := range logs {
		responses = append(responses, dto.OperationLogResponse{
			Kind:      log.Kind,
			Message:   log.Message,
			Details:   log.Details,
			CreatedAt: log.CreatedAt,
		})
	}
	return responses, nil
}
