package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"auction-desk-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListLogsNewestFirstWithLimit(t *testing.T) {
	factory := newTestFactory(t)
	svc := NewLogService(factory)
	ctx := context.Background()

	uow := factory.NewUnitOfWork(ctx)
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, uow.OperationLogRepository().Create(ctx, &entity.OperationLog{
			Kind:      "bid",
			Message:   fmt.Sprintf("Bidder %d added.", i),
			Details:   map[string]interface{}{"identifier": i},
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	logs, err := svc.ListLogs(ctx, 3)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "Bidder 4 added.", logs[0].Message)
	assert.Equal(t, "Bidder 2 added.", logs[2].Message)

	all, err := svc.ListLogs(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
