package service

import (
	"context"
	"testing"

	"auction-desk-be/internal/entity"
	"auction-desk-be/internal/repository/specification"
	"auction-desk-be/internal/repository/unitofwork"
	"auction-desk-be/pkg/apperror"
	"auction-desk-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuyerTestService(factory unitofwork.RepositoryFactory) IBuyerService {
	publisher := &capturePublisher{}
	sessions := NewSessionService(factory, publisher, nopLogger{})
	return NewBuyerService(factory, sessions, publisher, nopLogger{})
}

func TestImportBuyerListUpsertsByIdentifier(t *testing.T) {
	factory := newTestFactory(t)
	svc := newBuyerTestService(factory)
	ctx := context.Background()

	first := buildWorkbook(t, [][]interface{}{
		{"Buyer #", "Name"},
		{"1", "Smith Family"},
		{"2", "Jones Farm"},
	})
	res, err := svc.ImportBuyerList(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Added)
	assert.Equal(t, 0, res.Updated)

	// Re-upload renames buyer 1 and adds buyer 3; buyer 2 is absent from
	// the file but must survive.
	second := buildWorkbook(t, [][]interface{}{
		{"Identifier", "Name"},
		{"1", "Smith Ranch"},
		{"3", "Acme Feed"},
	})
	res, err = svc.ImportBuyerList(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Updated)

	buyers, err := svc.ListBuyers(ctx)
	require.NoError(t, err)
	require.Len(t, buyers, 3)
	assert.Equal(t, "Smith Ranch", buyers[0].Name)
	assert.Equal(t, "Jones Farm", buyers[1].Name)
	assert.Equal(t, "Acme Feed", buyers[2].Name)
}

func TestImportBuyerListSkipsBadRows(t *testing.T) {
	factory := newTestFactory(t)
	svc := newBuyerTestService(factory)
	ctx := context.Background()

	content := buildWorkbook(t, [][]interface{}{
		{"Identifier", "Name"},
		{"1", "Smith Family"},
		{"not-a-number", "Broken"},
		{"", "Blank"},
		{"1", "Duplicate"},
	})
	res, err := svc.ImportBuyerList(ctx, content)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rows)

	buyer, err := factory.NewUnitOfWork(ctx).BuyerRepository().FindOne(ctx,
		specification.ByIdentifier{Identifier: 1})
	require.NoError(t, err)
	require.NotNil(t, buyer)
	assert.Equal(t, "Smith Family", buyer.Name)
}

func TestImportBuyerListRejectsMissingIdentifierColumn(t *testing.T) {
	svc := newBuyerTestService(newTestFactory(t))

	content := buildWorkbook(t, [][]interface{}{
		{"Name"},
		{"Smith Family"},
	})
	_, err := svc.ImportBuyerList(context.Background(), content)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestImportBuyerListNotifiesViewers(t *testing.T) {
	factory := newTestFactory(t)
	publisher := &capturePublisher{}
	sessions := NewSessionService(factory, publisher, nopLogger{})
	svc := NewBuyerService(factory, sessions, publisher, nopLogger{})
	ctx := context.Background()

	content := buildWorkbook(t, [][]interface{}{
		{"Identifier", "Name"},
		{"1", "Smith Family"},
		{"2", "Jones Farm"},
	})
	_, err := svc.ImportBuyerList(ctx, content)
	require.NoError(t, err)

	snapshot := publisher.lastSnapshot()
	require.NotNil(t, snapshot)
	assert.Equal(t, events.TypeState, snapshot.Type)
	assert.Equal(t, "Buyer list uploaded with 2 rows.", publisher.lastLog())
}

func TestImportBuyerListDoesNotTouchBids(t *testing.T) {
	factory := newTestFactory(t)
	svc := newBuyerTestService(factory)
	ctx := context.Background()

	uow := factory.NewUnitOfWork(ctx)
	lot := &entity.Lot{LotNumber: "101"}
	require.NoError(t, uow.LotRepository().Create(ctx, lot))
	buyer := &entity.Buyer{Identifier: 9, Name: "Buyer 9"}
	require.NoError(t, uow.BuyerRepository().Create(ctx, buyer))
	require.NoError(t, uow.BidEntryRepository().Create(ctx, &entity.BidEntry{
		LotId:   lot.Id,
		BuyerId: buyer.Id,
	}))

	content := buildWorkbook(t, [][]interface{}{
		{"Identifier", "Name"},
		{"9", "Ninth Buyer"},
	})
	_, err := svc.ImportBuyerList(ctx, content)
	require.NoError(t, err)

	count, err := factory.NewUnitOfWork(ctx).BidEntryRepository().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
