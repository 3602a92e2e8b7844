package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"auction-desk-be/internal/dto"
	"auction-desk-be/internal/entity"
	"auction-desk-be/internal/repository/specification"
	"auction-desk-be/internal/repository/unitofwork"
	"auction-desk-be/pkg/apperror"
	"auction-desk-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionTestEnv struct {
	svc       *sessionService
	publisher *capturePublisher
	factory   unitofwork.RepositoryFactory
	clock     *testClock
}

func newSessionTestEnv(t *testing.T) *sessionTestEnv {
	t.Helper()

	factory := newTestFactory(t)
	publisher := &capturePublisher{}
	clock := newTestClock(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))

	svc := NewSessionService(factory, publisher, nopLogger{}).(*sessionService)
	svc.now = clock.Now

	return &sessionTestEnv{
		svc:       svc,
		publisher: publisher,
		factory:   factory,
		clock:     clock,
	}
}

func (env *sessionTestEnv) seedLots(t *testing.T, numbers ...string) {
	t.Helper()
	ctx := context.Background()
	uow := env.factory.NewUnitOfWork(ctx)
	for i, number := range numbers {
		require.NoError(t, uow.LotRepository().Create(ctx, &entity.Lot{
			LotNumber:   number,
			StudentName: fmt.Sprintf("Student %s", number),
			Department:  "Swine",
			Position:    i,
		}))
	}
}

func (env *sessionTestEnv) bidCount(t *testing.T) int64 {
	t.Helper()
	ctx := context.Background()
	count, err := env.factory.NewUnitOfWork(ctx).BidEntryRepository().Count(ctx)
	require.NoError(t, err)
	return count
}

func TestAdvanceWalksCatalogAndStopsAtEnd(t *testing.T) {
	env := newSessionTestEnv(t)
	ctx := context.Background()
	env.seedLots(t, "101", "102")

	res, err := env.svc.Advance(ctx)
	require.NoError(t, err)
	assert.True(t, res.Moved)
	assert.Equal(t, dto.MessageAdvanced, res.Message)

	res, err = env.svc.Advance(ctx)
	require.NoError(t, err)
	assert.True(t, res.Moved)

	// Pointer is at the last lot now; a further advance must not move it.
	res, err = env.svc.Advance(ctx)
	require.NoError(t, err)
	assert.False(t, res.Moved)
	assert.Equal(t, dto.MessageEndOfLots, res.Message)

	snapshot, err := env.svc.Snapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, snapshot.Lot)
	assert.Equal(t, "102", snapshot.Lot.LotNumber)
}

func TestAdvanceWithEmptyCatalog(t *testing.T) {
	env := newSessionTestEnv(t)

	_, err := env.svc.Advance(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidOperation))
	assert.Zero(t, env.publisher.snapshotCount())
}

func TestRetreatStopsAtStart(t *testing.T) {
	env := newSessionTestEnv(t)
	ctx := context.Background()
	env.seedLots(t, "101", "102")

	// Before the session has started, retreat is a boundary result.
	res, err := env.svc.Retreat(ctx)
	require.NoError(t, err)
	assert.False(t, res.Moved)
	assert.Equal(t, dto.MessageStartOfLots, res.Message)

	_, err = env.svc.Advance(ctx)
	require.NoError(t, err)

	// At the first lot retreat must not move the pointer.
	res, err = env.svc.Retreat(ctx)
	require.NoError(t, err)
	assert.False(t, res.Moved)
	assert.Equal(t, dto.MessageStartOfLots, res.Message)

	_, err = env.svc.Advance(ctx)
	require.NoError(t, err)

	res, err = env.svc.Retreat(ctx)
	require.NoError(t, err)
	assert.True(t, res.Moved)
	assert.Equal(t, dto.MessageMovedBack, res.Message)

	snapshot, err := env.svc.Snapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, snapshot.Lot)
	assert.Equal(t, "101", snapshot.Lot.LotNumber)
}

func TestBoundaryNavigationDoesNotBroadcast(t *testing.T) {
	env := newSessionTestEnv(t)
	ctx := context.Background()
	env.seedLots(t, "101")

	_, err := env.svc.Advance(ctx)
	require.NoError(t, err)
	published := env.publisher.snapshotCount()

	_, err = env.svc.Advance(ctx)
	require.NoError(t, err)
	_, err = env.svc.Retreat(ctx)
	require.NoError(t, err)

	assert.Equal(t, published, env.publisher.snapshotCount())
}

func TestAddBidCreatesPlaceholderBuyer(t *testing.T) {
	env := newSessionTestEnv(t)
	ctx := context.Background()
	env.seedLots(t, "101")

	_, err := env.svc.Advance(ctx)
	require.NoError(t, err)

	res, err := env.svc.AddBid(ctx, 42)
	require.NoError(t, err)
	assert.False(t, res.Duplicate)
	assert.Equal(t, "Bidder 42 added.", res.Message)

	buyer, err := env.factory.NewUnitOfWork(ctx).BuyerRepository().FindOne(ctx,
		specification.ByIdentifier{Identifier: 42})
	require.NoError(t, err)
	require.NotNil(t, buyer)
	assert.Equal(t, "Buyer 42", buyer.Name)

	snapshot := env.publisher.lastSnapshot()
	require.NotNil(t, snapshot)
	assert.Equal(t, events.TypeBidUpdate, snapshot.Type)
	require.Len(t, snapshot.Bidders, 1)
	assert.Equal(t, 42, snapshot.Bidders[0].Identifier)
}

func TestAddBidIsIdempotentPerLot(t *testing.T) {
	env := newSessionTestEnv(t)
	ctx := context.Background()
	env.seedLots(t, "101")

	_, err := env.svc.Advance(ctx)
	require.NoError(t, err)

	_, err = env.svc.AddBid(ctx, 7)
	require.NoError(t, err)
	published := env.publisher.snapshotCount()

	res, err := env.svc.AddBid(ctx, 7)
	require.NoError(t, err)
	assert.True(t, res.Duplicate)

	// The duplicate neither grows the ledger nor broadcasts.
	assert.Equal(t, int64(1), env.bidCount(t))
	assert.Equal(t, published, env.publisher.snapshotCount())
}

func TestAddBidRequiresActiveLot(t *testing.T) {
	env := newSessionTestEnv(t)
	env.seedLots(t, "101")

	_, err := env.svc.AddBid(context.Background(), 5)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidOperation))
}

func TestUndoRemovesBidsInReverseArrivalOrder(t *testing.T) {
	env := newSessionTestEnv(t)
	ctx := context.Background()
	env.seedLots(t, "101")

	_, err := env.svc.Advance(ctx)
	require.NoError(t, err)
	for _, identifier := range []int{7, 3} {
		_, err = env.svc.AddBid(ctx, identifier)
		require.NoError(t, err)
	}

	// Newest first on the current lot.
	res, err := env.svc.UndoLastBid(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Identifier)
	assert.Equal(t, "101", res.LotNumber)
	assert.Equal(t, "Undid bidder 3 from lot 101", res.Message)

	// Undo is a correction, not a new bid, so viewers get a state frame.
	snapshot := env.publisher.lastSnapshot()
	require.NotNil(t, snapshot)
	assert.Equal(t, events.TypeState, snapshot.Type)

	res, err = env.svc.UndoLastBid(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, res.Identifier)

	_, err = env.svc.UndoLastBid(ctx)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound))
	assert.Equal(t, "No bidders to undo for this lot", err.(*apperror.Error).Message())
}

func TestUndoOnlyReachesCurrentLot(t *testing.T) {
	env := newSessionTestEnv(t)
	ctx := context.Background()
	env.seedLots(t, "101", "102")

	_, err := env.svc.Advance(ctx)
	require.NoError(t, err)
	_, err = env.svc.AddBid(ctx, 7)
	require.NoError(t, err)
	_, err = env.svc.Advance(ctx)
	require.NoError(t, err)

	// Lot 102 has no bids; the bid on 101 must stay out of reach.
	_, err = env.svc.UndoLastBid(ctx)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound))
	assert.Equal(t, int64(1), env.bidCount(t))

	// Moving back makes the earlier bid undoable again.
	_, err = env.svc.Retreat(ctx)
	require.NoError(t, err)
	res, err := env.svc.UndoLastBid(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, res.Identifier)
	assert.Equal(t, "101", res.LotNumber)
}

func TestUndoBeforeSessionStart(t *testing.T) {
	env := newSessionTestEnv(t)
	env.seedLots(t, "101")

	_, err := env.svc.UndoLastBid(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound))
	assert.Equal(t, "No current lot", err.(*apperror.Error).Message())
}

func TestMergeBuyersReassignsAndDropsOverlap(t *testing.T) {
	env := newSessionTestEnv(t)
	ctx := context.Background()
	env.seedLots(t, "101", "102")

	// Lot 101: both 5 and 6 bid. Lot 102: only 5 bids.
	_, err := env.svc.Advance(ctx)
	require.NoError(t, err)
	for _, identifier := range []int{5, 6} {
		_, err = env.svc.AddBid(ctx, identifier)
		require.NoError(t, err)
	}
	_, err = env.svc.Advance(ctx)
	require.NoError(t, err)
	_, err = env.svc.AddBid(ctx, 5)
	require.NoError(t, err)

	res, err := env.svc.MergeBuyers(ctx, &dto.MergeBuyersRequest{
		SourceIdentifier: 5,
		TargetIdentifier: 6,
	})
	require.NoError(t, err)
	assert.Equal(t, "Merged bidder 5 into 6", res.Message)
	assert.Equal(t, 1, res.Reassigned)
	assert.Equal(t, 1, res.Dropped)

	// A merge rewrites history rather than adding a bid, so no bid_update.
	snapshot := env.publisher.lastSnapshot()
	require.NotNil(t, snapshot)
	assert.Equal(t, events.TypeState, snapshot.Type)

	uow := env.factory.NewUnitOfWork(ctx)
	source, err := uow.BuyerRepository().FindOne(ctx, specification.ByIdentifier{Identifier: 5})
	require.NoError(t, err)
	assert.Nil(t, source)

	assert.Equal(t, int64(2), env.bidCount(t))
}

func TestMergeBuyerWithItself(t *testing.T) {
	env := newSessionTestEnv(t)

	_, err := env.svc.MergeBuyers(context.Background(), &dto.MergeBuyersRequest{
		SourceIdentifier: 5,
		TargetIdentifier: 5,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidOperation))
	assert.Equal(t, "Cannot merge bidder with itself", err.(*apperror.Error).Message())
}

func TestMergeUnknownBuyer(t *testing.T) {
	env := newSessionTestEnv(t)

	_, err := env.svc.MergeBuyers(context.Background(), &dto.MergeBuyersRequest{
		SourceIdentifier: 5,
		TargetIdentifier: 6,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound))
}

func TestSnapshotBeforeSessionStart(t *testing.T) {
	env := newSessionTestEnv(t)
	env.seedLots(t, "101")

	snapshot, err := env.svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, events.TypeState, snapshot.Type)
	assert.Nil(t, snapshot.Lot)
	assert.Empty(t, snapshot.Bidders)
	assert.Nil(t, snapshot.Pacing)
}

func TestSnapshotBiddersInArrivalOrder(t *testing.T) {
	env := newSessionTestEnv(t)
	ctx := context.Background()
	env.seedLots(t, "101")

	_, err := env.svc.Advance(ctx)
	require.NoError(t, err)
	for _, identifier := range []int{30, 10, 20} {
		_, err = env.svc.AddBid(ctx, identifier)
		require.NoError(t, err)
	}

	snapshot, err := env.svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Bidders, 3)
	assert.Equal(t, 30, snapshot.Bidders[0].Identifier)
	assert.Equal(t, 10, snapshot.Bidders[1].Identifier)
	assert.Equal(t, 20, snapshot.Bidders[2].Identifier)
}

func TestPacingBaselineAndThresholds(t *testing.T) {
	env := newSessionTestEnv(t)
	ctx := context.Background()
	env.seedLots(t, "101", "102", "103")

	_, err := env.svc.Advance(ctx)
	require.NoError(t, err)

	// No lot has completed yet, so there is no baseline.
	snapshot, err := env.svc.Snapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, snapshot.Pacing)
	assert.Nil(t, snapshot.Pacing.AverageDuration)
	assert.Equal(t, suggestionBaseline, snapshot.Pacing.Suggestion)

	// First lot dwells 30s, establishing the average.
	env.clock.Advance(30 * time.Second)
	_, err = env.svc.Advance(ctx)
	require.NoError(t, err)

	uow := env.factory.NewUnitOfWork(ctx)
	completed, err := uow.PacingRecordRepository().FindAll(ctx, specification.CompletedRecords{})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, 30, *completed[0].DurationSeconds)

	// 50s on the current lot exceeds 1.5x the 30s average.
	env.clock.Advance(50 * time.Second)
	snapshot, err = env.svc.Snapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, snapshot.Pacing)
	require.NotNil(t, snapshot.Pacing.AverageDuration)
	assert.Equal(t, 30, *snapshot.Pacing.AverageDuration)
	assert.Equal(t, suggestionSpeedUp, snapshot.Pacing.Suggestion)

	// A fresh lot observed a few seconds in sits under 0.5x the average.
	_, err = env.svc.Retreat(ctx)
	require.NoError(t, err)
	env.clock.Advance(5 * time.Second)
	snapshot, err = env.svc.Snapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, snapshot.Pacing)
	assert.Equal(t, suggestionSlowDown, snapshot.Pacing.Suggestion)
}

func TestNavigationClosesOpenPacingRecord(t *testing.T) {
	env := newSessionTestEnv(t)
	ctx := context.Background()
	env.seedLots(t, "101", "102")

	_, err := env.svc.Advance(ctx)
	require.NoError(t, err)
	_, err = env.svc.Advance(ctx)
	require.NoError(t, err)

	uow := env.factory.NewUnitOfWork(ctx)
	open, err := uow.PacingRecordRepository().FindAll(ctx, specification.OpenRecords{})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, 1, open[0].LotPosition)
}

func TestOperationLogRecordsMutations(t *testing.T) {
	env := newSessionTestEnv(t)
	ctx := context.Background()
	env.seedLots(t, "101")

	_, err := env.svc.Advance(ctx)
	require.NoError(t, err)
	_, err = env.svc.AddBid(ctx, 12)
	require.NoError(t, err)

	uow := env.factory.NewUnitOfWork(ctx)
	logs, err := uow.OperationLogRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "bid", logs[0].Kind)
	assert.Equal(t, "Bidder 12 added.", logs[0].Message)
	assert.Equal(t, "navigation", logs[1].Kind)
}
