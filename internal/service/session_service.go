package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"auction-desk-be/internal/dto"
	"auction-desk-be/internal/entity"
	"auction-desk-be/internal/pkg/logger"
	"auction-desk-be/internal/repository/specification"
	"auction-desk-be/internal/repository/unitofwork"
	"auction-desk-be/pkg/apperror"
	"auction-desk-be/pkg/events"
)

// Pacing thresholds relative to the average completed-lot duration.
const (
	pacingSlowFactor = 1.5
	pacingFastFactor = 0.5
)

const (
	suggestionSpeedUp  = "Consider speeding up - lot is taking longer than average"
	suggestionSlowDown = "Consider slowing down - lot is moving faster than average"
	suggestionGood     = "Pacing looks good"
	suggestionBaseline = "Building pacing baseline"
)

// ISessionService is the live auction engine. Every mutating command runs
// under a single mutual-exclusion domain so viewers never observe a frame
// built from half-applied state.
type ISessionService interface {
	Advance(ctx context.Context) (*dto.NavigationResponse, error)
	Retreat(ctx context.Context) (*dto.NavigationResponse, error)
	AddBid(ctx context.Context, identifier int) (*dto.AddBidResponse, error)
	UndoLastBid(ctx context.Context) (*dto.UndoBidResponse, error)
	MergeBuyers(ctx context.Context, req *dto.MergeBuyersRequest) (*dto.MergeBuyersResponse, error)
	Snapshot(ctx context.Context) (*dto.SnapshotResponse, error)
}

type sessionService struct {
	mu         sync.RWMutex
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
	logger     logger.ILogger
	now        func() time.Time
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	publisher IPublisherService,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
		now:        time.Now,
	}
}

// Advance moves the lot pointer forward, closing the dwell-time record of
// the lot being left and opening one for the lot being entered. At the end
// of the catalog nothing mutates and the boundary is reported as a normal
// result.
func (s *sessionService) Advance(ctx context.Context) (*dto.NavigationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	session, err := s.getOrCreateSession(ctx, uow)
	if err != nil {
		return nil, err
	}

	total, err := uow.LotRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, apperror.InvalidOperation("No lots loaded")
	}

	if session.CurrentLotIndex >= int(total)-1 {
		return &dto.NavigationResponse{Moved: false, Message: dto.MessageEndOfLots}, nil
	}

	now := s.now()
	if err := s.closeOpenRecord(ctx, uow, now); err != nil {
		return nil, err
	}

	session.CurrentLotIndex++
	if err := uow.AuctionSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	if err := s.openRecord(ctx, uow, session.CurrentLotIndex, now); err != nil {
		return nil, err
	}

	if err := s.logOperation(ctx, uow, "navigation", dto.MessageAdvanced, map[string]interface{}{
		"from": session.CurrentLotIndex - 1,
		"to":   session.CurrentLotIndex,
	}); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishSnapshot(ctx, events.TypeState)
	return &dto.NavigationResponse{Moved: true, Message: dto.MessageAdvanced}, nil
}

// Retreat moves the lot pointer back one position. A pointer at the first
// lot (or one that has never advanced) stays put.
func (s *sessionService) Retreat(ctx context.Context) (*dto.NavigationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	session, err := s.getOrCreateSession(ctx, uow)
	if err != nil {
		return nil, err
	}

	if session.CurrentLotIndex <= 0 {
		return &dto.NavigationResponse{Moved: false, Message: dto.MessageStartOfLots}, nil
	}

	now := s.now()
	if err := s.closeOpenRecord(ctx, uow, now); err != nil {
		return nil, err
	}

	session.CurrentLotIndex--
	if err := uow.AuctionSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	if err := s.openRecord(ctx, uow, session.CurrentLotIndex, now); err != nil {
		return nil, err
	}

	if err := s.logOperation(ctx, uow, "navigation", dto.MessageMovedBack, map[string]interface{}{
		"from": session.CurrentLotIndex + 1,
		"to":   session.CurrentLotIndex,
	}); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishSnapshot(ctx, events.TypeState)
	return &dto.NavigationResponse{Moved: true, Message: dto.MessageMovedBack}, nil
}

// AddBid records a bid by the identified buyer on the current lot. Unknown
// identifiers get a placeholder buyer row on the spot; a repeat bid by the
// same buyer on the same lot is a no-op and is never broadcast.
func (s *sessionService) AddBid(ctx context.Context, identifier int) (*dto.AddBidResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	session, err := s.getOrCreateSession(ctx, uow)
	if err != nil {
		return nil, err
	}
	if !session.Started() {
		return nil, apperror.InvalidOperation("No active lot")
	}

	lot, err := uow.LotRepository().FindOne(ctx, specification.ByPosition{Position: session.CurrentLotIndex})
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, apperror.NotFound("Current lot not found")
	}

	buyer, err := uow.BuyerRepository().FindOne(ctx, specification.ByIdentifier{Identifier: identifier})
	if err != nil {
		return nil, err
	}
	if buyer == nil {
		buyer = &entity.Buyer{
			Identifier: identifier,
			Name:       fmt.Sprintf("Buyer %d", identifier),
		}
		if err := uow.BuyerRepository().Create(ctx, buyer); err != nil {
			return nil, err
		}
	}

	existing, err := uow.BidEntryRepository().FindOne(ctx,
		specification.ByLotId{LotId: lot.Id},
		specification.ByBuyerId{BuyerId: buyer.Id},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &dto.AddBidResponse{
			Message:    fmt.Sprintf("Bidder %d already added.", identifier),
			Identifier: identifier,
			Duplicate:  true,
		}, nil
	}

	entry := &entity.BidEntry{
		LotId:       lot.Id,
		BuyerId:     buyer.Id,
		LotPosition: session.CurrentLotIndex,
		CreatedAt:   s.now(),
	}
	if err := uow.BidEntryRepository().Create(ctx, entry); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Bidder %d added.", identifier)
	if err := s.logOperation(ctx, uow, "bid", msg, map[string]interface{}{
		"identifier": identifier,
		"lot_number": lot.LotNumber,
	}); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishSnapshot(ctx, events.TypeBidUpdate)
	s.publishLog(ctx, msg)
	return &dto.AddBidResponse{Message: msg, Identifier: identifier, Duplicate: false}, nil
}

// UndoLastBid removes the most recently recorded bid on the current lot.
// Bids on other lots are out of reach; moving the pointer moves the undo
// scope with it.
func (s *sessionService) UndoLastBid(ctx context.Context) (*dto.UndoBidResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	session, err := s.getOrCreateSession(ctx, uow)
	if err != nil {
		return nil, err
	}
	if !session.Started() {
		return nil, apperror.NotFound("No current lot")
	}

	lot, err := uow.LotRepository().FindOne(ctx, specification.ByPosition{Position: session.CurrentLotIndex})
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, apperror.NotFound("No current lot")
	}

	entry, err := uow.BidEntryRepository().FindOne(ctx,
		specification.ByLotId{LotId: lot.Id},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NotFound("No bidders to undo for this lot")
	}

	buyer, err := uow.BuyerRepository().FindOne(ctx, specification.ByID{ID: entry.BuyerId})
	if err != nil {
		return nil, err
	}
	if buyer == nil {
		return nil, apperror.NotFound("Bid references a missing buyer")
	}

	if err := uow.BidEntryRepository().Delete(ctx, entry.Id); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Undid bidder %v from lot %s", buyer.Identifier, lot.LotNumber)
	if err := s.logOperation(ctx, uow, "bid", msg, map[string]interface{}{
		"identifier": buyer.Identifier,
		"lot_number": lot.LotNumber,
	}); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishSnapshot(ctx, events.TypeState)
	s.publishLog(ctx, msg)
	return &dto.UndoBidResponse{
		Message:    msg,
		Identifier: buyer.Identifier,
		LotNumber:  lot.LotNumber,
	}, nil
}

// MergeBuyers folds every bid of the source identifier into the target and
// deletes the source buyer. Where both bid on the same lot the source's
// entry is dropped so the lot keeps a single entry per buyer.
func (s *sessionService) MergeBuyers(ctx context.Context, req *dto.MergeBuyersRequest) (*dto.MergeBuyersResponse, error) {
	if req.SourceIdentifier == req.TargetIdentifier {
		return nil, apperror.InvalidOperation("Cannot merge bidder with itself")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	source, err := uow.BuyerRepository().FindOne(ctx, specification.ByIdentifier{Identifier: req.SourceIdentifier})
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, apperror.NotFoundf("Bidder %d not found", req.SourceIdentifier)
	}
	target, err := uow.BuyerRepository().FindOne(ctx, specification.ByIdentifier{Identifier: req.TargetIdentifier})
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperror.NotFoundf("Bidder %d not found", req.TargetIdentifier)
	}

	sourceBids, err := uow.BidEntryRepository().FindAll(ctx, specification.ByBuyerId{BuyerId: source.Id})
	if err != nil {
		return nil, err
	}

	reassigned, dropped := 0, 0
	for _, bid := range sourceBids {
		conflict, err := uow.BidEntryRepository().FindOne(ctx,
			specification.ByLotId{LotId: bid.LotId},
			specification.ByBuyerId{BuyerId: target.Id},
		)
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			if err := uow.BidEntryRepository().Delete(ctx, bid.Id); err != nil {
				return nil, err
			}
			dropped++
			continue
		}
		bid.BuyerId = target.Id
		if err := uow.BidEntryRepository().Update(ctx, bid); err != nil {
			return nil, err
		}
		reassigned++
	}

	if err := uow.BuyerRepository().Delete(ctx, source.Id); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Merged bidder %d into %d", req.SourceIdentifier, req.TargetIdentifier)
	if err := s.logOperation(ctx, uow, "merge", msg, map[string]interface{}{
		"source":     req.SourceIdentifier,
		"target":     req.TargetIdentifier,
		"reassigned": reassigned,
		"dropped":    dropped,
	}); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishSnapshot(ctx, events.TypeState)
	s.publishLog(ctx, msg)
	return &dto.MergeBuyersResponse{Message: msg, Reassigned: reassigned, Dropped: dropped}, nil
}

// Snapshot composes the current live frame without mutating anything.
func (s *sessionService) Snapshot(ctx context.Context) (*dto.SnapshotResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.composeSnapshot(ctx, uow, events.TypeState)
}

func (s *sessionService) getOrCreateSession(ctx context.Context, uow unitofwork.UnitOfWork) (*entity.AuctionSession, error) {
	session, err := uow.AuctionSessionRepository().FindOne(ctx, specification.ActiveSession{})
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}

	session = &entity.AuctionSession{
		CurrentLotIndex: entity.NotStartedIndex,
		IsActive:        true,
	}
	if err := uow.AuctionSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) closeOpenRecord(ctx context.Context, uow unitofwork.UnitOfWork, now time.Time) error {
	record, err := uow.PacingRecordRepository().FindOne(ctx, specification.OpenRecords{})
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}

	duration := int(now.Sub(record.StartTime).Seconds())
	record.EndTime = &now
	record.DurationSeconds = &duration
	return uow.PacingRecordRepository().Update(ctx, record)
}

func (s *sessionService) openRecord(ctx context.Context, uow unitofwork.UnitOfWork, position int, now time.Time) error {
	return uow.PacingRecordRepository().Create(ctx, &entity.PacingRecord{
		LotPosition: position,
		StartTime:   now,
	})
}

func (s *sessionService) logOperation(ctx context.Context, uow unitofwork.UnitOfWork, kind, message string, details map[string]interface{}) error {
	return uow.OperationLogRepository().Create(ctx, &entity.OperationLog{
		Kind:    kind,
		Message: message,
		Details: details,
	})
}

// composeSnapshot assembles the full frame: the lot under the pointer with
// its image, the lot's bidders in arrival order, and the pacing projection.
// A session that has never advanced yields an empty frame.
func (s *sessionService) composeSnapshot(ctx context.Context, uow unitofwork.UnitOfWork, frameType string) (*dto.SnapshotResponse, error) {
	snapshot := &dto.SnapshotResponse{
		Type:    frameType,
		Bidders: []dto.BuyerResponse{},
	}

	session, err := uow.AuctionSessionRepository().FindOne(ctx, specification.ActiveSession{})
	if err != nil {
		return nil, err
	}
	if session == nil || !session.Started() {
		return snapshot, nil
	}

	lot, err := uow.LotRepository().FindOne(ctx, specification.ByPosition{Position: session.CurrentLotIndex})
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return snapshot, nil
	}

	lotResp := &dto.LotResponse{
		LotNumber:   lot.LotNumber,
		StudentName: lot.StudentName,
		Department:  lot.Department,
	}
	image, err := uow.LotImageRepository().FindOne(ctx, specification.ByLotId{LotId: lot.Id})
	if err != nil {
		return nil, err
	}
	if image != nil {
		lotResp.ImageURL = &image.URL
	}
	snapshot.Lot = lotResp

	bids, err := uow.BidEntryRepository().FindAll(ctx,
		specification.ByLotId{LotId: lot.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}
	for _, bid := range bids {
		buyer, err := uow.BuyerRepository().FindOne(ctx, specification.ByID{ID: bid.BuyerId})
		if err != nil {
			return nil, err
		}
		if buyer == nil {
			continue
		}
		snapshot.Bidders = append(snapshot.Bidders, dto.BuyerResponse{
			Identifier: buyer.Identifier,
			Name:       buyer.Name,
		})
	}

	pacing, err := s.composePacing(ctx, uow, session.CurrentLotIndex)
	if err != nil {
		return nil, err
	}
	snapshot.Pacing = pacing

	return snapshot, nil
}

func (s *sessionService) composePacing(ctx context.Context, uow unitofwork.UnitOfWork, position int) (*dto.PacingResponse, error) {
	open, err := uow.PacingRecordRepository().FindOne(ctx,
		specification.OpenRecords{},
		specification.ByLotPosition{Position: position},
	)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, nil
	}

	current := int(s.now().Sub(open.StartTime).Seconds())
	resp := &dto.PacingResponse{CurrentDuration: current}

	completed, err := uow.PacingRecordRepository().FindAll(ctx, specification.CompletedRecords{})
	if err != nil {
		return nil, err
	}
	if len(completed) == 0 {
		resp.Suggestion = suggestionBaseline
		return resp, nil
	}

	total := 0
	for _, record := range completed {
		total += *record.DurationSeconds
	}
	average := total / len(completed)
	resp.AverageDuration = &average

	switch {
	case average > 0 && float64(current) > pacingSlowFactor*float64(average):
		resp.Suggestion = suggestionSpeedUp
	case average > 0 && float64(current) < pacingFastFactor*float64(average):
		resp.Suggestion = suggestionSlowDown
	default:
		resp.Suggestion = suggestionGood
	}
	return resp, nil
}

// publishSnapshot and publishLog run after commit; a delivery failure is a
// viewer problem, never a command failure.
func (s *sessionService) publishSnapshot(ctx context.Context, frameType string) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	snapshot, err := s.composeSnapshot(ctx, uow, frameType)
	if err != nil {
		s.logger.Warn("Session", "Failed to compose live frame", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisher.PublishSnapshot(ctx, snapshot); err != nil {
		s.logger.Warn("Session", "Failed to publish live frame", map[string]interface{}{"error": err.Error()})
	}
}

func (s *sessionService) publishLog(ctx context.Context, message string) {
	if err := s.publisher.PublishLog(ctx, message); err != nil {
		s.logger.Warn("Session", "Failed to publish log frame", map[string]interface{}{"error": err.Error()})
	}
}
