package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"auction-desk-be/internal/dto"
	"auction-desk-be/internal/entity"
	"auction-desk-be/internal/pkg/logger"
	"auction-desk-be/internal/repository/specification"
	"auction-desk-be/internal/repository/unitofwork"
	"auction-desk-be/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

var buyerHeaderAliases = map[string]string{
	"identifier": "identifier",
	"buyer #":    "identifier",
	"buyer id":   "identifier",
	"number":     "identifier",
	"name":       "name",
	"buyer name": "name",
}

type IBuyerService interface {
	ImportBuyerList(ctx context.Context, content []byte) (*dto.ImportResultResponse, error)
	ListBuyers(ctx context.Context) ([]dto.BuyerResponse, error)
}

type buyerService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   ISessionService
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewBuyerService(
	uowFactory unitofwork.RepositoryFactory,
	sessions ISessionService,
	publisher IPublisherService,
	log logger.ILogger,
) IBuyerService {
	return &buyerService{
		uowFactory: uowFactory,
		sessions:   sessions,
		publisher:  publisher,
		logger:     log,
	}
}

// ImportBuyerList upserts the roster by identifier. Buyers absent from the
// file are kept: bids may already reference them, and a walk-in buyer row
// created at bid time must survive roster re-uploads.
func (s *buyerService) ImportBuyerList(ctx context.Context, content []byte) (*dto.ImportResultResponse, error) {
	rows, err := parseBuyerWorkbook(content)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperror.New(apperror.CodeValidation, "No buyer rows found in file")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	added, updated := 0, 0
	for _, row := range rows {
		existing, err := uow.BuyerRepository().FindOne(ctx, specification.ByIdentifier{Identifier: row.identifier})
		if err != nil {
			return nil, err
		}
		if existing != nil {
			existing.Name = row.name
			if err := uow.BuyerRepository().Update(ctx, existing); err != nil {
				return nil, err
			}
			updated++
			continue
		}
		buyer := &entity.Buyer{Identifier: row.identifier, Name: row.name}
		if err := uow.BuyerRepository().Create(ctx, buyer); err != nil {
			return nil, err
		}
		added++
	}

	if err := uow.OperationLogRepository().Create(ctx, &entity.OperationLog{
		Kind:    "import",
		Message: "Buyer list imported",
		Details: map[string]interface{}{"rows": len(rows), "added": added, "updated": updated},
	}); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("Buyers", "Buyer list imported", map[string]interface{}{
		"rows": len(rows), "added": added, "updated": updated,
	})
	s.broadcast(ctx, fmt.Sprintf("Buyer list uploaded with %d rows.", len(rows)))
	return &dto.ImportResultResponse{
		Message: "Buyer list imported",
		Rows:    len(rows),
		Added:   added,
		Updated: updated,
	}, nil
}

// broadcast mirrors the catalog service: a state frame so viewers refresh
// resolved buyer names, then a log frame describing the import.
func (s *buyerService) broadcast(ctx context.Context, message string) {
	snapshot, err := s.sessions.Snapshot(ctx)
	if err != nil {
		s.logger.Warn("Buyers", "Failed to compose live frame", map[string]interface{}{"error": err.Error()})
	} else if err := s.publisher.PublishSnapshot(ctx, snapshot); err != nil {
		s.logger.Warn("Buyers", "Failed to publish live frame", map[string]interface{}{"error": err.Error()})
	}
	if err := s.publisher.PublishLog(ctx, message); err != nil {
		s.logger.Warn("Buyers", "Failed to publish log frame", map[string]interface{}{"error": err.Error()})
	}
}

func (s *buyerService) ListBuyers(ctx context.Context) ([]dto.BuyerResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	buyers, err := uow.BuyerRepository().FindAll(ctx, specification.OrderBy{Field: "identifier"})
	if err != nil {
		return nil, err
	}

	responses := make([]dto.BuyerResponse, 0, len(buyers))
	for _, buyer := range buyers {
		responses = append(responses, dto.BuyerResponse{
			Identifier: buyer.Identifier,
			Name:       buyer.Name,
		})
	}
	return responses, nil
}

type buyerRow struct {
	identifier int
	name       string
}

func parseBuyerWorkbook(content []byte) ([]buyerRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeValidation, err, "Failed to read workbook")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rawRows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeValidation, err, "Failed to read workbook rows")
	}
	if len(rawRows) < 2 {
		return nil, apperror.New(apperror.CodeValidation, "Workbook has no data rows")
	}

	columns := map[string]int{}
	for i, header := range rawRows[0] {
		if field, ok := buyerHeaderAliases[strings.ToLower(strings.TrimSpace(header))]; ok {
			if _, taken := columns[field]; !taken {
				columns[field] = i
			}
		}
	}
	idCol, ok := columns["identifier"]
	if !ok {
		return nil, apperror.New(apperror.CodeValidation, "Workbook is missing an identifier column")
	}

	cellAt := func(row []string, idx int) string {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	rows := make([]buyerRow, 0, len(rawRows)-1)
	seen := map[int]bool{}
	for _, raw := range rawRows[1:] {
		rawID := cellAt(raw, idCol)
		if rawID == "" {
			continue
		}
		identifier, err := strconv.Atoi(rawID)
		if err != nil || seen[identifier] {
			continue
		}
		seen[identifier] = true
		row := buyerRow{identifier: identifier}
		if idx, ok := columns["name"]; ok {
			row.name = cellAt(raw, idx)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
