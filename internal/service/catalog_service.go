package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"auction-desk-be/internal/config"
	"auction-desk-be/internal/dto"
	"auction-desk-be/internal/entity"
	"auction-desk-be/internal/pkg/logger"
	"auction-desk-be/internal/repository/specification"
	"auction-desk-be/internal/repository/unitofwork"
	"auction-desk-be/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

// Spreadsheet header aliases accepted by the sale-program importer. Keys
// are lowercased before lookup.
var lotHeaderAliases = map[string]string{
	"lotnumber":    "lot_number",
	"lot number":   "lot_number",
	"sale #":       "lot_number",
	"sale number":  "lot_number",
	"studentname":  "student_name",
	"student name": "student_name",
	"exhibitor":    "student_name",
	"department":   "department",
	"club":         "department",
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

type ICatalogService interface {
	ImportSaleProgram(ctx context.Context, content []byte) (*dto.ImportResultResponse, error)
	ListLots(ctx context.Context) ([]dto.LotResponse, error)
	UploadLotImage(ctx context.Context, lotNumber, originalFilename string, content []byte) (*dto.UploadImageResponse, error)
	ExportBidders(ctx context.Context) (*bytes.Buffer, error)
}

type catalogService struct {
	uowFactory unitofwork.RepositoryFactory
	cfg        *config.Config
	sessions   ISessionService
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewCatalogService(
	uowFactory unitofwork.RepositoryFactory,
	cfg *config.Config,
	sessions ISessionService,
	publisher IPublisherService,
	log logger.ILogger,
) ICatalogService {
	return &catalogService{
		uowFactory: uowFactory,
		cfg:        cfg,
		sessions:   sessions,
		publisher:  publisher,
		logger:     log,
	}
}

// broadcast pushes a fresh state frame plus a log frame to live viewers.
// Called after commit so viewers never see uncommitted catalog changes.
func (s *catalogService) broadcast(ctx context.Context, message string) {
	snapshot, err := s.sessions.Snapshot(ctx)
	if err != nil {
		s.logger.Warn("Catalog", "Failed to compose live frame", map[string]interface{}{"error": err.Error()})
	} else if err := s.publisher.PublishSnapshot(ctx, snapshot); err != nil {
		s.logger.Warn("Catalog", "Failed to publish live frame", map[string]interface{}{"error": err.Error()})
	}
	if err := s.publisher.PublishLog(ctx, message); err != nil {
		s.logger.Warn("Catalog", "Failed to publish log frame", map[string]interface{}{"error": err.Error()})
	}
}

type lotRow struct {
	lotNumber   string
	studentName string
	department  string
}

// ImportSaleProgram replaces the catalog with the uploaded workbook. Lots
// already present keep their identity (and so their bids and images); rows
// are repositioned to match file order, and lots absent from the file are
// removed along with their bids and images.
func (s *catalogService) ImportSaleProgram(ctx context.Context, content []byte) (*dto.ImportResultResponse, error) {
	rows, err := parseLotWorkbook(content)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperror.New(apperror.CodeValidation, "No lot rows found in file")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	existing, err := uow.LotRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	byNumber := make(map[string]*entity.Lot, len(existing))
	for _, lot := range existing {
		byNumber[lot.LotNumber] = lot
	}

	added, updated := 0, 0
	seen := make(map[string]bool, len(rows))
	for position, row := range rows {
		seen[row.lotNumber] = true
		if lot, ok := byNumber[row.lotNumber]; ok {
			lot.StudentName = row.studentName
			lot.Department = row.department
			lot.Position = position
			if err := uow.LotRepository().Update(ctx, lot); err != nil {
				return nil, err
			}
			updated++
			continue
		}
		lot := &entity.Lot{
			LotNumber:   row.lotNumber,
			StudentName: row.studentName,
			Department:  row.department,
			Position:    position,
		}
		if err := uow.LotRepository().Create(ctx, lot); err != nil {
			return nil, err
		}
		added++
	}

	for _, lot := range existing {
		if seen[lot.LotNumber] {
			continue
		}
		if err := s.removeLot(ctx, uow, lot); err != nil {
			return nil, err
		}
	}

	if err := uow.OperationLogRepository().Create(ctx, &entity.OperationLog{
		Kind:    "import",
		Message: "Sale program imported",
		Details: map[string]interface{}{"rows": len(rows), "added": added, "updated": updated},
	}); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("Catalog", "Sale program imported", map[string]interface{}{
		"rows": len(rows), "added": added, "updated": updated,
	})
	s.broadcast(ctx, fmt.Sprintf("Sale program uploaded with %d rows.", len(rows)))
	return &dto.ImportResultResponse{
		Message: "Sale program imported",
		Rows:    len(rows),
		Added:   added,
		Updated: updated,
	}, nil
}

func (s *catalogService) removeLot(ctx context.Context, uow unitofwork.UnitOfWork, lot *entity.Lot) error {
	bids, err := uow.BidEntryRepository().FindAll(ctx, specification.ByLotId{LotId: lot.Id})
	if err != nil {
		return err
	}
	for _, bid := range bids {
		if err := uow.BidEntryRepository().Delete(ctx, bid.Id); err != nil {
			return err
		}
	}

	image, err := uow.LotImageRepository().FindOne(ctx, specification.ByLotId{LotId: lot.Id})
	if err != nil {
		return err
	}
	if image != nil {
		if err := uow.LotImageRepository().Delete(ctx, image.Id); err != nil {
			return err
		}
		os.Remove(filepath.Join(s.cfg.Media.ImageDir, image.Filename))
	}

	return uow.LotRepository().Delete(ctx, lot.Id)
}

func (s *catalogService) ListLots(ctx context.Context) ([]dto.LotResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	lots, err := uow.LotRepository().FindAll(ctx, specification.OrderBy{Field: "position"})
	if err != nil {
		return nil, err
	}

	images, err := uow.LotImageRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	urlByLot := make(map[string]string, len(images))
	for _, image := range images {
		urlByLot[image.LotId.String()] = image.URL
	}

	responses := make([]dto.LotResponse, 0, len(lots))
	for _, lot := range lots {
		resp := dto.LotResponse{
			LotNumber:   lot.LotNumber,
			StudentName: lot.StudentName,
			Department:  lot.Department,
		}
		if url, ok := urlByLot[lot.Id.String()]; ok {
			u := url
			resp.ImageURL = &u
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// UploadLotImage stores the image on disk and points the lot at it. A lot
// holds at most one image; re-uploading replaces both file and row.
func (s *catalogService) UploadLotImage(ctx context.Context, lotNumber, originalFilename string, content []byte) (*dto.UploadImageResponse, error) {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if !allowedImageExts[ext] {
		return nil, apperror.Newf(apperror.CodeValidation, "Unsupported image type %s", ext)
	}
	if int64(len(content)) > s.cfg.Media.MaxImageSize {
		return nil, apperror.New(apperror.CodeValidation, "Image exceeds maximum allowed size")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	lot, err := uow.LotRepository().FindOne(ctx, specification.ByLotNumber{LotNumber: lotNumber})
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, apperror.NotFoundf("Lot %s not found", lotNumber)
	}

	filename := fmt.Sprintf("lot_%s_%d%s", lotNumber, timeNowUnix(), ext)
	if err := os.MkdirAll(s.cfg.Media.ImageDir, 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(s.cfg.Media.ImageDir, filename), content, 0o644); err != nil {
		return nil, err
	}
	url := "/images/" + filename

	existing, err := uow.LotImageRepository().FindOne(ctx, specification.ByLotId{LotId: lot.Id})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		oldFilename := existing.Filename
		existing.Filename = filename
		existing.URL = url
		if err := uow.LotImageRepository().Update(ctx, existing); err != nil {
			return nil, err
		}
		if err := uow.Commit(); err != nil {
			return nil, err
		}
		if oldFilename != filename {
			os.Remove(filepath.Join(s.cfg.Media.ImageDir, oldFilename))
		}
		s.broadcast(ctx, fmt.Sprintf("Image uploaded for lot %s", lotNumber))
		return &dto.UploadImageResponse{Message: "Image replaced", URL: url}, nil
	}

	if err := uow.LotImageRepository().Create(ctx, &entity.LotImage{
		LotId:    lot.Id,
		Filename: filename,
		URL:      url,
	}); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	s.broadcast(ctx, fmt.Sprintf("Image uploaded for lot %s", lotNumber))
	return &dto.UploadImageResponse{Message: "Image uploaded", URL: url}, nil
}

// ExportBidders renders the bid ledger as a workbook, one row per lot in
// catalog order. Each row carries the lot's buyer identifiers joined by
// ", " in arrival order; lots without bids get an empty Buyers cell.
func (s *catalogService) ExportBidders(ctx context.Context) (*bytes.Buffer, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	lots, err := uow.LotRepository().FindAll(ctx, specification.OrderBy{Field: "position"})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []string{"LotNumber", "StudentName", "Department", "Buyers"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for rowIdx, lot := range lots {
		bids, err := uow.BidEntryRepository().FindAll(ctx,
			specification.ByLotId{LotId: lot.Id},
			specification.OrderBy{Field: "created_at"},
		)
		if err != nil {
			return nil, err
		}
		identifiers := make([]string, 0, len(bids))
		for _, bid := range bids {
			buyer, err := uow.BuyerRepository().FindOne(ctx, specification.ByID{ID: bid.BuyerId})
			if err != nil {
				return nil, err
			}
			if buyer == nil {
				continue
			}
			identifiers = append(identifiers, fmt.Sprintf("%d", buyer.Identifier))
		}
		values := []interface{}{lot.LotNumber, lot.StudentName, lot.Department, strings.Join(identifiers, ", ")}
		for i, value := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, rowIdx+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	return f.WriteToBuffer()
}

func timeNowUnix() int64 {
	return time.Now().Unix()
}

func parseLotWorkbook(content []byte) ([]lotRow, error) {
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
		if field, ok := lotHeaderAliases[strings.ToLower(strings.TrimSpace(header))]; ok {
			if _, taken := columns[field]; !taken {
				columns[field] = i
			}
		}
	}
	lotCol, ok := columns["lot_number"]
	if !ok {
		return nil, apperror.New(apperror.CodeValidation, "Workbook is missing a lot number column")
	}

	cellAt := func(row []string, idx int) string {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	rows := make([]lotRow, 0, len(rawRows)-1)
	seen := map[string]bool{}
	for _, raw := range rawRows[1:] {
		lotNumber := cellAt(raw, lotCol)
		if lotNumber == "" || seen[lotNumber] {
			continue
		}
		seen[lotNumber] = true
		row := lotRow{lotNumber: lotNumber}
		if idx, ok := columns["student_name"]; ok {
			row.studentName = cellAt(raw, idx)
		}
		if idx, ok := columns["department"]; ok {
			row.department = cellAt(raw, idx)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
