package controller

import (
	"io"
	"mime/multipart"

	"auction-desk-be/internal/service"
	"auction-desk-be/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router)
	UploadSaleProgram(ctx *fiber.Ctx) error
	UploadBuyerList(ctx *fiber.Ctx) error
	ListSale(ctx *fiber.Ctx) error
	ListBuyers(ctx *fiber.Ctx) error
	UploadLotImage(ctx *fiber.Ctx) error
	ExportBidders(ctx *fiber.Ctx) error
}

type catalogController struct {
	catalogService service.ICatalogService
	buyerService   service.IBuyerService
	jwtMiddleware  fiber.Handler
}

func NewCatalogController(
	catalogService service.ICatalogService,
	buyerService service.IBuyerService,
	jwtMiddleware fiber.Handler,
) ICatalogController {
	return &catalogController{
		catalogService: catalogService,
		buyerService:   buyerService,
		jwtMiddleware:  jwtMiddleware,
	}
}

func (c *catalogController) RegisterRoutes(r fiber.Router) {
	// Viewer reads stay open; everything that mutates the catalog needs a
	// token.
	r.Get("/sale", c.ListSale)
	r.Get("/buyers", c.ListBuyers)

	upload := r.Group("/upload")
	upload.Use(c.jwtMiddleware)
	upload.Post("/sale_program", c.UploadSaleProgram)
	upload.Post("/buyer_list", c.UploadBuyerList)

	lot := r.Group("/lot")
	lot.Post("/:lotNumber/image", c.jwtMiddleware, c.UploadLotImage)

	export := r.Group("/export")
	export.Use(c.jwtMiddleware)
	export.Get("/bidders", c.ExportBidders)
}

func readFormFile(ctx *fiber.Ctx) ([]byte, string, error) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, "", apperror.New(apperror.CodeValidation, "Missing file upload")
	}
	return readMultipartFile(fileHeader)
}

func readMultipartFile(fileHeader *multipart.FileHeader) ([]byte, string, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, "", apperror.Wrap(apperror.CodeValidation, err, "Failed to open upload")
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, "", apperror.Wrap(apperror.CodeValidation, err, "Failed to read upload")
	}
	return content, fileHeader.Filename, nil
}

func (c *catalogController) UploadSaleProgram(ctx *fiber.Ctx) error {
	content, _, err := readFormFile(ctx)
	if err != nil {
		return err
	}

	res, err := c.catalogService.ImportSaleProgram(ctx.Context(), content)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *catalogController) UploadBuyerList(ctx *fiber.Ctx) error {
	content, _, err := readFormFile(ctx)
	if err != nil {
		return err
	}

	res, err := c.buyerService.ImportBuyerList(ctx.Context(), content)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *catalogController) ListSale(ctx *fiber.Ctx) error {
	res, err := c.catalogService.ListLots(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *catalogController) ListBuyers(ctx *fiber.Ctx) error {
	res, err := c.buyerService.ListBuyers(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *catalogController) UploadLotImage(ctx *fiber.Ctx) error {
	lotNumber := ctx.Params("lotNumber")
	content, filename, err := readFormFile(ctx)
	if err != nil {
		return err
	}

	res, err := c.catalogService.UploadLotImage(ctx.Context(), lotNumber, filename, content)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *catalogController) ExportBidders(ctx *fiber.Ctx) error {
	buf, err := c.catalogService.ExportBidders(ctx.Context())
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="auction_bidders.xlsx"`)
	return ctx.Send(buf.Bytes())
}
