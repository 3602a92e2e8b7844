package controller

import (
	"strconv"

	"auction-desk-be/internal/dto"
	"auction-desk-be/internal/pkg/serverutils"
	"auction-desk-be/internal/service"
	"auction-desk-be/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	NextLot(ctx *fiber.Ctx) error
	PrevLot(ctx *fiber.Ctx) error
	AddBid(ctx *fiber.Ctx) error
	UndoBid(ctx *fiber.Ctx) error
	MergeBuyers(ctx *fiber.Ctx) error
	State(ctx *fiber.Ctx) error
	Logs(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
	logService     service.ILogService
	jwtMiddleware  fiber.Handler
}

func NewSessionController(
	sessionService service.ISessionService,
	logService service.ILogService,
	jwtMiddleware fiber.Handler,
) ISessionController {
	return &sessionController{
		sessionService: sessionService,
		logService:     logService,
		jwtMiddleware:  jwtMiddleware,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	r.Get("/state", c.State)
	r.Get("/logs", c.Logs)

	lot := r.Group("/lot")
	lot.Post("/next", c.jwtMiddleware, c.NextLot)
	lot.Post("/prev", c.jwtMiddleware, c.PrevLot)

	bidder := r.Group("/bidder")
	bidder.Use(c.jwtMiddleware)
	bidder.Post("/add/:identifier", c.AddBid)
	bidder.Post("/undo", c.UndoBid)
	bidder.Post("/merge", c.MergeBuyers)
}

func (c *sessionController) NextLot(ctx *fiber.Ctx) error {
	res, err := c.sessionService.Advance(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *sessionController) PrevLot(ctx *fiber.Ctx) error {
	res, err := c.sessionService.Retreat(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *sessionController) AddBid(ctx *fiber.Ctx) error {
	identifier, err := strconv.Atoi(ctx.Params("identifier"))
	if err != nil {
		return apperror.New(apperror.CodeValidation, "Bidder identifier must be a number")
	}

	res, err := c.sessionService.AddBid(ctx.Context(), identifier)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *sessionController) UndoBid(ctx *fiber.Ctx) error {
	res, err := c.sessionService.UndoLastBid(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *sessionController) MergeBuyers(ctx *fiber.Ctx) error {
	var req dto.MergeBuyersRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.MergeBuyers(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *sessionController) State(ctx *fiber.Ctx) error {
	res, err := c.sessionService.Snapshot(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *sessionController) Logs(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 0)
	res, err := c.logService.ListLogs(ctx.Context(), limit)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
