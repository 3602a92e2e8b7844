package controller

import (
	"auction-desk-be/internal/dto"
	"auction-desk-be/internal/pkg/serverutils"
	"auction-desk-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	CreateUser(ctx *fiber.Ctx) error
	ChangePassword(ctx *fiber.Ctx) error
	DeleteUser(ctx *fiber.Ctx) error
	ListUsers(ctx *fiber.Ctx) error
}

type authController struct {
	authService   service.IAuthService
	jwtMiddleware fiber.Handler
}

func NewAuthController(authService service.IAuthService, jwtMiddleware fiber.Handler) IAuthController {
	return &authController{
		authService:   authService,
		jwtMiddleware: jwtMiddleware,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	r.Post("/login", c.Login)

	// User management is admin territory. Every issued token carries the
	// admin claim today, but the gate keeps that a policy, not an accident.
	users := r.Group("/users")
	users.Use(c.jwtMiddleware, serverutils.NewAdminOnlyMiddleware())
	users.Get("", c.ListUsers)
	users.Post("", c.CreateUser)
	users.Put("/password", c.ChangePassword)
	users.Delete("/:username", c.DeleteUser)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *authController) CreateUser(ctx *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.CreateUser(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User created", res))
}

func (c *authController) ChangePassword(ctx *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.authService.ChangePassword(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Password changed", nil))
}

func (c *authController) DeleteUser(ctx *fiber.Ctx) error {
	username := ctx.Params("username")
	if err := c.authService.DeleteUser(ctx.Context(), username); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User deleted", nil))
}

func (c *authController) ListUsers(ctx *fiber.Ctx) error {
	res, err := c.authService.ListUsers(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list users", res))
}
