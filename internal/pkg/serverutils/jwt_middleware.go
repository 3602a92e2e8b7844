package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// NewJwtMiddleware guards a route group with bearer-token auth. On success
// the subject username lands in Locals("username").
func NewJwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid claims"})
		}

		username, _ := claims["sub"].(string)
		if username == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid claims"})
		}

		ctx.Locals("username", username)
		if isAdmin, ok := claims["admin"].(bool); ok {
			ctx.Locals("is_admin", isAdmin)
		}
		return ctx.Next()
	}
}

// NewAdminOnlyMiddleware rejects requests whose token lacks the admin
// claim. It must run after the jwt middleware that fills Locals.
func NewAdminOnlyMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if isAdmin, ok := ctx.Locals("is_admin").(bool); !ok || !isAdmin {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Admin access required"})
		}
		return ctx.Next()
	}
}
