package handler

import (
	"encoding/json"

	"auction-desk-be/internal/pkg/logger"
	"auction-desk-be/internal/service"
	internalWS "auction-desk-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
)

// LiveHandler upgrades viewer connections and attaches them to the hub.
type LiveHandler struct {
	sessionService service.ISessionService
	hub            *internalWS.Hub
	jwtSecret      string
	logger         logger.ILogger
}

func NewLiveHandler(
	sessionService service.ISessionService,
	hub *internalWS.Hub,
	jwtSecret string,
	log logger.ILogger,
) *LiveHandler {
	return &LiveHandler{
		sessionService: sessionService,
		hub:            hub,
		jwtSecret:      jwtSecret,
		logger:         log,
	}
}

// ServeWs handles websocket requests from viewers. Browsers cannot set
// headers on the handshake, so the token is accepted from the query string
// first and the Authorization header second.
func (h *LiveHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(h.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("LiveHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}
	username, _ := claims["sub"].(string)
	if username == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing subject"})
	}

	// Compose the current frame before the upgrade so the viewer renders
	// immediately instead of waiting for the next mutation.
	var initialFrame []byte
	if snapshot, err := h.sessionService.Snapshot(c.Context()); err == nil {
		initialFrame, _ = json.Marshal(snapshot)
	} else {
		h.logger.Warn("LiveHandler", "Failed to compose initial frame", map[string]interface{}{"error": err.Error()})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("LiveHandler", "Starting viewer session", map[string]interface{}{"username": username})
			internalWS.ServeWs(h.hub, conn, initialFrame)
			h.logger.Info("LiveHandler", "Viewer session ended", map[string]interface{}{"username": username})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the live websocket route.
func (h *LiveHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}
