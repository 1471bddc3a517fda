package websocket

import (
	"net/http"

	"autolot-service/internal/pkg/response"
	authService "autolot-service/internal/service/auth"
	ws "autolot-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The site and the API share an origin in production; the dev
		// server does not.
		return true
	},
}

type WebSocketHandler struct {
	hub    *ws.Hub
	auth   *authService.Service
	logger *zap.Logger
}

func NewWebSocketHandler(hub *ws.Hub, auth *authService.Service, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, auth: auth, logger: logger}
}

// HandleConnection upgrades an authenticated dashboard session onto the
// realtime feed.
func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Unauthorized(c, "missing authentication token")
		return
	}

	email, err := h.auth.Verify(token)
	if err != nil {
		h.logger.Warn("websocket authentication failed",
			zap.Error(err), zap.String("ip", c.ClientIP()))
		response.Unauthorized(c, "authentication failed")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed",
			zap.Error(err), zap.String("ip", c.ClientIP()))
		return
	}

	client := ws.NewClient(h.hub, conn)
	h.hub.Register <- client

	h.logger.Info("websocket client connected", zap.String("email", email))

	go client.WritePump()
	go client.ReadPump()
}
