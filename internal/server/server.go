package server

import (
	"log/slog"
	"net/http"
	"ticboard/internal/api/controller"
	"ticboard/internal/hub"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("server")

// Server wires the REST and websocket surfaces around the hub.
type Server struct {
	engine   *gin.Engine
	hub      *hub.Hub
	upgrader websocket.Upgrader
}

// NewServer creates the gin engine and registers all routes.
func NewServer(h *hub.Hub, userController *controller.UserController, sessionController *controller.SessionController) *Server {
	s := &Server{
		engine: gin.Default(),
		hub:    h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	api := s.engine.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/register", userController.Register)
		auth.POST("/login", userController.Login)
		auth.POST("/guest", userController.GuestLogin)

		sessions := api.Group("/sessions")
		sessions.POST("", sessionController.Create)
		sessions.GET("/:id", sessionController.Get)
		sessions.POST("/:id/moves", sessionController.Move)
		sessions.POST("/:id/players", sessionController.Rename)
		sessions.POST("/:id/restart", sessionController.Restart)
	}

	s.engine.GET("/ws", s.handleWebSocket)

	return s
}

// Engine exposes the gin engine for the http.Server.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// handleWebSocket upgrades the connection and attaches it to a session as
// a watching client. A missing session id gets a fresh session.
func (s *Server) handleWebSocket(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", c.Request.URL.String()),
	))
	defer span.End()

	sessionID := c.Query("session")
	if sessionID == "" {
		_, id, err := s.hub.Create(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "failed to create session for websocket client", "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to create session")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		sessionID = id
	}
	span.SetAttributes(attribute.String("session.id", sessionID))

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.ErrorContext(ctx, "failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		return
	}

	if err := s.hub.Attach(ctx, sessionID, conn); err != nil {
		slog.WarnContext(ctx, "failed to attach client", "session.id", sessionID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to attach client")
		conn.Close()
	}
}
