// Package ws upgrades authenticated HTTP requests to websocket subscribers
// on the broadcast hub. Topic filtering is silent: requested topics the
// caller may not read are dropped without failing the handshake.
package ws

import (
	"log/slog"
	"net/http"

	"pizzeria/internal/broadcast"
	"pizzeria/internal/pkg/authn"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Server upgrades subscribe requests and registers clients with the hub.
type Server struct {
	hub        *broadcast.Hub
	authorizer *broadcast.Authorizer
	secret     string
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

// NewServer creates a websocket server bound to the given hub.
func NewServer(hub *broadcast.Hub, authorizer *broadcast.Authorizer, secret string, logger *slog.Logger) *Server {
	return &Server{
		hub:        hub,
		authorizer: authorizer,
		secret:     secret,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger.With("component", "ws"),
	}
}

// RegisterRoutes attaches the subscribe endpoint.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws", s.Subscribe)
}

// Subscribe handles GET /ws?token=...&topics=orders.<id>&topics=admin.dashboard.
// The connection is accepted with whatever subset of the requested topics the
// caller is allowed to read; an empty subset still yields a live connection.
func (s *Server) Subscribe(ctx echo.Context) error {
	request := ctx.Request()

	identity, err := authn.Parse(s.secret, authn.TokenFromRequest(request))
	if err != nil {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	subscriber := broadcast.Identity{
		UserID:  identity.UserID,
		IsAdmin: identity.IsAdmin(),
	}

	var topics []broadcast.Topic
	for _, raw := range request.URL.Query()["topics"] {
		topic, parseErr := broadcast.ParseTopic(raw)
		if parseErr != nil {
			continue
		}
		if !s.authorizer.CanSubscribe(request.Context(), subscriber, topic) {
			continue
		}
		topics = append(topics, topic)
	}

	conn, err := s.upgrader.Upgrade(ctx.Response(), request, nil)
	if err != nil {
		s.logger.Warn("Websocket upgrade failed", "error", err)
		return nil
	}

	client := broadcast.NewClient(conn, topics)
	s.hub.Register(client)

	go client.WritePump(s.hub)
	go client.ReadPump(s.hub)

	s.logger.Debug("Subscriber connected", "user_id", identity.UserID.String(), "topics", len(topics))

	return nil
}
