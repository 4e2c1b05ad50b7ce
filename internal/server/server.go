// Package server exposes game sessions over HTTP and pushes their events
// to WebSocket clients.
package server

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// maxBodySize bounds request bodies; saved games and positions are small.
const maxBodySize = 1 << 20

// Server serves game sessions.
type Server struct {
	app     *fiber.App
	store   *Store
	cfg     *config.ServerConfig
	players *config.PlayerConfig
	logger  *zap.Logger
}

// New builds a server from cfg. A nil logger disables logging.
func New(cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		store:   NewStore(cfg.Server.MaxSessions, logger),
		cfg:     cfg.Server,
		players: cfg.Players,
		logger:  logger,
	}
	s.app = fiber.New(fiber.Config{
		AppName:               "chess-server",
		BodyLimit:             maxBodySize,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Use(recover.New())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: s.cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	s.app.Use(s.logRequests)

	s.app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	s.app.Get("/ws/games/:id", s.withSession, websocket.New(s.handleWebSocket, websocket.Config{
		ReadBufferSize:  s.cfg.ReadBufferSize,
		WriteBufferSize: s.cfg.WriteBufferSize,
	}))

	api := s.app.Group("/api")
	api.Post("/games", s.createGame)

	games := api.Group("/games/:id", s.withSession)
	games.Get("/", s.getGame)
	games.Delete("/", s.deleteGame)
	games.Get("/targets/:square", s.getTargets)
	games.Post("/moves", s.postMove)
	games.Post("/promotion", s.postPromotion)
	games.Post("/undo", s.postUndo)
	games.Post("/redo", s.postRedo)
	games.Put("/players", s.putPlayers)
	games.Post("/import", s.postImport)
	games.Get("/export", s.getExport)
	games.Get("/save", s.getSave)
	games.Post("/open", s.postOpen)
}

// App returns the underlying fiber application, for tests and embedding.
func (s *Server) App() *fiber.App { return s.app }

// Store returns the session store.
func (s *Server) Store() *Store { return s.store }

// Listen serves on the configured address until Shutdown.
func (s *Server) Listen() error {
	s.logger.Info("listening", zap.String("addr", s.cfg.Addr))
	return s.app.Listen(s.cfg.Addr)
}

// Shutdown disconnects WebSocket clients and stops the server, waiting at
// most the configured timeout for requests in flight.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()
	}
	s.store.CloseAll()
	return s.app.ShutdownWithContext(ctx)
}

// logRequests records every request with its status and duration.
func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	status := c.Response().StatusCode()
	if err != nil {
		var fe *fiber.Error
		if stderrors.As(err, &fe) {
			status = fe.Code
		} else {
			status = statusFor(err)
		}
	}
	s.logger.Debug("request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", status),
		zap.Duration("duration", time.Since(start)),
	)
	return err
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case stderrors.Is(err, errors.ErrUnknownSession):
		return fiber.StatusNotFound
	case stderrors.Is(err, errors.ErrSessionLimit):
		return fiber.StatusServiceUnavailable
	case stderrors.Is(err, errors.ErrNoPromotionPending):
		return fiber.StatusConflict
	case stderrors.Is(err, errors.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	case stderrors.Is(err, errors.ErrInvalidCoordinate),
		stderrors.Is(err, errors.ErrInvalidPosition),
		stderrors.Is(err, errors.ErrInvalidFEN),
		stderrors.Is(err, errors.ErrInvalidPromotion),
		stderrors.Is(err, errors.ErrCorruptSave):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// handleError renders every error as {"error": message}.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	var fe *fiber.Error
	if stderrors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError && code != fiber.StatusServiceUnavailable {
		s.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
