package server

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/manager"
)

const sessionKey = "session"

type playersRequest struct {
	White string `json:"white"`
	Black string `json:"black"`
}

type moveRequest struct {
	From chess.Square `json:"from"`
	To   chess.Square `json:"to"`
}

type promotionRequest struct {
	Kind chess.PieceKind `json:"kind"`
}

type gameResponse struct {
	ID   string       `json:"id"`
	View manager.View `json:"view"`
}

type moveResponse struct {
	Result string       `json:"result"`
	View   manager.View `json:"view"`
}

type historyResponse struct {
	Changed bool         `json:"changed"`
	View    manager.View `json:"view"`
}

// withSession resolves the :id parameter to a session.
func (s *Server) withSession(c *fiber.Ctx) error {
	sess, err := s.store.Get(c.Params("id"))
	if err != nil {
		return err
	}
	c.Locals(sessionKey, sess)
	return c.Next()
}

func session(c *fiber.Ctx) *Session {
	return c.Locals(sessionKey).(*Session)
}

// parseBody decodes a JSON body; an empty body leaves v untouched.
func parseBody(c *fiber.Ctx, v interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

func (s *Server) createGame(c *fiber.Ctx) error {
	var req playersRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	sess, err := s.store.Create(s.name(req.White, chess.White), s.name(req.Black, chess.Black))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(gameResponse{ID: sess.ID, View: sess.View()})
}

// name falls back to the configured default for a blank name.
func (s *Server) name(name string, side chess.Side) string {
	if name != "" {
		return name
	}
	if side == chess.White {
		return s.players.White
	}
	return s.players.Black
}

func (s *Server) getGame(c *fiber.Ctx) error {
	sess := session(c)
	return c.JSON(gameResponse{ID: sess.ID, View: sess.View()})
}

func (s *Server) deleteGame(c *fiber.Ctx) error {
	if err := s.store.Delete(session(c).ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// getTargets lists the squares the piece on :square may move to. By default
// only moves that keep the king safe are listed; ?raw=true lists the
// piece's own reach.
func (s *Server) getTargets(c *fiber.Ctx) error {
	sq, err := chess.ParseSquare(c.Params("square"))
	if err != nil {
		return err
	}
	raw := c.QueryBool("raw")
	targets := make(map[string]string)
	err = session(c).Do(func(m *manager.Manager) error {
		grid := m.SafeTargets(sq)
		if raw {
			grid = m.LegalTargets(sq)
		}
		for _, to := range grid.Targets() {
			targets[to.String()] = grid.At(to).String()
		}
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"square": sq.String(), "targets": targets})
}

func (s *Server) postMove(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if !req.From.Valid() || !req.To.Valid() {
		return fmt.Errorf("move needs from and to: %w", errors.ErrInvalidCoordinate)
	}
	var resp moveResponse
	err := session(c).Do(func(m *manager.Manager) error {
		resp.Result = m.MovePiece(req.From, req.To).String()
		resp.View = m.View()
		return nil
	})
	if err != nil {
		return err
	}
	if resp.Result == chess.None.String() {
		return c.Status(statusFor(errors.ErrIllegalMove)).JSON(resp)
	}
	return c.JSON(resp)
}

func (s *Server) postPromotion(c *fiber.Ctx) error {
	var req promotionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	var view manager.View
	err := session(c).Do(func(m *manager.Manager) error {
		if err := m.Promote(req.Kind); err != nil {
			return err
		}
		view = m.View()
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(view)
}

func (s *Server) postUndo(c *fiber.Ctx) error {
	return s.step(c, (*manager.Manager).Undo)
}

func (s *Server) postRedo(c *fiber.Ctx) error {
	return s.step(c, (*manager.Manager).Redo)
}

func (s *Server) step(c *fiber.Ctx, fn func(*manager.Manager) bool) error {
	var resp historyResponse
	err := session(c).Do(func(m *manager.Manager) error {
		resp.Changed = fn(m)
		resp.View = m.View()
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (s *Server) putPlayers(c *fiber.Ctx) error {
	var req playersRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	var view manager.View
	err := session(c).Do(func(m *manager.Manager) error {
		m.SetPlayers(s.name(req.White, chess.White), s.name(req.Black, chess.Black))
		view = m.View()
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// postImport replaces the game with the position text in the body, or a FEN
// string with ?format=fen. Player names come from the white and black query
// parameters.
func (s *Server) postImport(c *fiber.Ctx) error {
	body := append([]byte(nil), c.Body()...)
	white := s.name(c.Query("white"), chess.White)
	black := s.name(c.Query("black"), chess.Black)
	fen := c.Query("format") == "fen"

	var view manager.View
	err := session(c).Do(func(m *manager.Manager) error {
		var err error
		if fen {
			err = m.ImportFEN(string(body), white, black)
		} else {
			err = m.ImportPosition(bytes.NewReader(body), white, black)
		}
		if err != nil {
			return err
		}
		view = m.View()
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(view)
}

func (s *Server) getExport(c *fiber.Ctx) error {
	var buf bytes.Buffer
	err := session(c).Do(func(m *manager.Manager) error {
		return m.ExportPosition(&buf)
	})
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Send(buf.Bytes())
}

func (s *Server) getSave(c *fiber.Ctx) error {
	var buf bytes.Buffer
	err := session(c).Do(func(m *manager.Manager) error {
		return m.Save(&buf)
	})
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="game.sav"`)
	return c.Send(buf.Bytes())
}

func (s *Server) postOpen(c *fiber.Ctx) error {
	body := append([]byte(nil), c.Body()...)
	var view manager.View
	err := session(c).Do(func(m *manager.Manager) error {
		if err := m.Open(bytes.NewReader(body)); err != nil {
			return err
		}
		view = m.View()
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(view)
}
