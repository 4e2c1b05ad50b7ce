package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/manager"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.NewConfigBuilder().WithMaxSessions(2).Build()
	return New(cfg, nil)
}

// do sends a request and decodes a JSON response into out when out is not nil.
func do(t *testing.T, s *Server, method, path, contentType string, body []byte, out interface{}) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	if out != nil {
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode response: %v", method, path, err)
		}
	}
	return resp
}

func doJSON(t *testing.T, s *Server, method, path, body string, out interface{}) *http.Response {
	t.Helper()
	return do(t, s, method, path, fiber.MIMEApplicationJSON, []byte(body), out)
}

func createGame(t *testing.T, s *Server, body string) gameResponse {
	t.Helper()
	var game gameResponse
	resp := doJSON(t, s, http.MethodPost, "/api/games", body, &game)
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusCreated)
	return game
}

func TestCreateAndGetGame(t *testing.T) {
	s := newTestServer(t)
	game := createGame(t, s, `{"white":"Alice"}`)

	testutil.AssertTrue(t, game.ID != "")
	testutil.AssertEqual(t, game.View.White, "Alice")
	testutil.AssertEqual(t, game.View.Black, "Player 2")
	testutil.AssertEqual(t, len(game.View.Pieces), 32)

	var got gameResponse
	resp := doJSON(t, s, http.MethodGet, "/api/games/"+game.ID, "", &got)
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusOK)
	testutil.AssertEqual(t, got.View.FEN, game.View.FEN)
}

func TestCreateGame_Defaults(t *testing.T) {
	s := newTestServer(t)
	game := createGame(t, s, "")
	testutil.AssertEqual(t, game.View.White, "Player 1")
}

func TestSessionLimit(t *testing.T) {
	s := newTestServer(t)
	createGame(t, s, "")
	createGame(t, s, "")

	var body map[string]string
	resp := doJSON(t, s, http.MethodPost, "/api/games", "", &body)
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusServiceUnavailable)
	testutil.AssertContains(t, body["error"], "limit")
}

func TestUnknownGame(t *testing.T) {
	s := newTestServer(t)
	var body map[string]string
	resp := doJSON(t, s, http.MethodGet, "/api/games/nope", "", &body)
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusNotFound)
	testutil.AssertContains(t, body["error"], "unknown game session")
}

func TestMoves(t *testing.T) {
	s := newTestServer(t)
	id := createGame(t, s, "").ID
	path := "/api/games/" + id + "/moves"

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantResult string
	}{
		{"legal", `{"from":"E2","to":"E4"}`, fiber.StatusOK, "move"},
		{"wrong side", `{"from":"E4","to":"E5"}`, fiber.StatusUnprocessableEntity, "none"},
		{"black reply", `{"from":"d7","to":"d5"}`, fiber.StatusOK, "move"},
		{"capture", `{"from":"E4","to":"D5"}`, fiber.StatusOK, "take"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp moveResponse
			r := doJSON(t, s, http.MethodPost, path, tt.body, &resp)
			testutil.AssertEqual(t, r.StatusCode, tt.wantStatus)
			testutil.AssertEqual(t, resp.Result, tt.wantResult)
		})
	}

	var view gameResponse
	doJSON(t, s, http.MethodGet, "/api/games/"+id, "", &view)
	testutil.AssertEqual(t, view.View.WhiteScore, "p")
}

func TestMoves_BadRequest(t *testing.T) {
	s := newTestServer(t)
	path := "/api/games/" + createGame(t, s, "").ID + "/moves"

	for _, body := range []string{`{"from":"E9","to":"E4"}`, `{"from":"E2"}`, `not json`} {
		resp := doJSON(t, s, http.MethodPost, path, body, nil)
		testutil.AssertEqual(t, resp.StatusCode, fiber.StatusBadRequest, body)
	}
}

func TestTargets(t *testing.T) {
	s := newTestServer(t)
	id := createGame(t, s, "").ID

	var got struct {
		Square  string            `json:"square"`
		Targets map[string]string `json:"targets"`
	}
	doJSON(t, s, http.MethodGet, "/api/games/"+id+"/targets/g1", "", &got)
	testutil.AssertEqual(t, got.Square, "G1")
	testutil.AssertEqual(t, got.Targets, map[string]string{"F3": "move", "H3": "move"})

	// Black pieces have no safe targets on White's turn, but raw reach is listed.
	got.Targets = nil
	doJSON(t, s, http.MethodGet, "/api/games/"+id+"/targets/G8", "", &got)
	testutil.AssertEqual(t, len(got.Targets), 0)
	got.Targets = nil
	doJSON(t, s, http.MethodGet, "/api/games/"+id+"/targets/G8?raw=true", "", &got)
	testutil.AssertEqual(t, got.Targets, map[string]string{"F6": "move", "H6": "move"})

	resp := doJSON(t, s, http.MethodGet, "/api/games/"+id+"/targets/Z1", "", nil)
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusBadRequest)
}

func TestPromotionAndHistory(t *testing.T) {
	s := newTestServer(t)
	id := createGame(t, s, "").ID
	base := "/api/games/" + id

	resp := do(t, s, http.MethodPost, base+"/import?white=Ann", fiber.MIMETextPlain, []byte("WHITE,PA7,KE1,kH7"), nil)
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusOK)

	var view manager.View
	resp = doJSON(t, s, http.MethodPost, base+"/promotion", `{"kind":"Q"}`, &view)
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusConflict)

	var mv moveResponse
	doJSON(t, s, http.MethodPost, base+"/moves", `{"from":"A7","to":"A8"}`, &mv)
	testutil.AssertEqual(t, mv.Result, "promote")
	testutil.AssertTrue(t, mv.View.PromotionPending)

	resp = doJSON(t, s, http.MethodPost, base+"/promotion", `{"kind":"X"}`, nil)
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusBadRequest)

	view = manager.View{}
	resp = doJSON(t, s, http.MethodPost, base+"/promotion", `{"kind":"knight"}`, &view)
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusOK)
	testutil.AssertEqual(t, view.Position, "BLACK,KE1,kH7,NA8")
	testutil.AssertEqual(t, view.White, "Ann")
	testutil.AssertTrue(t, view.CanUndo)

	var hist historyResponse
	doJSON(t, s, http.MethodPost, base+"/undo", "", &hist)
	testutil.AssertTrue(t, hist.Changed)
	testutil.AssertEqual(t, hist.View.Position, "WHITE,PA7,KE1,kH7")

	doJSON(t, s, http.MethodPost, base+"/redo", "", &hist)
	testutil.AssertTrue(t, hist.Changed)
	testutil.AssertEqual(t, hist.View.Position, "BLACK,KE1,kH7,NA8")

	doJSON(t, s, http.MethodPost, base+"/redo", "", &hist)
	testutil.AssertFalse(t, hist.Changed)
}

func TestImportExport(t *testing.T) {
	s := newTestServer(t)
	base := "/api/games/" + createGame(t, s, "").ID

	resp := do(t, s, http.MethodPost, base+"/import", fiber.MIMETextPlain, []byte("WHITE,KE9"), nil)
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusBadRequest)

	fen := "4k3/8/8/8/8/8/8/4K2R w K - 0 1"
	var view manager.View
	resp = do(t, s, http.MethodPost, base+"/import?format=fen", fiber.MIMETextPlain, []byte(fen), &view)
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusOK)
	testutil.AssertEqual(t, view.FEN, fen)

	resp = do(t, s, http.MethodGet, base+"/export", "", nil, nil)
	text, err := io.ReadAll(resp.Body)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, string(text), "WHITE,kE8,KE1*,RH1*\n")
	testutil.AssertContains(t, resp.Header.Get("Content-Type"), "text/plain")
}

func TestSaveOpen(t *testing.T) {
	s := newTestServer(t)
	first := createGame(t, s, `{"white":"Alice","black":"Bob"}`).ID
	doJSON(t, s, http.MethodPost, "/api/games/"+first+"/moves", `{"from":"E2","to":"E4"}`, nil)

	resp := do(t, s, http.MethodGet, "/api/games/"+first+"/save", "", nil, nil)
	saved, err := io.ReadAll(resp.Body)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, resp.Header.Get("Content-Type"), fiber.MIMEOctetStream)

	second := createGame(t, s, "").ID
	var view manager.View
	resp = do(t, s, http.MethodPost, "/api/games/"+second+"/open", fiber.MIMEOctetStream, saved, &view)
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusOK)
	testutil.AssertEqual(t, view.White, "Alice")
	testutil.AssertEqual(t, view.Active.String(), "Black")

	resp = do(t, s, http.MethodPost, "/api/games/"+second+"/open", fiber.MIMEOctetStream, []byte("junk"), nil)
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusBadRequest)
}

func TestPlayersAndDelete(t *testing.T) {
	s := newTestServer(t)
	base := "/api/games/" + createGame(t, s, "").ID

	var view manager.View
	doJSON(t, s, http.MethodPut, base+"/players", `{"white":"Zed","black":"Yan"}`, &view)
	testutil.AssertEqual(t, view.White, "Zed")
	testutil.AssertEqual(t, view.Black, "Yan")

	resp := doJSON(t, s, http.MethodDelete, base, "", nil)
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusNoContent)
	resp = doJSON(t, s, http.MethodGet, base, "", nil)
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusNotFound)
	testutil.AssertEqual(t, s.Store().Len(), 0)
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	s := newTestServer(t)
	id := createGame(t, s, "").ID
	resp := doJSON(t, s, http.MethodGet, "/ws/games/"+id, "", nil)
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusUpgradeRequired)
}

func TestSessionBroadcast(t *testing.T) {
	store := NewStore(0, nil)
	sess, err := store.Create("", "")
	testutil.AssertNoError(t, err)

	cl, err := sess.attach()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sess.Clients(), 1)

	var first Message
	testutil.AssertNoError(t, json.Unmarshal(<-cl.send, &first))
	testutil.AssertEqual(t, first.Type, "game")
	testutil.AssertEqual(t, first.Side, "WHITE")

	testutil.AssertNoError(t, sess.Do(func(m *manager.Manager) error {
		testutil.AssertResult(t, m.MovePiece(testutil.Sq("E2"), testutil.Sq("E4")), chess.Move)
		return nil
	}))

	var types []string
	for i := 0; i < 2; i++ {
		var msg Message
		testutil.AssertNoError(t, json.Unmarshal(<-cl.send, &msg))
		types = append(types, msg.Type)
		testutil.AssertEqual(t, msg.Side, "BLACK")
		testutil.AssertTrue(t, strings.HasPrefix(msg.View.Position, "BLACK,"))
	}
	testutil.AssertEqual(t, types, []string{"game", "player"})

	testutil.AssertNoError(t, store.Delete(sess.ID))
	_, open := <-cl.send
	testutil.AssertFalse(t, open, "client channel closed on delete")
	_, err = sess.attach()
	testutil.AssertError(t, err)
}

func TestSessionDropsSlowClient(t *testing.T) {
	store := NewStore(0, nil)
	sess, _ := store.Create("", "")
	cl, _ := sess.attach()

	// Never read: the buffer fills and the client is dropped.
	for i := 0; i < clientBuffer; i++ {
		testutil.AssertNoError(t, sess.Do(func(m *manager.Manager) error {
			m.MovePiece(testutil.Sq("E2"), testutil.Sq("E5"))
			return nil
		}))
	}
	testutil.AssertEqual(t, sess.Clients(), 0)
	for range cl.send {
	}
}

func TestSessionDoAfterDelete(t *testing.T) {
	store := NewStore(0, nil)
	sess, err := store.Create("", "")
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, store.Delete(sess.ID))

	called := false
	err = sess.Do(func(m *manager.Manager) error {
		called = true
		return nil
	})
	testutil.AssertErrorIs(t, err, errors.ErrUnknownSession)
	testutil.AssertFalse(t, called, "command ran on a deleted session")
}
