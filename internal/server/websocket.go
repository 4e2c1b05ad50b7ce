package server

import (
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// handleWebSocket streams the session's events to the client until either
// side closes. Incoming messages are read only to notice the close.
func (s *Server) handleWebSocket(conn *websocket.Conn) {
	sess, ok := conn.Locals(sessionKey).(*Session)
	if !ok {
		conn.Close()
		return
	}
	cl, err := sess.attach()
	if err != nil {
		conn.Close()
		return
	}
	defer sess.detach(cl)
	sess.logger.Debug("websocket connected")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-cl.send:
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game ended"))
				conn.Close()
				<-done
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				sess.logger.Debug("websocket write failed", zap.Error(err))
				conn.Close()
				<-done
				return
			}
		case <-done:
			sess.logger.Debug("websocket disconnected")
			return
		}
	}
}
