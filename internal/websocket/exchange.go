package websocket

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"copilot-replica/internal/models"
	"copilot-replica/internal/services"
	"copilot-replica/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Exchange serves the chat protocol to at most one client at a time.
type Exchange struct {
	session   *session.Session
	workspace *services.WorkspaceService
	script    services.Script

	mu     sync.Mutex
	busy   bool
	active *websocket.Conn
}

func NewExchange(sess *session.Session, workspace *services.WorkspaceService, script services.Script) *Exchange {
	return &Exchange{
		session:   sess,
		workspace: workspace,
		script:    script,
	}
}

func (e *Exchange) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !e.claim() {
		writeBusy(w, r)
		return
	}
	defer e.release()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	e.attach(conn)

	connID := uuid.New()
	log.Printf("WebSocket connected: %s (%s)", connID, r.RemoteAddr)

	if err := e.serve(conn); err != nil {
		log.Printf("WebSocket %s: %v", connID, err)
	}
	conn.Close()

	log.Printf("WebSocket disconnected: %s", connID)
}

// CloseActive drops the attached client, if any. Its loop then exits on the
// next read or write.
func (e *Exchange) CloseActive() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		e.active.Close()
	}
}

// Attached reports whether an upgraded client is being served.
func (e *Exchange) Attached() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active != nil
}

func (e *Exchange) claim() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.busy {
		return false
	}
	e.busy = true
	return true
}

func (e *Exchange) attach(conn *websocket.Conn) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = conn
}

func (e *Exchange) release() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.busy = false
	e.active = nil
}

// serve reads frames until the peer goes away. A clean close returns nil.
func (e *Exchange) serve(conn *websocket.Conn) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if isExpectedClose(err) {
				return nil
			}
			return err
		}

		var frame models.InboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			return e.rejectFrame(conn, &MalformedFrameError{Err: err})
		}

		if err := e.dispatch(conn, frame); err != nil {
			return err
		}
	}
}

// dispatch handles one decoded frame. Only write failures are returned.
func (e *Exchange) dispatch(conn *websocket.Conn, frame models.InboundFrame) error {
	switch frame.Type {
	case models.FrameMessage:
		if _, err := e.session.Append(models.RoleUser, frame.Content); err != nil {
			log.Printf("failed to record message: %v", err)
		}
		for _, file := range frame.Media {
			if _, err := e.workspace.SaveMedia(file); err != nil {
				if err := writeError(conn, err); err != nil {
					return err
				}
			}
		}
		return e.stream(conn)

	case models.FrameFileUpload:
		if _, err := e.workspace.SaveUpload(frame.Name, frame.Content); err != nil {
			return writeError(conn, err)
		}
		return nil

	case models.FrameThumbnailRequest:
		return conn.WriteJSON(models.ThumbnailFrame{
			Type:     models.FrameThumbnailResponse,
			Data:     services.Thumbnail(frame.FilePath),
			FilePath: frame.FilePath,
		})

	default:
		log.Printf("ignoring frame with type %q", frame.Type)
		return nil
	}
}

// stream sends the scripted response. It runs to completion unless a write
// fails.
func (e *Exchange) stream(conn *websocket.Conn) error {
	time.Sleep(e.script.StreamDelay)

	for _, chunk := range e.script.Chunks() {
		if err := conn.WriteJSON(models.ResponseFrame{Type: models.FrameResponseChunk, Content: chunk}); err != nil {
			return err
		}
		time.Sleep(e.script.ChunkDelay)
	}

	return conn.WriteJSON(models.ResponseFrame{Type: models.FrameResponseEnd, Content: ""})
}

// rejectFrame reports a malformed frame, then closes with 1003.
func (e *Exchange) rejectFrame(conn *websocket.Conn, cause *MalformedFrameError) error {
	if err := writeError(conn, cause); err != nil {
		return err
	}
	msg := websocket.FormatCloseMessage(websocket.CloseUnsupportedData, cause.Error())
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return cause
}

// isExpectedClose reports whether the peer ended the session with a close
// frame of any status.
func isExpectedClose(err error) bool {
	var closeErr *websocket.CloseError
	return errors.As(err, &closeErr)
}
