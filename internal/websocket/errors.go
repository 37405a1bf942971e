package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"copilot-replica/internal/models"
	"copilot-replica/internal/services"
)

const (
	CodeMalformedFrame = "MALFORMED_FRAME"
	CodeConnectionBusy = "CONNECTION_BUSY"
)

type MalformedFrameError struct{ Err error }

func (e *MalformedFrameError) Error() string {
	return fmt.Sprintf("malformed frame: %v", e.Err)
}

func (e *MalformedFrameError) Unwrap() error { return e.Err }

// errorCode maps an error to the code carried by an error frame.
func errorCode(err error) string {
	var nameErr *services.InvalidNameError
	var persistErr *services.PersistError
	var frameErr *MalformedFrameError

	switch {
	case errors.As(err, &nameErr):
		return services.CodeInvalidName
	case errors.As(err, &persistErr):
		return services.CodePersistFailed
	case errors.As(err, &frameErr):
		return CodeMalformedFrame
	default:
		return "INTERNAL_ERROR"
	}
}

func writeError(conn *websocket.Conn, err error) error {
	code := errorCode(err)
	if code == services.CodePersistFailed {
		log.Printf("upload failed: %v", err)
	}
	return conn.WriteJSON(models.ErrorFrame{
		Type:    models.FrameError,
		Code:    code,
		Content: err.Error(),
	})
}

func writeBusy(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusConflict)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Error: models.APIError{
			Code:      CodeConnectionBusy,
			Message:   "Another client is already connected",
			RequestID: r.Header.Get("X-Request-ID"),
		},
	})
}
