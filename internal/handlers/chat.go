package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"copilot-replica/internal/models"
	"copilot-replica/internal/services"
)

type chatSession interface {
	Messages() []models.ChatMessage
	Typing() string
	Connected() bool
	Submit(text string) (models.ChatMessage, bool, error)
}

type ChatHandler struct {
	session chatSession
}

func NewChatHandler(session chatSession) *ChatHandler {
	return &ChatHandler{session: session}
}

// List returns the chat log with the current indicator state.
func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	msgs := h.session.Messages()
	if msgs == nil {
		msgs = []models.ChatMessage{}
	}
	writeJSON(w, http.StatusOK, models.ChatLogResponse{
		Messages:  msgs,
		Typing:    h.session.Typing(),
		Connected: h.session.Connected(),
	})
}

// Submit runs the local send path, the same one the console uses.
func (h *ChatHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Content is required", r))
		return
	}

	msg, _, err := h.session.Submit(req.Content)
	if err != nil {
		log.Printf("submit failed: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, errorResp("SESSION_CLOSED", "Chat session is closed", r))
		return
	}

	writeJSON(w, http.StatusAccepted, msg)
}

func (h *ChatHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	filePath := r.URL.Query().Get("filePath")
	if filePath == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "filePath is required", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":     services.Thumbnail(filePath),
		"filePath": filePath,
	})
}
