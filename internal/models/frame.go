package models

// Inbound frame types
const (
	FrameMessage          = "message"
	FrameFileUpload       = "file_upload"
	FrameThumbnailRequest = "thumbnail_request"
)

// Outbound frame types
const (
	FrameResponseChunk     = "response_chunk"
	FrameResponseEnd       = "response_end"
	FrameThumbnailResponse = "thumbnail_response"
	FrameError             = "error"
)

// UploadedFile is a file payload carried by a frame. It is written once and
// not retained.
type UploadedFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Type    string `json:"type"` // media type, e.g. "image/png"
}

// InboundFrame is the union of every field a client frame may carry. Only the
// fields relevant to Type are read.
type InboundFrame struct {
	Type     string         `json:"type"`
	Content  string         `json:"content"`
	Media    []UploadedFile `json:"media,omitempty"`
	Name     string         `json:"name"`
	FilePath string         `json:"filePath"`
}

type ResponseFrame struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type Thumbnail struct {
	ThumbnailURL string `json:"thumbnail_url"`
	Size         string `json:"size"`
}

type ThumbnailFrame struct {
	Type     string    `json:"type"`
	Data     Thumbnail `json:"data"`
	FilePath string    `json:"filePath"`
}

type ErrorFrame struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Content string `json:"content"`
}

// ChatEvent is published to the event bus on every log append or connection
// state change.
type ChatEvent struct {
	Type      string       `json:"type"` // "message_appended" | "connection_state"
	Message   *ChatMessage `json:"message,omitempty"`
	Connected *bool        `json:"connected,omitempty"`
}
