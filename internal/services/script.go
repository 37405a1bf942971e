package services

import "time"

const (
	typingIndicatorText = "Bot is typing..."
	defaultTypingDelay  = 1 * time.Second
	defaultStreamDelay  = 500 * time.Millisecond
	defaultChunkDelay   = 100 * time.Millisecond
)

var responseChunks = []string{
	"Processing your request...",
	"\nAnalyzing code structure...",
	"\nGenerating solution...",
	"\nHere's the complete implementation:\n\n```python\n",
	"def example_function():\n    # Your code here\n    pass\n\n# Additional code\nprint('Hello World')\n```",
}

const localReply = "I can help you with that. What specific task are we working on?"

// Script holds the canned bot behavior. Nothing in it depends on user input.
type Script struct {
	// TypingDelay is how long the local path shows the typing indicator.
	TypingDelay time.Duration
	// StreamDelay is the pause before the first streamed chunk.
	StreamDelay time.Duration
	// ChunkDelay follows every streamed chunk.
	ChunkDelay time.Duration
}

func DefaultScript() Script {
	return Script{
		TypingDelay: defaultTypingDelay,
		StreamDelay: defaultStreamDelay,
		ChunkDelay:  defaultChunkDelay,
	}
}

// Chunks returns a fresh copy of the streamed response.
func (Script) Chunks() []string {
	out := make([]string, len(responseChunks))
	copy(out, responseChunks)
	return out
}

// LocalReply is the answer appended after the typing delay.
func (Script) LocalReply() string {
	return localReply
}

func (Script) TypingIndicator() string {
	return typingIndicatorText
}
