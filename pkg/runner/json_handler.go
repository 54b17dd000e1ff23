package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
)

// JSONHandler implements the IOHandler interface for structured JSON-Lines
// communication. Every frame and system message goes out as one JSON object
// per line, tagged with a type discriminator so hosts can demultiplex.
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder
}

type jsonEvent struct {
	Type    string `json:"type"`
	Frame   *Frame `json:"frame,omitempty"`
	Message string `json:"message,omitempty"`
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) Render(ctx context.Context, frame Frame) error {
	return h.Encoder.Encode(jsonEvent{Type: "frame", Frame: &frame})
}

func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	text, err := h.Reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)

	// Accept either a JSON string ("fling 4") or a raw line (fling 4).
	var val string
	if err := json.Unmarshal([]byte(text), &val); err == nil {
		return val, nil
	}
	return text, nil
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(jsonEvent{Type: "system", Message: msg})
}
