package documents

import (
	"encoding/json"
	"fmt"
	"strings"

	"pdfdocs-backend/internal/extract"
)

// Format is the persisted representation of extracted content. It is fixed
// at creation and never changed thereafter.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat maps a request value onto the closed format set. Absence
// defaults to text; unrecognized values are rejected rather than silently
// treated as text.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(FormatText):
		return FormatText, nil
	case string(FormatJSON):
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unrecognized format %q", ErrInvalidInput, raw)
	}
}

type jsonContent struct {
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata"`
	NumPages int               `json:"numpages"`
}

// renderContent chooses the persisted content string for an extraction
// result. The json representation serializes text, metadata and page count
// with a fixed key order; anything else is the extractor's text verbatim.
func renderContent(res extract.Result, format Format) string {
	if format != FormatJSON {
		return res.Text
	}
	payload := jsonContent{
		Text:     res.Text,
		Metadata: res.Metadata,
		NumPages: res.PageCount,
	}
	if payload.Metadata == nil {
		payload.Metadata = map[string]string{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		// Marshal of plain strings and ints cannot fail; keep the raw text
		// rather than surfacing an error from a pure selector.
		return res.Text
	}
	return string(data)
}
