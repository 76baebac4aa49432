// Package extract converts raw PDF bytes into plain text plus structural
// metadata using github.com/ledongthuc/pdf.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/ledongthuc/pdf"
)

// Result is the output of a successful extraction.
type Result struct {
	Text      string
	PageCount int
	Metadata  map[string]string
}

// PDF is the ledongthuc/pdf backed extractor.
type PDF struct{}

// Extract parses an in-memory PDF payload. Malformed input yields an error,
// never a partial result; the parser panics on some corrupt files, so those
// are recovered into errors here.
func (PDF) Extract(ctx context.Context, data []byte) (res Result, err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result{}, ctxErr
	}
	if len(data) == 0 {
		return Result{}, errors.New("empty pdf data")
	}

	defer func() {
		if rec := recover(); rec != nil {
			res = Result{}
			err = fmt.Errorf("parse pdf: %v", rec)
		}
	}()

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return Result{}, fmt.Errorf("parse pdf: %w", err)
	}

	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return Result{}, fmt.Errorf("extract text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return Result{}, fmt.Errorf("extract text: %w", err)
	}

	return Result{
		Text:      buf.String(),
		PageCount: pdfReader.NumPage(),
		Metadata:  infoMetadata(pdfReader.Trailer().Key("Info")),
	}, nil
}

// infoMetadata flattens the document Info dictionary into strings. Values of
// container kinds are skipped.
func infoMetadata(info pdf.Value) map[string]string {
	meta := map[string]string{}
	if info.Kind() != pdf.Dict {
		return meta
	}
	for _, key := range info.Keys() {
		v := info.Key(key)
		switch v.Kind() {
		case pdf.String:
			meta[key] = v.Text()
		case pdf.Name:
			meta[key] = v.Name()
		case pdf.Integer:
			meta[key] = strconv.FormatInt(v.Int64(), 10)
		case pdf.Real:
			meta[key] = strconv.FormatFloat(v.Float64(), 'f', -1, 64)
		case pdf.Bool:
			meta[key] = strconv.FormatBool(v.Bool())
		}
	}
	return meta
}
