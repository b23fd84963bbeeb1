// Package attach reads architecture artifacts from disk into attachment
// records ready for payload construction.
package attach

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Record is a single attachment. Content is a base64 data URL for images and
// PDFs, the decoded JSON value for JSON files, and the raw text otherwise.
// Records are immutable once created.
type Record struct {
	Name      string
	MimeType  string
	SizeBytes int64
	Content   any
}

// ReadError reports a file that could not be read. Callers exclude the file
// from the batch and continue.
type ReadError struct {
	Name string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading attachment %s: %v", e.Name, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Read loads the file at path into a Record. JSON parse failures fall back
// silently to the raw text; only I/O failures return an error.
func Read(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, &ReadError{Name: filepath.Base(path), Err: err}
	}

	mt := detectMime(path, data)
	rec := Record{
		Name:      filepath.Base(path),
		MimeType:  mt,
		SizeBytes: int64(len(data)),
	}

	switch {
	case isBinaryPreview(mt):
		rec.Content = dataURL(mt, data)
	case strings.Contains(mt, "json"):
		var parsed any
		if err := json.Unmarshal(data, &parsed); err == nil {
			rec.Content = parsed
		} else {
			rec.Content = string(data)
		}
	default:
		rec.Content = string(data)
	}

	return rec, nil
}

// ReadAll reads a batch of files. Unreadable files are returned as errors
// and omitted from the records; the rest of the batch still loads.
func ReadAll(paths []string) ([]Record, []error) {
	var records []Record
	var errs []error
	for _, path := range paths {
		rec, err := Read(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		records = append(records, rec)
	}
	return records, errs
}

// Text returns the attachment content as a string. Decoded JSON content is
// re-marshalled.
func (r Record) Text() string {
	switch c := r.Content.(type) {
	case string:
		return c
	default:
		data, err := json.Marshal(c)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

// isBinaryPreview reports whether the MIME type is read as a data URL
// rather than as text.
func isBinaryPreview(mt string) bool {
	return strings.HasPrefix(mt, "image/") || mt == "application/pdf"
}

// detectMime resolves the MIME type from the file extension, falling back to
// content sniffing for unregistered extensions. Any charset parameter added
// by the mime package is stripped.
func detectMime(path string, data []byte) string {
	mt := mime.TypeByExtension(filepath.Ext(path))
	if mt == "" {
		mt = mimetype.Detect(data).String()
	}
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return mt
}

func dataURL(mt string, data []byte) string {
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(data)
}
