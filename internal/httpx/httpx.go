package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"shopdesk/internal/backend"
	"shopdesk/internal/validation"
)

// MaxUploadBytes bounds multipart bodies accepted by the console.
const MaxUploadBytes = 10 << 20

func DecodeJSON(body io.Reader, v interface{}) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}

// ValidationDetails returns the per-field messages carried by err.
func ValidationDetails(err error) (map[string]string, bool) {
	fe, ok := validation.AsFieldErrors(err)
	if !ok {
		return nil, false
	}
	return map[string]string(fe), true
}

// Form is a parsed multipart submission: scalar fields plus an optional
// image file part.
type Form struct {
	Values map[string]string
	Image  backend.Upload

	file multipart.File
}

func (f *Form) Get(name string) string {
	return strings.TrimSpace(f.Values[name])
}

// Close releases the uploaded file, if any.
func (f *Form) Close() error {
	if f.file == nil {
		return nil
	}
	return f.file.Close()
}

// ParseForm reads a multipart body. The file part named imageField is
// optional; its bytes are passed through unmodified.
func ParseForm(w http.ResponseWriter, r *http.Request, imageField string) (*Form, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}

	form := &Form{Values: map[string]string{}}
	for key, vals := range r.MultipartForm.Value {
		if len(vals) > 0 {
			form.Values[key] = vals[0]
		}
	}

	file, header, err := r.FormFile(imageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return form, nil
		}
		return nil, fmt.Errorf("read %s: %w", imageField, err)
	}
	form.file = file
	form.Image = backend.Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	}
	return form, nil
}
