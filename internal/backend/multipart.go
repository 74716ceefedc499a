package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const defaultImageType = "image/jpeg"

// Upload is an image picked by the operator. The bytes are forwarded as-is.
type Upload struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

func (u Upload) Empty() bool {
	return u.Body == nil
}

type formField struct {
	name  string
	value string
}

func buildMultipart(fields []formField, upload Upload, defaultName string) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	if !upload.Empty() {
		data, err := io.ReadAll(upload.Body)
		if err != nil {
			return nil, "", fmt.Errorf("read upload: %w", err)
		}
		name := strings.TrimSpace(upload.FileName)
		if name == "" {
			name = defaultName
		}
		contentType := strings.TrimSpace(upload.ContentType)
		if contentType == "" {
			contentType = sniffImageType(data)
		}

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, escapeQuotes(name)))
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := part.Write(data); err != nil {
			return nil, "", fmt.Errorf("write image part: %w", err)
		}
	}

	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

func sniffImageType(data []byte) string {
	detected := mimetype.Detect(data)
	if strings.HasPrefix(detected.String(), "image/") {
		return detected.String()
	}
	return defaultImageType
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func (c *Client) doMultipart(ctx context.Context, method, path string, fields []formField, upload Upload, defaultName string, out interface{}) error {
	body, contentType, err := buildMultipart(fields, upload, defaultName)
	if err != nil {
		return fmt.Errorf("backend %s %s: %w", method, path, err)
	}
	return c.do(ctx, method, path, body, contentType, out)
}
