package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
)

// MaxImageSize caps image uploads.
const MaxImageSize = 10 * 1024 * 1024

// File is an upload attached to a multipart form.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// LoadFile reads path into a File, sniffing its content type.
func LoadFile(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("image %q is a directory", path)
	}
	if info.Size() > MaxImageSize {
		return nil, fmt.Errorf("image %q exceeds %d bytes", path, MaxImageSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return &File{
		Name:        filepath.Base(path),
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}

type formField struct {
	key   string
	value string
}

type formFile struct {
	field string
	file  *File
}

// Form is an ordered multipart/form-data payload.
type Form struct {
	fields []formField
	files  []formFile
}

// NewForm returns an empty form.
func NewForm() *Form {
	return &Form{}
}

// Set appends key unconditionally, even when value is empty.
func (f *Form) Set(key, value string) {
	f.fields = append(f.fields, formField{key: key, value: value})
}

// SetIfNotEmpty appends key only when value is non-empty.
func (f *Form) SetIfNotEmpty(key, value string) {
	if value == "" {
		return
	}
	f.Set(key, value)
}

// Attach adds a file part. A nil file is ignored.
func (f *Form) Attach(field string, file *File) {
	if file == nil {
		return
	}
	f.files = append(f.files, formFile{field: field, file: file})
}

// Keys returns field names in insertion order, file fields last.
func (f *Form) Keys() []string {
	keys := make([]string, 0, len(f.fields)+len(f.files))
	for _, field := range f.fields {
		keys = append(keys, field.key)
	}
	for _, file := range f.files {
		keys = append(keys, file.field)
	}
	return keys
}

// Value returns the first value for key.
func (f *Form) Value(key string) (string, bool) {
	for _, field := range f.fields {
		if field.key == key {
			return field.value, true
		}
	}
	return "", false
}

// Preview summarizes the form for dry-run output. Files show as
// "<name> (<n> bytes)" and the password field is masked.
func (f *Form) Preview() map[string]any {
	out := make(map[string]any, len(f.fields)+len(f.files))
	for _, field := range f.fields {
		if field.key == "password" {
			out[field.key] = "********"
			continue
		}
		out[field.key] = field.value
	}
	for _, file := range f.files {
		out[file.field] = fmt.Sprintf("%s (%d bytes)", file.file.Name, len(file.file.Data))
	}
	return out
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func (f *Form) encode() ([]byte, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, field := range f.fields {
		if err := writer.WriteField(field.key, field.value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", field.key, err)
		}
	}

	for _, ff := range f.files {
		contentType := ff.file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(ff.field), quoteEscaper.Replace(ff.file.Name)))
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file %s: %w", ff.file.Name, err)
		}
		if _, err := part.Write(ff.file.Data); err != nil {
			return nil, "", fmt.Errorf("failed to write file content %s: %w", ff.file.Name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return body.Bytes(), writer.FormDataContentType(), nil
}

// jsonBody sends v as application/json.
type jsonBody struct {
	v any
}

func (b jsonBody) encode() ([]byte, string, error) {
	data, err := json.Marshal(b.v)
	if err != nil {
		return nil, "", err
	}
	return data, "application/json", nil
}
