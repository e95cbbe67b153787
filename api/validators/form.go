package validators

import (
	"errors"
	"io"
	"net/http"
	"strings"

	pkgerrors "github.com/only4u/only4u-backend/pkg/errors"
)

// Multipart bodies carry product submissions and signup licenses. The memory
// cap only bounds what stays in RAM; larger parts spill to temp files.
const maxMultipartMemory = 32 << 20

// FormFile is a fully read multipart file part.
type FormFile struct {
	Name string
	Data []byte
}

func ParseMultipart(r *http.Request) error {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body")
	}
	return nil
}

func FormString(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// OptionalFormString returns nil when the field is absent or blank.
func OptionalFormString(r *http.Request, key string) *string {
	value := FormString(r, key)
	if value == "" {
		return nil
	}
	return &value
}

func FormBool(r *http.Request, key string) bool {
	switch strings.ToLower(FormString(r, key)) {
	case "true", "1", "on", "yes":
		return true
	}
	return false
}

// ReadFormFile returns nil when the part is absent.
func ReadFormFile(r *http.Request, key string) (*FormFile, error) {
	file, header, err := r.FormFile(key)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid file upload").
			WithDetails(map[string]any{"field": key})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read file upload").
			WithDetails(map[string]any{"field": key})
	}
	return &FormFile{Name: header.Filename, Data: data}, nil
}

// ReadFormFiles reads every part submitted under the same field name.
func ReadFormFiles(r *http.Request, key string) ([]FormFile, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[key]
	files := make([]FormFile, 0, len(headers))
	for _, header := range headers {
		part, err := header.Open()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid file upload").
				WithDetails(map[string]any{"field": key})
		}
		data, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read file upload").
				WithDetails(map[string]any{"field": key})
		}
		files = append(files, FormFile{Name: header.Filename, Data: data})
	}
	return files, nil
}
