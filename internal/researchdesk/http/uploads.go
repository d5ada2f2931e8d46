package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/service"
	"github.com/aussiebroadwan/researchdesk/pkg/httpx"
)

// multipartMemory is how much of a form is held in memory before parts spill
// to temporary files.
const multipartMemory = 8 << 20

// parseMultipart reads a multipart form of at most limit bytes. Callers must
// defer removeMultipart.
func parseMultipart(w http.ResponseWriter, r *http.Request, limit int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return httpx.ErrBodyTooLarge
		}
		return fmt.Errorf("invalid multipart body: %w", err)
	}
	return nil
}

func removeMultipart(r *http.Request) {
	if r.MultipartForm != nil {
		_ = r.MultipartForm.RemoveAll()
	}
}

// formFile returns the named file part, or nil when the form has none.
func formFile(r *http.Request, field string) (*service.UploadedFile, error) {
	f, hdr, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readPart(f, hdr)
}

func readPart(f multipart.File, hdr *multipart.FileHeader) (*service.UploadedFile, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &service.UploadedFile{
		Name:        hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
