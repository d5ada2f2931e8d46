package http_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/service"
	"github.com/aussiebroadwan/researchdesk/pkg/pdfx/pdfxtest"
	"github.com/aussiebroadwan/researchdesk/pkg/researchsdk"
	"github.com/stretchr/testify/require"
)

func TestPapers_Disabled(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register("owner@example.com")
	p := env.createProject(owner.Token, sampleProject("No Storage"))

	pdf := &filePart{name: "paper.pdf", contentType: "application/pdf", data: pdfxtest.Build("hello")}
	rec := env.doMultipart(http.MethodPost, "/api/projects/"+p.ID+"/paper", owner.Token, nil, pdf)
	requireError(t, rec, http.StatusServiceUnavailable, researchsdk.ErrorCodeUnavailable, "Paper storage is not configured")

	rec = env.do(http.MethodGet, "/api/projects/"+p.ID+"/paper", owner.Token, nil)
	requireError(t, rec, http.StatusServiceUnavailable, researchsdk.ErrorCodeUnavailable, "Paper storage is not configured")
}

func TestPapers_UploadAndDownload(t *testing.T) {
	env := newTestEnv(t, withPapers())
	owner := env.register("owner@example.com")
	guide := env.register("guide@example.com")
	p := env.createProject(owner.Token, sampleProject("With Paper"))
	path := "/api/projects/" + p.ID + "/paper"

	pdf := &filePart{name: "paper.pdf", contentType: "application/pdf", data: pdfxtest.Build("hello")}

	t.Run("download before upload", func(t *testing.T) {
		rec := env.do(http.MethodGet, path, owner.Token, nil)
		requireError(t, rec, http.StatusNotFound, researchsdk.ErrorCodeNotFound, "Paper not found")
	})

	t.Run("missing file part", func(t *testing.T) {
		rec := env.doMultipart(http.MethodPost, path, owner.Token, map[string]string{"text": "x"}, nil)
		body := requireError(t, rec, http.StatusBadRequest, researchsdk.ErrorCodeValidation, "Validation failed")
		require.Equal(t, "file", body.Errors[0].Field)
	})

	t.Run("not a pdf", func(t *testing.T) {
		png := &filePart{name: "x.png", contentType: "image/png", data: []byte("\x89PNG")}
		rec := env.doMultipart(http.MethodPost, path, owner.Token, nil, png)
		requireError(t, rec, http.StatusBadRequest, researchsdk.ErrorCodeUnsupportedFile, "Only PDF files are supported for now.")
	})

	t.Run("non-owner", func(t *testing.T) {
		rec := env.doMultipart(http.MethodPost, path, guide.Token, nil, pdf)
		requireError(t, rec, http.StatusUnauthorized, researchsdk.ErrorCodeForbidden, "Not authorized to update this project")
	})

	t.Run("too large", func(t *testing.T) {
		big := &filePart{name: "big.pdf", contentType: "application/pdf", data: make([]byte, 2<<20)}
		rec := env.doMultipart(http.MethodPost, path, owner.Token, nil, big)
		require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code, rec.Body.String())
	})

	t.Run("upload", func(t *testing.T) {
		rec := env.doMultipart(http.MethodPost, path, owner.Token, nil, pdf)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		got := decode[researchsdk.Project](t, rec)
		require.Equal(t, path, got.PaperURL)

		data, contentType, err := env.objects.Get(service.PaperKey(p.ID))
		require.NoError(t, err)
		require.Equal(t, pdf.data, data)
		require.Equal(t, "application/pdf", contentType)
	})

	t.Run("collaborator downloads", func(t *testing.T) {
		rec := env.do(http.MethodGet, path, guide.Token, nil)
		require.Equal(t, http.StatusTemporaryRedirect, rec.Code, rec.Body.String())
		require.True(t, strings.HasPrefix(rec.Header().Get("Location"), "https://papers.test/"))
	})

	t.Run("delete removes paper", func(t *testing.T) {
		rec := env.do(http.MethodDelete, "/api/projects/"+p.ID, owner.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		_, _, err := env.objects.Get(service.PaperKey(p.ID))
		require.Error(t, err)
	})
}
