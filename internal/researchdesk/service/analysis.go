package service

import (
	"context"
	"log/slog"
	"mime"
	"strings"
	"unicode/utf8"

	"github.com/aussiebroadwan/researchdesk/pkg/llm"
	"github.com/aussiebroadwan/researchdesk/pkg/pdfx"
	"github.com/aussiebroadwan/researchdesk/pkg/slogx"
)

const (
	// MaxAnalysisChars caps the text sent to the model, in characters.
	MaxAnalysisChars = 25000

	truncationMarker = "\n...[truncated]"
	noAnalysisText   = "No analysis generated."
)

// Sampling settings per check. Analysis gets room for a long report,
// plagiarism is kept short and more deterministic.
var (
	analysisSampling   = llm.SamplingOptions{Temperature: 0.3, MaxTokens: 2048}
	plagiarismSampling = llm.SamplingOptions{Temperature: 0.2, MaxTokens: 800}
)

// UploadedFile is a file part from a multipart request.
type UploadedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// AnalysisInput is raw text, an uploaded PDF, or both. The PDF wins.
type AnalysisInput struct {
	Text string
	File *UploadedFile
}

// AnalysisService runs the LLM-backed document checks. It keeps no state.
type AnalysisService struct {
	LLM llm.Client
}

// Analyze returns a Markdown review of the paper.
func (s *AnalysisService) Analyze(ctx context.Context, in AnalysisInput) (string, error) {
	return s.run(ctx, in, analysisPrompt, analysisSampling, "Failed to analyze paper.")
}

// CheckPlagiarism returns a short originality and AI-content report.
func (s *AnalysisService) CheckPlagiarism(ctx context.Context, in AnalysisInput) (string, error) {
	return s.run(ctx, in, plagiarismPrompt, plagiarismSampling, "Failed to check plagiarism.")
}

func (s *AnalysisService) run(
	ctx context.Context,
	in AnalysisInput,
	template string,
	sampling llm.SamplingOptions,
	failure string,
) (string, error) {
	log := slogx.FromContext(ctx)

	text, err := resolveText(in)
	if err != nil {
		return "", err
	}

	text = truncate(text, MaxAnalysisChars)
	prompt := strings.Replace(template, "{TEXT}", text, 1)

	resp, err := s.LLM.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, &sampling)
	if err != nil {
		log.Error("llm request failed", slog.Any("error", err))
		return "", &ExternalServiceError{Message: failure, Err: err}
	}

	log.Info("llm request completed",
		slog.String("model", resp.Model),
		slog.String("finish_reason", resp.FinishReason),
		slog.Int("input_chars", utf8.RuneCountInString(text)),
	)

	if resp.Content == "" {
		return noAnalysisText, nil
	}
	return resp.Content, nil
}

// resolveText picks the text to analyse: the PDF's text when a file is
// attached, otherwise the submitted text.
func resolveText(in AnalysisInput) (string, error) {
	text := in.Text

	if in.File != nil {
		mediaType, _, err := mime.ParseMediaType(in.File.ContentType)
		if err != nil || mediaType != pdfx.ContentType {
			return "", ErrUnsupportedFile
		}

		text, err = pdfx.ExtractText(in.File.Data)
		if err != nil {
			return "", &ExternalServiceError{Message: "Failed to read PDF file.", Err: err}
		}
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}

// truncate keeps the first limit characters of s and marks the cut.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	n := 0
	for i := range s {
		if n == limit {
			return s[:i] + truncationMarker
		}
		n++
	}
	return s
}
