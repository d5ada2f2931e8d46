package researchsdk

import (
	"context"
	"net/http"
)

// Analyze asks for a Markdown review of text.
func (s *Session) Analyze(ctx context.Context, text string) (string, error) {
	var out AnalysisResponse
	if err := s.do(ctx, http.MethodPost, "/analysis", AnalysisRequest{Text: text}, &out, http.StatusOK); err != nil {
		return "", err
	}
	return out.Analysis, nil
}

// AnalyzePDF uploads a PDF and asks for a review of its text.
func (s *Session) AnalyzePDF(ctx context.Context, filename string, pdf []byte) (string, error) {
	var out AnalysisResponse
	if err := s.uploadForAnalysis(ctx, "/analysis", filename, pdf, &out); err != nil {
		return "", err
	}
	return out.Analysis, nil
}

// CheckPlagiarism asks for an originality and AI-content report on text.
func (s *Session) CheckPlagiarism(ctx context.Context, text string) (string, error) {
	var out PlagiarismResponse
	if err := s.do(ctx, http.MethodPost, "/analysis/plagiarism", AnalysisRequest{Text: text}, &out, http.StatusOK); err != nil {
		return "", err
	}
	return out.Result, nil
}

// CheckPlagiarismPDF is CheckPlagiarism on an uploaded PDF.
func (s *Session) CheckPlagiarismPDF(ctx context.Context, filename string, pdf []byte) (string, error) {
	var out PlagiarismResponse
	if err := s.uploadForAnalysis(ctx, "/analysis/plagiarism", filename, pdf, &out); err != nil {
		return "", err
	}
	return out.Result, nil
}

func (s *Session) uploadForAnalysis(ctx context.Context, path, filename string, pdf []byte, out any) error {
	return s.client.doMultipart(ctx, s.client.api(path), s.Token(), nil,
		&multipartFile{field: "file", filename: filename, contentType: "application/pdf", data: pdf},
		out, http.StatusOK)
}
