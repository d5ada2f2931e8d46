package researchsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
)

// api prefixes path with the API mount point.
func (c *Client) api(path string) string {
	return c.APIPrefix + path
}

// url builds a complete URL by appending the path to the base URL.
func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// doRequest sends a request, with a bearer token when token is set.
func (c *Client) doRequest(
	ctx context.Context,
	method, path, token string,
	body io.Reader,
	contentType string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// doJSON sends in as JSON (when non-nil) and decodes the response into out.
func (c *Client) doJSON(
	ctx context.Context,
	method, path, token string,
	in, out any,
	expectedStatus int,
) error {
	var (
		body        io.Reader
		contentType string
	)
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	resp, err := c.doRequest(ctx, method, path, token, body, contentType)
	if err != nil {
		return err
	}
	return decodeJSON(resp, out, expectedStatus)
}

// multipartFile is one file part of a multipart upload.
type multipartFile struct {
	field       string
	filename    string
	contentType string
	data        []byte
}

// doMultipart sends fields and an optional file as multipart/form-data.
func (c *Client) doMultipart(
	ctx context.Context,
	path, token string,
	fields map[string]string,
	file *multipartFile,
	out any,
	expectedStatus int,
) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("failed to write field %s: %w", k, err)
		}
	}

	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.field, file.filename))
		h.Set("Content-Type", file.contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			return fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := part.Write(file.data); err != nil {
			return fmt.Errorf("failed to write file part: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to finish multipart body: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, path, token, &buf, mw.FormDataContentType())
	if err != nil {
		return err
	}
	return decodeJSON(resp, out, expectedStatus)
}

// decodeJSON decodes a JSON response into target, or returns an *APIError
// when the status is not the expected one.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
