package server

import (
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mohsinm-dev/smart-invoice-validator/internal/common"
	"github.com/mohsinm-dev/smart-invoice-validator/internal/llm"
)

const maxUploadBytes = 25 * 1024 * 1024

// documentPayload resolves the raw extraction payload for an intake request.
// Multipart uploads go through the document extractor; a plain JSON body is
// treated as an already-extracted payload and passed straight to the parser.
func (s *Server) documentPayload(c *gin.Context, kind llm.DocumentKind) (string, error) {
	ct := c.ContentType()
	if strings.HasPrefix(ct, "multipart/form-data") {
		return s.extractUpload(c, kind)
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxUploadBytes))
	if err != nil {
		return "", common.WrapError(err, "read request body")
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return "", fmt.Errorf("%w: empty request body", common.ErrInvalidInput)
	}
	return string(body), nil
}

func (s *Server) extractUpload(c *gin.Context, kind llm.DocumentKind) (string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", fmt.Errorf("%w: missing file field", common.ErrInvalidInput)
	}
	if fh.Size > maxUploadBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", common.ErrInvalidInput, maxUploadBytes)
	}

	f, err := fh.Open()
	if err != nil {
		return "", common.WrapError(err, "open upload")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", common.WrapError(err, "read upload")
	}

	req := llm.ExtractRequest{
		Kind:     kind,
		Filename: fh.Filename,
		MIMEType: fh.Header.Get("Content-Type"),
	}
	if isTextual(req.MIMEType, fh.Filename) {
		req.Text = string(data)
	} else {
		req.Data = data
	}

	raw, err := s.extractor.ExtractDocument(c.Request.Context(), req)
	if err != nil {
		return "", common.WrapError(err, "extract document")
	}
	return raw, nil
}

func isTextual(mimeType, filename string) bool {
	if strings.HasPrefix(mimeType, "text/") || strings.Contains(mimeType, "json") {
		return true
	}
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".txt") || strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".md")
}
