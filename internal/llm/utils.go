package llm

import (
	"encoding/base64"
	"mime"
	"path/filepath"
	"strings"
)

// maxVisionBytes caps how large an attachment we will inline as a data URL.
const maxVisionBytes = 20 * 1024 * 1024

// ShouldAttachImage reports whether the request carries image bytes the
// vision endpoint can consume, and returns the inline data URL for them.
func ShouldAttachImage(req ExtractRequest) (attach bool, dataURL string) {
	if len(req.Data) == 0 || len(req.Data) > maxVisionBytes {
		return false, ""
	}
	mt := strings.TrimSpace(req.MIMEType)
	if mt == "" {
		mt = mimeFromFilename(req.Filename)
	}
	if !strings.HasPrefix(mt, "image/") {
		return false, ""
	}
	return true, "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(req.Data)
}

func mimeFromFilename(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if mt := mime.TypeByExtension(ext); mt != "" {
		return mt
	}
	switch strings.TrimPrefix(ext, ".") {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
