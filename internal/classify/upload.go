package classify

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/causehire/recruit-api/internal/domain"
)

// allowedExtensions is the upload allowlist. Text extraction happens on the
// client; the service validates the declared filename and caps the extracted
// text before it reaches persistence or generation.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
}

// ValidateUpload rejects disallowed file types and oversized uploads before
// any row is written. The returned error carries a user-facing message.
func (c *Classifier) ValidateUpload(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("%w: %q (allowed: pdf, doc, docx, txt)", domain.ErrUnsupportedFile, ext)
	}
	if size > c.cfg.MaxUploadSizeBytes {
		return fmt.Errorf("%w: file exceeds %d bytes", domain.ErrUnsupportedFile, c.cfg.MaxUploadSizeBytes)
	}
	return nil
}

// TruncateForPrompt caps extracted file text at the configured length so a
// large document never inflates the generation prompt.
func (c *Classifier) TruncateForPrompt(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= c.cfg.UploadTextCap {
		return string(runes)
	}
	return string(runes[:c.cfg.UploadTextCap])
}
