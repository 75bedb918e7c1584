package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewReferenceCode membuat kode referensi top-up yang mudah dibaca:
// TOP-YYYYMMDD-XXXXXXXX. Suffix diambil dari UUID supaya unik.
func NewReferenceCode(prefix string, now time.Time) string {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		prefix = "REF"
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), suffix)
}

// NewProofFilename returns a collision-safe stored name, keeping the extension.
func NewProofFilename(original string) string {
	ext := ""
	if i := strings.LastIndex(original, "."); i >= 0 && i < len(original)-1 {
		ext = strings.ToLower(original[i:])
	}
	return uuid.NewString() + ext
}
