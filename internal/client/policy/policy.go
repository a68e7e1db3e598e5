// Package policy models the access gate configuration attached to an upload
// and everything needed to turn it into a transport request: validation,
// recipient list editing, and multipart encoding.
package policy

import (
	"path/filepath"
	"strings"

	"github.com/jitensha/sharebox/internal/client/models"
)

// Policy is the complete gate configuration for a not-yet-created share.
// A zero Policy means a public share with no gates.
type Policy struct {
	// Password is the candidate password gate. Empty means no password gate.
	// It is transient: held only until the upload request is built.
	Password string

	// Window bounds availability. Either side may be open.
	Window models.TimeWindow

	// Recipients is the allow-list of normalized addresses, in insertion
	// order. Maintain it through AddRecipient/RemoveRecipient.
	Recipients []string

	// RequireCode requests a one-time-code challenge for the share.
	RequireCode bool
}

// IsPublic derives the public flag: no password gate and no recipients.
// It is computed at the point of use and never cached, so later edits to
// Password or Recipients cannot leave a stale flag behind.
func (p *Policy) IsPublic() bool {
	return p.Password == "" && len(p.Recipients) == 0
}

// FileMeta is the metadata the validator needs about the upload candidate.
// No file content is ever read during validation.
type FileMeta struct {
	Name string
	Size int64
}

// Ext returns the lower-cased extension of the file name without the dot,
// or "" when the name has none.
func (m FileMeta) Ext() string {
	ext := filepath.Ext(m.Name)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Limits holds the locally configured upload constraints. The defaults
// mirror the service's own policy defaults.
type Limits struct {
	MaxSizeBytes      int64
	AllowedExtensions []string
	MinPasswordLen    int
}

// DefaultLimits returns the stock constraints: 50 MB ceiling, a common
// document/image/archive allow-set, and a six-character password minimum.
func DefaultLimits() Limits {
	return Limits{
		MaxSizeBytes: 50 << 20,
		AllowedExtensions: []string{
			"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx",
			"txt", "md", "csv", "png", "jpg", "jpeg", "gif", "zip",
		},
		MinPasswordLen: 6,
	}
}

func (l Limits) allows(ext string) bool {
	for _, e := range l.AllowedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}
