package policy

import (
	"errors"
	"regexp"
	"strings"
)

// emailShape is the "local@domain.tld" check applied to recipients. The
// server performs its own validation; this only keeps obvious junk out of
// the allow-list before submission.
var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[a-zA-Z]{2,}$`)

var (
	// ErrEmptyRecipient means the input was blank after trimming. Callers
	// may treat this as a silent no-op rather than a hard failure.
	ErrEmptyRecipient = errors.New("recipient is empty")

	// ErrRecipientFormat means the input does not look like an address.
	ErrRecipientFormat = errors.New("recipient must look like local@domain.tld")

	// ErrDuplicateRecipient means the address is already on the list
	// (comparison is case-insensitive via normalization).
	ErrDuplicateRecipient = errors.New("recipient already added")
)

// NormalizeRecipient trims and lower-cases a raw address.
func NormalizeRecipient(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// AddRecipient validates and appends a raw address to the list, preserving
// insertion order. The input list is never mutated; on success a new slice
// is returned. Duplicates are rejected here, at insertion time, so the
// validator never has to re-check uniqueness.
func AddRecipient(list []string, raw string) ([]string, error) {
	addr := NormalizeRecipient(raw)
	if addr == "" {
		return list, ErrEmptyRecipient
	}
	if !emailShape.MatchString(addr) {
		return list, ErrRecipientFormat
	}
	for _, existing := range list {
		if existing == addr {
			return list, ErrDuplicateRecipient
		}
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, list...)
	return append(out, addr), nil
}

// RemoveRecipient filters an address out of the list. Removing an absent
// address is a no-op, so the operation is idempotent.
func RemoveRecipient(list []string, addr string) []string {
	addr = NormalizeRecipient(addr)
	out := make([]string, 0, len(list))
	for _, existing := range list {
		if existing != addr {
			out = append(out, existing)
		}
	}
	return out
}
