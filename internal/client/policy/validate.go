package policy

import (
	"fmt"
	"strings"
)

// RuleKind names one category of policy validation rule.
type RuleKind string

const (
	RuleUnsupportedFormat RuleKind = "unsupported_format"
	RuleFileTooLarge      RuleKind = "file_too_large"
	RulePasswordTooShort  RuleKind = "password_too_short"
	RuleInvalidTimeWindow RuleKind = "invalid_time_window"
	RuleInvalidRecipient  RuleKind = "invalid_recipient"
)

// RuleViolation reports that one rule category was violated.
type RuleViolation struct {
	Kind   RuleKind
	Detail string
}

func (v RuleViolation) Error() string {
	return fmt.Sprintf("%s: %s", v.Kind, v.Detail)
}

// ValidationErrors collects at most one violation per rule category, in
// check order, so the caller can show one message per problem.
type ValidationErrors []RuleViolation

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether the given category was violated.
func (e ValidationErrors) Has(kind RuleKind) bool {
	for _, v := range e {
		if v.Kind == kind {
			return true
		}
	}
	return false
}

// Validate checks a candidate policy against the file metadata and local
// limits. It is a pure function: no network and no file-content access.
// It returns nil when the policy is submittable, otherwise a ValidationErrors
// with one entry per violated category.
func Validate(p *Policy, meta FileMeta, limits Limits) error {
	var errs ValidationErrors

	ext := meta.Ext()
	if ext == "" || !limits.allows(ext) {
		errs = append(errs, RuleViolation{
			Kind:   RuleUnsupportedFormat,
			Detail: fmt.Sprintf("file type %q is not allowed", ext),
		})
	}
	if meta.Size > limits.MaxSizeBytes {
		errs = append(errs, RuleViolation{
			Kind:   RuleFileTooLarge,
			Detail: fmt.Sprintf("file is %d bytes, limit is %d", meta.Size, limits.MaxSizeBytes),
		})
	}

	if p.Password != "" && len(strings.TrimSpace(p.Password)) < limits.MinPasswordLen {
		errs = append(errs, RuleViolation{
			Kind:   RulePasswordTooShort,
			Detail: fmt.Sprintf("password must be at least %d characters", limits.MinPasswordLen),
		})
	}

	// Equal bounds are rejected: the window would be empty.
	if p.Window.From != nil && p.Window.To != nil && !p.Window.From.Before(*p.Window.To) {
		errs = append(errs, RuleViolation{
			Kind:   RuleInvalidTimeWindow,
			Detail: "availableFrom must be strictly before availableTo",
		})
	}

	for _, r := range p.Recipients {
		if !emailShape.MatchString(r) {
			errs = append(errs, RuleViolation{
				Kind:   RuleInvalidRecipient,
				Detail: fmt.Sprintf("recipient %q is not a valid address", r),
			})
			break
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
