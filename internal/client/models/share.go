package models

import "time"

// TimeWindow bounds the availability of a shared file. Either bound may be
// nil, which leaves that side open-ended.
type TimeWindow struct {
	From *time.Time
	To   *time.Time
}

// Open reports whether no bound is set at all.
func (w TimeWindow) Open() bool {
	return w.From == nil && w.To == nil
}

// ShareResult is the canonical outcome of a successful upload, independent of
// which server response shape produced it. ResourceID, DisplayName and
// ShareLink are always present but may be empty when the server omitted them;
// callers must treat empty as "unknown", not as an error.
type ShareResult struct {
	ResourceID  string
	DisplayName string
	ShareLink   string

	// Success mirrors the server's own flag; absent means true.
	Success bool

	ShareToken         string
	IsPublic           *bool
	HasPassword        *bool
	OneTimeCodeEnabled *bool
	Window             TimeWindow
	Recipients         []string
	ExpiresAt          *time.Time

	// OneTimeCodeSetup is set only when this upload enabled the one-time-code
	// requirement for the first time.
	OneTimeCodeSetup *TOTPSetup

	Message string
}
