// Package models defines the data shapes the sharebox client exchanges with
// the file-sharing service and shows to the user.
package models

// User is the account profile as returned by the service.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	TOTPEnabled bool   `json:"totpEnabled"`
}

// TOTPSetup is the enrollment material the server returns when a one-time-code
// requirement has just been enabled: the shared secret and, optionally, a
// QR code image encoded as a data URI.
type TOTPSetup struct {
	Secret string `json:"secret"`
	QRCode string `json:"qrCode,omitempty"`
}
