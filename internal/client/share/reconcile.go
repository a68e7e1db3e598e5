// Package share normalizes the service's upload responses into one canonical
// ShareResult. The endpoint historically answered in two incompatible
// shapes: a modern one nesting a "file" object (plus optional totpSetup),
// and a legacy flat one. This package is the only place that knows both
// shapes exist; everything else depends on ShareResult.
package share

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/jitensha/sharebox/internal/client/models"
)

// MalformedResponseError reports a payload that matches neither response
// shape. The raw payload is retained for diagnostics; this error is not
// recoverable locally and must surface to the caller.
type MalformedResponseError struct {
	Raw []byte
}

func (e *MalformedResponseError) Error() string {
	return "upload response matches no known shape"
}

// fileEnvelope is the nested object of the modern shape. Both "fileName"
// and "filename" are accepted: the deployed backend emits the latter.
type fileEnvelope struct {
	ID            string   `json:"id"`
	FileName      string   `json:"fileName"`
	FileNameAlt   string   `json:"filename"`
	ShareLink     string   `json:"shareLink"`
	ShareToken    string   `json:"shareToken"`
	IsPublic      *bool    `json:"isPublic"`
	PasswordSet   *bool    `json:"passwordProtected"`
	TOTPEnabled   *bool    `json:"totpEnabled"`
	AvailableFrom string   `json:"availableFrom"`
	AvailableTo   string   `json:"availableTo"`
	SharedWith    []string `json:"sharedWith"`
	ExpiresAt     string   `json:"expiresAt"`
}

// legacyEnvelope is the flat historical shape. It never carries totpSetup.
type legacyEnvelope struct {
	FileID        string   `json:"fileId"`
	FileName      string   `json:"fileName"`
	ShareLink     string   `json:"shareLink"`
	AvailableFrom string   `json:"availableFrom"`
	AvailableTo   string   `json:"availableTo"`
	SharedWith    []string `json:"sharedWith"`
	Recipients    []string `json:"recipients"`
	ExpiresAt     string   `json:"expiresAt"`
	Message       string   `json:"message"`
}

// Reconcile turns a raw upload response body into a ShareResult.
//
// Discrimination order:
//  1. an object whose "file" property is a non-null object is modern;
//  2. otherwise a payload with at least one of fileId/fileName/shareLink
//     set is legacy;
//  3. anything else fails with *MalformedResponseError.
func Reconcile(raw []byte) (*models.ShareResult, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, &MalformedResponseError{Raw: raw}
	}

	if f, ok := top["file"]; ok && isObject(f) {
		return reconcileModern(top, f), nil
	}

	var legacy legacyEnvelope
	// Field-level mismatches are tolerated; only presence matters here.
	_ = json.Unmarshal(raw, &legacy)
	if legacy.FileID != "" || legacy.FileName != "" || legacy.ShareLink != "" {
		return reconcileLegacy(&legacy), nil
	}

	return nil, &MalformedResponseError{Raw: raw}
}

func reconcileModern(top map[string]json.RawMessage, file json.RawMessage) *models.ShareResult {
	res := &models.ShareResult{Success: true}

	if s, ok := top["success"]; ok {
		_ = json.Unmarshal(s, &res.Success)
	}
	if m, ok := top["message"]; ok {
		_ = json.Unmarshal(m, &res.Message)
	}

	var env fileEnvelope
	// Missing or mistyped sub-fields degrade to zero values, never to an error.
	_ = json.Unmarshal(file, &env)

	res.ResourceID = env.ID
	res.DisplayName = env.FileName
	if res.DisplayName == "" {
		res.DisplayName = env.FileNameAlt
	}
	res.ShareLink = env.ShareLink
	res.ShareToken = env.ShareToken
	res.IsPublic = env.IsPublic
	res.HasPassword = env.PasswordSet
	res.OneTimeCodeEnabled = env.TOTPEnabled
	res.Window = models.TimeWindow{
		From: parseInstant(env.AvailableFrom),
		To:   parseInstant(env.AvailableTo),
	}
	res.Recipients = env.SharedWith
	res.ExpiresAt = parseInstant(env.ExpiresAt)

	if ts, ok := top["totpSetup"]; ok && isObject(ts) {
		var setup models.TOTPSetup
		if err := json.Unmarshal(ts, &setup); err == nil {
			res.OneTimeCodeSetup = &setup
		}
	}
	return res
}

func reconcileLegacy(env *legacyEnvelope) *models.ShareResult {
	res := &models.ShareResult{
		Success:     true,
		ResourceID:  env.FileID,
		DisplayName: env.FileName,
		ShareLink:   env.ShareLink,
		Message:     env.Message,
	}
	if res.ResourceID == "" {
		res.ResourceID = env.ShareLink
	}
	res.Window = models.TimeWindow{
		From: parseInstant(env.AvailableFrom),
		To:   parseInstant(env.AvailableTo),
	}
	res.Recipients = env.SharedWith
	if len(res.Recipients) == 0 {
		res.Recipients = env.Recipients
	}
	res.ExpiresAt = parseInstant(env.ExpiresAt)
	return res
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// parseInstant accepts RFC-3339 instants as well as the offset-less ISO
// form the backend emits for availability bounds.
func parseInstant(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
