package share

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_ModernShape(t *testing.T) {
	raw := []byte(`{
		"success": true,
		"message": "File uploaded successfully",
		"file": {
			"id": "f1",
			"fileName": "a.pdf",
			"shareLink": "https://x/y",
			"shareToken": "tok-1",
			"isPublic": false,
			"passwordProtected": true,
			"totpEnabled": false,
			"availableFrom": "2026-05-01T09:00:00Z",
			"sharedWith": ["alice@example.com"],
			"expiresAt": "2026-06-01T00:00:00Z"
		}
	}`)

	res, err := Reconcile(raw)
	require.NoError(t, err)

	assert.Equal(t, "f1", res.ResourceID)
	assert.Equal(t, "a.pdf", res.DisplayName)
	assert.Equal(t, "https://x/y", res.ShareLink)
	assert.Equal(t, "tok-1", res.ShareToken)
	assert.True(t, res.Success)
	assert.Equal(t, "File uploaded successfully", res.Message)

	require.NotNil(t, res.IsPublic)
	assert.False(t, *res.IsPublic)
	require.NotNil(t, res.HasPassword)
	assert.True(t, *res.HasPassword)
	require.NotNil(t, res.OneTimeCodeEnabled)
	assert.False(t, *res.OneTimeCodeEnabled)

	require.NotNil(t, res.Window.From)
	assert.Equal(t, time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC), res.Window.From.UTC())
	assert.Nil(t, res.Window.To)
	assert.Equal(t, []string{"alice@example.com"}, res.Recipients)
	require.NotNil(t, res.ExpiresAt)
	assert.Nil(t, res.OneTimeCodeSetup)
}

func TestReconcile_ModernShape_BackendFilenameKey(t *testing.T) {
	// The deployed backend spells the name "filename", not "fileName".
	raw := []byte(`{"success": true, "file": {"id": "f9", "filename": "b.txt", "shareLink": "https://x/z"}}`)

	res, err := Reconcile(raw)
	require.NoError(t, err)
	assert.Equal(t, "b.txt", res.DisplayName)
}

func TestReconcile_ModernShape_TOTPSetup(t *testing.T) {
	raw := []byte(`{
		"success": true,
		"file": {"id": "f2", "fileName": "c.txt", "shareLink": "https://x/c"},
		"totpSetup": {"secret": "JBSWY3DP", "qrCode": "data:image/png;base64,AAAA"}
	}`)

	res, err := Reconcile(raw)
	require.NoError(t, err)
	require.NotNil(t, res.OneTimeCodeSetup)
	assert.Equal(t, "JBSWY3DP", res.OneTimeCodeSetup.Secret)
	assert.Equal(t, "data:image/png;base64,AAAA", res.OneTimeCodeSetup.QRCode)
}

func TestReconcile_ModernShape_SuccessFalse(t *testing.T) {
	raw := []byte(`{"success": false, "message": "quota exceeded", "file": {"id": "f3"}}`)

	res, err := Reconcile(raw)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "quota exceeded", res.Message)
}

func TestReconcile_ModernShape_SparseFile(t *testing.T) {
	// Missing sub-fields degrade to "unknown", never to an error.
	res, err := Reconcile([]byte(`{"file": {"id": "f4"}}`))
	require.NoError(t, err)

	assert.Equal(t, "f4", res.ResourceID)
	assert.Empty(t, res.DisplayName)
	assert.Empty(t, res.ShareLink)
	assert.True(t, res.Success)
	assert.Nil(t, res.IsPublic)
	assert.Nil(t, res.HasPassword)
	assert.True(t, res.Window.Open())
}

func TestReconcile_LegacyShape(t *testing.T) {
	raw := []byte(`{
		"fileId": "f2",
		"fileName": "old.doc",
		"shareLink": "https://x/old",
		"availableFrom": "2026-05-01T09:00:00",
		"sharedWith": ["bob@example.com"],
		"message": "ok"
	}`)

	res, err := Reconcile(raw)
	require.NoError(t, err)

	assert.Equal(t, "f2", res.ResourceID)
	assert.Equal(t, "old.doc", res.DisplayName)
	assert.Equal(t, "https://x/old", res.ShareLink)
	assert.True(t, res.Success)
	assert.Equal(t, "ok", res.Message)
	assert.Equal(t, []string{"bob@example.com"}, res.Recipients)

	// Legacy instants come without a zone; they still must parse.
	require.NotNil(t, res.Window.From)

	// Legacy never carries enrollment material or tri-state flags.
	assert.Nil(t, res.OneTimeCodeSetup)
	assert.Nil(t, res.IsPublic)
	assert.Nil(t, res.HasPassword)
}

func TestReconcile_LegacyShape_LinkOnlyFallsBackToLink(t *testing.T) {
	res, err := Reconcile([]byte(`{"shareLink": "https://x/only-link"}`))
	require.NoError(t, err)
	assert.Equal(t, "https://x/only-link", res.ResourceID)
	assert.Equal(t, "https://x/only-link", res.ShareLink)
}

func TestReconcile_LegacyShape_RecipientsAlias(t *testing.T) {
	res, err := Reconcile([]byte(`{"fileId": "f5", "recipients": ["c@d.ef"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"c@d.ef"}, res.Recipients)
}

func TestReconcile_NullFileIsNotModern(t *testing.T) {
	// "file": null must fall through to the legacy check, not crash.
	res, err := Reconcile([]byte(`{"file": null, "fileId": "f6"}`))
	require.NoError(t, err)
	assert.Equal(t, "f6", res.ResourceID)
}

func TestReconcile_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty object", `{}`},
		{"neither shape", `{"success": true, "message": "done"}`},
		{"not json", `<html>502 Bad Gateway</html>`},
		{"json array", `[1, 2, 3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Reconcile([]byte(tt.raw))
			assert.Nil(t, res)

			var malformed *MalformedResponseError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tt.raw, string(malformed.Raw))
		})
	}
}

func TestMalformedResponseError_Message(t *testing.T) {
	err := &MalformedResponseError{Raw: []byte(`{}`)}
	assert.NotEmpty(t, err.Error())
	assert.False(t, errors.Is(err, errors.New("other")))
}
