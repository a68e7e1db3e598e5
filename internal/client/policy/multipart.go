package policy

import (
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"time"
)

// EncodeUpload serializes a validated policy plus the file payload into a
// multipart/form-data body written to w, and returns the content type
// (including the boundary) for the request header.
//
// Field rules:
//   - password is written only when the gate is present; it is never sent as
//     an empty string, so the server cannot mistake "" for a blank password.
//   - availableFrom/availableTo are RFC-3339 instants, only the bounds set.
//   - sharedWith is a repeated field, one entry per address, only when the
//     list is non-empty.
//   - isPublic carries the value derived from the policy at encode time.
//
// The policy itself is not mutated.
func EncodeUpload(w io.Writer, p *Policy, fileName string, content io.Reader) (string, error) {
	mw := multipart.NewWriter(w)

	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("copy file content: %w", err)
	}

	if err := mw.WriteField("isPublic", strconv.FormatBool(p.IsPublic())); err != nil {
		return "", err
	}
	if p.Password != "" {
		if err := mw.WriteField("password", p.Password); err != nil {
			return "", err
		}
	}
	if p.Window.From != nil {
		if err := mw.WriteField("availableFrom", p.Window.From.Format(time.RFC3339)); err != nil {
			return "", err
		}
	}
	if p.Window.To != nil {
		if err := mw.WriteField("availableTo", p.Window.To.Format(time.RFC3339)); err != nil {
			return "", err
		}
	}
	for _, addr := range p.Recipients {
		if err := mw.WriteField("sharedWith", addr); err != nil {
			return "", err
		}
	}
	if err := mw.WriteField("enableTOTP", strconv.FormatBool(p.RequireCode)); err != nil {
		return "", err
	}

	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("finalize multipart body: %w", err)
	}
	return mw.FormDataContentType(), nil
}
