// Package upload pushes profile images to the Cloudinary upload endpoint.
package upload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// DefaultBaseURL is the Cloudinary API root. Overridable for tests.
const DefaultBaseURL = "https://api.cloudinary.com"

// ErrNotConfigured is returned when the Cloudinary account settings are
// missing; the upload feature is disabled rather than failing mid-request.
var ErrNotConfigured = errors.New("image upload is not configured (set cloud name and upload preset)")

// Result is what Cloudinary returns for a stored image.
type Result struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// Cloudinary uploads files to one account using a fixed unsigned preset.
type Cloudinary struct {
	BaseURL      string
	CloudName    string
	UploadPreset string

	httpc *http.Client
}

// New creates an uploader for the given account. Either identifier being
// empty yields an uploader whose Upload always returns ErrNotConfigured.
func New(cloudName, uploadPreset string) *Cloudinary {
	return &Cloudinary{
		BaseURL:      DefaultBaseURL,
		CloudName:    cloudName,
		UploadPreset: uploadPreset,
		httpc:        &http.Client{},
	}
}

// Configured reports whether the account settings are present.
func (c *Cloudinary) Configured() bool {
	return c.CloudName != "" && c.UploadPreset != ""
}

// Upload posts the file as a multipart form with the upload preset and
// returns the hosted URL and public id.
func (c *Cloudinary) Upload(ctx context.Context, path string) (Result, error) {
	if !c.Configured() {
		return Result{}, ErrNotConfigured
	}

	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", filepath.Base(path))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, f); err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := mw.WriteField("upload_preset", c.UploadPreset); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	url := fmt.Sprintf("%s/v1_1/%s/image/upload", c.BaseURL, c.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, pr)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("uploading image: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("reading upload response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("image upload failed with status %d", resp.StatusCode)
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return Result{}, fmt.Errorf("decoding upload response: %w", err)
	}
	return result, nil
}
