// Package media integrates the Cloudinary image API for article images.
package media

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"
)

const uploadFolder = "campusnews/articles"

// cloudinaryClient bounds every round trip to the provider
var cloudinaryClient = &http.Client{Timeout: 10 * time.Second}

// Service signs and sends Cloudinary API requests
type Service struct {
	CloudName string
	APIKey    string
	APISecret string
}

// NewServiceFromEnv builds a service from CLOUDINARY_* env variables.
// Returns nil when unconfigured, which disables the media endpoints.
func NewServiceFromEnv() *Service {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil
	}
	return &Service{CloudName: cloudName, APIKey: apiKey, APISecret: apiSecret}
}

// signParams produces the Cloudinary request signature: the parameters
// sorted by name, joined with &, with the API secret appended, SHA-1 hashed
func signParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}

// UploadResult carries the provider response fields the API exposes
type UploadResult struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Format    string `json:"format"`
	Bytes     int    `json:"bytes"`
}

// Upload sends the image to Cloudinary and returns its secure URL
func (s *Service) Upload(file io.Reader, filename string) (*UploadResult, error) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	signature := signParams(map[string]string{
		"folder":    uploadFolder,
		"timestamp": timestamp,
	}, s.APISecret)

	var body strings.Builder
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	writer.WriteField("api_key", s.APIKey)
	writer.WriteField("timestamp", timestamp)
	writer.WriteField("signature", signature)
	writer.WriteField("folder", uploadFolder)
	if err := writer.Close(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", s.CloudName)
	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(body.String()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := cloudinaryClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upload endpoint returned %d", resp.StatusCode)
	}

	var out UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	if out.SecureURL == "" {
		return nil, fmt.Errorf("upload response missing secure_url")
	}
	return &out, nil
}

// Destroy removes an uploaded image by its public id
func (s *Service) Destroy(publicID string) error {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	signature := signParams(map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	}, s.APISecret)

	form := url.Values{}
	form.Set("public_id", publicID)
	form.Set("api_key", s.APIKey)
	form.Set("timestamp", timestamp)
	form.Set("signature", signature)

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/destroy", s.CloudName)
	resp, err := cloudinaryClient.PostForm(endpoint, form)
	if err != nil {
		return fmt.Errorf("destroy request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("destroy endpoint returned %d", resp.StatusCode)
	}
	return nil
}

// DestroyByURL removes an uploaded image given its delivery URL
func (s *Service) DestroyByURL(imageURL string) error {
	publicID, err := publicIDFromURL(imageURL)
	if err != nil {
		return err
	}
	return s.Destroy(publicID)
}

// publicIDFromURL extracts the Cloudinary public id from a delivery URL,
// e.g. https://res.cloudinary.com/demo/image/upload/v123/campusnews/articles/abc.jpg
// yields campusnews/articles/abc
func publicIDFromURL(imageURL string) (string, error) {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return "", fmt.Errorf("invalid image URL: %w", err)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	uploadIdx := -1
	for i, seg := range segments {
		if seg == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx < 0 || uploadIdx == len(segments)-1 {
		return "", fmt.Errorf("not a Cloudinary delivery URL: %s", imageURL)
	}

	rest := segments[uploadIdx+1:]
	// Skip the version segment (v followed by digits) if present
	if len(rest) > 1 && strings.HasPrefix(rest[0], "v") {
		if _, err := strconv.Atoi(rest[0][1:]); err == nil {
			rest = rest[1:]
		}
	}

	publicID := strings.Join(rest, "/")
	publicID = strings.TrimSuffix(publicID, path.Ext(publicID))
	if publicID == "" {
		return "", fmt.Errorf("not a Cloudinary delivery URL: %s", imageURL)
	}
	return publicID, nil
}
