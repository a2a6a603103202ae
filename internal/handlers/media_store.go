package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MediaStore persists one uploaded file and returns its public URL. The disk
// implementation mirrors the original local-uploads mode; the relay
// implementation forwards the bytes to an external hosted media service.
type MediaStore interface {
	Save(file *multipart.FileHeader) (string, error)
	Delete(publicURL string) error
}

var allowedMediaExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".gif":  {},
	".mp4":  {},
	".webm": {},
}

const maxMediaSize = 32 << 20

func validateMediaFile(file *multipart.FileHeader) (string, error) {
	extension := strings.ToLower(filepath.Ext(file.Filename))
	if extension == "" {
		return "", fmt.Errorf("media file extension is required")
	}
	if _, ok := allowedMediaExtensions[extension]; !ok {
		return "", fmt.Errorf("unsupported media type: %s", extension)
	}
	if file.Size > maxMediaSize {
		return "", fmt.Errorf("media file too large (max 32MB)")
	}
	return extension, nil
}

/* =======================
   DISK STORE
======================= */

type DiskStore struct {
	Dir           string
	PublicBaseURL string
}

func NewDiskStore(dir, publicBaseURL string) *DiskStore {
	return &DiskStore{
		Dir:           dir,
		PublicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (s *DiskStore) Save(file *multipart.FileHeader) (string, error) {
	extension, err := validateMediaFile(file)
	if err != nil {
		return "", err
	}

	filename := uuid.NewString() + extension

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		log.Printf("[UPLOAD] disk store: failed to create directory %s: %v", s.Dir, err)
		return "", err
	}

	fullPath := filepath.Join(s.Dir, filename)

	out, err := os.Create(fullPath)
	if err != nil {
		log.Printf("[UPLOAD] disk store: failed to create file %s: %v", fullPath, err)
		return "", err
	}
	defer out.Close()

	in, err := file.Open()
	if err != nil {
		log.Printf("[UPLOAD] disk store: failed to open upload %s: %v", file.Filename, err)
		return "", err
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		log.Printf("[UPLOAD] disk store: failed to save file %s: %v", fullPath, err)
		return "", err
	}

	return s.PublicBaseURL + "/uploads/" + filename, nil
}

// Delete removes the file behind a public URL. Only paths under /uploads are
// touched; anything else is refused so a crafted URL cannot reach out of the
// upload directory.
func (s *DiskStore) Delete(publicURL string) error {
	trimmed := strings.TrimSpace(publicURL)
	if trimmed == "" {
		return nil
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return err
	}

	cleanRel := path.Clean("/" + strings.TrimPrefix(parsed.Path, "/"))
	cleanRel = strings.TrimPrefix(cleanRel, "/")
	if !strings.HasPrefix(cleanRel, "uploads/") {
		return fmt.Errorf("refusing to delete non-upload path: %s", publicURL)
	}

	cleanBase := filepath.Clean(s.Dir)
	targetPath := filepath.Join(cleanBase, filepath.FromSlash(strings.TrimPrefix(cleanRel, "uploads/")))
	cleanTarget := filepath.Clean(targetPath)
	if cleanTarget == cleanBase || !strings.HasPrefix(cleanTarget, cleanBase+string(os.PathSeparator)) {
		return fmt.Errorf("refusing to delete path outside upload dir: %s", publicURL)
	}

	if err := os.Remove(cleanTarget); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return nil
}

/* =======================
   RELAY STORE
======================= */

// RelayStore streams uploads to an external hosted media service and returns
// the permanent URL the service responds with. Failures surface to the
// caller unchanged: no retry, no local fallback.
type RelayStore struct {
	UploadURL string
	Client    *http.Client
}

func NewRelayStore(uploadURL string) *RelayStore {
	return &RelayStore{
		UploadURL: uploadURL,
		Client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type relayResponse struct {
	URL string `json:"url"`
}

func (s *RelayStore) Save(file *multipart.FileHeader) (string, error) {
	if _, err := validateMediaFile(file); err != nil {
		return "", err
	}

	in, err := file.Open()
	if err != nil {
		return "", err
	}
	defer in.Close()

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		part, err := writer.CreateFormFile("file", file.Filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, in); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(writer.Close())
	}()

	req, err := http.NewRequest(http.MethodPost, s.UploadURL, pr)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.Client.Do(req)
	if err != nil {
		log.Printf("[UPLOAD] relay store: request failed: %v", err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Printf("[UPLOAD] relay store: service returned %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("media service returned status %d", resp.StatusCode)
	}

	var parsed relayResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("media service returned invalid response: %w", err)
	}
	if strings.TrimSpace(parsed.URL) == "" {
		return "", fmt.Errorf("media service returned no url")
	}

	return parsed.URL, nil
}

// Delete is a no-op for relayed media: the hosted service owns the file and
// exposes no deletion API in this integration.
func (s *RelayStore) Delete(publicURL string) error {
	return nil
}
