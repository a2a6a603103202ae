package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("ParseMultipartForm failed: %v", err)
	}

	files := req.MultipartForm.File["image"]
	if len(files) != 1 {
		t.Fatalf("expected one file, got %d", len(files))
	}
	return files[0]
}

func TestDiskStoreSaveWritesFileAndBuildsURL(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(dir, "http://localhost:5000/")

	url, err := store.Save(makeFileHeader(t, "flower.png", []byte("png-bytes")))
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if !strings.HasPrefix(url, "http://localhost:5000/uploads/") {
		t.Fatalf("unexpected url: %s", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Fatalf("expected extension to be kept, got %s", url)
	}

	name := url[strings.LastIndex(url, "/")+1:]
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("stored content mismatch: %q", data)
	}
}

func TestDiskStoreSaveRejectsUnsupportedExtension(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "http://localhost:5000")

	if _, err := store.Save(makeFileHeader(t, "shell.sh", []byte("#!"))); err == nil {
		t.Fatal("expected unsupported extension to be rejected")
	}
	if _, err := store.Save(makeFileHeader(t, "noext", []byte("x"))); err == nil {
		t.Fatal("expected missing extension to be rejected")
	}
}

func TestDiskStoreDeleteRemovesStoredFile(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(dir, "http://localhost:5000")

	url, err := store.Save(makeFileHeader(t, "flower.jpg", []byte("jpg")))
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if err := store.Delete(url); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	name := url[strings.LastIndex(url, "/")+1:]
	if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
		t.Fatalf("expected file to be gone, stat err=%v", err)
	}

	// deleting again is a no-op
	if err := store.Delete(url); err != nil {
		t.Fatalf("second Delete returned error: %v", err)
	}
}

func TestDiskStoreDeleteRefusesOutsideUploads(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "http://localhost:5000")

	for _, url := range []string{
		"http://localhost:5000/etc/passwd",
		"http://localhost:5000/uploads/../secret.txt",
	} {
		if err := store.Delete(url); err == nil {
			t.Fatalf("expected %q to be refused", url)
		}
	}
}

func TestRelayStoreSaveReturnsServiceURL(t *testing.T) {
	var gotFilename string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		files := r.MultipartForm.File["file"]
		if len(files) == 1 {
			gotFilename = files[0].Filename
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://cdn.example.com/abc.png"})
	}))
	defer server.Close()

	store := NewRelayStore(server.URL)

	url, err := store.Save(makeFileHeader(t, "flower.png", []byte("png-bytes")))
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if url != "https://cdn.example.com/abc.png" {
		t.Fatalf("unexpected url: %s", url)
	}
	if gotFilename != "flower.png" {
		t.Fatalf("expected original filename forwarded, got %q", gotFilename)
	}
}

func TestRelayStoreSaveSurfacesServiceFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	store := NewRelayStore(server.URL)
	if _, err := store.Save(makeFileHeader(t, "flower.png", []byte("png"))); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}

func TestRelayStoreSaveRejectsMissingURLInResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	store := NewRelayStore(server.URL)
	if _, err := store.Save(makeFileHeader(t, "flower.png", []byte("png"))); err == nil {
		t.Fatal("expected error when service omits the url")
	}
}
