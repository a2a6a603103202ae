package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMergeAboutMediaAppendsUploadsAfterRetained(t *testing.T) {
	merged := mergeAboutMedia([]string{"a", "b"}, []string{"c"})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(merged, want) {
		t.Fatalf("expected %v, got %v", want, merged)
	}
}

func TestMergeAboutMediaDeduplicatesAgainstRetained(t *testing.T) {
	merged := mergeAboutMedia([]string{"a", "b"}, []string{"b", "c", "c"})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(merged, want) {
		t.Fatalf("expected %v, got %v", want, merged)
	}
}

func TestMergeAboutMediaPreservesCallerOrder(t *testing.T) {
	merged := mergeAboutMedia([]string{"z", "a", "m"}, nil)
	want := []string{"z", "a", "m"}
	if !reflect.DeepEqual(merged, want) {
		t.Fatalf("expected retained order to be preserved, got %v", merged)
	}
}

func TestRemoveMediaValue(t *testing.T) {
	media, removed := removeMediaValue([]string{"a", "b", "c"}, "b")
	if !removed {
		t.Fatal("expected value to be removed")
	}
	if !reflect.DeepEqual(media, []string{"a", "c"}) {
		t.Fatalf("unexpected result: %v", media)
	}

	same, removed := removeMediaValue([]string{"a"}, "x")
	if removed {
		t.Fatal("expected no removal for unknown value")
	}
	if !reflect.DeepEqual(same, []string{"a"}) {
		t.Fatalf("expected list untouched, got %v", same)
	}
}

func TestParseAboutFormReadsOrderedFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	_ = writer.WriteField("text", "hello")
	_ = writer.WriteField("mediaOrder", "b")
	_ = writer.WriteField("mediaOrder", "a")
	_ = writer.WriteField("externalLinks", "https://www.tiktok.com/@user/video/1")
	_ = writer.WriteField("externalLinks", "  ")

	part, err := writer.CreateFormFile("media", "new.png")
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	_, _ = part.Write([]byte("png-bytes"))
	_ = writer.Close()

	req := httptest.NewRequest("PUT", "/about", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	parsed, err := parseAboutForm(c)
	if err != nil {
		t.Fatalf("parseAboutForm returned error: %v", err)
	}

	if !parsed.TextSet || parsed.Text != "hello" {
		t.Fatalf("expected text=hello, got %+v", parsed)
	}
	if !reflect.DeepEqual(parsed.MediaOrder, []string{"b", "a"}) {
		t.Fatalf("expected mediaOrder [b a], got %v", parsed.MediaOrder)
	}
	if !reflect.DeepEqual(parsed.ExternalLinks, []string{"https://www.tiktok.com/@user/video/1"}) {
		t.Fatalf("expected blank links dropped, got %v", parsed.ExternalLinks)
	}
	if len(parsed.NewFiles) != 1 || parsed.NewFiles[0].Filename != "new.png" {
		t.Fatalf("expected one uploaded file, got %+v", parsed.NewFiles)
	}
}

func TestParseAboutFormOmittedFieldsStayUnset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	_ = writer.WriteField("text", "only text")
	_ = writer.Close()

	req := httptest.NewRequest("PUT", "/about", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	parsed, err := parseAboutForm(c)
	if err != nil {
		t.Fatalf("parseAboutForm returned error: %v", err)
	}
	if parsed.MediaOrderSet || parsed.ExternalLinksSet {
		t.Fatalf("expected omitted fields to stay unset, got %+v", parsed)
	}
}
