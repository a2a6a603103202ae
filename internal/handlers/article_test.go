package handlers

import (
	"testing"
)

func TestBuildArticleUpdateMapsSetFieldsOnly(t *testing.T) {
	updateSet := buildArticleUpdate(ArticleUpdateRequest{
		Title:   strPtr("  Care guide  "),
		Content: strPtr("Water twice a week.\n"),
	})

	if len(updateSet) != 2 {
		t.Fatalf("expected 2 fields, got %v", updateSet)
	}
	if updateSet["title"] != "Care guide" {
		t.Fatalf("expected trimmed title, got %q", updateSet["title"])
	}
	// content is free text, whitespace is meaningful
	if updateSet["content"] != "Water twice a week.\n" {
		t.Fatalf("expected content untouched, got %q", updateSet["content"])
	}
	if _, ok := updateSet["author"]; ok {
		t.Fatal("author was not in the request, should not be in the update")
	}
}

func TestBuildArticleUpdateEmptyRequest(t *testing.T) {
	if updateSet := buildArticleUpdate(ArticleUpdateRequest{}); len(updateSet) != 0 {
		t.Fatalf("expected empty update, got %v", updateSet)
	}
}
