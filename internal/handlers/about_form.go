package handlers

import (
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"
)

/*
=======================
  INPUT STRUCT
=======================
*/

type AboutFormInput struct {
	Text             string
	TextSet          bool
	MediaOrder       []string
	MediaOrderSet    bool
	NewFiles         []*multipart.FileHeader
	ExternalLinks    []string
	ExternalLinksSet bool
}

/*
=======================
  PARSER
=======================
*/

func parseAboutForm(c *gin.Context) (AboutFormInput, error) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		return AboutFormInput{}, err
	}

	input := AboutFormInput{}

	if value, ok := c.GetPostForm("text"); ok {
		input.Text = value
		input.TextSet = true
	}

	if values, ok := c.GetPostFormArray("mediaOrder"); ok {
		input.MediaOrder = trimNonEmpty(values)
		input.MediaOrderSet = true
	}

	if values, ok := c.GetPostFormArray("externalLinks"); ok {
		input.ExternalLinks = trimNonEmpty(values)
		input.ExternalLinksSet = true
	}

	if form := c.Request.MultipartForm; form != nil {
		input.NewFiles = form.File["media"]
	}

	return input, nil
}

/*
=======================
  HELPERS
=======================
*/

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// mergeAboutMedia keeps the retained entries in caller order and appends the
// newly uploaded URLs after them, skipping any upload that duplicates a
// retained entry.
func mergeAboutMedia(retained, uploaded []string) []string {
	merged := make([]string, 0, len(retained)+len(uploaded))
	seen := map[string]struct{}{}

	for _, url := range retained {
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}
		merged = append(merged, url)
	}

	for _, url := range uploaded {
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}
		merged = append(merged, url)
	}

	return merged
}

// removeMediaValue drops the first value match from the list, reporting
// whether anything was removed.
func removeMediaValue(media []string, target string) ([]string, bool) {
	for i, url := range media {
		if url == target {
			out := make([]string, 0, len(media)-1)
			out = append(out, media[:i]...)
			out = append(out, media[i+1:]...)
			return out, true
		}
	}
	return media, false
}
