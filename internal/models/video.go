package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// PlaceholderThumbnail is the path the service reports for videos uploaded
// without a thumbnail.
const PlaceholderThumbnail = "/icon.png"

type Video struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail,omitempty"`
	File      string `json:"file"`
}

type rawVideo struct {
	ID           json.RawMessage `json:"id"`
	Title        string          `json:"title"`
	Thumbnail    json.RawMessage `json:"thumbnail"`
	ThumbnailURL string          `json:"thumbnail_url"`
	File         string          `json:"file"`
	VideoURL     string          `json:"video_url"`
	URL          string          `json:"url"`
}

// UnmarshalJSON accepts the shapes the listing endpoint has used over time:
// thumbnail as a string or an object with a url, falling back to
// thumbnail_url, and the media location under file, video_url or url.
func (v *Video) UnmarshalJSON(data []byte) error {
	var raw rawVideo
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*v = Video{
		ID:        rawID(raw.ID),
		Title:     raw.Title,
		Thumbnail: rawThumbnail(raw.Thumbnail),
		File:      firstNonEmpty(raw.File, raw.VideoURL, raw.URL),
	}
	if v.Thumbnail == "" {
		v.Thumbnail = raw.ThumbnailURL
	}

	return nil
}

func rawID(data json.RawMessage) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	return string(data)
}

func rawThumbnail(data json.RawMessage) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}

	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		return obj.URL
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// HasThumbnail reports whether the video carries a real thumbnail rather
// than the placeholder.
func (v Video) HasThumbnail() bool {
	return v.Thumbnail != "" && v.Thumbnail != PlaceholderThumbnail
}

// Resolve returns a copy with relative thumbnail and file locations joined
// onto base.
func (v Video) Resolve(base string) Video {
	v.Thumbnail = ResolveURL(base, v.Thumbnail)
	v.File = ResolveURL(base, v.File)
	return v
}

// ResolveURL joins a relative location onto base with exactly one slash
// between them. Absolute URLs and empty values are returned unchanged.
func ResolveURL(base, location string) string {
	if location == "" || base == "" {
		return location
	}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return location
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(location, "/")
}
