package model

import (
	"encoding/json"
	"fmt"
)

// MediaItem is a row of the gallery or video_gallery tables.
type MediaItem struct {
	ID  int64  `db:"id" json:"id,omitempty"`
	URL string `db:"url" json:"url" binding:"required,max=2048"`
}

// UnmarshalJSON accepts either {"url": "..."} or a bare URL string.
func (m *MediaItem) UnmarshalJSON(data []byte) error {
	var url string
	if err := json.Unmarshal(data, &url); err == nil {
		*m = MediaItem{URL: url}
		return nil
	}

	type plain MediaItem
	var item plain
	if err := json.Unmarshal(data, &item); err != nil {
		return fmt.Errorf("media item must be a URL string or an object with url: %w", err)
	}
	*m = MediaItem(item)
	return nil
}

// MediaURLs extracts the URLs of items, preserving order.
func MediaURLs(items []MediaItem) []string {
	urls := make([]string, 0, len(items))
	for _, it := range items {
		urls = append(urls, it.URL)
	}
	return urls
}
