package notes

import (
	"strings"
	"time"
)

type Note struct {
	ID          int      `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Tags        []string `json:"tags" yaml:"tags"`
	Author      string   `json:"author" yaml:"author"`
	CreatedAt   string   `json:"created_at" yaml:"created_at"` // ISO-8601
	Pinned      bool     `json:"pinned,omitempty" yaml:"pinned,omitempty"`
}

// Haystack is the lower-cased text the filter matches against:
// title, description, author and space-joined tags.
func (n Note) Haystack() string {
	return strings.ToLower(n.Title + " " + n.Description + " " + n.Author + " " + strings.Join(n.Tags, " "))
}

// Created parses CreatedAt. Datasets in the wild carry both full RFC3339
// timestamps and bare dates, so both are accepted.
func (n Note) Created() (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, n.CreatedAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (n Note) clone() Note {
	if n.Tags != nil {
		n.Tags = append([]string(nil), n.Tags...)
	}
	return n
}
