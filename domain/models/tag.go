package models

import "strings"

// Tag is a free label attached to any number of transactions
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewTag creates a new tag
func NewTag(name string) *Tag {
	return &Tag{Name: strings.TrimSpace(name)}
}

// Validate checks if the tag is valid
func (t *Tag) Validate() error {
	if t.Name == "" {
		return ErrMissingTagName
	}
	return nil
}

// TagIDs returns the IDs of the given tags in order
func TagIDs(tags []*Tag) []int64 {
	ids := make([]int64, 0, len(tags))
	for _, tag := range tags {
		ids = append(ids, tag.ID)
	}
	return ids
}
