// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the imagesearch client.
// The feed types mirror the public photo feed envelope; Result and
// SearchState carry one search request's lifecycle to observers.
package types

import "strings"

// ImageFeedResponse is the top-level envelope returned by the feed endpoint.
type ImageFeedResponse struct {
	Title       string `json:"title" yaml:"title"`
	Link        string `json:"link" yaml:"link"`
	Description string `json:"description" yaml:"description"`
	Modified    string `json:"modified" yaml:"modified"`
	Generator   string `json:"generator" yaml:"generator"`

	// Items are kept in server order.
	Items []ImageItem `json:"items" yaml:"items"`
}

// ImageItem is one photo in the feed. It is a plain value: two items are the
// same item when all their fields are equal.
type ImageItem struct {
	Title string `json:"title" yaml:"title"`
	Link  string `json:"link" yaml:"link"`
	Media Media  `json:"media" yaml:"media"`

	// DateTaken is ISO 8601 with a zone offset (e.g. "2025-01-10T14:23:11-08:00").
	DateTaken string `json:"date_taken" yaml:"date_taken"`

	// Description is HTML as sent by the feed.
	Description string `json:"description" yaml:"description"`
	Published   string `json:"published" yaml:"published"`
	Author      string `json:"author" yaml:"author"`
	AuthorID    string `json:"author_id" yaml:"author_id"`
	Tags        string `json:"tags" yaml:"tags"`
}

// Media holds the URL of the displayable image.
type Media struct {
	M string `json:"m" yaml:"m"`
}

// TagList splits Tags on commas and whitespace, dropping empty entries.
func (i ImageItem) TagList() []string {
	return strings.FieldsFunc(i.Tags, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// AuthorName extracts the display name from Author, which the feed writes
// as `nobody@flickr.com ("name")`. Other values are returned as-is.
func (i ImageItem) AuthorName() string {
	open := strings.Index(i.Author, `("`)
	if open < 0 || open+2 > len(i.Author)-2 || !strings.HasSuffix(i.Author, `")`) {
		return i.Author
	}
	name := i.Author[open+2 : len(i.Author)-2]
	if name == "" {
		return i.Author
	}
	return name
}
