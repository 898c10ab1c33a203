// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package detail formats a single selected image for display.
package detail

import (
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/imagesearch/pkg/types"
)

const (
	// dateTakenLayout is how the feed writes date_taken.
	dateTakenLayout = time.RFC3339
	// displayLayout is month-day-year with a 12-hour clock.
	displayLayout = "01-02-2006 3:04:05 PM"

	// InvalidDate replaces timestamps that do not parse.
	InvalidDate = "Invalid date"
)

// FormatDate reformats an ISO 8601 timestamp with offset for display in the
// local time zone.
func FormatDate(s string) string {
	return FormatDateIn(s, time.Local)
}

// FormatDateIn is FormatDate for an explicit location.
func FormatDateIn(s string, loc *time.Location) string {
	t, err := time.Parse(dateTakenLayout, strings.TrimSpace(s))
	if err != nil {
		return InvalidDate
	}
	return t.In(loc).Format(displayLayout)
}

var (
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// PlainText flattens the feed's HTML description into one line of text.
func PlainText(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}

// View is the display form of an item.
type View struct {
	Title       string
	Description string
	Author      string
	Taken       string
	ImageURL    string
	Link        string
	Tags        []string
}

// NewView prepares item for display.
func NewView(item types.ImageItem) View {
	return View{
		Title:       item.Title,
		Description: PlainText(item.Description),
		Author:      item.AuthorName(),
		Taken:       FormatDate(item.DateTaken),
		ImageURL:    item.Media.M,
		Link:        item.Link,
		Tags:        item.TagList(),
	}
}

// Render writes v as labelled lines to w.
func Render(v View, w io.Writer) {
	fmt.Fprintf(w, "Title: %s\n", v.Title)
	if v.Description != "" {
		fmt.Fprintf(w, "%s\n", v.Description)
	}
	fmt.Fprintf(w, "Author: %s\n", v.Author)
	fmt.Fprintf(w, "Published Date: %s\n", v.Taken)
	fmt.Fprintf(w, "Image: %s\n", v.ImageURL)
	if v.Link != "" {
		fmt.Fprintf(w, "Link: %s\n", v.Link)
	}
	if len(v.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(v.Tags, ", "))
	}
}
