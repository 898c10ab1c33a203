// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package detail

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/imagesearch/pkg/types"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"negative offset afternoon", "2025-01-10T14:23:11-08:00", "01-10-2025 10:23:11 PM"},
		{"positive offset morning", "2025-01-09T08:01:02+01:00", "01-09-2025 7:01:02 AM"},
		{"utc midnight", "2025-01-01T00:00:00Z", "01-01-2025 12:00:00 AM"},
		{"crosses midnight", "2025-12-31T20:00:00-05:00", "01-01-2026 1:00:00 AM"},
		{"surrounding space", " 2025-12-31T23:59:59Z ", "12-31-2025 11:59:59 PM"},
		{"no offset", "2025-01-10 14:23:11", InvalidDate},
		{"garbage", "yesterday", InvalidDate},
		{"empty", "", InvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDateIn(tt.in, time.UTC))
		})
	}
}

func TestFormatDate_ConvertsToZone(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	assert.Equal(t, "01-11-2025 7:23:11 AM", FormatDateIn("2025-01-10T14:23:11-08:00", tokyo))

	want := time.Date(2025, 1, 9, 7, 1, 2, 0, time.UTC).Local().Format(displayLayout)
	assert.Equal(t, want, FormatDate("2025-01-09T08:01:02+01:00"))
	assert.Equal(t, InvalidDate, FormatDate("nope"))
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"tags and entities", ` <p><a href="https://x">owner1</a> posted a photo:</p> <p>Close-up &amp; personal</p> `, "owner1 posted a photo: Close-up & personal"},
		{"image tag", `<img src="a.jpg" width="240" />caption`, "caption"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.in))
		})
	}
}

func TestRender(t *testing.T) {
	item := types.ImageItem{
		Title:       "Quills",
		Link:        "https://www.flickr.com/photos/owner2/1/",
		Media:       types.Media{M: "https://live.staticflickr.com/1_m.jpg"},
		DateTaken:   "2025-01-09T08:01:02+01:00",
		Description: "<p>Close-up</p>",
		Author:      `nobody@flickr.com ("owner2")`,
		Tags:        "porcupine quills",
	}

	var buf bytes.Buffer
	Render(NewView(item), &buf)

	assert.Equal(t, "Title: Quills\n"+
		"Close-up\n"+
		"Author: owner2\n"+
		"Published Date: "+FormatDate(item.DateTaken)+"\n"+
		"Image: https://live.staticflickr.com/1_m.jpg\n"+
		"Link: https://www.flickr.com/photos/owner2/1/\n"+
		"Tags: porcupine, quills\n", buf.String())
}

func TestRender_SparseItem(t *testing.T) {
	var buf bytes.Buffer
	Render(NewView(types.ImageItem{Title: "x"}), &buf)
	assert.Equal(t, "Title: x\nAuthor: \nPublished Date: Invalid date\nImage: \n", buf.String())
}
