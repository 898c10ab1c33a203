// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/imagesearch/pkg/types"
)

func TestFormatState(t *testing.T) {
	tests := []struct {
		name  string
		state types.SearchState
		want  string
	}{
		{"idle", types.SearchState{}, "idle\n"},
		{"loading", types.SearchState{Result: types.Loading[[]types.ImageItem](), Term: "owl", Seq: 3}, "[3] searching \"owl\"...\n"},
		{"success", types.SearchState{Result: types.Success([]types.ImageItem{{}, {}}), Term: "owl", Seq: 3}, "[3] \"owl\": 2 items\n"},
		{"error verbatim", types.SearchState{Result: types.Failure[[]types.ImageItem](errors.New("timeout")), Term: "x", Seq: 1}, "[1] \"x\": error: timeout\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatState(tt.state, &buf)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable([]types.ImageItem{
		{Title: strings.Repeat("long title ", 10), Author: `nobody@flickr.com ("owner1")`, DateTaken: "2025-01-10T14:23:11-08:00", Media: types.Media{M: "https://img/1.jpg"}},
		{Title: "Quills", Author: "owner2"},
	}, &buf)

	out := buf.String()
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "owner1")
	assert.NotContains(t, out, "nobody@flickr.com")
	assert.Contains(t, out, "...")
	assert.Contains(t, out, "https://img/1.jpg")
	assert.Contains(t, out, "2 results")
}

func TestFormatTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(nil, &buf)
	assert.Equal(t, "No results found.\n", buf.String())
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	items := []types.ImageItem{{Title: "a", Media: types.Media{M: "u"}, DateTaken: "d", AuthorID: "id"}}
	require.NoError(t, FormatJSON(items, &buf))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "a", decoded[0]["title"])
	assert.Equal(t, "d", decoded[0]["date_taken"])
	assert.Equal(t, "id", decoded[0]["author_id"])
	assert.Equal(t, map[string]any{"m": "u"}, decoded[0]["media"])
}

func TestFormatJSON_NilIsEmptyArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(nil, &buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestFormatYAML(t *testing.T) {
	var buf bytes.Buffer
	items := []types.ImageItem{{Title: "a", Media: types.Media{M: "u"}, Tags: "x y"}}
	require.NoError(t, FormatYAML(items, &buf))

	var decoded []types.ImageItem
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, items, decoded)
	assert.Contains(t, buf.String(), "date_taken:")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short", "owl", 10, "owl"},
		{"exact", "0123456789", 10, "0123456789"},
		{"ascii cut", "0123456789abc", 10, "0123456..."},
		{"accented", "Porc-épic du Canada", 10, "Porc-ép..."},
		{"emoji", "🦔🦔🦔🦔🦔🦔🦔🦔🦔🦔🦔", 10, "🦔🦔🦔🦔🦔🦔🦔..."},
		{"multibyte fits", "ハリネズミ", 5, "ハリネズミ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
			assert.LessOrEqual(t, utf8.RuneCountInString(got), tt.max)
		})
	}
}
