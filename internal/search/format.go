// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/imagesearch/pkg/types"
)

// FormatState writes a one-line summary of st to w. Errors are written with
// the cause's own message, untouched.
func FormatState(st types.SearchState, w io.Writer) {
	switch st.Status {
	case types.StatusLoading:
		fmt.Fprintf(w, "[%d] searching %q...\n", st.Seq, st.Term)
	case types.StatusSuccess:
		fmt.Fprintf(w, "[%d] %q: %d items\n", st.Seq, st.Term, len(st.Data))
	case types.StatusError:
		fmt.Fprintf(w, "[%d] %q: error: %v\n", st.Seq, st.Term, st.Err)
	default:
		fmt.Fprintln(w, "idle")
	}
}

// FormatTable writes items as a human-readable table to w.
func FormatTable(items []types.ImageItem, w io.Writer) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-50s  %-24s  %-25s  %s\n",
		"#", "Title", "Author", "Taken", "Image")
	fmt.Fprintln(w, strings.Repeat("-", 130))

	for i, it := range items {
		fmt.Fprintf(w, "%-4d  %-50s  %-24s  %-25s  %s\n",
			i+1, truncate(it.Title, 50), truncate(it.AuthorName(), 24), it.DateTaken, it.Media.M)
	}

	fmt.Fprintf(w, "\n%d results\n", len(items))
}

// FormatJSON writes items as indented JSON to w.
func FormatJSON(items []types.ImageItem, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if items == nil {
		items = []types.ImageItem{}
	}
	return enc.Encode(items)
}

// FormatYAML writes items as a YAML sequence to w.
func FormatYAML(items []types.ImageItem, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if items == nil {
		items = []types.ImageItem{}
	}
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

// truncate shortens s to at most max runes, marking the cut with "...".
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-3]) + "..."
}
