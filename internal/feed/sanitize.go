// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import "bytes"

// sanitizeJSON rewrites the \' escape, which the feed endpoint emits inside
// strings but JSON does not allow, to a bare apostrophe. Other escapes
// (including an escaped backslash followed by a quote) are left untouched.
func sanitizeJSON(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\'`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		c := data[i]
		if c != '\\' || i+1 >= len(data) {
			out = append(out, c)
			continue
		}
		next := data[i+1]
		if next == '\'' {
			out = append(out, '\'')
		} else {
			out = append(out, c, next)
		}
		i++
	}
	return out
}
