// Package debugdump writes fetched metadata to disk for inspection.
package debugdump

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// DefaultPath is where the dump lands when no path is configured.
const DefaultPath = "debug_metadata.json"

// Write pretty-prints raw JSON with a four-space indent and writes it to path.
// Key order is kept as received and \uXXXX escapes of printable characters
// are written out as UTF-8.
func Write(path string, raw []byte) error {
	if path == "" {
		path = DefaultPath
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(raw), "", "    "); err != nil {
		return fmt.Errorf("debugdump: indent: %w", err)
	}
	if err := os.WriteFile(path, unescapeUnicode(buf.Bytes()), 0o644); err != nil {
		return fmt.Errorf("debugdump: %w", err)
	}
	return nil
}

// unescapeUnicode rewrites \uXXXX escapes (and surrogate pairs) inside JSON
// strings as UTF-8. Quotes, backslashes, control characters and lone
// surrogates stay escaped so the output remains valid JSON.
func unescapeUnicode(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u`)) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 >= len(b) {
			out = append(out, b[i])
			continue
		}
		if b[i+1] != 'u' {
			out = append(out, b[i], b[i+1])
			i++
			continue
		}
		r, n := decodeEscape(b[i:])
		if n == 0 || r < 0x20 || r == '"' || r == '\\' {
			out = append(out, b[i], b[i+1])
			i++
			continue
		}
		out = utf8.AppendRune(out, r)
		i += n - 1
	}
	return out
}

// decodeEscape decodes the \uXXXX escape at the start of b, joining a
// following low surrogate when present. n is 0 when nothing usable was found.
func decodeEscape(b []byte) (r rune, n int) {
	r1, ok := hex4(b)
	if !ok {
		return 0, 0
	}
	if !utf16.IsSurrogate(r1) {
		return r1, 6
	}
	if r2, ok := hex4(b[6:]); ok {
		if r := utf16.DecodeRune(r1, r2); r != utf8.RuneError {
			return r, 12
		}
	}
	return 0, 0
}

func hex4(b []byte) (rune, bool) {
	if len(b) < 6 || b[0] != '\\' || b[1] != 'u' {
		return 0, false
	}
	v, err := strconv.ParseUint(string(b[2:6]), 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}
