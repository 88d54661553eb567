package roster

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names reported on Table.Encoding.
const (
	EncodingUTF8    = "utf-8"
	EncodingUTF8BOM = "utf-8-bom"
	EncodingUTF16LE = "utf-16le"
	EncodingUTF16BE = "utf-16be"
	EncodingLatin1  = "latin-1"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decode strips any byte order mark and converts the roster to UTF-8.
// Spreadsheet exports commonly arrive as UTF-8 with BOM, UTF-16 or Latin-1.
func decode(data []byte) ([]byte, string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return data[len(bomUTF8):], EncodingUTF8BOM, nil
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		name := EncodingUTF16LE
		if bytes.HasPrefix(data, bomUTF16BE) {
			name = EncodingUTF16BE
		}
		// ExpectBOM lets the mark pick the byte order and drops it.
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		out, err := dec.Bytes(data)
		if err != nil {
			return nil, "", fmt.Errorf("decode %s: %w", name, err)
		}
		return out, name, nil
	case utf8.Valid(data):
		return data, EncodingUTF8, nil
	default:
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, "", fmt.Errorf("decode %s: %w", EncodingLatin1, err)
		}
		return out, EncodingLatin1, nil
	}
}
