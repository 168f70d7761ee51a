package store

import (
	"golang.org/x/text/encoding/charmap"

	"github.com/liseur-glitch/gedbridge/errors"
)

// The consuming application stores sentence blobs in Windows-1252, a
// legacy single-byte codepage, not Unicode. Transcoding happens here at
// the row boundary; everything above this package works in UTF-8.
// Transliteration of text outside the codepage's repertoire is an
// external concern, so unsupported runes are substituted, not rejected.

// DecodeBlob converts a raw store blob to UTF-8 text. Windows-1252 maps
// every byte to a rune, so decoding cannot fail.
func DecodeBlob(blob []byte) string {
	if len(blob) == 0 {
		return ""
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(blob)
	if err != nil {
		// Unreachable for a single-byte decoder, but keep the raw
		// bytes rather than lose the row.
		return string(blob)
	}
	return string(decoded)
}

// EncodeBlob converts UTF-8 text to the store's codepage. Runes outside
// the repertoire are replaced with the codepage's substitution byte.
func EncodeBlob(text string) ([]byte, error) {
	if text == "" {
		return nil, nil
	}
	encoded, err := charmap.Windows1252.NewEncoder().
		Bytes([]byte(replaceUnsupported(text)))
	if err != nil {
		return nil, errors.Wrap(err, "encode blob")
	}
	return encoded, nil
}

// replaceUnsupported substitutes runes Windows-1252 cannot represent
// with '?', mirroring what the consuming application's own importer does.
func replaceUnsupported(text string) string {
	enc := charmap.Windows1252
	out := make([]rune, 0, len(text))
	for _, r := range text {
		if _, ok := enc.EncodeRune(r); ok {
			out = append(out, r)
		} else {
			out = append(out, '?')
		}
	}
	return string(out)
}
