package extract

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// decoders are tried in order for plain text and markdown files; the first
// successful decode wins. UTF-8 is validated directly, the legacy charsets
// through x/text decoders.
var decoders = []struct {
	name string
	dec  *encoding.Decoder
}{
	{"latin-1", charmap.ISO8859_1.NewDecoder()},
	{"windows-1252", charmap.Windows1252.NewDecoder()},
}

func extractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	for _, d := range decoders {
		decoded, err := d.dec.Bytes(data)
		if err != nil {
			continue
		}
		return string(decoded), nil
	}
	return "", fmt.Errorf("could not decode file with any candidate charset")
}
