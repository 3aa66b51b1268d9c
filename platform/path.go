package platform

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/wippyai/propstore/errors"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// EncodePath converts a UTF-8 path to UTF-16LE without a byte order mark.
func EncodePath(path string) ([]byte, error) {
	if !utf8.ValidString(path) {
		return nil, errors.InvalidArgument(errors.OpParse, path, "path is not valid UTF-8")
	}
	out, err := utf16le.NewEncoder().Bytes([]byte(path))
	if err != nil {
		return nil, errors.Wrap(errors.OpParse, errors.KindInvalidArgument, err, "encode path")
	}
	return out, nil
}

// DecodePath converts a UTF-16LE path back to UTF-8. Unpaired surrogates
// become U+FFFD.
func DecodePath(b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", errors.New(errors.OpParse, errors.KindInvalidArgument).
			Detail("odd UTF-16 byte length %d", len(b)).
			Value(len(b)).
			Build()
	}
	out, err := utf16le.NewDecoder().Bytes(b)
	if err != nil {
		return "", errors.Wrap(errors.OpParse, errors.KindInvalidArgument, err, "decode path")
	}
	return string(out), nil
}
