package encoding

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnsupportedCharset is returned for charset names that cannot be resolved.
var ErrUnsupportedCharset = errors.New("unsupported charset")

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Lookup resolves a charset name as stored in file configurations. ISO-8859-1 is
// resolved strictly; the WHATWG index would alias it to Windows-1252.
func Lookup(name string) (xencoding.Encoding, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "UTF-8", "UTF8":
		return unicode.UTF8, nil
	case "ISO-8859-1", "ISO8859-1", "ISO_8859_1", "LATIN1":
		return charmap.ISO8859_1, nil
	case "ISO-8859-15", "LATIN9":
		return charmap.ISO8859_15, nil
	case "WINDOWS-1252", "CP1252":
		return charmap.Windows1252, nil
	}

	e, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", name, ErrUnsupportedCharset)
	}

	return e, nil
}

// Encode converts UTF-8 text into the named charset. Characters the charset cannot
// represent are an error, never silently replaced.
func Encode(s, charset string) ([]byte, error) {
	e, err := Lookup(charset)
	if err != nil {
		return nil, err
	}

	out, _, err := transform.Bytes(e.NewEncoder(), []byte(s))
	if err != nil {
		return nil, fmt.Errorf("encoding to %s: %w", charset, err)
	}

	return out, nil
}

// NewUTF8Reader returns a reader decoding r to UTF-8. A known charset is decoded
// directly; otherwise the encoding is detected:
//  1. BOM (UTF-8 BOM is stripped; UTF-16 LE/BE is decoded)
//  2. Valid UTF-8 is returned as-is
//  3. Heuristic detection via chardet
//  4. Fallback to ISO-8859-1
func NewUTF8Reader(r io.Reader, charset string) (io.Reader, error) {
	if charset != "" {
		e, err := Lookup(charset)
		if err != nil {
			return nil, err
		}

		return transform.NewReader(r, e.NewDecoder()), nil
	}

	br := bufio.NewReader(r)

	buf, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if bytes.HasPrefix(buf, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	if bytes.HasPrefix(buf, bomUTF16LE) {
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if bytes.HasPrefix(buf, bomUTF16BE) {
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	result, detectErr := chardet.NewTextDetector().DetectBest(buf)
	if detectErr == nil {
		switch result.Charset {
		case "UTF-8":
			return br, nil
		case "windows-1252":
			return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
		case "ISO-8859-15":
			return transform.NewReader(br, charmap.ISO8859_15.NewDecoder()), nil
		}
	}

	return transform.NewReader(br, charmap.ISO8859_1.NewDecoder()), nil
}

// DecodeString decodes stored file content for display.
func DecodeString(content []byte, charset string) (string, error) {
	r, err := NewUTF8Reader(bytes.NewReader(content), charset)
	if err != nil {
		return "", err
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("decoding content: %w", err)
	}

	return string(out), nil
}
