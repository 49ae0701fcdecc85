package mail

import (
	"fmt"
	"strings"
)

const (
	// maxLineLength is the recommended maximum header line length from RFC 2822.
	maxLineLength = 78

	// maxEncodedWordLength is the hard limit on a single encoded word from RFC 2047.
	maxEncodedWordLength = 75
)

// headerSpecials are the RFC 822 structural characters that break header
// parsing when they appear unquoted. The period is excluded here so common
// free-text bodies like version numbers stay readable on the wire; dotted
// display names are handled by encodeDisplayName.
const headerSpecials = "()<>@,;:\\\"[]"

// EncodeWord encodes a header field body as RFC 2047 encoded words when it
// contains characters outside printable US-ASCII or structural characters
// that would break header parsing. Plain printable ASCII is returned
// unchanged. Encoding is deterministic: the same input always yields the
// same output.
func EncodeWord(text string) string {
	if !needsEncoding(text) {
		return text
	}
	return encodeText(text)
}

// encodeDisplayName encodes a recipient or sender display name. Unlike free
// header text, a name must be a single phrase atom on the wire, so names
// containing spaces or periods are encoded even when fully ASCII.
func encodeDisplayName(name string) string {
	if !needsEncoding(name) && !strings.ContainsAny(name, " .") {
		return name
	}
	return encodeText(name)
}

func encodeText(text string) string {
	// Payload budget per encoded word after the "=?utf-8?q?" and "?=" affixes.
	const maxPayload = maxEncodedWordLength - len("=?utf-8?q?") - len("?=")

	var words []string
	var current strings.Builder
	for _, r := range text {
		chunk := encodeRune(r)
		if current.Len() > 0 && current.Len()+len(chunk) > maxPayload {
			words = append(words, "=?utf-8?q?"+current.String()+"?=")
			current.Reset()
		}
		current.WriteString(chunk)
	}
	if current.Len() > 0 {
		words = append(words, "=?utf-8?q?"+current.String()+"?=")
	}

	// Whitespace between adjacent encoded words is ignored by decoders.
	return strings.Join(words, " ")
}

// encodeRune Q-encodes a single rune. Space maps to underscore; printable
// ASCII other than '=', '?' and '_' passes through; everything else becomes
// "=XX" hex escapes, one per UTF-8 byte.
func encodeRune(r rune) string {
	if r == ' ' {
		return "_"
	}
	if r > ' ' && r <= '~' && r != '=' && r != '?' && r != '_' {
		return string(r)
	}
	var b strings.Builder
	for _, octet := range []byte(string(r)) {
		fmt.Fprintf(&b, "=%02X", octet)
	}
	return b.String()
}

// needsEncoding reports whether text contains characters that must be
// represented as encoded words inside a header field.
func needsEncoding(text string) bool {
	for _, r := range text {
		if r < ' ' || r > '~' {
			return true
		}
		if strings.ContainsRune(headerSpecials, r) {
			return true
		}
	}
	return false
}

// FoldLine splits a header field body into wire lines no longer than the
// recommended limit, breaking only at existing space boundaries. Continuation
// lines carry a single leading space, so stripping it and re-joining the
// lines with a space reproduces the original body. A single token longer
// than the limit is emitted unsplit.
func FoldLine(body string) []string {
	if len(body) <= maxLineLength {
		return []string{body}
	}

	tokens := strings.Split(body, " ")
	lines := make([]string, 0, len(body)/maxLineLength+1)
	current := tokens[0]
	for _, token := range tokens[1:] {
		if len(current)+1+len(token) > maxLineLength {
			lines = append(lines, current)
			current = " " + token
			continue
		}
		current += " " + token
	}
	return append(lines, current)
}

// Fold renders a header field body as a single folded wire string with CRLF
// separators between the lines produced by FoldLine.
func Fold(body string) string {
	return strings.Join(FoldLine(body), "\r\n")
}
