// Package docio implements the out-of-core collaborators named in spec §6:
// reading a Document from its on-disk URL\nRAW_HTTP_RESPONSE wire format,
// and loading+concatenating parser definitions across a glob.
package docio

import (
	"fmt"
	"os"
	"strings"

	"github.com/oxhq/xpaf/core"
)

// ReadDocumentFile reads path in the "URL\nRAW_HTTP_RESPONSE" format: the
// first line is the document URL, and everything after it is a raw HTTP
// response whose headers are stripped by scanning for the first blank
// line ("\r\n\r\n" or "\n\n"). The stripped headers are consulted only to
// guess a content type from a Content-Type header; the returned Document's
// Content is the response body alone.
func ReadDocumentFile(path string) (core.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Document{}, fmt.Errorf("docio: read %s: %w", path, err)
	}

	url, rest, ok := cutFirstLine(string(data))
	if !ok {
		return core.Document{}, fmt.Errorf("docio: %s: missing URL line", path)
	}

	headerEnd := findHeaderEnd(rest)
	return core.Document{
		URL:         url,
		Content:     rest[headerEnd:],
		ContentType: detectContentType(rest[:headerEnd]),
	}, nil
}

func cutFirstLine(s string) (line, rest string, found bool) {
	idx := strings.IndexByte(s, '\n')
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSuffix(s[:idx], "\r"), s[idx+1:], true
}

func findHeaderEnd(s string) int {
	crlf := strings.Index(s, "\r\n\r\n")
	lf := strings.Index(s, "\n\n")
	if crlf >= 0 && (lf < 0 || crlf < lf) {
		return crlf + len("\r\n\r\n")
	}
	if lf >= 0 {
		return lf + len("\n\n")
	}
	return 0
}

func detectContentType(headers string) core.ContentType {
	lower := strings.ToLower(headers)
	idx := strings.Index(lower, "content-type:")
	if idx < 0 {
		return core.ContentTypeUnknown
	}
	line := lower[idx:]
	if end := strings.IndexAny(line, "\r\n"); end >= 0 {
		line = line[:end]
	}
	switch {
	case strings.Contains(line, "html"):
		return core.ContentTypeHTML
	case strings.Contains(line, "xml"):
		return core.ContentTypeXML
	default:
		return core.ContentTypeUnknown
	}
}
