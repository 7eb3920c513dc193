package docio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/xpaf/core"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.raw")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadDocumentFileStripsHeadersAndDetectsHTML(t *testing.T) {
	path := writeFixture(t, "http://x/\r\nHTTP/1.1 200 OK\r\nContent-Type: text/html; charset=utf-8\r\n\r\n<html><title>Hi</title></html>")

	doc, err := ReadDocumentFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://x/", doc.URL)
	assert.Equal(t, "<html><title>Hi</title></html>", doc.Content)
	assert.Equal(t, core.ContentTypeHTML, doc.ContentType)
}

func TestReadDocumentFileDetectsXML(t *testing.T) {
	path := writeFixture(t, "http://x/feed\nContent-Type: application/xml\n\n<feed></feed>")

	doc, err := ReadDocumentFile(path)
	require.NoError(t, err)
	assert.Equal(t, core.ContentTypeXML, doc.ContentType)
	assert.Equal(t, "<feed></feed>", doc.Content)
}

func TestReadDocumentFileUnknownContentType(t *testing.T) {
	path := writeFixture(t, "http://x/\n\nplain body")

	doc, err := ReadDocumentFile(path)
	require.NoError(t, err)
	assert.Equal(t, core.ContentTypeUnknown, doc.ContentType)
}

func TestReadDocumentFileMissingURLLine(t *testing.T) {
	path := writeFixture(t, "no newline at all")

	_, err := ReadDocumentFile(path)
	assert.Error(t, err)
}
