package docio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadParserDefsConcatenatesAcrossGlobAndDocuments(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(`
parser_name: one
---
parser_name: two
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(`
parser_name: three
`), 0o644))

	defs, err := LoadParserDefs(filepath.Join(dir, "*.yaml"))
	require.NoError(t, err)
	require.Len(t, defs, 3)

	var names []string
	for _, d := range defs {
		names = append(names, d.ParserName)
	}
	assert.ElementsMatch(t, []string{"one", "two", "three"}, names)
}

func TestLoadParserDefsEmptyGlobReturnsNoDefs(t *testing.T) {
	dir := t.TempDir()
	defs, err := LoadParserDefs(filepath.Join(dir, "*.yaml"))
	require.NoError(t, err)
	assert.Empty(t, defs)
}
