package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParserDefDecodesFromYAML(t *testing.T) {
	doc := `
parser_name: titles
url_regexp: "^http://example\\.com/"
query_defs:
  - name: t
    query: "//title"
    post_processing_ops:
      - extract:
          regexp: "^(.*)$"
relation_tmpls:
  - subject: "%url%"
    object: "%t%"
    predicate: hasTitle
    subject_cardinality: ONE
    object_cardinality: ONE
    annotation_tmpls:
      - name: lang
        value: en
        value_cardinality: ONE
`
	var def ParserDef
	require.NoError(t, yaml.Unmarshal([]byte(doc), &def))

	assert.Equal(t, "titles", def.ParserName)
	require.Len(t, def.QueryDefs, 1)
	assert.Equal(t, "t", def.QueryDefs[0].Name)
	require.Len(t, def.QueryDefs[0].PostProcessingOps, 1)
	assert.Equal(t, OpExtract, def.QueryDefs[0].PostProcessingOps[0].Kind)
	require.Len(t, def.RelationTmpls, 1)
	assert.Equal(t, CardinalityOne, def.RelationTmpls[0].SubjectCardinality)
	require.Len(t, def.RelationTmpls[0].AnnotationTmpls, 1)
	assert.Equal(t, "lang", def.RelationTmpls[0].AnnotationTmpls[0].Name)
}

func TestPostProcessingOpRejectsMultipleKeys(t *testing.T) {
	doc := `
replace:
  regexp: a
extract:
  regexp: b
`
	var op PostProcessingOp
	err := yaml.Unmarshal([]byte(doc), &op)
	assert.Error(t, err)
}
