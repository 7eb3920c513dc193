package core

// QueryGroupDef groups several subqueries under one root XPath expression.
// Each subquery's effective XPath, when evaluated, is RootQuery concatenated
// with the subquery's own Query; results are re-aligned against the root
// node set by query.RunGroupedQueries.
type QueryGroupDef struct {
	Name      string     `yaml:"name"`
	RootQuery string     `yaml:"root_query"`
	QueryDefs []QueryDef `yaml:"query_defs"`
}

// ParserDef is the immutable, user-authored definition of one parser: a
// name, an optional URL filter, the queries and query groups it references,
// and the relation templates it emits.
type ParserDef struct {
	ParserName     string             `yaml:"parser_name"`
	URLRegexp      string             `yaml:"url_regexp"`
	QueryDefs      []QueryDef         `yaml:"query_defs"`
	QueryGroupDefs []QueryGroupDef    `yaml:"query_group_defs"`
	RelationTmpls  []RelationTemplate `yaml:"relation_tmpls"`
}
