package core

// QueryInfo is one entry of a QueryInfoMap. It carries at most one of
// QueryDef / QueryGroupDef; when both are nil the entry marks either a
// literal reference or the predefined "%url%" reference, both resolved at
// parse time rather than compile time.
type QueryInfo struct {
	QueryDef      *QueryDef
	QueryGroupDef *QueryGroupDef
}

// IsLiteralOrPredefined reports whether this entry carries no compiled
// query, i.e. it resolves to a literal string or to the document URL.
func (qi *QueryInfo) IsLiteralOrPredefined() bool {
	return qi.QueryDef == nil && qi.QueryGroupDef == nil
}

// QueryInfoMap is the frozen, shared lookup table a DefinitionCompiler
// builds for one ParserDef. It is read-only for the lifetime of every parse
// call against the compiled parser.
type QueryInfoMap map[string]*QueryInfo

// URLReferenceKey is the predefined reference every QueryInfoMap is
// pre-seeded with, resolving to the document URL at parse time.
const URLReferenceKey = "%url%"
