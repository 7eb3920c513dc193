package core

import "regexp"

// OpKind identifies the shape of a PostProcessingOp. Substr and Convert are
// reserved for a future release; the compiler rejects them unconditionally.
type OpKind int

const (
	OpReplace OpKind = iota
	OpExtract
	OpSubstr
	OpConvert
)

func (k OpKind) String() string {
	switch k {
	case OpReplace:
		return "replace"
	case OpExtract:
		return "extract"
	case OpSubstr:
		return "substr"
	case OpConvert:
		return "convert"
	default:
		return "unknown"
	}
}

// PostProcessingOp is one step of a QueryDef's pipeline. Exactly one of the
// field groups below is meaningful, selected by Kind:
//   - OpReplace: Regexp, Rewrite, Global
//   - OpExtract: Regexp
//   - OpSubstr, OpConvert: reserved, never populated by a valid definition
//
// Compiled is filled in by the DefinitionCompiler and consulted at run time
// by postproc.Run; it is nil until compilation succeeds.
type PostProcessingOp struct {
	Kind     OpKind `yaml:"-"`
	Regexp   string `yaml:"-"`
	Rewrite  string `yaml:"-"`
	Global   bool   `yaml:"-"`
	Compiled *regexp.Regexp
}

// QueryDef names one XPath query and its ordered post-processing pipeline.
// Name matches [A-Za-z_]+ — digits are forbidden so that synthesized
// inlined-query names ("0", "1", ...) can never collide with a user name.
type QueryDef struct {
	Name              string             `yaml:"name"`
	Query             string             `yaml:"query"`
	PostProcessingOps []PostProcessingOp `yaml:"post_processing_ops"`
}
