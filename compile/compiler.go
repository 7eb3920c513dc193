// Package compile implements the DefinitionCompiler: validating a
// ParserDef, building its QueryInfoMap, inlining and de-duplicating
// anonymous XPath references, and rejecting reserved post-processing op
// kinds before any document is ever parsed.
package compile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/oxhq/xpaf/core"
)

// nameRe is the format every user-declared query and query-group name must
// match: letters and underscores only. Digits are forbidden so synthesized
// inlined names (decimal integers) can never collide with a user name.
var nameRe = regexp.MustCompile(`^[A-Za-z_]+$`)

// CompileError reports a compile-time (invariant) failure. These are always
// fatal — never gated by an ErrorPolicy.
type CompileError struct {
	ParserName string
	Msg        string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %q: %s", e.ParserName, e.Msg)
}

func newErr(parserName, format string, args ...any) error {
	return &CompileError{ParserName: parserName, Msg: fmt.Sprintf(format, args...)}
}

// Compiled is a ParserDef paired with its frozen QueryInfoMap, ready for
// repeated, concurrent parser.Parser.Parse calls.
type Compiled struct {
	Def     *core.ParserDef
	Queries core.QueryInfoMap
}

// Compile validates def and builds its QueryInfoMap. Compilation is
// all-or-nothing: any invariant violation returns a *CompileError and a nil
// Compiled.
func Compile(def *core.ParserDef) (*Compiled, error) {
	queries := core.QueryInfoMap{core.URLReferenceKey: {}}

	for i := range def.QueryDefs {
		qd := &def.QueryDefs[i]
		if !nameRe.MatchString(qd.Name) {
			return nil, newErr(def.ParserName, "query %q: name must match [A-Za-z_]+", qd.Name)
		}
		key := "%" + qd.Name + "%"
		if _, exists := queries[key]; exists {
			return nil, newErr(def.ParserName, "duplicate query name %q", qd.Name)
		}
		if err := compileOps(qd); err != nil {
			return nil, newErr(def.ParserName, "query %q: %v", qd.Name, err)
		}
		queries[key] = &core.QueryInfo{QueryDef: qd}
	}

	for gi := range def.QueryGroupDefs {
		gd := &def.QueryGroupDefs[gi]
		if !nameRe.MatchString(gd.Name) {
			return nil, newErr(def.ParserName, "query group %q: name must match [A-Za-z_]+", gd.Name)
		}
		for si := range gd.QueryDefs {
			sub := &gd.QueryDefs[si]
			if !nameRe.MatchString(sub.Name) {
				return nil, newErr(def.ParserName, "query group %q: subquery name %q must match [A-Za-z_]+", gd.Name, sub.Name)
			}
			key := "%" + gd.Name + "." + sub.Name + "%"
			if _, exists := queries[key]; exists {
				return nil, newErr(def.ParserName, "duplicate grouped query name %q", key)
			}
			if err := compileOps(sub); err != nil {
				return nil, newErr(def.ParserName, "query group %q subquery %q: %v", gd.Name, sub.Name, err)
			}
			queries[key] = &core.QueryInfo{QueryGroupDef: gd}
		}
	}

	c := &compiler{def: def, queries: queries, inlinedByXPath: make(map[string]string)}

	for ti := range def.RelationTmpls {
		tmpl := &def.RelationTmpls[ti]
		if err := c.processReferenceField(&tmpl.Subject); err != nil {
			return nil, err
		}
		if err := c.processReferenceField(&tmpl.Object); err != nil {
			return nil, err
		}
		for ai := range tmpl.AnnotationTmpls {
			if err := c.processReferenceField(&tmpl.AnnotationTmpls[ai].Value); err != nil {
				return nil, err
			}
		}
	}

	return &Compiled{Def: def, Queries: queries}, nil
}

// compileOps compiles every regexp in qd's post-processing pipeline and
// rejects the reserved OpSubstr/OpConvert kinds.
func compileOps(qd *core.QueryDef) error {
	for i := range qd.PostProcessingOps {
		op := &qd.PostProcessingOps[i]
		switch op.Kind {
		case core.OpReplace, core.OpExtract:
			compiled, err := regexp.Compile(op.Regexp)
			if err != nil {
				return fmt.Errorf("op %d: invalid regexp %q: %w", i, op.Regexp, err)
			}
			op.Compiled = compiled
		case core.OpSubstr, core.OpConvert:
			return fmt.Errorf("op %d: %s is reserved and not yet implemented", i, op.Kind)
		default:
			return fmt.Errorf("op %d: unknown op kind %v", i, op.Kind)
		}
	}
	return nil
}

// compiler carries the state ProcessReference needs across every
// RelationTemplate field of one ParserDef: the growing QueryInfoMap and the
// inlined-XPath dedup table.
type compiler struct {
	def            *core.ParserDef
	queries        core.QueryInfoMap
	inlinedByXPath map[string]string
	nextInlineID   int
}

// processReferenceField resolves *ref in place: a %query% or %group.sub%
// reference must already be registered; a "/..." inlined XPath is
// synthesized (or resolved to a prior synthesis of the same XPath string)
// into a "%N%" reference; anything else is a literal, registered under
// itself.
func (c *compiler) processReferenceField(ref *string) error {
	s := *ref
	if s == "" {
		return nil
	}

	if strings.HasPrefix(s, "%") || strings.HasSuffix(s, "%") {
		if len(s) < 3 || s[0] != '%' || s[len(s)-1] != '%' {
			return newErr(c.def.ParserName, "malformed query reference %q", s)
		}
		if _, ok := c.queries[s]; !ok {
			return newErr(c.def.ParserName, "unresolved query reference %q", s)
		}
		return nil
	}

	if strings.HasPrefix(s, "/") {
		if existing, ok := c.inlinedByXPath[s]; ok {
			*ref = existing
			return nil
		}
		name := strconv.Itoa(c.nextInlineID)
		c.nextInlineID++
		key := "%" + name + "%"
		c.queries[key] = &core.QueryInfo{QueryDef: &core.QueryDef{Name: name, Query: s}}
		c.inlinedByXPath[s] = key
		*ref = key
		return nil
	}

	// Literal: the string itself is the reference key, returned verbatim
	// at parse time.
	if _, ok := c.queries[s]; !ok {
		c.queries[s] = &core.QueryInfo{}
	}
	return nil
}
