// Package parser implements the Parser: orchestrating one document against
// one compiled ParserDef — filtering by URL, resolving every relation
// template's references through a fresh QueryResultsCache, applying
// cardinality rules, and emitting relations in declaration order.
package parser

import (
	"fmt"
	"regexp"

	"github.com/oxhq/xpaf/compile"
	"github.com/oxhq/xpaf/core"
	"github.com/oxhq/xpaf/dom"
	"github.com/oxhq/xpaf/query"
)

// Parser is a compiled ParserDef, immutable and safe for concurrent use
// against distinct (DomContext, url) pairs once built.
type Parser struct {
	compiled       *compile.Compiled
	urlRegexp      *regexp.Regexp
	tmplURLRegexps []*regexp.Regexp
}

// New builds a Parser from a compile.Compiled, pre-compiling every URL
// filter regexp (the parser-level one and each relation template's own) so
// Parse never fails on a malformed regexp it should have rejected at
// construction time.
func New(c *compile.Compiled) (*Parser, error) {
	urlRe, err := compileOptional(c.Def.URLRegexp)
	if err != nil {
		return nil, fmt.Errorf("parser %q: invalid url_regexp: %w", c.Def.ParserName, err)
	}

	tmplRes := make([]*regexp.Regexp, len(c.Def.RelationTmpls))
	for i, tmpl := range c.Def.RelationTmpls {
		re, err := compileOptional(tmpl.URLRegexp)
		if err != nil {
			return nil, fmt.Errorf("parser %q: relation template %d: invalid url_regexp: %w", c.Def.ParserName, i, err)
		}
		tmplRes[i] = re
	}

	return &Parser{compiled: c, urlRegexp: urlRe, tmplURLRegexps: tmplRes}, nil
}

func compileOptional(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	return regexp.Compile(pattern)
}

// Name returns the parser's declared name.
func (p *Parser) Name() string {
	return p.compiled.Def.ParserName
}

// ShouldParse reports whether url partially matches the parser's
// url_regexp, or true if it declared none.
func (p *Parser) ShouldParse(url string) bool {
	if p.urlRegexp == nil {
		return true
	}
	return p.urlRegexp.MatchString(url)
}

// Parse runs every relation template against dc in declaration order and
// returns the accumulated ParserOutput.
func (p *Parser) Parse(url string, dc dom.DomContext, policy core.ErrorPolicy, logger core.Logger) (core.ParserOutput, error) {
	errs := core.NewErrorSink(logger, policy)
	cache := NewQueryResultsCache()
	runner := query.New(dc, url, errs)

	output := core.ParserOutput{ParserName: p.Name()}

	for i, tmpl := range p.compiled.Def.RelationTmpls {
		if re := p.tmplURLRegexps[i]; re != nil && !re.MatchString(url) {
			continue
		}

		relations, err := p.evalTemplate(&tmpl, cache, runner, url, errs)
		if err != nil {
			return output, err
		}
		output.Relations = append(output.Relations, relations...)
	}

	return output, nil
}

func (p *Parser) evalTemplate(
	tmpl *core.RelationTemplate,
	cache *QueryResultsCache,
	runner *query.Runner,
	url string,
	errs *core.ErrorSink,
) ([]core.Relation, error) {
	subjectResults, err := p.getQueryResults(tmpl.Subject, cache, runner, url)
	if err != nil {
		return nil, err
	}
	objectResults, err := p.getQueryResults(tmpl.Object, cache, runner, url)
	if err != nil {
		return nil, err
	}

	annotationResults := make([]core.QueryResults, len(tmpl.AnnotationTmpls))
	annotationCards := make([]core.Cardinality, len(tmpl.AnnotationTmpls))
	annotationNames := make([]string, len(tmpl.AnnotationTmpls))
	annotationLens := make([]int, len(tmpl.AnnotationTmpls))
	for ai, ann := range tmpl.AnnotationTmpls {
		res, err := p.getQueryResults(ann.Value, cache, runner, url)
		if err != nil {
			return nil, err
		}
		annotationResults[ai] = res
		annotationCards[ai] = ann.ValueCardinality
		annotationNames[ai] = ann.Name
		annotationLens[ai] = len(res)
	}

	numRelations, skipRelation, skipAnnotation := computeNumRelations(
		errs,
		tmpl.SubjectCardinality, len(subjectResults),
		tmpl.ObjectCardinality, len(objectResults),
		annotationCards, annotationLens, annotationNames,
	)
	if skipRelation {
		return nil, nil
	}

	relations := make([]core.Relation, 0, numRelations)
	for j := 0; j < numRelations; j++ {
		subjIdx := indexFor(tmpl.SubjectCardinality, j)
		objIdx := indexFor(tmpl.ObjectCardinality, j)

		if subjIdx >= len(subjectResults) || !subjectResults[subjIdx].OK {
			continue
		}
		if objIdx >= len(objectResults) || !objectResults[objIdx].OK {
			continue
		}

		relation := core.Relation{
			Subject:   subjectResults[subjIdx].Value,
			Predicate: tmpl.Predicate,
			Object:    objectResults[objIdx].Value,
			Userdata:  tmpl.Userdata,
		}

		for ai, ann := range tmpl.AnnotationTmpls {
			if skipAnnotation[ai] {
				continue
			}
			idx := indexFor(ann.ValueCardinality, j)
			res := annotationResults[ai]
			if idx >= len(res) || !res[idx].OK {
				continue
			}
			relation.Annotations = append(relation.Annotations, core.Annotation{Name: ann.Name, Value: res[idx].Value})
		}

		relations = append(relations, relation)
	}

	return relations, nil
}

func indexFor(card core.Cardinality, j int) int {
	if card == core.CardinalityMany {
		return j
	}
	return 0
}

// getQueryResults implements §4.4's GetQueryResults: a cache hit returns the
// stable cached list; a miss dispatches on the QueryInfoMap entry — running
// a standalone query, running (and caching every subquery of) a whole
// group, substituting the document URL for the predefined %url%, or
// treating the reference as a literal.
func (p *Parser) getQueryResults(ref string, cache *QueryResultsCache, runner *query.Runner, url string) (core.QueryResults, error) {
	if ref == "" {
		return nil, nil
	}
	if cached, ok := cache.Get(ref); ok {
		return cached, nil
	}

	info, ok := p.compiled.Queries[ref]
	if !ok {
		return nil, fmt.Errorf("parser %q: reference %q not present in QueryInfoMap (invariant violation)", p.Name(), ref)
	}

	switch {
	case info.QueryDef != nil:
		results, err := runner.RunStandaloneQuery(info.QueryDef)
		if err != nil {
			return nil, err
		}
		cache.Set(ref, results)
		return results, nil
	case info.QueryGroupDef != nil:
		all, err := runner.RunGroupedQueries(info.QueryGroupDef)
		if err != nil {
			return nil, err
		}
		cache.SetMany(all)
		return all[ref], nil
	case ref == core.URLReferenceKey:
		results := core.QueryResults{{Value: url, OK: true}}
		cache.Set(ref, results)
		return results, nil
	default:
		results := core.QueryResults{{Value: ref, OK: true}}
		cache.Set(ref, results)
		return results, nil
	}
}
