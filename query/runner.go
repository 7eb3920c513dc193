// Package query implements the QueryRunner: evaluating a standalone
// QueryDef or a whole QueryGroupDef against a dom.DomContext and handing
// back post-processed core.QueryResults.
package query

import (
	"fmt"
	"strconv"

	"github.com/oxhq/xpaf/core"
	"github.com/oxhq/xpaf/dom"
	"github.com/oxhq/xpaf/postproc"
)

// Runner evaluates queries against one document. It is constructed fresh
// per parse call, bundling the DomContext, the document URL (the
// absolutization base), and the active error policy.
type Runner struct {
	Dom     dom.DomContext
	BaseURL string
	Errors  *core.ErrorSink
}

// New returns a Runner for one parse call.
func New(d dom.DomContext, baseURL string, errors *core.ErrorSink) *Runner {
	return &Runner{Dom: d, BaseURL: baseURL, Errors: errors}
}

// RunStandaloneQuery evaluates qd.Query and dispatches on its result type,
// producing a QueryResults list: one entry for scalar results, one entry
// per content-bearing node for a node-set result.
func (r *Runner) RunStandaloneQuery(qd *core.QueryDef) (core.QueryResults, error) {
	result, err := r.Dom.Eval(qd.Query)
	if err != nil {
		return nil, fmt.Errorf("query: evaluate %q: %w", qd.Query, err)
	}

	switch result.Type {
	case dom.ResultBoolean:
		raw := "0"
		if result.Bool {
			raw = "1"
		}
		return r.postProcessSingle(qd, raw), nil
	case dom.ResultNumber:
		return r.postProcessSingle(qd, formatNumber(result.Number)), nil
	case dom.ResultString:
		return r.postProcessSingle(qd, result.String), nil
	case dom.ResultNodeSet:
		return r.postProcessNodeSet(qd, result.Nodes), nil
	default:
		return nil, fmt.Errorf("query: %q produced unsupported result type %v", qd.Query, result.Type)
	}
}

func (r *Runner) postProcessSingle(qd *core.QueryDef, raw string) core.QueryResults {
	val, ok := postproc.Run(qd, raw, r.BaseURL)
	return core.QueryResults{{Value: val, OK: ok}}
}

func (r *Runner) postProcessNodeSet(qd *core.QueryDef, nodes []dom.Node) core.QueryResults {
	var results core.QueryResults
	for _, n := range nodes {
		raw := n.Content()
		if raw == "" {
			continue
		}
		val, ok := postproc.Run(qd, raw, r.BaseURL)
		results = append(results, core.QueryResult{Value: val, OK: ok})
	}
	return results
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// RunGroupedQueries evaluates gd.RootQuery to obtain the root node set, then
// every subquery against root_query+subquery.Query, re-aligning each
// subquery's node-set results against their root node by walking DOM
// ancestry. The returned map is keyed "%group.sub%", one entry per
// subquery, each a QueryResults of length exactly len(root nodes) (or, if
// the root query itself did not evaluate to a node-set, a zero-length list
// for every subquery).
func (r *Runner) RunGroupedQueries(gd *core.QueryGroupDef) (map[string]core.QueryResults, error) {
	rootResult, err := r.Dom.Eval(gd.RootQuery)
	if err != nil {
		return nil, fmt.Errorf("query: evaluate root %q: %w", gd.RootQuery, err)
	}

	out := make(map[string]core.QueryResults, len(gd.QueryDefs))

	if rootResult.Type != dom.ResultNodeSet {
		r.Errors.Report("grouped query %q: root query %q did not evaluate to a node-set", gd.Name, gd.RootQuery)
		for _, sub := range gd.QueryDefs {
			out[subqueryKey(gd, &sub)] = nil
		}
		return out, nil
	}

	rootIndex := make(map[any]int, len(rootResult.Nodes))
	for i, n := range rootResult.Nodes {
		rootIndex[n.Identity()] = i
	}
	numRoots := len(rootResult.Nodes)

	for i := range gd.QueryDefs {
		sub := &gd.QueryDefs[i]
		out[subqueryKey(gd, sub)] = r.runSubquery(gd, sub, rootIndex, numRoots)
	}
	return out, nil
}

func (r *Runner) runSubquery(gd *core.QueryGroupDef, sub *core.QueryDef, rootIndex map[any]int, numRoots int) core.QueryResults {
	slots := core.NewUnalignedResults(numRoots)
	filled := make([]bool, numRoots)

	result, err := r.Dom.Eval(gd.RootQuery + sub.Query)
	if err != nil || result.Type != dom.ResultNodeSet {
		r.Errors.Report("grouped query %q: subquery %q did not evaluate to a node-set", gd.Name, sub.Name)
		return slots
	}

	if len(result.Nodes) > numRoots {
		r.Errors.Logger.Warnf("grouped query %q: subquery %q returned %d nodes for %d roots",
			gd.Name, sub.Name, len(result.Nodes), numRoots)
	}

	for _, n := range result.Nodes {
		idx, found := alignToRoot(n, rootIndex)
		if !found {
			r.Errors.Report("grouped query %q: subquery %q: no root ancestor found for a result node",
				gd.Name, sub.Name)
			continue
		}
		if filled[idx] {
			r.Errors.Report("grouped query %q: subquery %q: root slot %d already filled, dropping duplicate result",
				gd.Name, sub.Name, idx)
			continue
		}

		raw := n.Content()
		val, ok := postproc.Run(sub, raw, r.BaseURL)
		slots[idx] = core.QueryResult{Value: val, OK: ok}
		filled[idx] = true
	}

	return slots
}

// alignToRoot walks n and its ancestors until one's identity is found in
// rootIndex.
func alignToRoot(n dom.Node, rootIndex map[any]int) (int, bool) {
	for cur := n; cur != nil; cur = cur.Parent() {
		if idx, ok := rootIndex[cur.Identity()]; ok {
			return idx, true
		}
	}
	return 0, false
}

func subqueryKey(gd *core.QueryGroupDef, sub *core.QueryDef) string {
	return "%" + gd.Name + "." + sub.Name + "%"
}
