package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/xpaf/core"
	"github.com/oxhq/xpaf/dom"
)

// fakeNode is a minimal dom.Node test double with an explicit parent chain.
type fakeNode struct {
	parent  *fakeNode
	content string
}

func (n *fakeNode) Parent() dom.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *fakeNode) Content() string { return n.content }

// Identity returns the fakeNode's own pointer: tests construct exactly one
// fakeNode per logical DOM position, so pointer identity already matches
// the contract dom.Node.Identity documents.
func (n *fakeNode) Identity() any { return n }

// fakeDom answers a fixed dom.Result per expression string.
type fakeDom struct {
	results map[string]dom.Result
}

func (d *fakeDom) Eval(expr string) (dom.Result, error) {
	r, ok := d.results[expr]
	if !ok {
		return dom.Result{}, nil
	}
	return r, nil
}

func newErrorSink() *core.ErrorSink {
	return &core.ErrorSink{Logger: core.StderrLogger{}, Policy: core.ErrorPolicyIgnore, Exit: func(int) {}}
}

func TestRunStandaloneQueryBoolean(t *testing.T) {
	d := &fakeDom{results: map[string]dom.Result{"//has": {Type: dom.ResultBoolean, Bool: true}}}
	r := New(d, "http://x/", newErrorSink())

	results, err := r.RunStandaloneQuery(&core.QueryDef{Name: "t", Query: "//has"})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, core.QueryResult{Value: "1", OK: true}, results[0])
}

func TestRunStandaloneQueryNodeSetSkipsEmptyContent(t *testing.T) {
	n1 := &fakeNode{content: "Hi"}
	n2 := &fakeNode{content: ""}
	d := &fakeDom{results: map[string]dom.Result{
		"//title": {Type: dom.ResultNodeSet, Nodes: []dom.Node{n1, n2}},
	}}
	r := New(d, "http://x/", newErrorSink())

	results, err := r.RunStandaloneQuery(&core.QueryDef{Name: "t", Query: "//title"})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Hi", results[0].Value)
}

func TestRunGroupedQueriesAlignsByAncestry(t *testing.T) {
	root1 := &fakeNode{content: "li1"}
	root2 := &fakeNode{content: "li2"}
	a1 := &fakeNode{parent: root1, content: "K1"}
	b1 := &fakeNode{parent: root1, content: "V1"}
	a2 := &fakeNode{parent: root2, content: "K2"}

	d := &fakeDom{results: map[string]dom.Result{
		"//li":                       {Type: dom.ResultNodeSet, Nodes: []dom.Node{root1, root2}},
		"//li/span[@class='k']":      {Type: dom.ResultNodeSet, Nodes: []dom.Node{a1, a2}},
		"//li/span[@class='v']":      {Type: dom.ResultNodeSet, Nodes: []dom.Node{b1}},
	}}
	r := New(d, "http://x/", newErrorSink())

	gd := &core.QueryGroupDef{
		Name:      "g",
		RootQuery: "//li",
		QueryDefs: []core.QueryDef{
			{Name: "a", Query: "/span[@class='k']"},
			{Name: "b", Query: "/span[@class='v']"},
		},
	}

	out, err := r.RunGroupedQueries(gd)

	require.NoError(t, err)
	aResults := out["%g.a%"]
	bResults := out["%g.b%"]
	require.Len(t, aResults, 2)
	require.Len(t, bResults, 2)
	assert.Equal(t, core.QueryResult{Value: "K1", OK: true}, aResults[0])
	assert.Equal(t, core.QueryResult{Value: "K2", OK: true}, aResults[1])
	assert.Equal(t, core.QueryResult{Value: "V1", OK: true}, bResults[0])
	assert.Equal(t, core.QueryResult{Value: "", OK: false}, bResults[1])
}

func TestRunGroupedQueriesNonNodeSetRootLeavesEmptyLists(t *testing.T) {
	d := &fakeDom{results: map[string]dom.Result{
		"//li": {Type: dom.ResultString, String: "not a node set"},
	}}
	r := New(d, "http://x/", newErrorSink())

	gd := &core.QueryGroupDef{
		Name:      "g",
		RootQuery: "//li",
		QueryDefs: []core.QueryDef{{Name: "a", Query: "/span"}},
	}

	out, err := r.RunGroupedQueries(gd)

	require.NoError(t, err)
	assert.Empty(t, out["%g.a%"])
}

func TestRunGroupedQueriesSlotCollisionKeepsFirst(t *testing.T) {
	root1 := &fakeNode{content: "li1"}
	a1 := &fakeNode{parent: root1, content: "first"}
	a2 := &fakeNode{parent: root1, content: "second"}

	d := &fakeDom{results: map[string]dom.Result{
		"//li":          {Type: dom.ResultNodeSet, Nodes: []dom.Node{root1}},
		"//li/span":     {Type: dom.ResultNodeSet, Nodes: []dom.Node{a1, a2}},
	}}
	r := New(d, "http://x/", newErrorSink())

	gd := &core.QueryGroupDef{
		Name:      "g",
		RootQuery: "//li",
		QueryDefs: []core.QueryDef{{Name: "a", Query: "/span"}},
	}

	out, err := r.RunGroupedQueries(gd)

	require.NoError(t, err)
	require.Len(t, out["%g.a%"], 1)
	assert.Equal(t, "first", out["%g.a%"][0].Value)
}
