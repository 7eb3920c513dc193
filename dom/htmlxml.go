package dom

import (
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"

	"github.com/oxhq/xpaf/core"
)

// New parses doc.Content according to doc.ContentType and returns a
// DomContext ready for repeated Eval calls. Mirrors NewXPathWrapper's
// content-type dispatch: HTML and XML bodies are parsed by distinct
// libraries behind the same interface.
func New(doc core.Document) (DomContext, error) {
	switch doc.ContentType {
	case core.ContentTypeHTML:
		root, err := htmlquery.Parse(strings.NewReader(doc.Content))
		if err != nil {
			return nil, fmt.Errorf("dom: parse html: %w", err)
		}
		return &htmlContext{root: root}, nil
	case core.ContentTypeXML:
		root, err := xmlquery.Parse(strings.NewReader(doc.Content))
		if err != nil {
			return nil, fmt.Errorf("dom: parse xml: %w", err)
		}
		return &xmlContext{root: root}, nil
	default:
		return nil, fmt.Errorf("dom: unsupported content type %v", doc.ContentType)
	}
}

// htmlContext evaluates XPath against a golang.org/x/net/html tree via
// antchfx/htmlquery + antchfx/xpath.
type htmlContext struct {
	root *html.Node
}

func (c *htmlContext) Eval(expr string) (Result, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return Result{}, fmt.Errorf("dom: compile xpath %q: %w", expr, err)
	}
	nav := htmlquery.CreateXPathNavigator(c.root)
	v := compiled.Evaluate(nav)
	switch val := v.(type) {
	case bool:
		return Result{Type: ResultBoolean, Bool: val}, nil
	case float64:
		return Result{Type: ResultNumber, Number: val}, nil
	case string:
		return Result{Type: ResultString, String: val}, nil
	case *xpath.NodeIterator:
		var nodes []Node
		for val.MoveNext() {
			n, ok := val.Current().(*htmlquery.NodeNavigator)
			if !ok {
				continue
			}
			nodes = append(nodes, newHTMLNode(n))
		}
		return Result{Type: ResultNodeSet, Nodes: nodes}, nil
	default:
		return Result{}, fmt.Errorf("dom: xpath %q produced unsupported type %T", expr, v)
	}
}

// htmlNode wraps one *html.Node. Its identity is always the owner element,
// even for an attribute-axis result: the navigator's Current() never
// returns an attribute node of its own, so attrVal carries the attribute's
// value separately when non-nil.
type htmlNode struct {
	n       *html.Node
	attrVal *string
}

// newHTMLNode captures nav's current position, including its attribute
// value if nav sits on an attribute axis. Capturing Value() now matters:
// nav is a NodeNavigator that may be reused or advanced by the caller, so
// Content() cannot defer to it lazily.
func newHTMLNode(nav *htmlquery.NodeNavigator) *htmlNode {
	n := &htmlNode{n: nav.Current()}
	if nav.NodeType() == xpath.AttributeNode {
		v := nav.Value()
		n.attrVal = &v
	}
	return n
}

func (n *htmlNode) Parent() Node {
	if n.n == nil || n.n.Parent == nil {
		return nil
	}
	return &htmlNode{n: n.n.Parent}
}

func (n *htmlNode) Content() string {
	if n.attrVal != nil {
		return *n.attrVal
	}
	return htmlquery.InnerText(n.n)
}

func (n *htmlNode) Identity() any {
	return n.n
}

// xmlContext evaluates XPath against an antchfx/xmlquery tree.
type xmlContext struct {
	root *xmlquery.Node
}

func (c *xmlContext) Eval(expr string) (Result, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return Result{}, fmt.Errorf("dom: compile xpath %q: %w", expr, err)
	}
	nav := xmlquery.CreateXPathNavigator(c.root)
	v := compiled.Evaluate(nav)
	switch val := v.(type) {
	case bool:
		return Result{Type: ResultBoolean, Bool: val}, nil
	case float64:
		return Result{Type: ResultNumber, Number: val}, nil
	case string:
		return Result{Type: ResultString, String: val}, nil
	case *xpath.NodeIterator:
		var nodes []Node
		for val.MoveNext() {
			n, ok := val.Current().(*xmlquery.NodeNavigator)
			if !ok {
				continue
			}
			nodes = append(nodes, newXMLNode(n))
		}
		return Result{Type: ResultNodeSet, Nodes: nodes}, nil
	default:
		return Result{}, fmt.Errorf("dom: xpath %q produced unsupported type %T", expr, v)
	}
}

// xmlNode wraps one *xmlquery.Node. See htmlNode for why attribute-axis
// results carry their value separately from the owner element's identity.
type xmlNode struct {
	n       *xmlquery.Node
	attrVal *string
}

func newXMLNode(nav *xmlquery.NodeNavigator) *xmlNode {
	n := &xmlNode{n: nav.Current()}
	if nav.NodeType() == xpath.AttributeNode {
		v := nav.Value()
		n.attrVal = &v
	}
	return n
}

func (n *xmlNode) Parent() Node {
	if n.n == nil || n.n.Parent == nil {
		return nil
	}
	return &xmlNode{n: n.n.Parent}
}

func (n *xmlNode) Content() string {
	if n.attrVal != nil {
		return *n.attrVal
	}
	return n.n.InnerText()
}

func (n *xmlNode) Identity() any {
	return n.n
}
