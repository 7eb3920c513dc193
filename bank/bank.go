// Package bank implements the ParserBank: holding many compiled Parsers,
// fanning one Document out to every parser that matches it, and collating
// their outputs into a single ParsedDocument.
package bank

import (
	"fmt"
	"sort"

	"github.com/oxhq/xpaf/core"
	"github.com/oxhq/xpaf/dom"
	"github.com/oxhq/xpaf/parser"
)

// ParserBank is immutable after construction and safe for concurrent
// ParseDocument calls against distinct documents.
type ParserBank struct {
	parsers map[string]*parser.Parser
	names   []string
}

// New builds a ParserBank from parsers, rejecting duplicate parser names.
func New(parsers []*parser.Parser) (*ParserBank, error) {
	byName := make(map[string]*parser.Parser, len(parsers))
	names := make([]string, 0, len(parsers))
	for _, p := range parsers {
		if _, exists := byName[p.Name()]; exists {
			return nil, fmt.Errorf("bank: duplicate parser name %q", p.Name())
		}
		byName[p.Name()] = p
		names = append(names, p.Name())
	}
	return &ParserBank{parsers: byName, names: names}, nil
}

// ParserNames returns every parser name the bank holds.
func (b *ParserBank) ParserNames() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// ShouldParse reports whether any held parser would parse url.
func (b *ParserBank) ShouldParse(url string) bool {
	for _, p := range b.parsers {
		if p.ShouldParse(url) {
			return true
		}
	}
	return false
}

// ParseDocument runs every parser whose ShouldParse matches doc.URL against
// one shared DomContext, and collates their non-empty outputs. Content
// types other than HTML/XML produce an output with the URL set and no
// parser outputs — the DOM is never constructed.
func (b *ParserBank) ParseDocument(doc core.Document, policy core.ErrorPolicy, logger core.Logger) (core.ParsedDocument, error) {
	result := core.ParsedDocument{URL: doc.URL}

	if doc.ContentType != core.ContentTypeHTML && doc.ContentType != core.ContentTypeXML {
		return result, nil
	}

	var selected []*parser.Parser
	for _, name := range b.names {
		p := b.parsers[name]
		if p.ShouldParse(doc.URL) {
			selected = append(selected, p)
		}
	}
	if len(selected) == 0 {
		return result, nil
	}

	dc, err := dom.New(doc)
	if err != nil {
		return result, fmt.Errorf("bank: %w", err)
	}

	// Deterministic order for debuggability; callers must still sort by
	// parser name before comparing outputs across banks, per §5.
	sort.Slice(selected, func(i, j int) bool { return selected[i].Name() < selected[j].Name() })

	for _, p := range selected {
		output, err := p.Parse(doc.URL, dc, policy, logger)
		if err != nil {
			return result, fmt.Errorf("bank: parser %q: %w", p.Name(), err)
		}
		if len(output.Relations) == 0 {
			continue
		}
		result.ParserOutputs = append(result.ParserOutputs, output)
	}

	return result, nil
}
