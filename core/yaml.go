package core

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a Cardinality from the case-insensitive strings
// "ONE" or "MANY", matching the schema's enum fields.
func (c *Cardinality) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch strings.ToUpper(s) {
	case "ONE":
		*c = CardinalityOne
	case "MANY":
		*c = CardinalityMany
	default:
		return fmt.Errorf("core: invalid cardinality %q, want ONE or MANY", s)
	}
	return nil
}

// MarshalYAML renders a Cardinality as its schema string form.
func (c Cardinality) MarshalYAML() (any, error) {
	return c.String(), nil
}

// replaceOpBody and extractOpBody mirror the one-key-map shape a
// PostProcessingOp takes in a parser definition file:
//
//	- replace: {regexp: "...", rewrite: "...", global: true}
//	- extract: {regexp: "..."}
//	- substr: {}
//	- convert: {}
type replaceOpBody struct {
	Regexp  string `yaml:"regexp"`
	Rewrite string `yaml:"rewrite"`
	Global  bool   `yaml:"global"`
}

type extractOpBody struct {
	Regexp string `yaml:"regexp"`
}

// UnmarshalYAML decodes a PostProcessingOp from a single-key map naming its
// kind. Exactly one key must be present; substr and convert decode with no
// body — the DefinitionCompiler rejects both unconditionally.
func (op *PostProcessingOp) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]yaml.Node
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return fmt.Errorf("core: post-processing op must have exactly one key, got %d", len(raw))
	}

	for kind, body := range raw {
		switch kind {
		case "replace":
			var b replaceOpBody
			if err := body.Decode(&b); err != nil {
				return fmt.Errorf("core: decode replace op: %w", err)
			}
			op.Kind = OpReplace
			op.Regexp = b.Regexp
			op.Rewrite = b.Rewrite
			op.Global = b.Global
		case "extract":
			var b extractOpBody
			if err := body.Decode(&b); err != nil {
				return fmt.Errorf("core: decode extract op: %w", err)
			}
			op.Kind = OpExtract
			op.Regexp = b.Regexp
		case "substr":
			op.Kind = OpSubstr
		case "convert":
			op.Kind = OpConvert
		default:
			return fmt.Errorf("core: unknown post-processing op kind %q", kind)
		}
	}
	return nil
}

// MarshalYAML renders a PostProcessingOp back into its one-key-map form.
func (op PostProcessingOp) MarshalYAML() (any, error) {
	switch op.Kind {
	case OpReplace:
		return map[string]replaceOpBody{"replace": {Regexp: op.Regexp, Rewrite: op.Rewrite, Global: op.Global}}, nil
	case OpExtract:
		return map[string]extractOpBody{"extract": {Regexp: op.Regexp}}, nil
	case OpSubstr:
		return map[string]struct{}{"substr": {}}, nil
	case OpConvert:
		return map[string]struct{}{"convert": {}}, nil
	default:
		return nil, fmt.Errorf("core: unknown post-processing op kind %v", op.Kind)
	}
}
