package docio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/oxhq/xpaf/core"
)

// LoadParserDefs expands glob (doublestar syntax, e.g. "defs/**/*.yaml")
// against the filesystem and decodes every matched file as a stream of YAML
// documents, one ParserDef per document, concatenating the results across
// every matched file in glob match order — the YAML-native analogue of the
// original's proto-text file concatenation.
func LoadParserDefs(glob string) ([]*core.ParserDef, error) {
	matches, err := doublestar.FilepathGlob(glob)
	if err != nil {
		return nil, fmt.Errorf("docio: glob %q: %w", glob, err)
	}

	var defs []*core.ParserDef
	for _, path := range matches {
		fileDefs, err := decodeParserDefFile(path)
		if err != nil {
			return nil, err
		}
		defs = append(defs, fileDefs...)
	}
	return defs, nil
}

func decodeParserDefFile(path string) ([]*core.ParserDef, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("docio: open %s: %w", path, err)
	}
	defer f.Close()

	var defs []*core.ParserDef
	dec := yaml.NewDecoder(f)
	for {
		var def core.ParserDef
		if err := dec.Decode(&def); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("docio: decode %s: %w", path, err)
		}
		defs = append(defs, &def)
	}
	return defs, nil
}
