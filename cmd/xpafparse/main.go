// Command xpafparse runs one document against a bank of parser definitions
// and prints the resulting relations to stdout. It is the out-of-core CLI
// collaborator named in spec §6, equivalent to the original parse_tool.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/oxhq/xpaf/bank"
	"github.com/oxhq/xpaf/compile"
	"github.com/oxhq/xpaf/core"
	"github.com/oxhq/xpaf/docio"
	"github.com/oxhq/xpaf/parser"
)

func main() {
	// Loads a local .env into the process environment if present; a missing
	// .env is not an error. No flag takes its default from the environment.
	_ = godotenv.Load()

	var inputFilePath string
	var parserDefsGlob string
	var abortOnParseError bool

	root := &cobra.Command{
		Use:   "xpafparse",
		Short: "Run one document against a bank of parser definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(inputFilePath, parserDefsGlob, abortOnParseError)
		},
	}

	root.Flags().StringVar(&inputFilePath, "input-file-path", "", "path to a URL\\nRAW_HTTP_RESPONSE document")
	root.Flags().StringVar(&parserDefsGlob, "parser-defs-glob", "", "doublestar glob of YAML parser definition files")
	root.Flags().BoolVar(&abortOnParseError, "abort-on-parse-error", false,
		"abort the process on the first per-template error (cardinality violation or grouped-query alignment failure), instead of logging and continuing; results that fail post-processing are dropped without a report")
	_ = root.MarkFlagRequired("input-file-path")
	_ = root.MarkFlagRequired("parser-defs-glob")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(inputFilePath, parserDefsGlob string, abortOnParseError bool) error {
	doc, err := docio.ReadDocumentFile(inputFilePath)
	if err != nil {
		return err
	}

	defs, err := docio.LoadParserDefs(parserDefsGlob)
	if err != nil {
		return err
	}

	parsers := make([]*parser.Parser, 0, len(defs))
	for _, def := range defs {
		compiled, err := compile.Compile(def)
		if err != nil {
			return err
		}
		p, err := parser.New(compiled)
		if err != nil {
			return err
		}
		parsers = append(parsers, p)
	}

	b, err := bank.New(parsers)
	if err != nil {
		return err
	}

	policy := core.ErrorPolicyLogError
	if abortOnParseError {
		policy = core.ErrorPolicyAbortProcess
	}

	parsed, err := b.ParseDocument(doc, policy, core.StderrLogger{})
	if err != nil {
		return err
	}

	printParsedDocument(parsed)
	return nil
}

func printParsedDocument(doc core.ParsedDocument) {
	fmt.Printf("url: %s\n", doc.URL)
	for _, out := range doc.ParserOutputs {
		fmt.Printf("parser: %s\n", out.ParserName)
		for _, rel := range out.Relations {
			fmt.Printf("  %s %s %s", rel.Subject, rel.Predicate, rel.Object)
			if rel.Userdata != "" {
				fmt.Printf(" [%s]", rel.Userdata)
			}
			for _, ann := range rel.Annotations {
				fmt.Printf(" %s=%s", ann.Name, ann.Value)
			}
			fmt.Println()
		}
	}
}
