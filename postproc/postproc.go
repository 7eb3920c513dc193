// Package postproc implements the post-processing pipeline applied to every
// raw query result: optional URL absolutization followed by an ordered
// sequence of regex replace/extract operations.
package postproc

import (
	"strings"

	"github.com/oxhq/xpaf/core"
)

// Run applies queryDef's post-processing pipeline to raw, which was
// produced by evaluating queryDef.Query against baseURL's document.
//
// If queryDef.Query ends in "/@href" or "/@src", raw is first absolutized
// against baseURL. Each PostProcessingOp then runs in declaration order;
// the first extract that fails to match stops the pipeline early with
// ok=false. replace never fails.
func Run(queryDef *core.QueryDef, raw, baseURL string) (string, bool) {
	buf := raw
	ok := true

	if isURLAttribute(queryDef.Query) {
		buf, ok = AbsolutizeURL(baseURL, buf)
		if !ok {
			return "", false
		}
	}

	for _, op := range queryDef.PostProcessingOps {
		switch op.Kind {
		case core.OpReplace:
			buf = runReplace(op, buf)
		case core.OpExtract:
			buf, ok = runExtract(op, buf)
			if !ok {
				return "", false
			}
		default:
			// Unreachable: the DefinitionCompiler rejects OpSubstr/OpConvert
			// at compile time, never letting a ParserDef with such an op
			// reach a parse call.
			panic("postproc: unreachable reserved op kind " + op.Kind.String())
		}
	}

	return buf, true
}

func isURLAttribute(query string) bool {
	return strings.HasSuffix(query, "/@href") || strings.HasSuffix(query, "/@src")
}

func runReplace(op core.PostProcessingOp, buf string) string {
	if op.Global {
		return op.Compiled.ReplaceAllString(buf, op.Rewrite)
	}

	loc := op.Compiled.FindStringIndex(buf)
	if loc == nil {
		return buf
	}
	rewritten := op.Compiled.ReplaceAllString(buf[loc[0]:loc[1]], op.Rewrite)
	return buf[:loc[0]] + rewritten + buf[loc[1]:]
}

func runExtract(op core.PostProcessingOp, buf string) (string, bool) {
	match := op.Compiled.FindStringSubmatch(buf)
	if match == nil {
		return "", false
	}
	if len(match) > 1 {
		// First capture group, matching the host regex library's convention
		// for "extracted" results. An empty-but-present group is ok=true
		// with an empty string (§9 Open Question (iii)).
		return match[1], true
	}
	return match[0], true
}
