package postproc

import "strings"

// AbsolutizeURL resolves candidate against baseURL using the engine's
// deliberately simplistic, non-RFC3986 rule (preserved verbatim per the
// project's decision not to upgrade URL resolution — see DESIGN.md):
//
//   - if candidate contains a '/' at an index other than 0, it is already
//     absolute and replaces the base entirely;
//   - otherwise, if baseURL has no '/' at all, candidate is used as-is;
//   - otherwise, candidate is spliced in after baseURL's last '/' — or,
//     if candidate itself starts with '/', it replaces everything from
//     that last '/' onward.
//
// The rule is total: every input produces a result, so ok is always true.
// It exists purely to mirror a 20-year-old string-slicing shortcut, not to
// implement relative URL resolution correctly.
func AbsolutizeURL(baseURL, candidate string) (string, bool) {
	slashIdx := strings.IndexByte(candidate, '/')
	if slashIdx > 0 {
		return candidate, true
	}

	lastSlash := strings.LastIndexByte(baseURL, '/')
	if lastSlash < 0 {
		return candidate, true
	}

	substrLen := lastSlash + 1
	if slashIdx == 0 {
		substrLen = lastSlash
	}
	return baseURL[:substrLen] + candidate, true
}
