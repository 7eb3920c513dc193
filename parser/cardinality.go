package parser

import "github.com/oxhq/xpaf/core"

// numRelationsTracker is the running N shared across every MANY-cardinality
// field of one relation template. It is a tagged (set, n) pair rather than
// a sentinel -1, per the cardinality-resolution design note: the first
// MANY field observed fixes N for the rest of the template: every later
// MANY field is checked against that fixed N independently, a mismatch on
// one field never corrupts the comparison for another.
type numRelationsTracker struct {
	set bool
	n   int
}

// observe records length against the tracker. The first call always
// succeeds and fixes n; subsequent calls succeed only if length matches the
// fixed n.
func (t *numRelationsTracker) observe(length int) bool {
	if !t.set {
		t.set = true
		t.n = length
		return true
	}
	return t.n == length
}

// computeNumRelations implements §4.5's cardinality resolution: given the
// subject/object fields and every annotation's cardinality and resolved
// result-list length, it returns how many relations to emit, whether the
// whole relation must be skipped, and which annotations (by index) must be
// omitted. errs receives a policy-gated report for every violation.
func computeNumRelations(
	errs *core.ErrorSink,
	subjectCard core.Cardinality, subjectLen int,
	objectCard core.Cardinality, objectLen int,
	annotationCards []core.Cardinality, annotationLens []int, annotationNames []string,
) (numRelations int, skipRelation bool, skipAnnotation []bool) {
	tracker := &numRelationsTracker{}
	skipAnnotation = make([]bool, len(annotationCards))

	if !checkField(tracker, subjectCard, subjectLen) {
		skipRelation = true
		reportCardinalityViolation(errs, subjectCard, "subject", subjectLen, tracker)
	}
	if !checkField(tracker, objectCard, objectLen) {
		skipRelation = true
		reportCardinalityViolation(errs, objectCard, "object", objectLen, tracker)
	}
	for i, card := range annotationCards {
		if !checkField(tracker, card, annotationLens[i]) {
			skipAnnotation[i] = true
			reportCardinalityViolation(errs, card, "annotation "+annotationNames[i], annotationLens[i], tracker)
		}
	}

	if skipRelation {
		return 0, true, skipAnnotation
	}
	if !tracker.set {
		return 1, false, skipAnnotation
	}
	return tracker.n, false, skipAnnotation
}

func checkField(tracker *numRelationsTracker, card core.Cardinality, length int) bool {
	if card == core.CardinalityOne {
		return length == 1
	}
	return tracker.observe(length)
}

func reportCardinalityViolation(errs *core.ErrorSink, card core.Cardinality, field string, length int, tracker *numRelationsTracker) {
	if card == core.CardinalityOne {
		errs.Report("%s cardinality ONE requires exactly one result, got %d", field, length)
		return
	}
	errs.Report("%s cardinality MANY length mismatch: expected %d, got %d", field, tracker.n, length)
}
