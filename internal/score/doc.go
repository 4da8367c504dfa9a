// Package score turns a deduplicated issue set into a 0-100 quality score,
// a letter grade, per-category breakdown, metrics, and recommendations.
//
// Each issue contributes severityPenalty × toolWeight × categoryMultiplier to
// its category's penalty; category penalties are scaled by fixed category
// weights and summed into the aggregate deduction. The weight constants are a
// compatibility contract inherited from the scoring model this implements and
// must not be retuned.
//
// Score is a total function: it never fails, defaults malformed fields, and
// short-circuits an empty issue set to a perfect A+ result.
package score
