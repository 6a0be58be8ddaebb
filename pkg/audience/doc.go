// Package audience evaluates boolean condition trees over user attributes.
//
// Experiments gate entry on audiences: named condition trees combining leaf
// attribute checks with "and", "or" and "not" operators. Evaluation is
// three-valued — a leaf whose attribute is missing from the input, or whose
// value cannot be compared, yields Unknown rather than False, and Unknown
// propagates through combinators the way SQL NULL does. Only a tree that
// evaluates to exactly True admits the user.
//
// # Usage
//
//	import "github.com/dmitrymomot/splitkit/pkg/audience"
//
//	var cond audience.Condition
//	err := json.Unmarshal([]byte(`["and", {"name": "browser_type", "value": "firefox"}]`), &cond)
//	if err != nil {
//		// handle error
//	}
//
//	result := audience.Evaluate(cond, map[string]any{"browser_type": "firefox"})
//	if result == audience.True {
//		// user matches
//	}
//
// Missing attributes do not deny by accident; they produce Unknown, which the
// caller treats the same as False when deciding entry but which keeps "we
// don't know" distinct from "we know it doesn't match":
//
//	audience.Evaluate(cond, nil) // audience.Unknown
//
// # Condition format
//
// Conditions unmarshal from the JSON shape used by experimentation
// datafiles: a leaf is an object with "name" and "value" keys, a combinator
// is an array whose first element is the operator string followed by its
// operands. An array without a leading operator defaults to "or".
//
// Evaluation is a pure function of the tree and the attribute map; it never
// mutates either and is safe for concurrent use.
package audience
