package audience

// Result is the three-valued outcome of evaluating a condition. Unknown is
// deliberately distinct from False: a missing attribute means "cannot tell",
// and combinators must not silently coerce that into a definite answer.
type Result int8

const (
	Unknown Result = iota
	False
	True
)

// String implements fmt.Stringer for diagnostics.
func (r Result) String() string {
	switch r {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// Evaluate walks the condition tree against the given attribute map and
// returns the three-valued result. A nil attribute map is treated as empty.
// The function is pure: no side effects, no mutation of its inputs.
func Evaluate(c Condition, attrs map[string]any) Result {
	switch c.Op {
	case OperatorAnd:
		return evalAnd(c.Operands, attrs)
	case OperatorOr:
		return evalOr(c.Operands, attrs)
	case OperatorNot:
		return evalNot(c.Operands, attrs)
	default:
		return evalLeaf(c, attrs)
	}
}

// Match reports whether any of the given condition trees evaluates to exactly
// True. Experiments reference audiences as an OR-joined list, and entry
// requires a definite match: both False and Unknown deny.
func Match(conds []Condition, attrs map[string]any) bool {
	for _, c := range conds {
		if Evaluate(c, attrs) == True {
			return true
		}
	}
	return false
}

// evalAnd: any False wins, otherwise any Unknown taints the result.
func evalAnd(operands []Condition, attrs map[string]any) Result {
	sawUnknown := false
	for _, op := range operands {
		switch Evaluate(op, attrs) {
		case False:
			return False
		case Unknown:
			sawUnknown = true
		}
	}
	if sawUnknown {
		return Unknown
	}
	return True
}

// evalOr: any True wins, otherwise any Unknown taints the result.
func evalOr(operands []Condition, attrs map[string]any) Result {
	sawUnknown := false
	for _, op := range operands {
		switch Evaluate(op, attrs) {
		case True:
			return True
		case Unknown:
			sawUnknown = true
		}
	}
	if sawUnknown {
		return Unknown
	}
	return False
}

// evalNot inverts definite results and leaves Unknown alone. Only the first
// operand is considered; a bare "not" without operands is malformed.
func evalNot(operands []Condition, attrs map[string]any) Result {
	if len(operands) == 0 {
		return Unknown
	}
	switch Evaluate(operands[0], attrs) {
	case True:
		return False
	case False:
		return True
	default:
		return Unknown
	}
}

// evalLeaf compares the user's attribute to the condition value by exact
// equality within the value's type category. Numbers compare as float64 so
// that an int attribute matches a JSON-decoded condition value. A missing
// attribute or a cross-category comparison yields Unknown.
func evalLeaf(c Condition, attrs map[string]any) Result {
	got, ok := attrs[c.Name]
	if !ok {
		return Unknown
	}

	switch want := c.Value.(type) {
	case string:
		s, ok := got.(string)
		if !ok {
			return Unknown
		}
		return boolResult(s == want)
	case bool:
		b, ok := got.(bool)
		if !ok {
			return Unknown
		}
		return boolResult(b == want)
	default:
		w, ok := toFloat64(c.Value)
		if !ok {
			// Malformed condition value (nil, object, list).
			return Unknown
		}
		g, ok := toFloat64(got)
		if !ok {
			return Unknown
		}
		return boolResult(g == w)
	}
}

func boolResult(b bool) Result {
	if b {
		return True
	}
	return False
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
