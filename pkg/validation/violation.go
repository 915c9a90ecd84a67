package validation

// Rule identifies which constraint a violation came from, so consumers can
// filter or group programmatically without parsing message text.
type Rule string

const (
	RuleRequired Rule = "required"
	RuleType     Rule = "type"
	RuleRange    Rule = "range"
	RuleLength   Rule = "length"
	RuleEnum     Rule = "enum"
	RulePattern  Rule = "pattern"
)

// Violation records a single reason a record fails validation for one field.
// Message is display text, stable in content but not a machine-readable code.
type Violation struct {
	Field   string `json:"field"`
	Rule    Rule   `json:"rule"`
	Message string `json:"message"`
}

// Result aggregates the violations produced by one validation pass. It is
// created fresh per call and never mutated after return.
type Result struct {
	Violations []Violation `json:"violations,omitempty"`
}

// Valid reports whether the record passed, i.e. no violations were recorded.
func (r Result) Valid() bool {
	return len(r.Violations) == 0
}

// Messages returns the violation messages in order, for display or report
// serialization.
func (r Result) Messages() []string {
	if len(r.Violations) == 0 {
		return nil
	}
	out := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		out[i] = v.Message
	}
	return out
}
