// Package validation evaluates records against template field specifications.
//
// Violations are values, not errors: a record failing validation is a routine
// outcome, and callers need the complete list so every field can be fixed in
// one pass. The only error conditions are structural, such as asking for a
// template the registry does not hold.
package validation
