// Package template defines the field specifications and named templates that
// records are validated against, plus the registry that holds them.
//
// Templates are immutable once constructed: invalid type/constraint
// combinations (a select without options, numeric bounds on a text field, a
// malformed pattern) are rejected by the constructors so validation never has
// to second-guess its inputs.
package template
