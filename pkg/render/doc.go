// Package render defines the document renderer contract and the registry that
// resolves renderers by name.
//
// Renderers consume template field metadata purely for display and perform no
// validation themselves; they trust the validator's verdict.
package render
