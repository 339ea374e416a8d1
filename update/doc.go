// Package update implements partial updates of tensor values.
//
// All functions work only through the value contract, so any
// representation can back either operand. The result is always a new Value
// created with the caller's BuilderFactory; inputs are never modified.
//
// Operand errors (mismatching types, non-sparse modifiers, removing from a
// dense tensor) are logged and returned as errors together with a nil
// Value. Modifier cells whose address cannot be resolved in the input are
// skipped.
package update
