// Package errors provides structured error types for the property store.
//
// Errors are categorized by Op (the operation that failed) and Kind (error category).
// The Error type carries the property or subject name, a detail message, the offending
// value, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.OpSet, errors.KindInvalidArgument).
//		Name("Property 1").
//		Detail("type %s does not match value type %s", want, got).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotFound(errors.OpUnset, "property", name)
//	err := errors.OutOfMemory(errors.OpSubscribe, "listener table", 64)
//
// Callers test for a category with the package sentinels:
//
//	if errors.Is(err, propstoreerrors.ErrNotFound) { ... }
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
