// Package errs provides standardized error types for the dispatch engine.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package covers the engine's error taxonomy:
//   - ObjectNotFoundError: a referenced object does not exist, or does not
//     exist in the queried relationship
//   - ObjectAlreadyExistsError: a duplicate identifier on creation (conflict)
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value failed semantic validation
//   - ValueIsOutOfRangeError: a value is outside its allowed range
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is can classify the failure
//
// Domain-specific failures that do not fit this taxonomy (for example the
// completion ordering violation) are declared as sentinels in their own
// domain packages.
package errs
