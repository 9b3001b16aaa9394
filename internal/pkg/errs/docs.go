// Package errs provides standardized error types for the fulfillment application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - ForbiddenError and UnauthenticatedError: For authorization failures
//   - ConflictError: For duplicate keys and lost optimistic updates
//   - InvalidTransitionError: For moves absent from a status table
//   - InsufficientStockError and InsufficientReturnQuantityError: For quantity checks
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The HTTP adapter classifies responses with errors.Is against the sentinels,
// so every error returned by the core should wrap one of them.
package errs
