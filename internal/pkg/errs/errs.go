package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound             = errors.New("object not found")
	ErrValueIsInvalid             = errors.New("value is invalid")
	ErrValueIsOutOfRange          = errors.New("value is out of range")
	ErrValueIsRequired            = errors.New("value is required")
	ErrForbidden                  = errors.New("forbidden")
	ErrConflict                   = errors.New("conflict")
	ErrInvalidTransition          = errors.New("invalid status transition")
	ErrInsufficientStock          = errors.New("insufficient stock")
	ErrInsufficientReturnQuantity = errors.New("insufficient return quantity")
	ErrUnauthenticated            = errors.New("unauthenticated")
)

// sanitize flattens multi-line values so they render on a single log line.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

// ObjectNotFoundError reports a missing referenced entity.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports malformed input.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ForbiddenError reports an authenticated caller lacking permission.
type ForbiddenError struct {
	Reason string
}

func NewForbiddenError(reason string) *ForbiddenError {
	return &ForbiddenError{Reason: reason}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s", ErrForbidden, e.Reason)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// ConflictError reports a duplicate key or a lost optimistic update.
type ConflictError struct {
	Subject string
	Cause   error
}

func NewConflictError(subject string) *ConflictError {
	return &ConflictError{Subject: subject}
}

func NewConflictErrorWithCause(subject string, cause error) *ConflictError {
	return &ConflictError{Subject: subject, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrConflict, e.Subject, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrConflict, e.Subject)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// InvalidTransitionError reports a move not present in a status table.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func NewInvalidTransitionError(entity string, from, to fmt.Stringer) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: entity, From: from.String(), To: to.String()}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change %s status from %s to %s", e.Entity, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// InsufficientStockError reports a reservation larger than the stock on hand.
// Available is negative when the current stock could not be read.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func NewInsufficientStockError(productID string, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{ProductID: productID, Requested: requested, Available: available}
}

func (e *InsufficientStockError) Error() string {
	if e.Available < 0 {
		return fmt.Sprintf("%s for product %s: requested %d", ErrInsufficientStock, e.ProductID, e.Requested)
	}
	return fmt.Sprintf("%s for product %s: requested %d, available %d",
		ErrInsufficientStock, e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// InsufficientReturnQuantityError reports a return request above the returnable quantity.
type InsufficientReturnQuantityError struct {
	ProductID  string
	Requested  int
	MaxAllowed int
}

func NewInsufficientReturnQuantityError(productID string, requested, maxAllowed int) *InsufficientReturnQuantityError {
	return &InsufficientReturnQuantityError{ProductID: productID, Requested: requested, MaxAllowed: maxAllowed}
}

func (e *InsufficientReturnQuantityError) Error() string {
	return fmt.Sprintf("invalid return quantity for product %s: requested %d, max allowed: %d",
		e.ProductID, e.Requested, e.MaxAllowed)
}

func (e *InsufficientReturnQuantityError) Unwrap() error {
	return ErrInsufficientReturnQuantity
}

// UnauthenticatedError reports a request without a usable identity.
type UnauthenticatedError struct {
	Reason string
}

func NewUnauthenticatedError(reason string) *UnauthenticatedError {
	return &UnauthenticatedError{Reason: reason}
}

func (e *UnauthenticatedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnauthenticated, e.Reason)
}

func (e *UnauthenticatedError) Unwrap() error {
	return ErrUnauthenticated
}
