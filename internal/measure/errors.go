package measure

import "fmt"

// ErrorKind enumerates the engine's error taxonomy.
type ErrorKind string

const (
	ErrorKindInvalidInput      ErrorKind = "invalid_input"
	ErrorKindMissingGrey       ErrorKind = "missing_grey"
	ErrorKindGeometryMismatch  ErrorKind = "geometry_mismatch"
	ErrorKindUnknownFeature    ErrorKind = "unknown_feature"
	ErrorKindCyclicDependency  ErrorKind = "cyclic_dependency"
	ErrorKindDuplicateName     ErrorKind = "duplicate_name"
	ErrorKindDuplicateID       ErrorKind = "duplicate_id"
	ErrorKindTableForged       ErrorKind = "table_forged"
	ErrorKindEmptyTable        ErrorKind = "empty_table"
	ErrorKindEmptySchema       ErrorKind = "empty_schema"
	ErrorKindCancelled         ErrorKind = "cancelled"
)

// Error is the engine's structured error type, modeled on the same
// tagged-cause shape the rest of the codebase uses for application
// errors: a Kind, a human message, and an optional wrapped cause.
type Error struct {
	ErrKind ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.ErrKind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.ErrKind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Kind returns the error's classification.
func (e *Error) Kind() ErrorKind {
	return e.ErrKind
}

func newErr(kind ErrorKind, message string, cause error) *Error {
	return &Error{ErrKind: kind, Message: message, Cause: cause}
}

func NewInvalidInputError(message string, cause error) *Error {
	return newErr(ErrorKindInvalidInput, message, cause)
}

func NewMissingGreyError(message string) *Error {
	return newErr(ErrorKindMissingGrey, message, nil)
}

func NewGeometryMismatchError(message string) *Error {
	return newErr(ErrorKindGeometryMismatch, message, nil)
}

func NewUnknownFeatureError(name string) *Error {
	return newErr(ErrorKindUnknownFeature, fmt.Sprintf("unknown feature %q", name), nil)
}

func NewCyclicDependencyError(cycle []string) *Error {
	return newErr(ErrorKindCyclicDependency, fmt.Sprintf("cyclic feature dependency: %v", cycle), nil)
}

func NewDuplicateNameError(name string) *Error {
	return newErr(ErrorKindDuplicateName, fmt.Sprintf("feature %q already present", name), nil)
}

func NewDuplicateIDError(id ObjectID) *Error {
	return newErr(ErrorKindDuplicateID, fmt.Sprintf("object id %d already present", id), nil)
}

func NewTableForgedError(op string) *Error {
	return newErr(ErrorKindTableForged, fmt.Sprintf("%s: table already forged", op), nil)
}

func NewEmptyTableError() *Error {
	return newErr(ErrorKindEmptyTable, "table has no features or no objects", nil)
}

func NewEmptySchemaError(name string) *Error {
	return newErr(ErrorKindEmptySchema, fmt.Sprintf("feature %q declares zero values", name), nil)
}

func NewCancelledError() *Error {
	return newErr(ErrorKindCancelled, "measurement cancelled", nil)
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	if e, ok := err.(*Error); ok {
		return e.ErrKind == kind
	}
	return false
}
