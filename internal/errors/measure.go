package errors

import "github.com/brackenfield/objmeasure/internal/measure"

// FromMeasureError translates a *measure.Error into the transport
// layer's AppError, picking an HTTP status per its ErrorKind. Errors
// that are not a *measure.Error fall through to NewInternalError.
func FromMeasureError(err error) *AppError {
	merr, ok := err.(*measure.Error)
	if !ok {
		return NewInternalError("measurement failed", err)
	}

	switch merr.Kind() {
	case measure.ErrorKindInvalidInput,
		measure.ErrorKindMissingGrey,
		measure.ErrorKindGeometryMismatch,
		measure.ErrorKindUnknownFeature,
		measure.ErrorKindCyclicDependency,
		measure.ErrorKindDuplicateName,
		measure.ErrorKindDuplicateID,
		measure.ErrorKindEmptySchema:
		return NewValidationError(merr.Message, merr)
	case measure.ErrorKindEmptyTable:
		return NewProcessingError(merr.Message, merr)
	case measure.ErrorKindTableForged:
		return NewInternalError(merr.Message, merr)
	case measure.ErrorKindCancelled:
		return NewTimeoutError(merr.Message, merr)
	default:
		return NewInternalError(merr.Message, merr)
	}
}
