package common

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/joseph-ayodele/invoice-tracker/constants"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error codes
const (
	CodeMalformedInput     = "MALFORMED_INPUT"
	CodeUnsupportedFormat  = "UNSUPPORTED_FORMAT"
	CodeClassifierFailure  = "CLASSIFIER_FAILURE"
	CodePersistenceFailure = "PERSISTENCE_FAILURE"
	CodeConfigError        = "CONFIG_ERROR"
)

// Common application errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrMalformedInput    = errors.New("malformed document")
	ErrUnsupportedFormat = errors.New("unsupported file type")
	ErrClassifier        = errors.New("classifier failure")
	ErrPersistence       = errors.New("persistence failure")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func MalformedInputf(format string, args ...interface{}) error {
	return NewAppError(CodeMalformedInput, fmt.Sprintf(format, args...), ErrMalformedInput)
}

func UnsupportedFormatf(format string, args ...interface{}) error {
	return NewAppError(CodeUnsupportedFormat, fmt.Sprintf(format, args...), ErrUnsupportedFormat)
}

// ClassifierError keeps the upstream error and its gRPC status code.
type ClassifierError struct {
	Code  codes.Code
	Cause error
}

func (e *ClassifierError) Error() string {
	return fmt.Sprintf("%s (%s): %v", ErrClassifier, e.Code, e.Cause)
}

func (e *ClassifierError) Unwrap() []error {
	return []error{ErrClassifier, e.Cause}
}

// NewClassifierError wraps err, classifying it by its gRPC status.
func NewClassifierError(err error) error {
	if err == nil {
		return nil
	}
	return NewAppError(CodeClassifierFailure, "document processing request failed", &ClassifierError{
		Code:  status.Code(err),
		Cause: err,
	})
}

// ClassifierCode returns the gRPC code carried by a classifier failure, or codes.OK.
func ClassifierCode(err error) codes.Code {
	var ce *ClassifierError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return codes.OK
}

// PersistenceError names the store host and schema object that failed.
func PersistenceError(host, table, op string, cause error) error {
	return NewAppError(CodePersistenceFailure,
		fmt.Sprintf("%s %s on %s", op, table, host),
		errors.Join(ErrPersistence, cause))
}

// StageError records which pipeline stage a document failed in.
type StageError struct {
	Stage constants.Stage
	Path  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// FailedStage returns the stage recorded in err, or "" when none.
func FailedStage(err error) constants.Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
