package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/joseph-ayodele/invoice-tracker/constants"
)

func TestClassifierErrorKeepsStatusCode(t *testing.T) {
	upstream := status.Error(codes.ResourceExhausted, "quota exceeded")
	err := NewClassifierError(upstream)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrClassifier)
	assert.ErrorIs(t, err, upstream)
	assert.Equal(t, codes.ResourceExhausted, ClassifierCode(err))

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, CodeClassifierFailure, appErr.Code)
}

func TestClassifierCodeWithoutClassifierError(t *testing.T) {
	assert.Equal(t, codes.OK, ClassifierCode(errors.New("boom")))
	assert.NoError(t, NewClassifierError(nil))
}

func TestPersistenceErrorNamesHostAndTable(t *testing.T) {
	cause := errors.New("no such table: item")
	err := PersistenceError("localhost:5432", "item", "insert", cause)

	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "localhost:5432")
	assert.Contains(t, err.Error(), "item")
}

func TestStageErrorUnwraps(t *testing.T) {
	inner := MalformedInputf("segment %d: end missing", 0)
	err := fmt.Errorf("process: %w", &StageError{Stage: constants.StageFlatten, Path: "a.pdf", Err: inner})

	assert.ErrorIs(t, err, ErrMalformedInput)
	assert.Equal(t, constants.StageFlatten, FailedStage(err))
	assert.Equal(t, constants.Stage(""), FailedStage(inner))
}
