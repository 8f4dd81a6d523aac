package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSpecificReason = errors.New("specific reason")

func TestNotFoundError_ListsAllIDs(t *testing.T) {
	err := NewNotFoundError("product", "p1", "p2")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, []string{"p1", "p2"}, IDsOf(err))
	assert.Equal(t, "product not found: [p1, p2]", err.Error())
}

func TestNotFoundError_SingleID(t *testing.T) {
	err := NewNotFoundError("order", "o1")

	assert.Equal(t, "order o1 not found", err.Error())
}

func TestReasonedConflictError_MatchesBothSentinels(t *testing.T) {
	err := NewReasonedConflictError("order", errSpecificReason, "order is cancelled")
	wrapped := fmt.Errorf("replace basket: %w", err)

	assert.ErrorIs(t, wrapped, ErrConflict)
	assert.ErrorIs(t, wrapped, errSpecificReason)
	assert.NotErrorIs(t, wrapped, ErrNotFound)
}

func TestDomainError_CapturesStack(t *testing.T) {
	err := NewUnavailableError("tag", "t1")

	var stacker Stacker
	assert.True(t, errors.As(err, &stacker))
	assert.NotEmpty(t, stacker.Stack())
	assert.LessOrEqual(t, len(stacker.Stack()), 10)
}

func TestRetirement(t *testing.T) {
	var r Retirement

	assert.NoError(t, r.EnsureActive("category", "c1"))
	assert.NoError(t, r.Retire("category", "c1"))
	assert.True(t, r.IsRetired())

	assert.ErrorIs(t, r.Retire("category", "c1"), ErrAlreadyRetired)
	assert.ErrorIs(t, r.EnsureActive("category", "c1"), ErrUnavailable)
}
