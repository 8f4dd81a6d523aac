package errors

import (
	"context"
	"fmt"
	"testing"

	"ordering/domain/shared"

	"github.com/stretchr/testify/assert"
)

func TestFromDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"not found", shared.NewNotFoundError("order", "o1"), CodeNotFound},
		{"conflict", shared.NewConflictError("tag", "duplicate"), CodeConflict},
		{"already retired", shared.NewAlreadyRetiredError("product", "p1"), CodeAlreadyRetired},
		{"unavailable", shared.NewUnavailableError("product", "p1", "p2"), CodeUnavailable},
		{"validation", shared.NewValidationError("product", "name", "blank"), CodeValidation},
		{"concurrent", shared.NewConcurrentModificationError("order", "o1"), CodeConcurrentModify},
		{"wrapped", fmt.Errorf("saving: %w", shared.NewNotFoundError("order", "o1")), CodeNotFound},
		{"deadline", context.DeadlineExceeded, CodeTimeout},
		{"unknown", fmt.Errorf("driver: bad connection"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromDomainError(tt.err).Code)
		})
	}
}

func TestFromDomainError_CarriesIDs(t *testing.T) {
	appErr := FromDomainError(shared.NewUnavailableError("product", "p1", "p2"))

	assert.Equal(t, []string{"p1", "p2"}, appErr.IDs)
	assert.Contains(t, appErr.Message, "p1, p2")
}

func TestFromDomainError_PassesAppErrorThrough(t *testing.T) {
	original := BadRequest("bad json")

	assert.Same(t, original, FromDomainError(fmt.Errorf("bind: %w", original)))
	assert.Nil(t, FromDomainError(nil))
	assert.True(t, Is(original, CodeBadRequest))
}
