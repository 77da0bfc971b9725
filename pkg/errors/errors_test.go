package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaxonomyStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, NewValidationError("missing").StatusCode)
	assert.Equal(t, http.StatusNotFound, NewChatNotFoundError().StatusCode)
	assert.Equal(t, http.StatusInternalServerError, NewStorageError(errors.New("boom")).StatusCode)
}

func TestStorageErrorMessageIsGeneric(t *testing.T) {
	err := NewStorageError(fmt.Errorf("mongo: connection refused at 10.0.0.1"))
	assert.NotContains(t, err.Message, "10.0.0.1")
	assert.Equal(t, "STORAGE_ERROR", err.Code)
}

func TestFromErrorWrapsPlainErrors(t *testing.T) {
	appErr := FromError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode)
	assert.Equal(t, "INTERNAL_ERROR", appErr.Code)
}

func TestFromErrorPassesAppErrorsThrough(t *testing.T) {
	original := NewChatNotFoundError()
	assert.Same(t, original, FromError(original))
}

func TestIsMatchesByCode(t *testing.T) {
	assert.True(t, Is(NewChatNotFoundError(), NewChatNotFoundError()))
	assert.False(t, Is(NewValidationError("x"), NewChatNotFoundError()))
	assert.False(t, Is(errors.New("plain"), NewChatNotFoundError()))
}
