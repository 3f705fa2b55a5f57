package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewAppError("STORAGE", "cannot write index", cause)

	assert.Equal(t, "STORAGE: cannot write index: disk full", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewAppError("CONFIG", "missing model", nil)
	assert.Equal(t, "CONFIG: missing model", bare.Error())
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, WrapError(nil, "ignored"))

	wrapped := WrapError(ErrClassifier, "tag step")
	assert.ErrorIs(t, wrapped, ErrClassifier)
	assert.Equal(t, "tag step: classifier request failed", wrapped.Error())
}

func TestUnsupportedTypeIsExtraction(t *testing.T) {
	err := fmt.Errorf("%w: %q", ErrUnsupportedType, ".png")
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.ErrorIs(t, err, ErrExtraction)
}
