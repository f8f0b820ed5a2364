package jsonextract_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/jsonextract"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := jsonextract.Errorf(jsonextract.EPARSE, "processing failed: %s", "bad token")

	assert.Equal(t, jsonextract.EPARSE, jsonextract.ErrorCode(err))
	assert.Equal(t, "processing failed: bad token", jsonextract.ErrorMessage(err))
	assert.Equal(t, "processing failed: bad token", err.Error())
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, jsonextract.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, jsonextract.ErrorMessage(nil))
}

func TestErrorCode_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("open: %w", jsonextract.Errorf(jsonextract.EREAD, "failed to read file"))

	assert.Equal(t, jsonextract.EREAD, jsonextract.ErrorCode(err))
	assert.Equal(t, "failed to read file", jsonextract.ErrorMessage(err))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, jsonextract.EINTERNAL, jsonextract.ErrorCode(err))
	assert.Equal(t, "Internal error.", jsonextract.ErrorMessage(err))
}
