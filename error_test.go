package raas_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/raas"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := raas.Errorf(raas.EUNEXPECTEDSTATUS, "%d", 402)

	assert.Equal(t, raas.EUNEXPECTEDSTATUS, raas.ErrorCode(err))
	assert.Equal(t, "402", raas.ErrorMessage(err))
	assert.Equal(t, "raas error: code=unexpected_status_code message=402", err.Error())
}

func TestErrorCode_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("execute: %w", raas.Errorf(raas.EBADREQUEST, "SocketError"))

	assert.Equal(t, raas.EBADREQUEST, raas.ErrorCode(err))
	assert.Equal(t, "SocketError", raas.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, raas.ErrorCode(nil))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	err := errors.New("connection refused")

	assert.Empty(t, raas.ErrorCode(err))
	assert.Equal(t, "connection refused", raas.ErrorMessage(err))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, raas.ErrorMessage(nil))
}
