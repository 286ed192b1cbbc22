package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(CodeAlreadySigned, "landlord already signed this lease")
	require.Error(t, err)
	assert.Equal(t, "landlord already signed this lease", err.Error())
	assert.True(t, HasCode(err, CodeAlreadySigned))
	assert.False(t, HasCode(err, CodeNotFound))
}

func TestErrorFallsBackToCode(t *testing.T) {
	err := &Error{Code: CodeInternal}
	assert.Equal(t, "internal_error", err.Error())
}

func TestWrapPreservesExistingCode(t *testing.T) {
	inner := New(CodeNotAvailable, "lease is terminated")
	wrapped := Wrap(inner, CodeInternal, "sign lease")
	assert.True(t, HasCode(wrapped, CodeNotAvailable), "wrapping must not mask the domain code")
	assert.True(t, errors.Is(wrapped, inner.(*Error)))
}

func TestWrapInfrastructureError(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	wrapped := Wrap(cause, CodeInternal, "load lease")
	assert.True(t, HasCode(wrapped, CodeInternal))
	assert.ErrorIs(t, wrapped, cause)
}

func TestIsMatchesByCode(t *testing.T) {
	a := New(CodeTermsNotAccepted, "terms must be accepted")
	b := New(CodeTermsNotAccepted, "different message")
	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, New(CodeUnauthorized, "")))
}

func TestHasCodeOnPlainError(t *testing.T) {
	assert.False(t, HasCode(errors.New("plain"), CodeInternal))
	assert.False(t, HasCode(nil, CodeInternal))
}
