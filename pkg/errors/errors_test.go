package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndIsCode(t *testing.T) {
	base := errors.New("connection refused")
	err := Wrap(CodeSalesFetchFailed, "failed to fetch sales history", base)

	require.True(t, IsCode(err, CodeSalesFetchFailed))
	require.False(t, IsCode(err, CodeInvalidInput))
	require.ErrorIs(t, err, base)
	require.Equal(t, "failed to fetch sales history: connection refused", err.Error())
}

func TestIsCodeThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("pipeline: %w", Wrap(CodeForecastFailed, "model fit failed", nil))
	require.True(t, IsCode(err, CodeForecastFailed))
	require.False(t, IsCode(errors.New("plain"), CodeForecastFailed))
}

func TestCause(t *testing.T) {
	base := errors.New("status=503")
	require.Equal(t, base, Cause(Wrap(CodeSalesFetchFailed, "fetch", base)))

	noInner := Wrap(CodeInvalidInput, "days must be positive", nil)
	require.Equal(t, noInner, Cause(noInner))

	plain := errors.New("plain")
	require.Equal(t, plain, Cause(plain))
}
