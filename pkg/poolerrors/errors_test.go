package poolerrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poolforge/repool/pkg/poolerrors"
)

func TestNewCapturesTypeAndStack(t *testing.T) {
	err := poolerrors.New(poolerrors.ErrorTypeNotFound, "no pool for key")

	assert.Equal(t, poolerrors.ErrorTypeNotFound, err.Type)
	assert.Equal(t, "not_found: no pool for key", err.Error())
	assert.NotEmpty(t, err.Stack)
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("file unreadable")
	err := poolerrors.Wrap(cause, poolerrors.ErrorTypeCatalog, "prototype load failed")

	assert.Equal(t, "catalog: prototype load failed: file unreadable", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, poolerrors.Wrap(nil, poolerrors.ErrorTypeInternal, "ignored"))
}

func TestWrapPreservesOriginalStack(t *testing.T) {
	inner := poolerrors.New(poolerrors.ErrorTypeCatalog, "decode failed")
	outer := poolerrors.Wrap(fmt.Errorf("loading: %w", inner), poolerrors.ErrorTypeConfig, "startup failed")

	assert.Equal(t, inner.Stack, outer.Stack)
}

func TestWithDetailChains(t *testing.T) {
	err := poolerrors.New(poolerrors.ErrorTypeValidation, "bad count").
		WithDetail("key", "ember").
		WithDetail("count", -3)

	require.NotNil(t, err.Details)
	assert.Equal(t, "ember", err.Details["key"])
	assert.Equal(t, -3, err.Details["count"])
}

func TestIsTypeMatchesThroughWrapping(t *testing.T) {
	err := poolerrors.New(poolerrors.ErrorTypeNotFound, "no pool for key")
	wrapped := fmt.Errorf("freeing widget: %w", err)

	assert.True(t, poolerrors.IsType(wrapped, poolerrors.ErrorTypeNotFound))
	assert.False(t, poolerrors.IsType(wrapped, poolerrors.ErrorTypeCatalog))
	assert.False(t, poolerrors.IsType(errors.New("plain"), poolerrors.ErrorTypeNotFound))
}
