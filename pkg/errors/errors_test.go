package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("tokens.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "tokens.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "tokens.yaml:12")
}

func TestValidationErrorIncludesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("spacing.lg", "must be greater than md", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "spacing.lg", validationErr.Field)
	require.Contains(t, err.Error(), "must be greater than md")
}

func TestUnknownTokenErrorMatchesSentinel(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("lookup: %w", NewUnknownTokenError(TokenKindColor, "primry", "primary"))

	require.ErrorIs(t, err, ErrUnknownToken)
	var tokenErr *UnknownTokenError
	require.ErrorAs(t, err, &tokenErr)
	require.Equal(t, "primry", tokenErr.Name)
	require.Contains(t, err.Error(), "did you mean primary?")
}

func TestPersistenceUnavailableErrorWrapsCause(t *testing.T) {
	t.Parallel()

	cause := stdErrors.New("read-only file system")
	err := NewPersistenceUnavailableError("set", "themekit.mode", cause)

	require.ErrorIs(t, err, ErrPersistenceUnavailable)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "themekit.mode")
}

func TestEnvironmentSignalUnavailableError(t *testing.T) {
	t.Parallel()

	err := NewEnvironmentSignalUnavailableError("viewport", nil)

	require.ErrorIs(t, err, ErrEnvironmentSignalUnavailable)
	require.False(t, stdErrors.Is(err, ErrPersistenceUnavailable))
	require.Equal(t, "environment signal viewport unavailable", err.Error())
}
