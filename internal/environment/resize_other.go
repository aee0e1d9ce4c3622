//go:build !unix

package environment

import (
	"context"
	"errors"

	"github.com/alexisbeaulieu97/themekit/internal/ports"
	apperrors "github.com/alexisbeaulieu97/themekit/pkg/errors"
)

func watchResize(context.Context, func()) (ports.Subscription, error) {
	return nil, apperrors.NewEnvironmentSignalUnavailableError(SignalResize, errors.New("resize notifications are not supported on this platform"))
}
