package environment

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/themekit/internal/ports"
	apperrors "github.com/alexisbeaulieu97/themekit/pkg/errors"
)

// EnvTouch reads touch signals from THEMEKIT_TOUCH_EVENTS and
// THEMEKIT_MAX_TOUCH_POINTS. It fails when neither variable is set.
type EnvTouch struct {
	Getenv func(string) string
}

// Touch implements ports.TouchSource.
func (e EnvTouch) Touch(context.Context) (ports.TouchSignals, error) {
	getenv := e.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	eventsRaw := strings.TrimSpace(getenv(EnvTouchEvents))
	pointsRaw := strings.TrimSpace(getenv(EnvMaxTouchPoints))
	if eventsRaw == "" && pointsRaw == "" {
		return ports.TouchSignals{}, apperrors.NewEnvironmentSignalUnavailableError(SignalTouch, nil)
	}

	var signals ports.TouchSignals
	if eventsRaw != "" {
		events, err := strconv.ParseBool(eventsRaw)
		if err != nil {
			return ports.TouchSignals{}, apperrors.NewEnvironmentSignalUnavailableError(SignalTouch, err)
		}
		signals.TouchEvents = events
	}
	if pointsRaw != "" {
		points, err := strconv.Atoi(pointsRaw)
		if err != nil {
			return ports.TouchSignals{}, apperrors.NewEnvironmentSignalUnavailableError(SignalTouch, err)
		}
		signals.MaxTouchPoints = points
	}
	return signals, nil
}

// StaticTouch always reports the same signals.
type StaticTouch ports.TouchSignals

// Touch implements ports.TouchSource.
func (s StaticTouch) Touch(context.Context) (ports.TouchSignals, error) {
	return ports.TouchSignals(s), nil
}
