package environment

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alexisbeaulieu97/themekit/internal/ports"
	apperrors "github.com/alexisbeaulieu97/themekit/pkg/errors"
)

// FilePreference reads the preference from a file containing "light" or
// "dark" and watches it for changes. Desktop integrations (or a user's own
// script) write the file when the OS appearance changes.
type FilePreference struct {
	Path     string
	Debounce time.Duration
}

// Current implements ports.PreferenceSource.
func (p FilePreference) Current(context.Context) (ports.Preference, bool) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return ports.PreferenceNone, false
	}
	return ParsePreference(string(data))
}

// Watch implements ports.PreferenceSource. The parent directory is watched
// so editors and atomic renames that replace the file are observed. Bursts
// of events are debounced and fn runs only when the parsed preference
// changes.
func (p FilePreference) Watch(ctx context.Context, fn func(ports.Preference)) (ports.Subscription, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, apperrors.NewEnvironmentSignalUnavailableError(SignalPreference, err)
	}
	if err := watcher.Add(filepath.Dir(p.Path)); err != nil {
		_ = watcher.Close()
		return nil, apperrors.NewEnvironmentSignalUnavailableError(SignalPreference, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	target := filepath.Clean(p.Path)

	var mu sync.Mutex
	last, _ := p.Current(ctx)
	emit := func() {
		pref, ok := p.Current(ctx)
		if !ok {
			return
		}
		mu.Lock()
		changed := pref != last
		last = pref
		mu.Unlock()
		if changed && ctx.Err() == nil {
			fn(pref)
		}
	}
	settle := newSettleTimer(p.Debounce, emit)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					settle.touch()
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	var once sync.Once
	return ports.SubscriptionFunc(func() {
		once.Do(func() {
			cancel()
			settle.stop()
			_ = watcher.Close()
			<-done
		})
	}), nil
}
