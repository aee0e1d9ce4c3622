//go:build unix

package environment

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/alexisbeaulieu97/themekit/internal/ports"
)

func watchResize(ctx context.Context, fn func()) (ports.Subscription, error) {
	ctx, cancel := context.WithCancel(ctx)
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGWINCH)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-signals:
				fn()
			}
		}
	}()

	var once sync.Once
	return ports.SubscriptionFunc(func() {
		once.Do(func() {
			signal.Stop(signals)
			cancel()
		})
	}), nil
}
