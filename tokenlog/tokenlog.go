// Package tokenlog provides fifotoken Hooks that log contention to structured
// loggers.
package tokenlog

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/zap"

	"github.com/zeebo/fifotoken"
)

// Message is the message logged for every contention event.
const Message = "token contended"

// Zap returns a Hook that logs contention to logger at debug level.
func Zap(logger *zap.Logger) fifotoken.Hook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return fifotoken.HookFunc(func(_ context.Context, c fifotoken.Contention) {
		logger.Debug(Message,
			zap.Stringer("waiter", c.Waiter),
			zap.Stringer("holder", c.Holder),
			zap.Int("ahead", c.Ahead),
			zap.Bool("blocking", c.Blocking),
		)
	})
}

// Zerolog returns a Hook that logs contention to logger at debug level. If the
// context passed to the Token carries its own zerolog logger, that one is used
// instead.
func Zerolog(logger zerolog.Logger) fifotoken.Hook {
	return fifotoken.HookFunc(func(ctx context.Context, c fifotoken.Contention) {
		l := &logger
		if cl := zerolog.Ctx(ctx); cl != zerolog.DefaultContextLogger && cl.GetLevel() != zerolog.Disabled {
			l = cl
		}
		l.Debug().
			Stringer("waiter", c.Waiter).
			Stringer("holder", c.Holder).
			Int("ahead", c.Ahead).
			Bool("blocking", c.Blocking).
			Msg(Message)
	})
}
