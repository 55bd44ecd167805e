package main

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/zeebo/pcg"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/zeebo/fifotoken"
	"github.com/zeebo/fifotoken/tokenlog"
)

// errExclusion is returned when two workers were seen holding the token.
var errExclusion = errors.New("mutual exclusion violated")

// Config controls a stress run.
type Config struct {
	Workers    int
	Rounds     int
	Hold       time.Duration
	Nest       int
	RenewEvery int
}

func (c Config) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("workers", c.Workers)
	enc.AddInt("rounds", c.Rounds)
	enc.AddDuration("hold", c.Hold)
	enc.AddInt("nest", c.Nest)
	enc.AddInt("renew_every", c.RenewEvery)
	return nil
}

// Result summarizes a stress run.
type Result struct {
	Grants    int64
	Waited    int64
	Renews    int64
	Contended int64
	Elapsed   time.Duration
}

func (r Result) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt64("grants", r.Grants)
	enc.AddInt64("waited", r.Waited)
	enc.AddInt64("renews", r.Renews)
	enc.AddInt64("contended", r.Contended)
	enc.AddDuration("elapsed", r.Elapsed)
	return nil
}

// Run starts cfg.Workers workers against a single token and waits for them to
// finish cfg.Rounds rounds each, or for ctx to be done.
func Run(ctx context.Context, cfg Config, logger *zap.Logger) (res Result, err error) {
	var contended int64
	tok := fifotoken.New(
		fifotoken.WithHook(tokenlog.Zap(logger)),
		fifotoken.WithHook(fifotoken.HookFunc(func(context.Context, fifotoken.Contention) {
			atomic.AddInt64(&contended, 1)
		})),
	)

	var holding int32
	start := time.Now()
	group, ctx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.Workers; i++ {
		w := &worker{
			id:      i,
			cfg:     cfg,
			tok:     tok,
			rng:     pcg.New(uint64(i)),
			holding: &holding,
			res:     &res,
		}
		group.Go(func() error { return w.run(fifotoken.Bind(ctx)) })
	}
	err = group.Wait()

	res.Contended = atomic.LoadInt64(&contended)
	res.Elapsed = time.Since(start)
	if errors.Is(err, fifotoken.ErrInterrupted) {
		logger.Warn("interrupted", zap.Error(err))
		err = nil
	}
	return res, err
}

type worker struct {
	id      int
	cfg     Config
	tok     *fifotoken.Token
	rng     pcg.T
	holding *int32
	res     *Result
}

func (w *worker) enter() error {
	if n := atomic.AddInt32(w.holding, 1); n != 1 {
		return errors.Wrapf(errExclusion, "worker %d saw %d holders", w.id, n)
	}
	return nil
}

func (w *worker) leave() { atomic.AddInt32(w.holding, -1) }

func (w *worker) run(ctx context.Context) error {
	for i := 0; i < w.cfg.Rounds && ctx.Err() == nil; i++ {
		if err := w.round(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (w *worker) round(ctx context.Context) error {
	out, err := w.tok.Acquire(ctx)
	if err != nil {
		return err
	}
	atomic.AddInt64(&w.res.Grants, 1)
	if out == fifotoken.GrantedAfterWait {
		atomic.AddInt64(&w.res.Waited, 1)
	}
	if err := w.enter(); err != nil {
		return err
	}

	nest := 0
	if w.cfg.Nest > 0 {
		nest = int(w.rng.Uint32n(uint32(w.cfg.Nest) + 1))
	}
	for j := 0; j < nest; j++ {
		if _, err := w.tok.Acquire(ctx); err != nil {
			return err
		}
	}

	w.hold()

	if w.cfg.RenewEvery > 0 && w.rng.Uint32n(uint32(w.cfg.RenewEvery)) == 0 {
		w.leave()
		if err := w.tok.Renew(ctx, int(w.rng.Uint32n(4))-1); err != nil {
			return err
		}
		atomic.AddInt64(&w.res.Renews, 1)
		if err := w.enter(); err != nil {
			return err
		}
		w.hold()
	}

	w.leave()
	for j := 0; j <= nest; j++ {
		if err := w.tok.Release(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (w *worker) hold() {
	if w.cfg.Hold > 0 {
		time.Sleep(time.Duration(w.rng.Uint64() % uint64(w.cfg.Hold)))
	}
}
