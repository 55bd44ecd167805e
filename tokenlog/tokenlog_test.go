package tokenlog

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/zeebo/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeebo/fifotoken"
)

// contend has one caller hold tok while another fails to TryAcquire it.
func contend(t *testing.T, tok *fifotoken.Token, other context.Context) (holder, waiter fifotoken.Owner) {
	t.Helper()

	ctx := fifotoken.Bind(context.Background())
	other = fifotoken.Bind(other)
	holder, _ = fifotoken.OwnerFrom(ctx)
	waiter, _ = fifotoken.OwnerFrom(other)

	_, err := tok.Acquire(ctx)
	assert.NoError(t, err)
	out, err := tok.TryAcquire(other)
	assert.NoError(t, err)
	assert.Equal(t, out, fifotoken.WouldBlock)
	assert.NoError(t, tok.Release(ctx))

	return holder, waiter
}

func TestZap(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	tok := fifotoken.New(fifotoken.WithHook(Zap(zap.New(core))))

	holder, waiter := contend(t, tok, context.Background())

	entries := logs.FilterMessage(Message).All()
	assert.Equal(t, len(entries), 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, fields["waiter"], waiter.String())
	assert.Equal(t, fields["holder"], holder.String())
	assert.Equal(t, fields["ahead"], int64(1))
	assert.Equal(t, fields["blocking"], false)
}

func TestZapNil(t *testing.T) {
	tok := fifotoken.New(fifotoken.WithHook(Zap(nil)))
	contend(t, tok, context.Background())
}

type entry struct {
	Level    string `json:"level"`
	Message  string `json:"message"`
	Waiter   string `json:"waiter"`
	Holder   string `json:"holder"`
	Ahead    int    `json:"ahead"`
	Blocking bool   `json:"blocking"`
}

func decode(t *testing.T, buf *bytes.Buffer) (out entry) {
	t.Helper()
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestZerolog(t *testing.T) {
	var buf bytes.Buffer
	tok := fifotoken.New(fifotoken.WithHook(Zerolog(zerolog.New(&buf))))

	holder, waiter := contend(t, tok, context.Background())

	assert.Equal(t, decode(t, &buf), entry{
		Level:   "debug",
		Message: Message,
		Waiter:  waiter.String(),
		Holder:  holder.String(),
		Ahead:   1,
	})
}

func TestZerologContextLogger(t *testing.T) {
	var base, scoped bytes.Buffer
	tok := fifotoken.New(fifotoken.WithHook(Zerolog(zerolog.New(&base))))

	ctx := zerolog.New(&scoped).WithContext(context.Background())
	contend(t, tok, ctx)

	assert.Equal(t, base.Len(), 0)
	assert.Equal(t, decode(t, &scoped).Message, Message)
}
