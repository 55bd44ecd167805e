package fifotoken

import (
	"context"

	"github.com/google/uuid"
)

// Owner is the logical identity of a thread of execution using a Token. Two
// contexts are treated as the same caller exactly when they carry equal Owners.
// The zero Owner identifies no one.
type Owner struct {
	id uuid.UUID
}

// NewOwner returns a fresh, unique Owner.
func NewOwner() Owner { return Owner{id: uuid.New()} }

// IsZero reports if the Owner is the zero Owner.
func (o Owner) IsZero() bool { return o.id == uuid.Nil }

// String returns the textual form of the Owner's id.
func (o Owner) String() string {
	if o.IsZero() {
		return "<none>"
	}
	return o.id.String()
}

type ownerKey struct{}

// WithOwner returns a child of ctx that carries the Owner.
func WithOwner(ctx context.Context, o Owner) context.Context {
	return context.WithValue(ctx, ownerKey{}, o)
}

// OwnerFrom returns the Owner carried by ctx, if any.
func OwnerFrom(ctx context.Context) (Owner, bool) {
	o, ok := ctx.Value(ownerKey{}).(Owner)
	return o, ok && !o.IsZero()
}

// Bind returns ctx unchanged if it already carries an Owner, and otherwise a
// child of ctx carrying a NewOwner.
func Bind(ctx context.Context) context.Context {
	if _, ok := OwnerFrom(ctx); ok {
		return ctx
	}
	return WithOwner(ctx, NewOwner())
}
