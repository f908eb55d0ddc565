package routes

import (
	"context"

	"eventx/session"
)

// Gate binds a route table to the live session store, so decisions are
// always evaluated against the principal current at the moment of the call
// and re-evaluated whenever the principal changes. A logout while a
// protected page is open must produce a fresh redirect decision, not a
// cached allow.
type Gate struct {
	table *Table
	store *session.Store
}

// NewGate builds a gate over table and store.
func NewGate(table *Table, store *session.Store) *Gate {
	return &Gate{table: table, store: store}
}

// Table returns the table the gate decides with.
func (g *Gate) Table() *Table { return g.table }

// Authorize decides path against the current snapshot.
func (g *Gate) Authorize(path string) Decision {
	return g.table.Authorize(path, g.store.Snapshot().Principal)
}

// Watch emits the decision for path now and again after every principal
// change, until ctx is done. The channel is buffered and coalescing: a slow
// receiver sees the latest decision, not every intermediate one. The channel
// is closed when the watch ends.
func (g *Gate) Watch(ctx context.Context, path string) <-chan Decision {
	out := make(chan Decision, 1)
	changes, unsubscribe := g.store.Subscribe()

	emit := func(d Decision) {
		for {
			select {
			case out <- d:
				return
			default:
			}
			select {
			case <-out:
			default:
			}
		}
	}

	emit(g.Authorize(path))

	go func() {
		defer close(out)
		defer unsubscribe()
		for {
			select {
			case <-ctx.Done():
				return
			case <-changes:
				emit(g.Authorize(path))
			}
		}
	}()

	return out
}
