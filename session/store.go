package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	"golang.org/x/sync/singleflight"
)

// Store is the single source of truth for "who is using the application".
// It is the only piece of shared mutable state in the client: every other
// component reads its snapshot, and only the operations below write it.
// The snapshot is always replaced wholesale, never field by field.
type Store struct {
	gateway Gateway
	log     logr.Logger

	mu      sync.Mutex
	snap    Snapshot
	gen     uint64
	subs    map[int]chan struct{}
	nextSub int

	flight singleflight.Group
}

// currentUserKey is the singleflight key shared by overlapping Initialize
// calls. A logout forgets it so later calls never join a pre-logout flight.
const currentUserKey = "current-user"

// NewStore creates a store in the unauthenticated state.
func NewStore(gateway Gateway, log logr.Logger) *Store {
	return &Store{
		gateway: gateway,
		log:     log,
		snap:    Snapshot{Availability: AvailabilityConfirmed},
		subs:    make(map[int]chan struct{}),
	}
}

// Snapshot returns the current principal and backend availability as one
// atomically-read value.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Subscribe registers for change notification. The channel receives a
// coalesced signal after every snapshot replacement; subscribers re-read
// Snapshot rather than receiving values, so a slow reader only misses
// intermediate states, never the latest one. The returned func unsubscribes
// and must be called when the subscriber goes away.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan struct{}, 1)
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Initialize asks the backend who is currently logged in and replaces the
// snapshot with the answer. The previous principal stays visible while the
// request is in flight; overlapping calls share a single request. A "nobody
// is logged in" answer is a normal outcome and returns nil. Any other
// failure clears the principal (access is never granted on an unconfirmed
// identity) and marks the backend unreachable.
//
// If Logout or ForceLogout ran after this call started, the response is
// discarded so a stale in-flight identity cannot undo the logout.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	v, err, _ := s.flight.Do(currentUserKey, func() (any, error) {
		return s.gateway.CurrentUser(ctx)
	})

	switch {
	case err == nil:
		s.replace(gen, Snapshot{Principal: principalOf(v.(Identity)), Availability: AvailabilityConfirmed})
		return nil
	case errors.Is(err, ErrUnauthenticated):
		s.replace(gen, Snapshot{Availability: AvailabilityConfirmed})
		return nil
	default:
		s.replace(gen, Snapshot{Availability: AvailabilityUnreachable})
		return fmt.Errorf("session: fetch current user: %w", err)
	}
}

// Login authenticates against the backend. On success the principal is
// replaced with the returned identity; on failure the snapshot is left
// untouched and the error is returned for the caller to display.
func (s *Store) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	res, err := s.gateway.Login(ctx, creds)
	if err != nil {
		return LoginResult{}, err
	}

	s.mu.Lock()
	s.snap = Snapshot{Principal: principalOf(res.Identity), Availability: AvailabilityConfirmed}
	s.notifyLocked()
	s.mu.Unlock()

	return res, nil
}

// Logout tells the backend to end the session on a best-effort basis and
// unconditionally clears the principal. A failed network call is logged and
// swallowed; the local state transition always happens, with the backend
// marked unreachable so the shell does not report a confirmation it never
// got. Calling Logout when already logged out is a no-op beyond the network
// call.
func (s *Store) Logout(ctx context.Context) {
	availability := AvailabilityConfirmed
	if err := s.gateway.Logout(ctx); err != nil {
		s.log.Error(err, "logout call failed, clearing local session anyway")
		if !errors.Is(err, ErrUnauthenticated) {
			availability = AvailabilityUnreachable
		}
	}
	s.clear(availability)
}

// ForceLogout clears the principal without a network call. It is the
// cross-cutting handler for a 401/403 coming back from any backend call:
// a pure state mutation, so redirecting stays the route gate's job and a
// 401 on the login page cannot loop.
func (s *Store) ForceLogout() {
	s.clear(AvailabilityConfirmed)
}

func (s *Store) clear(availability Availability) {
	s.mu.Lock()
	s.gen++
	s.flight.Forget(currentUserKey)
	s.snap = Snapshot{Availability: availability}
	s.notifyLocked()
	s.mu.Unlock()
}

// replace installs a snapshot produced by the request started at generation
// gen. A generation bump in between means a logout won; the result is
// dropped.
func (s *Store) replace(gen uint64, snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	s.snap = snap
	s.notifyLocked()
}

// Seed installs a principal recovered from a cached token before the first
// Initialize confirms it against the backend. It only fills a store nothing
// has written yet: a held identity or an explicit logout is never
// overwritten by a cache.
func (s *Store) Seed(p Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.Principal.Present() || s.gen != 0 {
		return
	}
	s.snap = Snapshot{Principal: p, Availability: AvailabilityConfirmed}
	s.notifyLocked()
}

func (s *Store) notifyLocked() {
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
