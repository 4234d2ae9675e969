package lock

import (
	"context"
	"sort"
)

// UserLocker serializes the conflict check and the write that follows it for
// one user. The default NoopLocker keeps the unguarded check-then-act
// behaviour: concurrent acceptances may both pass the check.
type UserLocker interface {
	Lock(ctx context.Context, userID string) (unlock func(), err error)
}

type NoopLocker struct{}

func (NoopLocker) Lock(context.Context, string) (func(), error) {
	return func() {}, nil
}

// LockAll acquires locks for every distinct id in sorted order, so two callers
// locking overlapping sets cannot deadlock. On failure, locks already held are
// released.
func LockAll(ctx context.Context, l UserLocker, userIDs []string) (func(), error) {
	if l == nil {
		l = NoopLocker{}
	}

	ids := make([]string, 0, len(userIDs))
	seen := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Strings(ids)

	unlocks := make([]func(), 0, len(ids))
	release := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}

	for _, id := range ids {
		unlock, err := l.Lock(ctx, id)
		if err != nil {
			release()
			return nil, err
		}
		unlocks = append(unlocks, unlock)
	}
	return release, nil
}
