package lock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLocker struct {
	events []string
	failOn string
}

func (r *recordingLocker) Lock(_ context.Context, id string) (func(), error) {
	if id == r.failOn {
		return nil, errors.New("busy")
	}
	r.events = append(r.events, "lock:"+id)
	return func() { r.events = append(r.events, "unlock:"+id) }, nil
}

func TestLockAllSortsAndDeduplicates(t *testing.T) {
	l := &recordingLocker{}

	unlock, err := LockAll(context.Background(), l, []string{"c", "a", "", "c", "b"})
	require.NoError(t, err)
	unlock()

	assert.Equal(t, []string{
		"lock:a", "lock:b", "lock:c",
		"unlock:c", "unlock:b", "unlock:a",
	}, l.events)
}

func TestLockAllReleasesOnFailure(t *testing.T) {
	l := &recordingLocker{failOn: "b"}

	_, err := LockAll(context.Background(), l, []string{"a", "b", "c"})
	require.Error(t, err)

	assert.Equal(t, []string{"lock:a", "unlock:a"}, l.events)
}

func TestNoopLocker(t *testing.T) {
	unlock, err := LockAll(context.Background(), nil, []string{"a"})
	require.NoError(t, err)
	unlock()
}

func TestKey(t *testing.T) {
	assert.Equal(t, "scheduler:lock:user:42", Key("42"))
}
