package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "09:00", want: 9 * time.Hour},
		{in: " 17:45 ", want: 17*time.Hour + 45*time.Minute},
		{in: "10:30:15", want: 10*time.Hour + 30*time.Minute + 15*time.Second},
		{in: "", wantErr: true},
		{in: "25:00", wantErr: true},
		{in: "9am", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseClock(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidClock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	_, err := ParseDate("10/03/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestWindowOverlapIsHalfOpenAndSymmetric(t *testing.T) {
	mustWindow := func(start, end string) Window {
		w, err := NewWindow("2025-03-10", start, end)
		require.NoError(t, err)
		return w
	}

	cases := []struct {
		name string
		a, b Window
		want bool
	}{
		{"touching", mustWindow("09:00", "10:00"), mustWindow("10:00", "11:00"), false},
		{"partial", mustWindow("09:00", "10:30"), mustWindow("10:00", "11:00"), true},
		{"nested", mustWindow("09:00", "12:00"), mustWindow("10:00", "11:00"), true},
		{"identical", mustWindow("09:00", "10:00"), mustWindow("09:00", "10:00"), true},
		{"disjoint", mustWindow("07:00", "08:00"), mustWindow("09:00", "10:00"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a))
		})
	}
}

func TestWindowContainsAndMinutes(t *testing.T) {
	slot, err := NewWindow("2025-03-10", "09:00", "12:00")
	require.NoError(t, err)
	inner, err := NewWindow("2025-03-10", "09:00", "10:30")
	require.NoError(t, err)
	outer, err := NewWindow("2025-03-10", "11:30", "12:30")
	require.NoError(t, err)

	assert.True(t, slot.Contains(inner))
	assert.False(t, slot.Contains(outer))
	assert.Equal(t, 90, inner.Minutes())
	assert.True(t, inner.Valid())
}

func TestNaiveKeepsWallClock(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*3600)
	in := time.Date(2025, 3, 10, 9, 15, 0, 0, loc)

	got := Naive(in)

	assert.Equal(t, time.Date(2025, 3, 10, 9, 15, 0, 0, time.UTC), got)
}

func TestLocationFallsBackToLocal(t *testing.T) {
	assert.Equal(t, time.Local, Location("Not/AZone"))
	assert.False(t, IsValid(""))
	assert.True(t, IsValid("UTC"))
}
