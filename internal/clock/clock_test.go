package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFuncClock(t *testing.T) {
	fixed := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	c := Func(func() time.Time { return fixed })

	assert.Equal(t, fixed, c.Now())
	assert.Equal(t, fixed, OrSystem(c).Now())
}

func TestSystemClockUsesLocation(t *testing.T) {
	c := System("UTC")
	assert.Equal(t, time.UTC, c.Now().Location())
	assert.NotNil(t, OrSystem(nil))
}
