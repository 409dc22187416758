package chrono

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStandardImplLocation(t *testing.T) {
	clock, err := NewStandardImpl()
	require.NoError(t, err)
	require.Equal(t, PortalLocation, clock.Location().String())
	require.Equal(t, PortalLocation, clock.Now().Location().String())
}

func TestFixedImpl(t *testing.T) {
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	clock := NewFixedImpl(start)
	require.Equal(t, start, clock.Now())

	clock.Advance(1500 * time.Millisecond)
	require.Equal(t, start.Add(1500*time.Millisecond), clock.Now())
	require.Equal(t, time.UTC, clock.Location())
}
