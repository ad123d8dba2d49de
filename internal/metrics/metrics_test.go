package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	c.SessionOpened()
	c.SessionOpened()
	c.SessionClosed()
	c.RunStarted()
	c.RingSpawned(2)
	c.RingSpawned(0)
	c.RunEnded(420)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.sessions))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.sessionTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runs))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.crashes))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.rings))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.asteroids))

	n, err := testutil.GatherAndCount(reg, "rocketrun_run_distance_units")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)

	_, err = NewCollector(reg)
	assert.Error(t, err)
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.SessionOpened()
		c.SessionClosed()
		c.RunStarted()
		c.RunEnded(10)
		c.RingSpawned(1)
	})
}
