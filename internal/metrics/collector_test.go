package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorRecordTiming(t *testing.T) {
	c := NewCollector()
	c.RecordTiming(OpRecall, 10*time.Millisecond)
	c.RecordTiming(OpRecall, 30*time.Millisecond)

	snap := c.Snapshot()
	op, ok := snap.Operations[OpRecall]
	require.True(t, ok)
	assert.Equal(t, int64(2), op.Count)
	assert.Equal(t, int64(40), op.TotalTimeMs)
	assert.Equal(t, 20.0, op.AvgTimeMs)
	assert.Equal(t, int64(10), op.MinTimeMs)
	assert.Equal(t, int64(30), op.MaxTimeMs)
}

func TestCollectorEmptySnapshot(t *testing.T) {
	c := NewCollector()
	snap := c.Snapshot()
	assert.Empty(t, snap.Operations)
	assert.GreaterOrEqual(t, snap.UptimeSeconds, 0.0)
}

func TestCollectorTimeHelper(t *testing.T) {
	c := NewCollector()
	done := c.Time(OpCapture)
	done()

	snap := c.Snapshot()
	assert.Equal(t, int64(1), snap.Operations[OpCapture].Count)
}
