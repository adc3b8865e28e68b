package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrementedCountersAreGatherable(t *testing.T) {
	m := New("planner")
	m.InvitesSent.Inc()
	m.OutboxEventsProcessed.Inc()
	m.BrokerPublishes.WithLabelValues("TEAM_CREATE", "success").Inc()

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}

	assert.True(t, names["planner_invites_sent_total"])
	assert.True(t, names["planner_outbox_events_processed_total"])
	assert.True(t, names["planner_broker_publishes_total"])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InvitesSent))
}

func TestIndependentInstancesDoNotCollide(t *testing.T) {
	first := New("planner")
	second := New("planner")

	first.InvitesFailed.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(first.InvitesFailed))
	assert.Zero(t, testutil.ToFloat64(second.InvitesFailed))
}
