package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordFetch(t *testing.T) {
	ok := catalogFetchTotal.WithLabelValues("http", "vehicles", ResultSuccess)
	failed := catalogFetchTotal.WithLabelValues("http", "vehicles", ResultFailure)
	okBefore := testutil.ToFloat64(ok)
	failedBefore := testutil.ToFloat64(failed)

	RecordFetch("http", "vehicles", nil)
	RecordFetch("http", "vehicles", errors.New("boom"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}

func TestRecordLoad(t *testing.T) {
	RecordLoad(0.2, 12, 4)

	assert.Equal(t, 12.0, testutil.ToFloat64(catalogVehicles))
	assert.Equal(t, 4.0, testutil.ToFloat64(catalogOwners))
}

func TestSessions(t *testing.T) {
	before := testutil.ToFloat64(activeSessions)

	SessionOpened()
	SessionOpened()
	SessionClosed()

	assert.Equal(t, before+1, testutil.ToFloat64(activeSessions))
}

func TestRecordRecompute(t *testing.T) {
	c := filterRecomputeTotal.WithLabelValues("session")
	before := testutil.ToFloat64(c)

	RecordRecompute("session", 3)

	assert.Equal(t, before+1, testutil.ToFloat64(c))
}
