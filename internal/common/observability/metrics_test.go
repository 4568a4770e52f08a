package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObservability_RecordsPerTaskType(t *testing.T) {
	obs := New("observability-test")
	defer obs.Shutdown()

	assert.NotNil(t, obs.jobCounter)
	assert.NotNil(t, obs.jobDuration)

	assert.NotPanics(t, func() {
		obs.RecordJobProcessed(context.Background(), "validate-campaign-data")
		obs.RecordJobDuration(context.Background(), "validate-campaign-data", 125*time.Millisecond)
	})
}

func TestObservability_ZeroValueIsInert(t *testing.T) {
	var obs Observability

	assert.NotPanics(t, func() {
		obs.RecordJobProcessed(context.Background(), "search-tracks")
		obs.RecordJobDuration(context.Background(), "search-tracks", time.Second)
		obs.Shutdown()
	})
}
