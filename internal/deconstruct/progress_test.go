package deconstruct

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestProgressStagesShape(t *testing.T) {
	require.NotEmpty(t, ProgressStages)
	last := 0
	for _, stage := range ProgressStages {
		assert.Greater(t, stage.Percent, last)
		assert.Less(t, stage.Percent, 100)
		assert.NotEmpty(t, stage.Message)
		last = stage.Percent
	}
}

func TestProgressReporter(t *testing.T) {
	// go.opencensus.io/stats/view starts a background worker in package init
	// (pulled in transitively via the genai client); it is not spawned by the
	// code under test, so exclude it from the leak check.
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))

	t.Run("emits stages in order then idles", func(t *testing.T) {
		var mu sync.Mutex
		var got []ProgressStage
		r := StartProgress(time.Millisecond, func(s ProgressStage) {
			mu.Lock()
			got = append(got, s)
			mu.Unlock()
		})

		require.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(got) == len(ProgressStages)
		}, time.Second, time.Millisecond)

		r.Stop()
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, ProgressStages, got)
	})

	t.Run("stop before the first tick", func(t *testing.T) {
		r := StartProgress(time.Hour, func(ProgressStage) {
			t.Error("no stage should be emitted")
		})
		r.Stop()
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		r := StartProgress(time.Millisecond, func(ProgressStage) {})
		r.Stop()
		r.Stop()
	})
}
