package retry

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"clustat/pkg/render"
	"clustat/pkg/schema"
	"clustat/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testPolicy(t *testing.T, attempts int) Policy {
	return Policy{MaxAttempts: attempts, Wait: 0, Logger: zaptest.NewLogger(t)}
}

// flaky fails with ErrUnavailable for the first n calls, then succeeds.
func flaky(n int, calls *int) func() error {
	return func() error {
		*calls++
		if *calls <= n {
			return store.Unavailable(errors.New("election in progress"))
		}
		return nil
	}
}

func TestDoRecoversWithinBound(t *testing.T) {
	var calls int
	err := testPolicy(t, 5).Do(flaky(3, &calls))
	require.NoError(t, err)
	assert.Equal(t, 4, calls)
}

func TestDoExhaustsBound(t *testing.T) {
	var calls int
	err := testPolicy(t, 5).Do(flaky(5, &calls))
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrUnavailable))
	assert.Equal(t, 5, calls)
}

func TestDoDoesNotRetryOtherErrors(t *testing.T) {
	var calls int
	wantErr := errors.New("schema violation")
	err := testPolicy(t, 5).Do(func() error {
		calls++
		return wantErr
	})
	assert.Equal(t, wantErr, err)
	assert.Equal(t, 1, calls)
}

// A zero or negative bound (reachable through CLUSTAT_RETRY_ATTEMPTS=0) must
// not turn into a silent no-op that reports success without a single pass.
func TestDoNonPositiveBoundRunsOnce(t *testing.T) {
	for _, attempts := range []int{0, -3} {
		var calls int
		err := testPolicy(t, attempts).Do(flaky(0, &calls))
		require.NoError(t, err)
		assert.Equal(t, 1, calls)

		calls = 0
		err = testPolicy(t, attempts).Do(flaky(10, &calls))
		require.Error(t, err)
		assert.True(t, errors.Is(err, store.ErrUnavailable))
		assert.Equal(t, 1, calls)
	}
}

func TestDoSucceedsFirstTry(t *testing.T) {
	var calls int
	err := testPolicy(t, 24).Do(flaky(0, &calls))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

// The policy wraps a whole aggregate+render pass: a store that fails during
// the first passes and then recovers still yields one complete report, and
// nothing from the failed passes survives in the output buffer.
func TestDoWrapsFullReportPass(t *testing.T) {
	m := store.NewMemStore()
	m.Data["conf/profiles/current"] = "P1"
	m.Data["conf/pools"] = "pool1 pool2"
	m.Data["leader"] = "node0"
	m.Data["conf/nodes/1"] = `{"name":"node0"}`
	m.Data["conf/nodes/1/processes/2/endpoint"] = "192.168.1.1@tcp:12345:44:101"
	m.Data["conf/nodes/1/processes/2/services/confd"] = ""
	m.Checks["node0"] = []store.Check{{ServiceID: "2", Status: "passing"}}
	m.FailNext = 2

	walker := schema.NewWalker(m, zaptest.NewLogger(t))

	var buf bytes.Buffer
	err := testPolicy(t, 24).Do(func() error {
		buf.Reset()
		view, err := walker.Aggregate()
		if err != nil {
			return err
		}
		return render.Text(&buf, view)
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Profile: P1")
	assert.Contains(t, out,
		"[started   ] confd       0x7200000000000001:0x2  192.168.1.1@tcp:12345:44:101")
	assert.Equal(t, 1, strings.Count(out, "Profile:"))
}
