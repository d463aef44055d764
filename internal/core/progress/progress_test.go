package progress

import (
	"bytes"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reconreport/internal/config"
)

type recordingRenderer struct {
	title    string
	updates  []int
	started  bool
	finished bool
	// doneAtUpdate 记录每次 Update 时完成标志的值
	flag         *atomic.Bool
	doneAtUpdate []bool
}

func (r *recordingRenderer) Start(title string) error {
	r.title = title
	r.started = true
	return nil
}

func (r *recordingRenderer) Update(percent int) {
	r.updates = append(r.updates, percent)
	r.doneAtUpdate = append(r.doneAtUpdate, r.flag.Load())
}

func (r *recordingRenderer) Finish() error {
	r.finished = true
	return nil
}

func testConfig() *config.ProgressConfig {
	return &config.ProgressConfig{Interval: time.Millisecond, Step: 2, Ceiling: 95}
}

func TestTrack_MonotonicBoundedAndTerminates(t *testing.T) {
	var flag atomic.Bool
	rec := &recordingRenderer{flag: &flag}
	r := NewReporter(testConfig(), rec)
	assert.Equal(t, StateIdle, r.State())

	polls := 0
	done := func() bool {
		polls++
		// 足够多次轮询, 保证会触碰上限
		if polls > 200 {
			flag.Store(true)
		}
		return flag.Load()
	}

	require.NoError(t, r.Track("Running nmap", done))

	assert.Equal(t, "Running nmap", rec.title)
	assert.True(t, rec.started)
	assert.True(t, rec.finished)
	assert.Equal(t, StateComplete, r.State())
	assert.Equal(t, 100, r.Percent())

	require.NotEmpty(t, rec.updates)
	last := len(rec.updates) - 1
	assert.Equal(t, 100, rec.updates[last])
	for i := 1; i < len(rec.updates); i++ {
		assert.Greater(t, rec.updates[i], rec.updates[i-1])
	}
	for i, p := range rec.updates[:last] {
		assert.LessOrEqual(t, p, 95)
		assert.False(t, rec.doneAtUpdate[i], "percent %d shown after completion", p)
	}
	assert.Equal(t, 95, rec.updates[last-1])
	assert.True(t, rec.doneAtUpdate[last])
	// 100 只出现一次
	assert.Equal(t, 1, countOf(rec.updates, 100))
}

func TestTrack_AlreadyDone(t *testing.T) {
	var flag atomic.Bool
	flag.Store(true)
	rec := &recordingRenderer{flag: &flag}
	r := NewReporter(testConfig(), rec)

	require.NoError(t, r.Track("whatweb", flag.Load))
	assert.Equal(t, []int{100}, rec.updates)
	assert.True(t, rec.finished)
}

func TestTrack_CompletesWithinOneInterval(t *testing.T) {
	var flag atomic.Bool
	rec := &recordingRenderer{flag: &flag}
	cfg := &config.ProgressConfig{Interval: 20 * time.Millisecond, Step: 2, Ceiling: 95}
	r := NewReporter(cfg, rec)

	go func() {
		time.Sleep(50 * time.Millisecond)
		flag.Store(true)
	}()

	start := time.Now()
	require.NoError(t, r.Track("amass", flag.Load))
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 100, rec.updates[len(rec.updates)-1])
}

func TestTrack_NotReusable(t *testing.T) {
	var flag atomic.Bool
	flag.Store(true)
	r := NewReporter(testConfig(), &recordingRenderer{flag: &flag})

	require.NoError(t, r.Track("first", flag.Load))
	assert.ErrorIs(t, r.Track("second", flag.Load), ErrReused)
}

func TestPtermRenderer(t *testing.T) {
	var buf bytes.Buffer
	p := NewPtermRenderer(&buf)

	p.Update(10) // 未启动时忽略
	require.NoError(t, p.Start("sslscan"))
	p.Update(40)
	p.Update(30) // 不回退
	p.Update(100)
	require.NoError(t, p.Finish())
	require.NoError(t, p.Finish())
}

func countOf(values []int, v int) int {
	n := 0
	for _, x := range values {
		if x == v {
			n++
		}
	}
	return n
}
