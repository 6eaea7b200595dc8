package leadform

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestManager(t *testing.T) {
	clock := newTestClock()
	m := NewManager(Dependencies{Submitter: &fakeSubmitter{}, Now: clock.Now})

	t.Run("Same id returns the same session", func(t *testing.T) {
		a := m.Session("visitor-a")
		assert.Same(t, a, m.Session("visitor-a"))
		assert.NotSame(t, a, m.Session("visitor-b"))
		assert.Equal(t, 2, m.Len())
	})

	t.Run("Lookup does not create", func(t *testing.T) {
		_, ok := m.Lookup("visitor-z")
		assert.False(t, ok)
		assert.Equal(t, 2, m.Len())
	})

	t.Run("Idle sessions are closed and evicted", func(t *testing.T) {
		a := m.Session("visitor-a")
		a.Open("growth")

		clock.Advance(30 * time.Minute)
		m.Session("visitor-b").Snapshot()
		clock.Advance(45 * time.Minute)

		removed := m.CleanupIdle(time.Hour)
		assert.Equal(t, 1, removed)
		assert.False(t, a.Snapshot().Open)

		_, ok := m.Lookup("visitor-a")
		assert.False(t, ok)
		_, ok = m.Lookup("visitor-b")
		assert.True(t, ok)
	})

	t.Run("Sessions isolate their forms", func(t *testing.T) {
		c := m.Session("visitor-c")
		d := m.Session("visitor-d")
		c.Open("premium")
		assert.True(t, c.Snapshot().Open)
		assert.False(t, d.Snapshot().Open)
		m.Wait()
	})
}

func TestManagerStagingBudget(t *testing.T) {
	file := pngFile()
	m := NewManager(Dependencies{
		Uploader:       &fakeUploader{},
		Submitter:      &fakeSubmitter{},
		MaxStagedBytes: 2 * file.Size(),
	})

	a, b, c := m.Session("a"), m.Session("b"), m.Session("c")
	for _, s := range []*Session{a, b, c} {
		readyToPay(t, s)
	}

	_, err := a.SelectFile(pngFile())
	require.NoError(t, err)
	_, err = b.SelectFile(pngFile())
	require.NoError(t, err)
	assert.Equal(t, 2*file.Size(), m.StagedBytes())

	t.Run("Rejects files over the shared limit", func(t *testing.T) {
		v, err := c.SelectFile(pngFile())
		assert.ErrorIs(t, err, ErrStagingFull)
		assert.False(t, v.HasFile())
	})

	t.Run("Replacing a file does not double count it", func(t *testing.T) {
		_, err := a.SelectFile(pngFile())
		require.NoError(t, err)
		assert.Equal(t, 2*file.Size(), m.StagedBytes())
	})

	t.Run("Closing a form frees its share", func(t *testing.T) {
		a.Close()
		assert.Equal(t, file.Size(), m.StagedBytes())

		_, err := c.SelectFile(pngFile())
		require.NoError(t, err)
		assert.Equal(t, 2*file.Size(), m.StagedBytes())
	})

	t.Run("Files are only accepted once payment is due", func(t *testing.T) {
		d := m.Session("d")
		d.Open("growth")
		_, err := d.SelectFile(pngFile())
		assert.ErrorIs(t, err, ErrNotPaying)
		assert.Equal(t, 2*file.Size(), m.StagedBytes())
	})
}

func TestManagerEvictsStagedFilesEarly(t *testing.T) {
	clock := newTestClock()
	m := NewManager(Dependencies{
		Uploader:      &fakeUploader{},
		Submitter:     &fakeSubmitter{},
		StagedFileTTL: 10 * time.Minute,
		Now:           clock.Now,
	})

	holding := m.Session("holding")
	readyToPay(t, holding)
	_, err := holding.SelectFile(pngFile())
	require.NoError(t, err)

	browsing := m.Session("browsing")
	readyToPay(t, browsing)

	clock.Advance(15 * time.Minute)
	removed := m.CleanupIdle(time.Hour)

	assert.Equal(t, 1, removed)
	assert.Equal(t, int64(0), m.StagedBytes())
	assert.False(t, holding.Snapshot().Open)
	_, ok := m.Lookup("holding")
	assert.False(t, ok)
	_, ok = m.Lookup("browsing")
	assert.True(t, ok)
}

func TestManagerWaitCoversEvictedSessions(t *testing.T) {
	clock := newTestClock()
	uploader := &fakeUploader{release: make(chan struct{})}
	m := NewManager(Dependencies{Uploader: uploader, Submitter: &fakeSubmitter{}, Now: clock.Now})

	s := m.Session("visitor")
	readyToPay(t, s)
	_, err := s.SelectFile(pngFile())
	require.NoError(t, err)
	_, err = s.Finalize(context.Background())
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	require.Equal(t, 1, m.CleanupIdle(time.Hour))
	require.Equal(t, 0, m.Len())

	done := make(chan struct{})
	go func() {
		m.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Wait returned while an upload was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(uploader.release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after the upload finished")
	}
	assert.Equal(t, 1, uploader.Calls())
}
