package inventory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type blockingSyncer struct {
	calls   atomic.Int32
	release chan struct{}
	summary Summary
}

func (b *blockingSyncer) Run(context.Context) Summary {
	b.calls.Add(1)
	if b.release != nil {
		<-b.release
	}
	return b.summary
}

type memoryArchive struct {
	mu    sync.Mutex
	saved []Summary
	err   error
}

func (a *memoryArchive) Save(_ context.Context, s Summary) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return "", a.err
	}
	a.saved = append(a.saved, s)
	return ReportKey("reports", s.StartedAt), nil
}

func (a *memoryArchive) Load(_ context.Context, key string) (Summary, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, s := range a.saved {
		if ReportKey("reports", s.StartedAt) == key {
			return s, nil
		}
	}
	return Summary{}, ErrReportNotFound
}

func (a *memoryArchive) List(context.Context, int) ([]ReportInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]ReportInfo, 0, len(a.saved))
	for _, s := range a.saved {
		out = append(out, ReportInfo{Key: ReportKey("reports", s.StartedAt)})
	}
	return out, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
	data   []any
}

func (p *recordingPublisher) Publish(_ context.Context, key string, data any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, key)
	p.data = append(p.data, data)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func TestService_RunRecordsSummary(t *testing.T) {
	syncer := &blockingSyncer{summary: Summary{ItemsUpdated: 4, StopReason: StopCompleted}}
	archive := &memoryArchive{}
	pub := &recordingPublisher{}
	svc := NewService(syncer, archive, pub, zap.NewNop())

	_, ok := svc.Last()
	assert.False(t, ok)

	summary, shared := svc.Run(context.Background())

	assert.False(t, shared)
	assert.Equal(t, 4, summary.ItemsUpdated)

	last, ok := svc.Last()
	require.True(t, ok)
	assert.Equal(t, summary, last)
	assert.Len(t, archive.saved, 1)
	assert.Equal(t, []string{"sync.completed"}, pub.events)
	assert.Equal(t, summary, pub.data[0])
}

func TestService_ConcurrentTriggersShareRun(t *testing.T) {
	syncer := &blockingSyncer{release: make(chan struct{}), summary: Summary{ItemsUpdated: 1}}
	svc := NewService(syncer, nil, nil, nil)

	var wg sync.WaitGroup
	results := make([]Summary, 5)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = svc.Run(context.Background())
		}()
	}

	// Let every caller reach the in-flight run before releasing it
	require.Eventually(t, func() bool { return syncer.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(syncer.release)
	wg.Wait()

	assert.Equal(t, int32(1), syncer.calls.Load())
	for _, r := range results {
		assert.Equal(t, 1, r.ItemsUpdated)
	}
}

func TestService_ArchiveFailureDoesNotFailRun(t *testing.T) {
	syncer := &blockingSyncer{summary: Summary{ItemsUpdated: 2}}
	svc := NewService(syncer, &memoryArchive{err: errors.New("s3 down")}, nil, nil)

	summary, _ := svc.Run(context.Background())

	assert.False(t, summary.Failed)
	_, ok := svc.Last()
	assert.True(t, ok)
}

func TestService_ReportsWithoutArchive(t *testing.T) {
	svc := NewService(&blockingSyncer{}, nil, nil, nil)

	_, err := svc.Reports(context.Background(), 10)
	assert.ErrorIs(t, err, ErrArchiveDisabled)
}
