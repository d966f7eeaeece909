package service

import (
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/kube-rca/alert-broadcast/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu      sync.Mutex
	records []model.AlertRecord
}

func (s *recordingSink) Record(record model.AlertRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
}

func (s *recordingSink) all() []model.AlertRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.AlertRecord(nil), s.records...)
}

type publishResult struct {
	data *model.AlertData
	err  error
}

var baseTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func newMockService(t *testing.T, delay time.Duration) (*AlertService, *clock.Mock, *recordingSink) {
	t.Helper()
	mock := clock.NewMock()
	mock.Set(baseTime)
	sink := &recordingSink{}
	return NewAlertService(sink, mock, delay), mock, sink
}

// publishWithMock - 타이머가 등록될 때까지 mock 시계를 delay 단위로 전진
func publishWithMock(svc *AlertService, mock *clock.Mock, delay time.Duration, sub model.AlertSubmission) publishResult {
	done := make(chan publishResult, 1)
	go func() {
		data, err := svc.Publish(sub)
		done <- publishResult{data: data, err: err}
	}()

	for {
		select {
		case res := <-done:
			return res
		default:
			mock.Add(delay)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name          string
		input         model.AlertSubmission
		wantMessage   string
		wantLink      *string
		wantRecipient string
	}{
		{
			name:          "trims-message-and-defaults",
			input:         model.AlertSubmission{Message: "  Hello  "},
			wantMessage:   "Hello",
			wantRecipient: "everyone",
		},
		{
			name:          "keeps-link-and-recipient",
			input:         model.AlertSubmission{Message: "Deploy done", Link: "https://example.com/x", RecipientType: "admins"},
			wantMessage:   "Deploy done",
			wantLink:      strPtr("https://example.com/x"),
			wantRecipient: "admins",
		},
		{
			name:          "link-not-trimmed",
			input:         model.AlertSubmission{Message: "m", Link: " spaced "},
			wantMessage:   "m",
			wantLink:      strPtr(" spaced "),
			wantRecipient: "everyone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newMockService(t, time.Second)

			got, err := svc.Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMessage, got.Message)
			assert.Equal(t, tt.wantLink, got.Link)
			assert.Equal(t, tt.wantRecipient, got.RecipientType)
			assert.Equal(t, baseTime.UnixMilli(), got.ID)
			assert.True(t, got.CreatedAt.Equal(baseTime))
		})
	}
}

func TestPublishRejectsEmptyMessageWithoutDelay(t *testing.T) {
	for _, msg := range []string{"", "   ", "\t\n"} {
		svc, _, sink := newMockService(t, time.Hour)

		// mock 시계를 전진시키지 않으므로 지연이 있으면 반환되지 않음
		data, err := svc.Publish(model.AlertSubmission{Message: msg, Link: "x", RecipientType: "y"})

		assert.ErrorIs(t, err, ErrMessageRequired)
		assert.Nil(t, data)
		assert.Empty(t, sink.all(), "rejected alerts must not reach the sink")
	}
}

func TestPublishRecordsThenAcknowledgesAfterDelay(t *testing.T) {
	svc, mock, sink := newMockService(t, time.Second)

	res := publishWithMock(svc, mock, time.Second, model.AlertSubmission{Message: "  Hello  "})
	require.NoError(t, res.err)

	records := sink.all()
	require.Len(t, records, 1)
	assert.Equal(t, "Hello", records[0].Message)
	assert.GreaterOrEqual(t, records[0].ID, baseTime.UnixMilli())

	data := res.data
	assert.Equal(t, "Hello", data.Message)
	assert.Nil(t, data.Link)
	assert.Equal(t, "everyone", data.RecipientType)

	// 응답의 ID/publishedAt은 지연 이후에 새로 계산됨
	assert.GreaterOrEqual(t, data.ID, records[0].ID+time.Second.Milliseconds())
	publishedAt, err := time.Parse(model.ISOTimeFormat, data.PublishedAt)
	require.NoError(t, err)
	assert.Equal(t, data.ID, publishedAt.UnixMilli())
}

func TestPublishWithoutDelay(t *testing.T) {
	svc, _, sink := newMockService(t, 0)

	data, err := svc.Publish(model.AlertSubmission{Message: "now"})
	require.NoError(t, err)
	assert.Equal(t, baseTime.UnixMilli(), data.ID)
	assert.Equal(t, "2024-01-15T10:30:00.000Z", data.PublishedAt)
	assert.Len(t, sink.all(), 1)
}

func TestPublishWithNilSink(t *testing.T) {
	svc := NewAlertService(nil, clock.NewMock(), 0)

	data, err := svc.Publish(model.AlertSubmission{Message: "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", data.Message)
}

func TestPublishConcurrentRequestsShareTheDelay(t *testing.T) {
	const (
		n     = 20
		delay = 100 * time.Millisecond
	)
	sink := &recordingSink{}
	svc := NewAlertService(sink, clock.New(), delay)

	start := time.Now()
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Publish(model.AlertSubmission{Message: "concurrent"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	elapsed := time.Since(start)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Len(t, sink.all(), n)
	assert.GreaterOrEqual(t, elapsed, delay)
	assert.Less(t, elapsed, 5*delay, "requests should wait concurrently, not one after another")
}

func strPtr(s string) *string {
	return &s
}
