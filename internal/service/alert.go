// 브로드캐스트 알림 발행 비즈니스 로직 정의
// handler에서 받은 요청을 검증/정규화하고 sink에 기록한 뒤 발행 결과를 반환
//
// 처리 흐름:
//  1. message 검증 (trim 후 빈 문자열이면 ErrMessageRequired, 지연 없이 즉시 반환)
//  2. 정규화 (message trim, link 미지정 시 nil, recipientType 미지정 시 "everyone")
//  3. 생성 시각 기반 ID/timestamp와 함께 sink에 기록 (fire-and-forget)
//  4. 고정 지연 대기 (clock 타이머, 요청 goroutine만 대기)
//  5. 지연 이후 시각으로 ID/publishedAt을 새로 계산해 반환

package service

import (
	"errors"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/kube-rca/alert-broadcast/internal/metrics"
	"github.com/kube-rca/alert-broadcast/internal/model"
)

// ErrMessageRequired - message 누락/공백 (호출자가 수정 가능한 오류, HTTP 400)
var ErrMessageRequired = errors.New("message is required")

// AlertSink - 알림 레코드를 기록하는 쓰기 전용 대상
// 기록 실패는 호출자에게 전파하지 않음
type AlertSink interface {
	Record(record model.AlertRecord)
}

// AlertService 구조체 정의
type AlertService struct {
	sink  AlertSink
	clock clock.Clock
	delay time.Duration
}

// AlertService 객체 생성
// clk이 nil이면 실제 시계를 사용
func NewAlertService(sink AlertSink, clk clock.Clock, delay time.Duration) *AlertService {
	if clk == nil {
		clk = clock.New()
	}
	return &AlertService{
		sink:  sink,
		clock: clk,
		delay: delay,
	}
}

// Normalize - 요청을 검증하고 정규화된 레코드를 생성
// ID와 CreatedAt은 호출 시점의 시각으로 채워짐
func (s *AlertService) Normalize(sub model.AlertSubmission) (model.AlertRecord, error) {
	message := strings.TrimSpace(sub.Message)
	if message == "" {
		return model.AlertRecord{}, ErrMessageRequired
	}

	var link *string
	if sub.Link != "" {
		l := sub.Link
		link = &l
	}

	recipientType := sub.RecipientType
	if recipientType == "" {
		recipientType = model.DefaultRecipientType
	}

	now := s.clock.Now()
	return model.AlertRecord{
		ID:            now.UnixMilli(),
		Message:       message,
		Link:          link,
		RecipientType: recipientType,
		CreatedAt:     now,
	}, nil
}

// Publish - 알림을 검증/기록하고 지연 후 발행 결과를 반환
//
// 검증 실패 시 sink 기록과 지연 없이 즉시 ErrMessageRequired를 반환합니다.
// 지연이 시작되면 취소되지 않으며 항상 완료됩니다.
func (s *AlertService) Publish(sub model.AlertSubmission) (*model.AlertData, error) {
	record, err := s.Normalize(sub)
	if err != nil {
		metrics.AlertsSubmittedTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, err
	}

	if s.sink != nil {
		s.sink.Record(record)
	}

	metrics.AlertsInFlight.Inc()
	if s.delay > 0 {
		<-s.clock.After(s.delay)
	}
	metrics.AlertsInFlight.Dec()

	publishedAt := s.clock.Now()
	metrics.AlertsSubmittedTotal.WithLabelValues(metrics.OutcomePublished).Inc()

	return &model.AlertData{
		ID:            publishedAt.UnixMilli(),
		Message:       record.Message,
		Link:          record.Link,
		RecipientType: record.RecipientType,
		PublishedAt:   model.FormatTime(publishedAt),
	}, nil
}
