// 브로드캐스트 알림 접수 요청 및 정규화된 알림 레코드를 정의
// handler, service, sink 레이어에서 공통으로 사용하기 때문에 model 레이어에 별도로 정의

package model

import "time"

// DefaultRecipientType - recipientType 미지정 시 사용하는 기본 수신 대상
const DefaultRecipientType = "everyone"

// ISOTimeFormat - 응답/로그에 사용하는 ISO-8601 포맷 (UTC, 밀리초)
const ISOTimeFormat = "2006-01-02T15:04:05.000Z"

// AlertSubmission - POST /api/alerts 요청 본문
// JSON과 urlencoded form 둘 다 허용
type AlertSubmission struct {
	Message       string `json:"message" form:"message"`
	Link          string `json:"link" form:"link"`
	RecipientType string `json:"recipientType" form:"recipientType"`
}

// AlertRecord - 검증/정규화를 마친 알림
// 요청 하나의 수명 동안만 존재하며 저장되지 않음
type AlertRecord struct {
	// ID: 생성 시각의 Unix 밀리초 (동시 요청 시 중복 가능)
	ID int64 `json:"id"`

	Message string `json:"message"`

	// Link: 미지정이면 nil (JSON null)
	Link *string `json:"link"`

	RecipientType string `json:"recipientType"`

	// CreatedAt: 레코드 생성 시각 (로그 전용)
	CreatedAt time.Time `json:"-"`
}

// AlertData - 발행 완료 응답의 data 필드
// ID와 PublishedAt은 지연 이후 새로 계산됨
type AlertData struct {
	ID            int64   `json:"id"`
	Message       string  `json:"message"`
	Link          *string `json:"link"`
	RecipientType string  `json:"recipientType"`
	PublishedAt   string  `json:"publishedAt"`
}

// FormatTime - time.Time을 ISOTimeFormat 문자열로 변환
func FormatTime(t time.Time) string {
	return t.UTC().Format(ISOTimeFormat)
}
