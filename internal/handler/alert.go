// 브로드캐스트 알림 접수 요청을 처리하는 핸들러
//
// 요청 흐름:
//  1. 클라이언트가 POST /api/alerts로 알림 전송 (JSON 또는 urlencoded form)
//  2. 요청 본문을 AlertSubmission 구조체로 파싱
//  3. service 레이어에서 검증/기록/지연 처리 후 결과를 응답

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/kube-rca/alert-broadcast/internal/metrics"
	"github.com/kube-rca/alert-broadcast/internal/model"
	"github.com/kube-rca/alert-broadcast/internal/service"
	"github.com/rs/zerolog"
)

const (
	msgAlertPublished  = "Alert published successfully"
	msgMessageRequired = "Message is required"
	msgInternalError   = "Internal server error"
)

// alertPublisher - 서비스 인터페이스
type alertPublisher interface {
	Publish(sub model.AlertSubmission) (*model.AlertData, error)
}

// Alert 핸들러 구조체 정의
type AlertHandler struct {
	svc alertPublisher
	log zerolog.Logger
}

// Alert 핸들러 객체 생성
func NewAlertHandler(svc alertPublisher, log zerolog.Logger) *AlertHandler {
	return &AlertHandler{
		svc: svc,
		log: log,
	}
}

// PublishAlert godoc
// @Summary Publish a broadcast alert
// @Tags alerts
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body model.AlertSubmission true "Alert submission"
// @Success 200 {object} model.AlertPublishResponse
// @Failure 400,500 {object} model.ErrorResponse
// @Router /api/alerts [post]
func (h *AlertHandler) PublishAlert(c *gin.Context) {
	// 1. 요청 본문 파싱
	// 빈 본문이나 지원하지 않는 Content-Type은 빈 요청으로 취급 (message 검증에서 400)
	sub, err := bindSubmission(c)
	if err != nil {
		h.internalError(c, err)
		return
	}

	// 2. 검증/기록/지연 처리
	data, err := h.svc.Publish(sub)
	if errors.Is(err, service.ErrMessageRequired) {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(msgMessageRequired))
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}

	// 3. 응답 반환
	c.JSON(http.StatusOK, model.AlertPublishResponse{
		Success: true,
		Message: msgAlertPublished,
		Data:    data,
	})
}

// 내부 오류는 원인만 로그로 남기고 호출자에게는 일반 메시지만 반환
func (h *AlertHandler) internalError(c *gin.Context, err error) {
	metrics.AlertsSubmittedTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
	h.log.Error().
		Err(err).
		Str("request_id", GetRequestID(c)).
		Msg("Error creating alert")
	c.JSON(http.StatusInternalServerError, model.NewErrorResponse(msgInternalError))
}

func bindSubmission(c *gin.Context) (model.AlertSubmission, error) {
	switch c.ContentType() {
	case binding.MIMEJSON:
		return decodeJSONSubmission(c.Request.Body)
	case binding.MIMEPOSTForm:
		var sub model.AlertSubmission
		if err := c.ShouldBindWith(&sub, binding.Form); err != nil {
			return model.AlertSubmission{}, err
		}
		return sub, nil
	}

	return model.AlertSubmission{}, nil
}

// decodeJSONSubmission - JSON 본문을 AlertSubmission으로 변환
//
// 빈 본문이나 객체가 아닌 본문(null, 배열 등)은 빈 요청으로 취급합니다.
// 필드가 falsy 값(null, false, 0, "")이면 미지정으로, 문자열이 아닌 truthy 값이면 오류로 처리합니다.
func decodeJSONSubmission(body io.Reader) (model.AlertSubmission, error) {
	var raw any
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return model.AlertSubmission{}, nil
		}
		return model.AlertSubmission{}, err
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return model.AlertSubmission{}, nil
	}

	var (
		sub model.AlertSubmission
		err error
	)
	if sub.Message, err = textField(obj, "message"); err != nil {
		return model.AlertSubmission{}, err
	}
	// message 검증이 먼저이므로 나머지 필드는 message가 유효할 때만 확인
	if strings.TrimSpace(sub.Message) == "" {
		return model.AlertSubmission{}, nil
	}
	if sub.Link, err = textField(obj, "link"); err != nil {
		return model.AlertSubmission{}, err
	}
	if sub.RecipientType, err = textField(obj, "recipientType"); err != nil {
		return model.AlertSubmission{}, err
	}
	return sub, nil
}

func textField(obj map[string]any, key string) (string, error) {
	switch v := obj[key].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		if !v {
			return "", nil
		}
	case float64:
		if v == 0 {
			return "", nil
		}
	}
	return "", fmt.Errorf("field %q: unsupported value type %T", key, obj[key])
}
