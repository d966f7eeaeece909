package handler

import (
	"net/http"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gin-gonic/gin"
	"github.com/kube-rca/alert-broadcast/internal/model"
)

// HealthHandler - 헬스체크 핸들러
// 생성 시각(프로세스 시작 시점)부터 uptime을 계산
type HealthHandler struct {
	clock     clock.Clock
	startedAt time.Time
}

func NewHealthHandler(clk clock.Clock) *HealthHandler {
	if clk == nil {
		clk = clock.New()
	}
	return &HealthHandler{
		clock:     clk,
		startedAt: clk.Now(),
	}
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} model.HealthResponse
// @Router /api/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	now := h.clock.Now()
	uptime := now.Sub(h.startedAt).Seconds()
	if uptime < 0 {
		uptime = 0
	}

	c.JSON(http.StatusOK, model.HealthResponse{
		Status:    "OK",
		Timestamp: model.FormatTime(now),
		Uptime:    uptime,
	})
}
