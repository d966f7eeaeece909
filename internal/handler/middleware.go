package handler

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kube-rca/alert-broadcast/internal/metrics"
	"github.com/kube-rca/alert-broadcast/internal/model"
	"github.com/rs/zerolog"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"

	msgUnhandledError = "Something went wrong!"
)

func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogger - 요청마다 request id를 부여하고 처리 결과를 로깅/메트릭으로 기록
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		duration := time.Since(start)

		log.Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("remote_addr", c.ClientIP()).
			Int("status", status).
			Int("response_size", c.Writer.Size()).
			Dur("duration_ms", duration).
			Msg("request completed")

		statusLabel := fmt.Sprintf("%d", status)
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, statusLabel).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route, statusLabel).Observe(duration.Seconds())
	}
}

// ErrorMiddleware - 핸들러에서 처리되지 않은 panic/에러를 500 응답으로 변환
// 이미 응답을 쓴 경우에는 로그만 남김
func ErrorMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				metrics.PanicsRecovered.Inc()
				log.Error().
					Str("request_id", GetRequestID(c)).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Msg("Unhandled error")
				abortUnhandled(c)
			}
		}()

		c.Next()

		if err := c.Errors.Last(); err != nil {
			log.Error().
				Err(err.Err).
				Str("request_id", GetRequestID(c)).
				Str("path", c.Request.URL.Path).
				Msg("Unhandled error")
			abortUnhandled(c)
		}
	}
}

func abortUnhandled(c *gin.Context) {
	if c.Writer.Written() {
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, model.NewErrorResponse(msgUnhandledError))
}

// CORSMiddleware - allowedOrigins에 "*"가 있으면 모든 Origin 허용
func CORSMiddleware(allowedOrigins []string, allowCredentials bool) gin.HandlerFunc {
	allowAll := false
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		if trimmed == "*" {
			allowAll = true
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			_, ok := originMap[origin]
			switch {
			case ok:
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				if allowCredentials {
					c.Header("Access-Control-Allow-Credentials", "true")
				}
			case allowAll:
				c.Header("Access-Control-Allow-Origin", "*")
			}
			if ok || allowAll {
				// preflight가 요청한 헤더가 있으면 그대로 허용
				if requested := c.GetHeader("Access-Control-Request-Headers"); requested != "" {
					c.Header("Access-Control-Allow-Headers", requested)
					c.Writer.Header().Add("Vary", "Access-Control-Request-Headers")
				} else {
					c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				}
				c.Header("Access-Control-Allow-Methods", "GET, HEAD, PUT, PATCH, POST, DELETE")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SecurityHeaders - 기본 보안 헤더 설정 (CSP는 개발 편의상 설정하지 않음)
func SecurityHeaders() gin.HandlerFunc {
	headers := map[string]string{
		"X-Content-Type-Options":            "nosniff",
		"X-Frame-Options":                   "SAMEORIGIN",
		"X-DNS-Prefetch-Control":            "off",
		"X-Download-Options":                "noopen",
		"X-Permitted-Cross-Domain-Policies": "none",
		"X-XSS-Protection":                  "0",
		"Referrer-Policy":                   "no-referrer",
		"Strict-Transport-Security":         "max-age=15552000; includeSubDomains",
		"Cross-Origin-Opener-Policy":        "same-origin",
		"Cross-Origin-Resource-Policy":      "same-origin",
		"Origin-Agent-Cluster":              "?1",
	}

	return func(c *gin.Context) {
		for k, v := range headers {
			c.Header(k, v)
		}
		c.Next()
	}
}

// BodyLimit - 요청 본문 크기 제한
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
