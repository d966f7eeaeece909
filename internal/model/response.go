package model

// ErrorResponse - 실패 응답 공통 형태
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type AlertPublishResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    *AlertData `json:"data"`
}

type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

func NewErrorResponse(msg string) ErrorResponse {
	return ErrorResponse{Success: false, Error: msg}
}
