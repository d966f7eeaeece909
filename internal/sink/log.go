package sink

import (
	"github.com/kube-rca/alert-broadcast/internal/metrics"
	"github.com/kube-rca/alert-broadcast/internal/model"
	"github.com/rs/zerolog"
)

// Log writes each record as a structured log line.
type Log struct {
	log zerolog.Logger
}

func NewLog(log zerolog.Logger) *Log {
	return &Log{log: log}
}

func (s *Log) Record(record model.AlertRecord) {
	alert := zerolog.Dict().
		Int64("id", record.ID).
		Str("message", record.Message).
		Str("recipientType", record.RecipientType).
		Str("timestamp", model.FormatTime(record.CreatedAt))
	if record.Link != nil {
		alert = alert.Str("link", *record.Link)
	} else {
		alert = alert.Interface("link", nil)
	}

	s.log.Info().Dict("alert", alert).Msg("New Alert Created")
	metrics.SinkWritesTotal.WithLabelValues("log", "success").Inc()
}
