// Package sink provides write-only destinations for accepted alert records.
//
// Sinks are fire-and-forget: a failed write is logged and counted but never
// surfaces to the request that produced the record.
package sink

import "github.com/kube-rca/alert-broadcast/internal/model"

// Sink records a single alert. Implementations must be safe for concurrent use.
type Sink interface {
	Record(record model.AlertRecord)
}

// Multi fans a record out to every sink in order.
type Multi []Sink

func (m Multi) Record(record model.AlertRecord) {
	for _, s := range m {
		s.Record(record)
	}
}
