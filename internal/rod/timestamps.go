// Package rod derives delivery-lifecycle metrics from reconciled order rows
// and classifies each order into an operational outcome with a generated
// root-cause explanation.
package rod

import (
	"strings"
	"time"

	"efazi/internal/reconcile"
)

// Timestamps holds the six lifecycle instants the classifier reads. Each is
// optional: a missing, empty, or unparsable cell yields nil.
type Timestamps struct {
	OrderDate                 *time.Time
	OrderProcess              *time.Time
	DeliveryEndedAt           *time.Time
	CaptainAssignedAt         *time.Time
	CaptainArrivedForPickupAt *time.Time
	DeliveryStartedAt         *time.Time
}

// Source exports write timestamps in whatever shape the upstream system
// happened to use; parsing is lenient across the layouts seen in the wild.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"1/2/2006 15:04",
}

// ParseTimestamp interprets a raw cell as a calendar date-time. A single
// enclosing apostrophe (the spreadsheet force-text marker) is stripped before
// parsing. Unparsable text yields nil, never an error: classification must
// stay total.
func ParseTimestamp(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "'")
	s = strings.TrimSuffix(s, "'")
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// timestampsFrom reads the six lifecycle columns off a merged row.
func timestampsFrom(row reconcile.MergedRow) Timestamps {
	return Timestamps{
		OrderDate:                 ParseTimestamp(row.Fields.Get("order_date")),
		OrderProcess:              ParseTimestamp(row.Fields.Get("order_process")),
		DeliveryEndedAt:           ParseTimestamp(row.Fields.Get("delivery_ended_at")),
		CaptainAssignedAt:         ParseTimestamp(row.Fields.Get("captain_assigned_at")),
		CaptainArrivedForPickupAt: ParseTimestamp(row.Fields.Get("captain_arrived_for_pickup_at")),
		DeliveryStartedAt:         ParseTimestamp(row.Fields.Get("delivery_started_at")),
	}
}
