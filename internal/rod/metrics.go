package rod

import (
	"math"
	"time"
)

// Metrics are the minute-denominated interval durations derived from the
// lifecycle timestamps, rounded to two decimals. Any interval with a missing
// endpoint is exactly 0, so downstream comparisons never handle nulls.
type Metrics struct {
	OrderToProcess   float64 // order_process - order_date
	OrderToDelivery  float64 // delivery_ended_at - order_date
	OrderToAssign    float64 // captain_assigned_at - order_date
	AssignToArrive   float64 // captain_arrived_for_pickup_at - captain_assigned_at
	ArriveToPickup   float64 // delivery_started_at - captain_arrived_for_pickup_at
	PickupToDelivery float64 // delivery_ended_at - delivery_started_at
}

// Metrics computes the interval set for one order.
func (ts Timestamps) Metrics() Metrics {
	return Metrics{
		OrderToProcess:   minutesBetween(ts.OrderProcess, ts.OrderDate),
		OrderToDelivery:  minutesBetween(ts.DeliveryEndedAt, ts.OrderDate),
		OrderToAssign:    minutesBetween(ts.CaptainAssignedAt, ts.OrderDate),
		AssignToArrive:   minutesBetween(ts.CaptainArrivedForPickupAt, ts.CaptainAssignedAt),
		ArriveToPickup:   minutesBetween(ts.DeliveryStartedAt, ts.CaptainArrivedForPickupAt),
		PickupToDelivery: minutesBetween(ts.DeliveryEndedAt, ts.DeliveryStartedAt),
	}
}

// PickupTime is the total captain-side pickup duration: travel to the store
// plus waiting at the store.
func (m Metrics) PickupTime() float64 {
	return m.AssignToArrive + m.ArriveToPickup
}

// minutesBetween returns (end - start) in minutes, rounded to two decimals,
// or 0 when either endpoint is missing.
func minutesBetween(end, start *time.Time) float64 {
	if end == nil || start == nil {
		return 0
	}
	return round2(end.Sub(*start).Minutes())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
