package rod

import (
	"fmt"
	"strconv"
	"strings"

	"efazi/internal/reconcile"
)

// Remark is the fixed outcome vocabulary.
const (
	RemarkOnTime      = "On time"
	RemarkCSCancelled = "CS Cancelled/ST rejected"
	RemarkRiderCancel = "Rider Cancelled"
	RemarkLastMile    = "LM breach"
	RemarkStoreBreach = "Store Breach"
)

// Measure columns read off the merged row besides the timestamps.
const (
	distanceColumn   = "distance_to_customer_km"
	shippedQtyColumn = "shipped_qty"
	storeNameColumn  = "store_name"
)

// Thresholds are the classification cut-offs, in minutes. They ship with the
// operationally agreed defaults and can be overridden from configuration.
type Thresholds struct {
	DeliveryBreach float64 // order_to_delivery above this is a breach
	StoreProcess   float64 // order_to_process above this blames the store
	SlowAssign     float64 // order_to_assign above this blames assignment
	SlowPickup     float64 // pickup_time above this blames pickup
	SlowLastLeg    float64 // pickup_to_delivery above this blames the last leg
}

// DefaultThresholds returns the standard ROD cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DeliveryBreach: 90,
		StoreProcess:   20,
		SlowAssign:     5,
		SlowPickup:     20,
		SlowLastLeg:    60,
	}
}

// OutcomeRecord is one finished report row. Created once per merged row and
// never mutated afterwards.
type OutcomeRecord struct {
	OrderID         string
	ShippedQty      string
	StoreName       string
	OrderToProcess  float64
	OrderToDelivery float64
	Remark          string
	RCA             string
}

// Classifier assigns an outcome Remark and RCA text to merged rows. It holds
// no mutable state; Classify is a pure function of the row.
type Classifier struct {
	t     Thresholds
	rules []rule
}

// rule is one entry of the priority-ordered decision list. The first rule
// whose predicate matches wins; later rules are unreachable for that row.
type rule struct {
	match  func(Metrics) bool
	remark string
}

// NewClassifier builds a classifier with the given thresholds.
func NewClassifier(t Thresholds) *Classifier {
	return &Classifier{
		t: t,
		rules: []rule{
			{func(m Metrics) bool { return m.OrderToProcess <= 0 }, RemarkCSCancelled},
			{func(m Metrics) bool { return m.OrderToDelivery > t.DeliveryBreach && m.OrderToProcess <= t.StoreProcess }, RemarkLastMile},
			{func(m Metrics) bool { return m.OrderToDelivery > t.DeliveryBreach && m.OrderToProcess > t.StoreProcess }, RemarkStoreBreach},
			{func(m Metrics) bool { return m.OrderToDelivery <= 0 }, RemarkRiderCancel},
			{func(Metrics) bool { return true }, RemarkOnTime},
		},
	}
}

// Classify produces the outcome record for one merged row. It is total:
// missing columns, unparsable timestamps, and malformed distance values all
// degrade to defaults and never abort.
func (c *Classifier) Classify(row reconcile.MergedRow) OutcomeRecord {
	m := timestampsFrom(row).Metrics()

	remark := RemarkOnTime
	for _, r := range c.rules {
		if r.match(m) {
			remark = r.remark
			break
		}
	}

	return OutcomeRecord{
		OrderID:         row.Key,
		ShippedQty:      row.Fields.GetOr(shippedQtyColumn, "0"),
		StoreName:       row.Fields.Get(storeNameColumn),
		OrderToProcess:  m.OrderToProcess,
		OrderToDelivery: m.OrderToDelivery,
		Remark:          remark,
		RCA:             c.rca(remark, m, distanceKM(row)),
	}
}

// rca generates the root-cause text for the two breach remarks. The minute
// values are printed as integer parts, truncating toward zero.
func (c *Classifier) rca(remark string, m Metrics, distKM float64) string {
	switch remark {
	case RemarkStoreBreach:
		return fmt.Sprintf("%d min taken for store processing.", int(m.OrderToProcess))
	case RemarkLastMile:
		switch {
		case m.OrderToAssign > c.t.SlowAssign && m.PickupTime() > c.t.SlowPickup:
			return fmt.Sprintf("%d min assigning, %d min pickup.", int(m.OrderToAssign), int(m.PickupTime()))
		case m.OrderToAssign > c.t.SlowAssign:
			return fmt.Sprintf("%d min taken for assigning.", int(m.OrderToAssign))
		case m.PickupToDelivery > c.t.SlowLastLeg:
			return fmt.Sprintf("%d min pickup to delivery for %s KM.", int(m.PickupToDelivery), formatDistance(distKM))
		default:
			return "Last Mile delay during delivery."
		}
	}
	return ""
}

// distanceKM reads the road distance off the row, substituting 0 for absent
// or non-numeric values.
func distanceKM(row reconcile.MergedRow) float64 {
	raw := strings.TrimSpace(row.Fields.Get(distanceColumn))
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

func formatDistance(km float64) string {
	return strconv.FormatFloat(km, 'f', -1, 64)
}
