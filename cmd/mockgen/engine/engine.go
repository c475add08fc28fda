package engine

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

// GeneratorConfig controls the synthetic export batch.
type GeneratorConfig struct {
	Scenario string // "mild" or "chaos"
	Count    int
	Now      time.Time
}

// Exports holds the three generated source tables, header row first.
type Exports struct {
	Base    [][]string // main rider sheet
	Source1 [][]string // tracking & lifecycle timestamps
	Source2 [][]string // shipped qty & store metadata
}

const timeLayout = "2006-01-02 15:04:05"

var stores = []string{"Nakheel Mall Store", "Corniche Store", "Al Faisaliyah Store", "Dhahran Store"}

// Generate builds a batch of synthetic orders. The chaos scenario mixes in
// cancellations, store and last-mile breaches, and duplicate tracking rows
// (the fan-out case real exports exhibit).
func Generate(cfg GeneratorConfig) Exports {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	rng := rand.New(rand.NewSource(cfg.Now.UnixNano()))

	ex := Exports{
		Base:    [][]string{{"order_id", "captain_name", "distance_to_customer_km"}},
		Source1: [][]string{{"order_number", "order_date", "order_process", "delivery_ended_at", "captain_assigned_at", "captain_arrived_for_pickup_at", "delivery_started_at"}},
		Source2: [][]string{{"order_ref", "shipped_qty", "store_name"}},
	}

	for i := 0; i < cfg.Count; i++ {
		id := fmt.Sprintf("ORD-%04d", i+1)
		ordered := cfg.Now.Add(-time.Duration(cfg.Count-i) * 10 * time.Minute)

		processMin := 5 + rng.Intn(10)  // store processing
		assignMin := 2 + rng.Intn(3)    // captain assignment
		pickupMin := 5 + rng.Intn(10)   // travel + wait at store
		lastLegMin := 15 + rng.Intn(20) // pickup to delivery
		cancelled, riderCancelled := false, false

		if cfg.Scenario == "chaos" {
			switch roll := rng.Float64(); {
			case roll < 0.08:
				cancelled = true
			case roll < 0.12:
				riderCancelled = true
			case roll < 0.30:
				processMin = 25 + rng.Intn(30) // store breach territory
				lastLegMin = 50 + rng.Intn(40)
			case roll < 0.45:
				assignMin = 8 + rng.Intn(10) // last-mile breach territory
				pickupMin = 22 + rng.Intn(15)
				lastLegMin = 55 + rng.Intn(30)
			}
		}

		processed := ordered.Add(time.Duration(processMin) * time.Minute)
		assigned := ordered.Add(time.Duration(assignMin) * time.Minute)
		arrived := assigned.Add(time.Duration(pickupMin/2+1) * time.Minute)
		started := arrived.Add(time.Duration(pickupMin/2+1) * time.Minute)
		ended := started.Add(time.Duration(lastLegMin) * time.Minute)

		row := []string{
			id,
			ordered.Format(timeLayout),
			"'" + processed.Format(timeLayout), // spreadsheet force-text marker
			ended.Format(timeLayout),
			assigned.Format(timeLayout),
			arrived.Format(timeLayout),
			started.Format(timeLayout),
		}
		if cancelled {
			row[2] = ordered.Format(timeLayout) // processed at order time: otp 0
		}
		if riderCancelled {
			row[3] = "" // never delivered
		}
		ex.Source1 = append(ex.Source1, row)

		// Chaos exports occasionally repeat a tracking row.
		if cfg.Scenario == "chaos" && rng.Float64() < 0.05 {
			ex.Source1 = append(ex.Source1, row)
		}

		ex.Base = append(ex.Base, []string{
			"  " + id, // untrimmed keys are normal in the rider sheet
			fmt.Sprintf("Captain %d", 1+rng.Intn(25)),
			fmt.Sprintf("%.1f", 1.0+rng.Float64()*12.0),
		})
		ex.Source2 = append(ex.Source2, []string{
			id,
			fmt.Sprintf("%d", 1+rng.Intn(6)),
			stores[rng.Intn(len(stores))],
		})
	}

	return ex
}

// Save writes the three exports as CSV files into dir.
func Save(dir string, ex Exports) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	files := map[string][][]string{
		"base.csv":    ex.Base,
		"source1.csv": ex.Source1,
		"source2.csv": ex.Source2,
	}
	for name, rows := range files {
		if err := writeCSV(filepath.Join(dir, name), rows); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
