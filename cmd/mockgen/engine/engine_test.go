package engine

import (
	"testing"
	"time"
)

func TestGenerateShapes(t *testing.T) {
	ex := Generate(GeneratorConfig{Scenario: "mild", Count: 50, Now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)})

	if len(ex.Base) != 51 || len(ex.Source2) != 51 {
		t.Errorf("Expected 50 rows + header, got base=%d source2=%d", len(ex.Base), len(ex.Source2))
	}
	if len(ex.Source1) != 51 {
		t.Errorf("Mild scenario should not duplicate tracking rows, got %d", len(ex.Source1))
	}
	if ex.Source1[0][1] != "order_date" {
		t.Errorf("Unexpected tracking header: %v", ex.Source1[0])
	}
}

func TestGenerateChaosFansOut(t *testing.T) {
	ex := Generate(GeneratorConfig{Scenario: "chaos", Count: 500, Now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)})

	if len(ex.Source1) <= 501 {
		t.Errorf("Chaos scenario should emit duplicate tracking rows, got %d for 500 orders", len(ex.Source1))
	}
}
