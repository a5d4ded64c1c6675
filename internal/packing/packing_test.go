package packing_test

import (
	"math"
	"testing"

	"github.com/Mofathy183/beggy-sub000/internal/models"
	"github.com/Mofathy183/beggy-sub000/internal/packing"
)

func items(weights ...float64) []models.Item {
	out := make([]models.Item, 0, len(weights))
	for _, w := range weights {
		out = append(out, models.Item{Weight: w, Volume: w, Quantity: 1})
	}
	return out
}

func TestCurrentWeightEmpty(t *testing.T) {
	if got := packing.CurrentWeight(nil); got != 0 {
		t.Errorf("CurrentWeight(nil) = %v, want 0", got)
	}
	if got := packing.CurrentWeight([]models.Item{}); got != 0 {
		t.Errorf("CurrentWeight([]) = %v, want 0", got)
	}
}

func TestCurrentWeightRounding(t *testing.T) {
	// 0.1 + 0.2 in binary floats is 0.30000000000000004; the decimal sum
	// must come back as exactly 0.3.
	got := packing.CurrentWeight(items(0.1, 0.2))
	if got != 0.3 {
		t.Errorf("CurrentWeight(0.1, 0.2) = %v, want 0.3", got)
	}

	got = packing.CurrentWeight(items(1.005, 2.004))
	if math.Abs(got-3.01) > 1e-9 {
		t.Errorf("CurrentWeight(1.005, 2.004) = %v, want 3.01", got)
	}
}

func TestCurrentWeightIgnoresQuantity(t *testing.T) {
	list := []models.Item{{Weight: 0.2, Volume: 0.5, Quantity: 10}}
	if got := packing.CurrentWeight(list); got != 0.2 {
		t.Errorf("CurrentWeight with quantity 10 = %v, want 0.2 (raw weight)", got)
	}
	if got := packing.CurrentCapacity(list); got != 0.5 {
		t.Errorf("CurrentCapacity with quantity 10 = %v, want 0.5 (raw volume)", got)
	}
}

func TestCurrentCapacity(t *testing.T) {
	got := packing.CurrentCapacity(items(1.25, 2.5, 0.25))
	if got != 4.0 {
		t.Errorf("CurrentCapacity = %v, want 4.0", got)
	}
	if got := packing.CurrentCapacity(nil); got != 0 {
		t.Errorf("CurrentCapacity(nil) = %v, want 0", got)
	}
}

func TestIsWeightExceeded(t *testing.T) {
	tests := []struct {
		name      string
		items     []models.Item
		maxWeight float64
		want      bool
	}{
		{"empty items", nil, 10, false},
		{"zero max weight", items(5), 0, false},
		{"under threshold", items(4.9), 5, false},
		{"at threshold", items(5), 5, false},
		{"over threshold", items(5.01), 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := packing.IsWeightExceeded(tt.items, tt.maxWeight); got != tt.want {
				t.Errorf("IsWeightExceeded = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsCapacityExceeded(t *testing.T) {
	if packing.IsCapacityExceeded(items(10.5), 11.2) {
		t.Error("10.5 of 11.2 should not be exceeded")
	}
	if !packing.IsCapacityExceeded(items(11.21), 11.2) {
		t.Error("11.21 of 11.2 should be exceeded")
	}
	if packing.IsCapacityExceeded(nil, 11.2) {
		t.Error("empty item list should never be exceeded")
	}
	if packing.IsCapacityExceeded(items(10), 0) {
		t.Error("zero capacity threshold should never report exceeded")
	}
}

func TestCanFit(t *testing.T) {
	container := packing.Limits{Capacity: 11.2, MaxWeight: 12.55, Weight: 2.0}

	// volume*qty/100 = 0.05, weight*qty/100 = 0.02; both comparisons pass.
	item := models.Item{Volume: 0.5, Weight: 0.2, Quantity: 10}
	if !packing.CanFit(container, item) {
		t.Error("item should fit the reference container")
	}

	// Capacity side fails (2000*1/100 = 20 > 11.2) but the gate passes on
	// the weight side because the container's empty weight backs the OR.
	huge := models.Item{Volume: 2000, Weight: 1, Quantity: 1}
	if !packing.CanFit(container, huge) {
		t.Error("gate is an OR; weight side should still admit the item")
	}

	// Both sides fail.
	brick := models.Item{Volume: 2000, Weight: 500, Quantity: 1}
	if packing.CanFit(container, brick) {
		t.Error("item failing both sides must not fit")
	}
}
