// Package packing holds the pure capacity/weight accounting for containers.
// Every function is deterministic, total and side-effect free; the service
// layer decides what to do with an exceeded flag or a failed fit check.
package packing

import (
	"github.com/shopspring/decimal"

	"github.com/Mofathy183/beggy-sub000/internal/models"
)

// Limits is the threshold view of a container. Weight is the container's own
// empty weight, not a threshold; CanFit compares against it rather than
// MaxWeight.
type Limits struct {
	Capacity  float64
	MaxWeight float64
	Weight    float64
}

// CurrentWeight sums the raw per-item weight of the attached items, rounded to
// 2 decimal places. It does NOT multiply by quantity; whether it should is a
// pending product decision.
func CurrentWeight(items []models.Item) float64 {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(item.Weight))
	}
	return total.Round(2).InexactFloat64()
}

// CurrentCapacity sums the raw per-item volume of the attached items, rounded
// to 2 decimal places. Same quantity caveat as CurrentWeight.
func CurrentCapacity(items []models.Item) float64 {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(item.Volume))
	}
	return total.Round(2).InexactFloat64()
}

// IsWeightExceeded reports whether the summed item weight passes maxWeight.
// Zero on either side short-circuits to false.
func IsWeightExceeded(items []models.Item, maxWeight float64) bool {
	current := CurrentWeight(items)
	if current == 0 || maxWeight == 0 {
		return false
	}
	return current > maxWeight
}

// IsCapacityExceeded reports whether the summed item volume passes capacity.
// Zero on either side short-circuits to false.
func IsCapacityExceeded(items []models.Item, capacity float64) bool {
	current := CurrentCapacity(items)
	if current == 0 || capacity == 0 {
		return false
	}
	return current > capacity
}

// CanFit is the insertion gate evaluated before attaching an item. The formula
// (divide-by-100, OR of the two comparisons, container empty weight instead of
// max weight) is an approximate gate, not a guaranteed-safe constraint; the
// post-attach exceeded checks are the hard limit.
func CanFit(container Limits, item models.Item) bool {
	qty := float64(item.Quantity)
	return container.Capacity >= (item.Volume*qty)/100 ||
		container.Weight >= (item.Weight*qty)/100
}
