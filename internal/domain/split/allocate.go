package split

import (
	"sort"

	"github.com/shopspring/decimal"
)

// allocate divides target into parts proportional to numerators/denominator.
// Each part is first truncated to scale; the leftover units are then handed
// out one by one to the parts with the largest truncation remainder, earlier
// entries winning ties. sum(numerators)/denominator must equal target.
func allocate(numerators []decimal.Decimal, denominator, target decimal.Decimal, scale int32) []decimal.Decimal {
	parts := make([]decimal.Decimal, len(numerators))
	remainders := make([]decimal.Decimal, len(numerators))
	allocated := decimal.Zero
	for i, numerator := range numerators {
		quotient, remainder := numerator.QuoRem(denominator, scale)
		parts[i] = quotient
		remainders[i] = remainder
		allocated = allocated.Add(quotient)
	}

	leftover := target.Sub(allocated).Shift(scale).IntPart()
	if leftover <= 0 {
		return parts
	}

	order := make([]int, len(parts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]].GreaterThan(remainders[order[b]])
	})

	unit := decimal.New(1, -scale)
	for i := 0; i < len(order) && int64(i) < leftover; i++ {
		parts[order[i]] = parts[order[i]].Add(unit)
	}
	return parts
}
