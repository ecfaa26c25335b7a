package fairshare

import (
	"fmt"

	"github.com/shopspring/decimal"

	"demandrecon/pkg/domain/entities"
)

// Child is one child cell of an edited aggregate, in render order
type Child struct {
	Key   string
	Value decimal.Decimal
}

// Redistribute spreads an aggregate-cell edit across its children so the
// reconciled children sum exactly to the new aggregate.
//
// With a zero child total the delta splits equally, the rounding
// remainder going entirely to the last child. Otherwise each child takes
// a share proportional to its current value, rounded to integer units,
// and the remainder goes to the child with the largest absolute rounded
// share (ties broken by child order). Children currently at zero take a
// share of exactly zero and never absorb the remainder unless every
// child is at zero.
//
// A zero delta returns the children unchanged. Children outside the input
// list are never touched.
func Redistribute(delta decimal.Decimal, children []Child) ([]Child, error) {
	result := make([]Child, len(children))
	copy(result, children)

	if delta.IsZero() {
		return result, nil
	}
	if len(children) == 0 {
		return nil, fmt.Errorf("cannot redistribute a non-zero delta across zero children")
	}

	oldSum := decimal.Zero
	for _, child := range children {
		oldSum = oldSum.Add(child.Value)
	}

	if oldSum.IsZero() {
		redistributeEqually(delta, result)
	} else {
		redistributeProportionally(delta, oldSum, result)
	}

	newSum := decimal.Zero
	for _, child := range result {
		newSum = newSum.Add(child.Value)
	}
	if !newSum.Equal(oldSum.Add(delta)) {
		return nil, fmt.Errorf("%w: expected %s, got %s",
			entities.ErrRoundingInvariant, oldSum.Add(delta), newSum)
	}

	return result, nil
}

// redistributeEqually splits the delta evenly, remainder to the last
// child so the order-determined assignment stays deterministic
func redistributeEqually(delta decimal.Decimal, children []Child) {
	n := int64(len(children))
	share := delta.Div(decimal.NewFromInt(n)).Floor()

	assigned := decimal.Zero
	for i := range children[:len(children)-1] {
		children[i].Value = children[i].Value.Add(share)
		assigned = assigned.Add(share)
	}
	last := len(children) - 1
	children[last].Value = children[last].Value.Add(delta.Sub(assigned))
}

// redistributeProportionally splits the delta by current-value weight,
// remainder to the largest absolute rounded share
func redistributeProportionally(delta, oldSum decimal.Decimal, children []Child) {
	shares := make([]decimal.Decimal, len(children))
	assigned := decimal.Zero
	for i, child := range children {
		// Sum-then-round: each share is rounded exactly once
		shares[i] = delta.Mul(child.Value).Div(oldSum).Round(0)
		assigned = assigned.Add(shares[i])
	}

	remainder := delta.Sub(assigned)
	if !remainder.IsZero() {
		target := -1
		for i, child := range children {
			if child.Value.IsZero() {
				continue
			}
			if target < 0 || shares[i].Abs().GreaterThan(shares[target].Abs()) {
				target = i
			}
		}
		if target < 0 {
			target = len(children) - 1
		}
		shares[target] = shares[target].Add(remainder)
	}

	for i := range children {
		children[i].Value = children[i].Value.Add(shares[i])
	}
}
