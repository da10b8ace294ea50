package rebalance

import "errors"

// The engine rejects bad input instead of repairing it: a target sum of 99%
// is never silently treated as 100%, and a zero-valued portfolio never
// produces percentages. All errors below are caller-visible, non-retryable
// input errors, matched with errors.Is.
var (
	// ErrInvalidAllocation reports unusable rebalancing inputs: no holdings,
	// no target allocations, or targets that do not sum to exactly 100%.
	ErrInvalidAllocation = errors.New("invalid allocation")

	// ErrDegenerateValuation reports a total portfolio value of zero, from
	// which no meaningful percentage can be computed.
	ErrDegenerateValuation = errors.New("degenerate valuation")

	// ErrInvalidTrade reports a trade the lot engine cannot account for,
	// such as a buy with a non-positive quantity.
	ErrInvalidTrade = errors.New("invalid trade")
)
