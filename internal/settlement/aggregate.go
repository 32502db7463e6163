package settlement

import "github.com/mselser95/betslip-validator/pkg/types"

// Aggregate rolls per-selection verdicts into the slip status:
//
//  1. any LOST wins outright;
//  2. otherwise any PENDING or NOT_SUPPORTED leaves the slip PENDING;
//  3. all WON is WON;
//  4. a mix of WON with PUSH/VOID/REFUND/CANCELLED is WON, none of them WON is REFUND.
//
// An empty slip is PENDING.
func Aggregate(results []types.SelectionResult) types.Status {
	if len(results) == 0 {
		return types.StatusPending
	}

	var lost, unsettled, other bool
	won := 0
	for _, r := range results {
		switch r.Status {
		case types.StatusLost:
			lost = true
		case types.StatusPending, types.StatusNotSupported:
			unsettled = true
		case types.StatusWon:
			won++
		case types.StatusPush, types.StatusVoid, types.StatusRefund, types.StatusCancelled:
		default:
			other = true
		}
	}

	switch {
	case lost:
		return types.StatusLost
	case unsettled, other:
		return types.StatusPending
	case won > 0:
		return types.StatusWon
	default:
		return types.StatusRefund
	}
}
