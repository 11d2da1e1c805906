// Package ledger computes group net balances and suggested settlement
// transfers from raw expense and settlement records.
//
// The engine is a pure function of its inputs: it holds no state between
// calls, performs no I/O, and is safe to call concurrently with different
// snapshots. It operates on bare member identifiers only; attaching display
// names is the caller's job.
package ledger

import (
	"math"
	"sort"
)

// Tolerance is the threshold below which a monetary amount is treated as
// zero. Splitting an expense across a roster rarely divides evenly, so
// balances accumulate sub-cent noise; all monetary comparisons in this
// package use this constant instead of exact floating-point equality.
const Tolerance = 0.01

// Expense is the minimal expense information needed for balance computation.
// The amount is split equally across the full roster passed to Compute.
type Expense struct {
	PayerID string
	Amount  float64
}

// Settlement is a real-world payment already made between two members.
type Settlement struct {
	FromID string // who paid (debtor settling up)
	ToID   string // who received (creditor being paid)
	Amount float64
}

// NetBalance is one member's net position after all expenses and
// settlements are netted. Positive = the group owes this member (creditor),
// negative = this member owes the group (debtor).
type NetBalance struct {
	MemberID string
	Balance  float64
}

// SuggestedTransfer is a payment that, if made, discharges part of the
// group's outstanding imbalance.
type SuggestedTransfer struct {
	FromID string
	ToID   string
	Amount float64
}

// Result is the output of a balance computation.
type Result struct {
	// Balances holds one entry per roster member, rounded to two decimals
	// and sorted by balance descending (largest creditor first). Members
	// sharing a balance keep roster order.
	Balances []NetBalance

	// Transfers is the simplified set of payments that settles the group.
	// Applying every transfer as a settlement and recomputing yields
	// all-zero balances within Tolerance.
	Transfers []SuggestedTransfer

	// TotalSpent is the sum of all expense amounts, rounded to two decimals.
	TotalSpent float64
}

// Compute nets all expenses and settlements over the given roster and
// derives a simplified set of transfers that settles the group.
//
// Accumulation: each expense credits its payer with the full fronted amount
// and debits every roster member an equal share (amount / roster size) —
// the payer included, so the payer nets amount minus their own share. Each
// settlement credits the payer and debits the receiver, since the receiver
// has already been paid in the real world.
//
// Simplification greedily matches the largest creditor against the largest
// debtor until every balance is within Tolerance of zero. Ties on either
// side break toward the member that appears first in memberIDs, making the
// output deterministic for a fixed roster order.
//
// An empty roster yields a zero Result; an expense payer or settlement
// party missing from the roster accumulates outside it and is absent from
// the output (referential integrity is the caller's responsibility).
func Compute(expenses []Expense, settlements []Settlement, memberIDs []string) Result {
	if len(memberIDs) == 0 {
		return Result{}
	}

	balances := make(map[string]float64, len(memberIDs))
	for _, id := range memberIDs {
		balances[id] = 0
	}

	var total float64
	for _, e := range expenses {
		share := e.Amount / float64(len(memberIDs))
		balances[e.PayerID] += e.Amount
		for _, id := range memberIDs {
			balances[id] -= share
		}
		total += e.Amount
	}

	for _, s := range settlements {
		balances[s.FromID] += s.Amount
		balances[s.ToID] -= s.Amount
	}

	net := make([]NetBalance, 0, len(memberIDs))
	for _, id := range memberIDs {
		net = append(net, NetBalance{MemberID: id, Balance: round(balances[id])})
	}
	sort.SliceStable(net, func(i, j int) bool {
		return net[i].Balance > net[j].Balance
	})

	return Result{
		Balances:   net,
		Transfers:  simplify(balances, memberIDs),
		TotalSpent: round(total),
	}
}

// simplify reduces the non-zero balances to a short list of transfers using
// greedy largest-creditor / largest-debtor matching. Each iteration fully
// resolves at least one member, so the loop runs at most once per non-zero
// balance and emits at most n-1 transfers for n non-zero balances.
func simplify(balances map[string]float64, memberIDs []string) []SuggestedTransfer {
	working := make(map[string]float64, len(balances))
	for _, id := range memberIDs {
		if math.Abs(balances[id]) >= Tolerance {
			working[id] = balances[id]
		}
	}

	var transfers []SuggestedTransfer
	for len(working) > 0 {
		var creditor, debtor string
		var maxCredit, maxDebt float64
		for _, id := range memberIDs {
			b, ok := working[id]
			if !ok {
				continue
			}
			// Strict comparisons keep the first roster entry on ties.
			if b > maxCredit {
				maxCredit = b
				creditor = id
			}
			if b < maxDebt {
				maxDebt = b
				debtor = id
			}
		}

		// A working set that sums to ~0 always has both sides, but guard
		// against one-sided residue from floating-point drift.
		if creditor == "" || debtor == "" {
			break
		}

		transfer := math.Min(maxCredit, -maxDebt)
		if transfer > Tolerance {
			transfers = append(transfers, SuggestedTransfer{
				FromID: debtor,
				ToID:   creditor,
				Amount: round(transfer),
			})
		}

		working[creditor] -= transfer
		working[debtor] += transfer
		if math.Abs(working[creditor]) < Tolerance {
			delete(working, creditor)
		}
		if math.Abs(working[debtor]) < Tolerance {
			delete(working, debtor)
		}
	}

	return transfers
}

// round snaps a monetary value to two decimal places.
func round(v float64) float64 {
	return math.Round(v*100) / 100
}
