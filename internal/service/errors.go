// Package service implements SplitLedger's business logic on top of the
// storage layer and the balance engine.
package service

import "errors"

var (
	// ErrInvalidAmount is returned when an expense or settlement amount is
	// not strictly positive.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrUnknownMember is returned when an expense payer or settlement
	// party is not on the group's roster. Rejecting these up front keeps
	// the balance engine's inputs referentially intact.
	ErrUnknownMember = errors.New("member is not in the group")

	// ErrSelfSettlement is returned when a settlement names the same member
	// on both sides.
	ErrSelfSettlement = errors.New("settlement payer and receiver must differ")

	// ErrEmptyRoster is returned when a group operation requires at least
	// one member.
	ErrEmptyRoster = errors.New("group must have at least one member")
)
