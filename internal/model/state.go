package model

import (
	"fmt"
	"strings"

	"github.com/pkrylov/shareit-service/internal/errs"
)

// Status is a booking lifecycle state. Transitions are WAITING->APPROVED and
// WAITING->REJECTED; re-approving an APPROVED booking is an error, repeated
// rejection is not.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// State filters booking listings. ALL/WAITING/REJECTED match on status,
// CURRENT/PAST/FUTURE classify against the evaluation instant.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState is case-insensitive; anything outside the six states fails.
func ParseState(s string) (State, error) {
	if s == "" {
		return StateAll, nil
	}
	switch st := State(strings.ToUpper(s)); st {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %s", errs.ErrUnknownState, s)
	}
}
