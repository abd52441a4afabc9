// Package lifecycle holds the transaction state machine:
//
//	PENDING -> APPROVED
//	PENDING -> REJECTED
//
// APPROVED and REJECTED are terminal.
package lifecycle

import (
	// Local Packages
	models "tx-guard/models"
)

var transitions = map[string][]string{
	models.StatusPending: {models.StatusApproved, models.StatusRejected},
}

// CanTransition reports whether a transaction in current may move to proposed.
// Identity transitions are not allowed.
func CanTransition(current, proposed string) bool {
	for _, next := range transitions[current] {
		if next == proposed {
			return true
		}
	}
	return false
}

// Predecessors lists the states from which proposed can be reached.
func Predecessors(proposed string) []string {
	var from []string
	for current, nexts := range transitions {
		for _, next := range nexts {
			if next == proposed {
				from = append(from, current)
			}
		}
	}
	return from
}

func IsTerminal(code string) bool {
	switch code {
	case models.StatusApproved, models.StatusRejected:
		return true
	}
	return false
}
