package ports

import (
	"time"

	"dispatch/internal/core/domain/services"
)

// DispatchObserver receives operational signals from the dispatch use cases.
// Implementations must be safe for concurrent use and must not block.
type DispatchObserver interface {
	// AssignmentFinished is called once per assignment attempt; err is nil on success.
	AssignmentFinished(err error, elapsed time.Duration)

	// CandidatesRanked is called after every ranking with the number of ranked couriers.
	CandidatesRanked(count int, elapsed time.Duration)

	// StatusTransitioned is called for every committed ledger transition.
	StatusTransitioned(transition services.Transition)
}
