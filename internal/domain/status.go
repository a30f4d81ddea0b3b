package domain

type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusPending        Status = "pending"
	StatusPreparing      Status = "preparing"
	StatusReady          Status = "ready"
	StatusServed         Status = "served"
	StatusCompleted      Status = "completed"
	StatusCancelled      Status = "cancelled"
)

// progressSequence is the customer-visible lifecycle. Its order drives Progress.
var progressSequence = []Status{
	StatusPending,
	StatusPreparing,
	StatusReady,
	StatusServed,
	StatusCompleted,
}

var validTransitions = map[Status][]Status{
	StatusPendingPayment: {StatusPending, StatusCancelled},
	StatusPending:        {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusReady, StatusCancelled},
	StatusReady:          {StatusServed, StatusCancelled},
	StatusServed:         {StatusCompleted},
	StatusCompleted:      {},
	StatusCancelled:      {},
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransitionTo checks the strict lifecycle table. Staying in the same
// status is not a transition.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Progress returns the percentage for s: 20 per step of the lifecycle,
// 0 for statuses outside it (cancelled, awaiting payment).
func (s Status) Progress() int {
	for i, st := range progressSequence {
		if st == s {
			return (i + 1) * 20
		}
	}
	return 0
}

// Billable reports whether orders in this status count towards revenue.
func (s Status) Billable() bool {
	return s != StatusCancelled && s != StatusPendingPayment
}
