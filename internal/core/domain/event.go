package domain

import "time"

// AdmissionOutcome is the result of evaluating a reservation submission.
type AdmissionOutcome string

const (
	OutcomeAccepted AdmissionOutcome = "accepted"
	OutcomeRejected AdmissionOutcome = "rejected"
)

// AdmissionEvent records one admission decision for the audit trail.
type AdmissionEvent struct {
	Data        time.Time
	Laboratorio string
	UserID      string
	Outcome     AdmissionOutcome
	Reason      string // "capacity", "conflict" or empty when accepted
	At          time.Time
}
