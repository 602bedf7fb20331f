package delivery

import "time"

// DisputeReview is the review state of a dispute record.
type DisputeReview int

const (
	DisputeUnderReview DisputeReview = iota + 1
	DisputeReviewResolved
)

func (r DisputeReview) String() string {
	switch r {
	case DisputeUnderReview:
		return "under_review"
	case DisputeReviewResolved:
		return "resolved"
	}
	return "unknown"
}

// MaxDisputeReasonLen bounds the free-text reason of a dispute.
const MaxDisputeReasonLen = 1000

// Dispute is the record of a reported problem. The open record lives on the
// delivery while it is disputed; once resolved it moves to the dispute history.
type Dispute struct {
	reason         string
	reportedBy     string
	reportedAt     time.Time
	review         DisputeReview
	outcome        Status
	resolutionNote string
	resolvedBy     string
	resolvedAt     time.Time
}

func (d Dispute) Reason() string {
	return d.reason
}

func (d Dispute) ReportedBy() string {
	return d.reportedBy
}

func (d Dispute) ReportedAt() time.Time {
	return d.reportedAt
}

func (d Dispute) Review() DisputeReview {
	return d.review
}

// Outcome is Unknown while the dispute is under review.
func (d Dispute) Outcome() Status {
	return d.outcome
}

func (d Dispute) ResolutionNote() string {
	return d.resolutionNote
}

func (d Dispute) ResolvedBy() string {
	return d.resolvedBy
}

// ResolvedAt is the zero time while the dispute is under review.
func (d Dispute) ResolvedAt() time.Time {
	return d.resolvedAt
}

func (d Dispute) resolved(outcome Status, note, by string, at time.Time) Dispute {
	d.review = DisputeReviewResolved
	d.outcome = outcome
	d.resolutionNote = note
	d.resolvedBy = by
	d.resolvedAt = at
	return d
}
