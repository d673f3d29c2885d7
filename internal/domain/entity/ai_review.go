package entity

const (
	MinReviewScore = 0
	MaxReviewScore = 10
)

// AIReview is the narrative produced by a language model for a monthly report.
type AIReview struct {
	Headline   string
	Score      float64
	Summary    string
	Highlights []string
	Risks      []string
	ActionPlan []string

	// Model names the backend that produced the review.
	Model string
}
