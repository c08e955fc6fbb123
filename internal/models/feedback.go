package models

type Feedback struct {
	FeedbackID   int64  `db:"feedback_id"`
	CustomerID   int64  `db:"customer_id"`
	FeedbackText string `db:"feedback_text"`
	Rating       int    `db:"rating"`
}
