package models

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

type Customer struct {
	CustomerID      int64  `db:"customer_id"`
	Name            string `db:"name"`
	Age             int    `db:"age"`
	Gender          Gender `db:"gender"`
	Location        string `db:"location"`
	ChurnPrediction *bool  `db:"churn_prediction"`
}

// HighRiskCustomer is the read model for the retention watch list:
// customers with a low feedback rating or low feature usage.
type HighRiskCustomer struct {
	CustomerID     int64  `db:"customer_id"`
	Name           string `db:"name"`
	Location       string `db:"location"`
	Rating         *int   `db:"rating"`
	UsageFrequency *int   `db:"usage_frequency"`
}
