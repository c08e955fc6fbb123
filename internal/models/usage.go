package models

import "time"

type FeatureName string

const (
	FeatureA FeatureName = "Feature A"
	FeatureB FeatureName = "Feature B"
	FeatureC FeatureName = "Feature C"
	FeatureD FeatureName = "Feature D"
)

type Usage struct {
	UsageID        int64       `db:"usage_id"`
	CustomerID     int64       `db:"customer_id"`
	FeatureName    FeatureName `db:"feature_name"`
	UsageFrequency int         `db:"usage_frequency"`
	LastUsedDate   time.Time   `db:"last_used_date"`
}
