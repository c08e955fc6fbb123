package generator

import (
	"math"
	"math/rand"
	"time"

	"github.com/mineh7/Marketing-Analytics-Project/internal/models"

	"github.com/brianvoe/gofakeit/v7"
)

var genders = []models.Gender{models.GenderMale, models.GenderFemale, models.GenderOther}

var featureNames = []models.FeatureName{
	models.FeatureA, models.FeatureB, models.FeatureC, models.FeatureD,
}

var planTypes = []models.PlanType{
	models.PlanBasic, models.PlanPremium, models.PlanEnterprise,
}

// Generator produces synthetic entity records. It never persists anything;
// writing records to CSV or storage is the caller's job. A seed of 0 uses
// time-based randomness; any other seed makes the output reproducible.
type Generator struct {
	rng   *rand.Rand
	faker *gofakeit.Faker
}

func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		rng:   rand.New(rand.NewSource(seed)),
		faker: gofakeit.New(uint64(seed)),
	}
}

func (g *Generator) Customer(customerID int64) models.Customer {
	return models.Customer{
		CustomerID: customerID,
		Name:       g.faker.Name(),
		Age:        18 + g.rng.Intn(63),
		Gender:     genders[g.rng.Intn(len(genders))],
		Location:   g.faker.City(),
	}
}

// Usage generates a usage record for an existing customer. The caller
// supplies customerID; the generator never invents one.
func (g *Generator) Usage(usageID, customerID int64) models.Usage {
	return models.Usage{
		UsageID:        usageID,
		CustomerID:     customerID,
		FeatureName:    featureNames[g.rng.Intn(len(featureNames))],
		UsageFrequency: 1 + g.rng.Intn(500),
		LastUsedDate:   g.dateWithinLastYear(),
	}
}

func (g *Generator) Transaction(transactionID, customerID int64) models.Transaction {
	planType := planTypes[g.rng.Intn(len(planTypes))]
	jitter := math.Round((g.rng.Float64()*4.0-2.0)*100) / 100
	return models.Transaction{
		TransactionID: transactionID,
		CustomerID:    customerID,
		PaymentDate:   g.dateWithinLastYear(),
		Amount:        math.Round((models.PlanPrices[planType]+jitter)*100) / 100,
		PlanType:      planType,
	}
}

func (g *Generator) Feedback(feedbackID, customerID int64) models.Feedback {
	return models.Feedback{
		FeedbackID:   feedbackID,
		CustomerID:   customerID,
		FeedbackText: g.faker.Sentence(8),
		Rating:       1 + g.rng.Intn(5),
	}
}

// Customers generates n customer records with ids 1..n.
func (g *Generator) Customers(n int) []models.Customer {
	customers := make([]models.Customer, 0, n)
	for id := int64(1); id <= int64(n); id++ {
		customers = append(customers, g.Customer(id))
	}
	return customers
}

// UsageRecords generates n usage records, drawing each customer id
// uniformly from customerIDs.
func (g *Generator) UsageRecords(n int, customerIDs []int64) []models.Usage {
	records := make([]models.Usage, 0, n)
	for id := int64(1); id <= int64(n); id++ {
		records = append(records, g.Usage(id, g.pickCustomer(customerIDs)))
	}
	return records
}

func (g *Generator) Transactions(n int, customerIDs []int64) []models.Transaction {
	records := make([]models.Transaction, 0, n)
	for id := int64(1); id <= int64(n); id++ {
		records = append(records, g.Transaction(id, g.pickCustomer(customerIDs)))
	}
	return records
}

func (g *Generator) FeedbackRecords(n int, customerIDs []int64) []models.Feedback {
	records := make([]models.Feedback, 0, n)
	for id := int64(1); id <= int64(n); id++ {
		records = append(records, g.Feedback(id, g.pickCustomer(customerIDs)))
	}
	return records
}

func (g *Generator) pickCustomer(customerIDs []int64) int64 {
	return customerIDs[g.rng.Intn(len(customerIDs))]
}

func (g *Generator) dateWithinLastYear() time.Time {
	days := g.rng.Intn(365)
	return time.Now().UTC().AddDate(0, 0, -days).Truncate(24 * time.Hour)
}
