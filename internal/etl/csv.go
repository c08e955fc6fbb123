// Package etl handles the flat-file interchange format: one CSV per
// entity kind with a header row matching the entity's attribute names.
package etl

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mineh7/Marketing-Analytics-Project/internal/models"
)

const dateLayout = "2006-01-02"

func WriteCustomersCSV(path string, customers []models.Customer) error {
	header := []string{"customer_id", "name", "age", "gender", "location"}
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			strconv.FormatInt(c.CustomerID, 10),
			c.Name,
			strconv.Itoa(c.Age),
			string(c.Gender),
			c.Location,
		})
	}
	return writeCSV(path, header, rows)
}

func WriteUsageCSV(path string, usage []models.Usage) error {
	header := []string{"usage_id", "customer_id", "feature_name", "usage_frequency", "last_used_date"}
	rows := make([][]string, 0, len(usage))
	for _, u := range usage {
		rows = append(rows, []string{
			strconv.FormatInt(u.UsageID, 10),
			strconv.FormatInt(u.CustomerID, 10),
			string(u.FeatureName),
			strconv.Itoa(u.UsageFrequency),
			u.LastUsedDate.Format(dateLayout),
		})
	}
	return writeCSV(path, header, rows)
}

func WriteTransactionsCSV(path string, transactions []models.Transaction) error {
	header := []string{"transaction_id", "customer_id", "payment_date", "amount", "plan_type"}
	rows := make([][]string, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, []string{
			strconv.FormatInt(t.TransactionID, 10),
			strconv.FormatInt(t.CustomerID, 10),
			t.PaymentDate.Format(dateLayout),
			strconv.FormatFloat(t.Amount, 'f', 2, 64),
			string(t.PlanType),
		})
	}
	return writeCSV(path, header, rows)
}

func WriteFeedbackCSV(path string, feedback []models.Feedback) error {
	header := []string{"feedback_id", "customer_id", "feedback_text", "rating"}
	rows := make([][]string, 0, len(feedback))
	for _, f := range feedback {
		rows = append(rows, []string{
			strconv.FormatInt(f.FeedbackID, 10),
			strconv.FormatInt(f.CustomerID, 10),
			f.FeedbackText,
			strconv.Itoa(f.Rating),
		})
	}
	return writeCSV(path, header, rows)
}

// WritePredictionsCSV exports the optional {customer_id, predicted_label,
// probability} artifact.
func WritePredictionsCSV(path string, predictions []models.Prediction) error {
	header := []string{"customer_id", "predicted_label", "probability"}
	rows := make([][]string, 0, len(predictions))
	for _, p := range predictions {
		rows = append(rows, []string{
			strconv.FormatInt(p.CustomerID, 10),
			string(p.Prediction),
			strconv.FormatFloat(p.Probability, 'f', 4, 64),
		})
	}
	return writeCSV(path, header, rows)
}

func ReadCustomersCSV(path string) ([]models.Customer, error) {
	rows, err := readCSV(path, 5)
	if err != nil {
		return nil, err
	}
	customers := make([]models.Customer, 0, len(rows))
	for i, row := range rows {
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad customer_id %q: %w", i+1, row[0], err)
		}
		age, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad age %q: %w", i+1, row[2], err)
		}
		customers = append(customers, models.Customer{
			CustomerID: id,
			Name:       row[1],
			Age:        age,
			Gender:     models.Gender(row[3]),
			Location:   row[4],
		})
	}
	return customers, nil
}

func ReadUsageCSV(path string) ([]models.Usage, error) {
	rows, err := readCSV(path, 5)
	if err != nil {
		return nil, err
	}
	usage := make([]models.Usage, 0, len(rows))
	for i, row := range rows {
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad usage_id %q: %w", i+1, row[0], err)
		}
		customerID, err := strconv.ParseInt(row[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad customer_id %q: %w", i+1, row[1], err)
		}
		frequency, err := strconv.Atoi(row[3])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad usage_frequency %q: %w", i+1, row[3], err)
		}
		lastUsed, err := time.Parse(dateLayout, row[4])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad last_used_date %q: %w", i+1, row[4], err)
		}
		usage = append(usage, models.Usage{
			UsageID:        id,
			CustomerID:     customerID,
			FeatureName:    models.FeatureName(row[2]),
			UsageFrequency: frequency,
			LastUsedDate:   lastUsed,
		})
	}
	return usage, nil
}

func ReadTransactionsCSV(path string) ([]models.Transaction, error) {
	rows, err := readCSV(path, 5)
	if err != nil {
		return nil, err
	}
	transactions := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad transaction_id %q: %w", i+1, row[0], err)
		}
		customerID, err := strconv.ParseInt(row[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad customer_id %q: %w", i+1, row[1], err)
		}
		paymentDate, err := time.Parse(dateLayout, row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad payment_date %q: %w", i+1, row[2], err)
		}
		amount, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad amount %q: %w", i+1, row[3], err)
		}
		transactions = append(transactions, models.Transaction{
			TransactionID: id,
			CustomerID:    customerID,
			PaymentDate:   paymentDate,
			Amount:        amount,
			PlanType:      models.PlanType(row[4]),
		})
	}
	return transactions, nil
}

func ReadFeedbackCSV(path string) ([]models.Feedback, error) {
	rows, err := readCSV(path, 4)
	if err != nil {
		return nil, err
	}
	feedback := make([]models.Feedback, 0, len(rows))
	for i, row := range rows {
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad feedback_id %q: %w", i+1, row[0], err)
		}
		customerID, err := strconv.ParseInt(row[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad customer_id %q: %w", i+1, row[1], err)
		}
		rating, err := strconv.Atoi(row[3])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad rating %q: %w", i+1, row[3], err)
		}
		feedback = append(feedback, models.Feedback{
			FeedbackID:   id,
			CustomerID:   customerID,
			FeedbackText: row[2],
			Rating:       rating,
		})
	}
	return feedback, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func readCSV(path string, wantColumns int) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = wantColumns
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header row", path)
	}
	return records[1:], nil
}
