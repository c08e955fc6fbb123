package ml

import (
	"fmt"
	"sort"
	"strings"
)

type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Report holds per-class evaluation metrics so tests and artifacts can
// assert on them instead of scraping printed text.
type Report struct {
	Classes  map[string]ClassMetrics
	Accuracy float64
}

// ClassificationReport computes precision, recall and F1 per class on a
// held-out set. classNames maps the integer label to its display name.
func ClassificationReport(yTrue, yPred []int, classNames map[int]string) Report {
	truePos := make(map[int]int)
	falsePos := make(map[int]int)
	falseNeg := make(map[int]int)
	support := make(map[int]int)

	correct := 0
	for i := range yTrue {
		support[yTrue[i]]++
		if yPred[i] == yTrue[i] {
			truePos[yTrue[i]]++
			correct++
		} else {
			falsePos[yPred[i]]++
			falseNeg[yTrue[i]]++
		}
	}

	report := Report{Classes: make(map[string]ClassMetrics)}
	if len(yTrue) > 0 {
		report.Accuracy = float64(correct) / float64(len(yTrue))
	}

	for label, name := range classNames {
		tp := float64(truePos[label])
		fp := float64(falsePos[label])
		fn := float64(falseNeg[label])

		var precision, recall, f1 float64
		if tp+fp > 0 {
			precision = tp / (tp + fp)
		}
		if tp+fn > 0 {
			recall = tp / (tp + fn)
		}
		if precision+recall > 0 {
			f1 = 2 * precision * recall / (precision + recall)
		}

		report.Classes[name] = ClassMetrics{
			Precision: precision,
			Recall:    recall,
			F1:        f1,
			Support:   support[label],
		}
	}
	return report
}

func (r Report) String() string {
	names := make([]string, 0, len(r.Classes))
	for name := range r.Classes {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %9s %9s %9s %9s\n", "", "precision", "recall", "f1-score", "support")
	for _, name := range names {
		m := r.Classes[name]
		fmt.Fprintf(&b, "%-12s %9.2f %9.2f %9.2f %9d\n", name, m.Precision, m.Recall, m.F1, m.Support)
	}
	fmt.Fprintf(&b, "\n%-12s %9.2f\n", "accuracy", r.Accuracy)
	return b.String()
}
