// ABOUTME: Retrieval-quality metrics: precision@K and context recall
// ABOUTME: Deterministic evaluation against scenario ground truth

package retrieval

import (
	"fmt"
	"strings"

	"github.com/harper/bedrock/internal/models"
)

// MetricsCalculator computes retrieval scores for benchmark tests
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculatePrecisionAtK computes the fraction of retrieved chunks that
// come from a relevant source (0.0-1.0)
func (m *MetricsCalculator) CalculatePrecisionAtK(
	results []models.RetrievalResult,
	relevantSources []string,
) (float64, string) {
	relevant := make(map[string]bool, len(relevantSources))
	for _, source := range relevantSources {
		relevant[source] = true
	}

	// Zero-score chunks are top-K padding, not retrieval claims
	hits := 0
	scored := 0
	offSources := []string{}
	for _, r := range results {
		if r.Score <= 0 {
			continue
		}
		scored++
		if relevant[r.Chunk.Source] {
			hits++
		} else {
			offSources = append(offSources, r.Chunk.Source)
		}
	}
	if scored == 0 {
		return 0.0, "No chunks retrieved with positive similarity"
	}

	precision := float64(hits) / float64(scored)
	if precision == 1.0 {
		return 1.0, "Perfect precision - every retrieved chunk is from a relevant source"
	}
	return precision, fmt.Sprintf(
		"Partial precision (%.2f) - off-topic sources retrieved: %v",
		precision, offSources,
	)
}

// CalculateContextRecall computes the fraction of expected items present
// in the assembled context (0.0-1.0)
func (m *MetricsCalculator) CalculateContextRecall(
	assembledContext string,
	expectedContextItems []string,
) (float64, string) {
	if len(expectedContextItems) == 0 {
		return 1.0, "No context retrieval required"
	}

	contextUpper := strings.ToUpper(assembledContext)

	foundCount := 0
	missingItems := []string{}
	for _, item := range expectedContextItems {
		if strings.Contains(contextUpper, strings.ToUpper(item)) {
			foundCount++
		} else {
			missingItems = append(missingItems, item)
		}
	}

	recall := float64(foundCount) / float64(len(expectedContextItems))
	if recall == 1.0 {
		return 1.0, "Perfect context recall - all expected items retrieved"
	}
	return recall, fmt.Sprintf(
		"Partial context recall (%.2f) - missing items: %v",
		recall, missingItems,
	)
}

// EvaluateTest scores one scenario's retrieval output
func (m *MetricsCalculator) EvaluateTest(
	scenario TestScenario,
	grounding *models.GroundingContext,
) TestResult {
	precision, precisionDetail := m.CalculatePrecisionAtK(
		grounding.Results,
		scenario.GroundTruth.RelevantSources,
	)

	recall, recallDetail := m.CalculateContextRecall(
		grounding.Joined,
		scenario.GroundTruth.ExpectedContextItems,
	)

	overallScore := (precision + recall) / 2.0

	// Both metrics must clear 0.9 for a pass
	status := "FAIL"
	if precision >= 0.9 && recall >= 0.9 {
		status = "PASS"
	}

	return TestResult{
		TestID:        scenario.ID,
		TestName:      scenario.Name,
		PrecisionAtK:  precision,
		ContextRecall: recall,
		OverallScore:  overallScore,
		Status:        status,
		Details: map[string]interface{}{
			"precision_detail": precisionDetail,
			"recall_detail":    recallDetail,
			"chunks_retrieved": len(grounding.Results),
		},
	}
}
