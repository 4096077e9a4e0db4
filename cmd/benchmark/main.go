// ABOUTME: Command-line benchmark runner for retrieval-quality tests
// ABOUTME: Executes scenarios against a synthetic corpus and outputs JSON results

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/harper/bedrock/benchmarks/retrieval"
)

func main() {
	// Command-line flags
	testID := flag.String("test", "", "Run specific scenario by ID. If empty, runs all scenarios.")
	outputPath := flag.String("output", "benchmark_results.json", "Output path for JSON results")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Parse()

	// Print header
	fmt.Println("========================================")
	fmt.Println("Bedrock Retrieval Benchmarks")
	fmt.Println("========================================")
	fmt.Println()

	// Create benchmark runner (offline, lexical embedder)
	runner, err := retrieval.NewBenchmarkRunner(*verbose)
	if err != nil {
		log.Fatalf("Failed to create benchmark runner: %v", err)
	}
	defer runner.Close()

	// Run tests
	var results []retrieval.TestResult

	if *testID == "" {
		fmt.Println("Running all retrieval benchmark scenarios...")
		fmt.Println()

		results, err = runner.RunAllTests()
		if err != nil {
			log.Fatalf("Benchmark failed: %v", err)
		}
	} else {
		scenario, ok := retrieval.GetScenario(*testID)
		if !ok {
			log.Fatalf("Unknown scenario ID: %s", *testID)
		}

		fmt.Printf("Running scenario: %s\n\n", scenario.Name)

		result, err := runner.RunTest(scenario)
		if err != nil {
			log.Fatalf("Scenario failed: %v", err)
		}

		results = []retrieval.TestResult{result}
	}

	// Print summary
	fmt.Println("\n========================================")
	fmt.Println("BENCHMARK SUMMARY")
	fmt.Println("========================================")

	passed := 0
	failed := 0

	for _, result := range results {
		fmt.Printf("\n%s: %s\n", result.TestID, result.TestName)
		fmt.Printf("  Precision@K: %.2f\n", result.PrecisionAtK)
		fmt.Printf("  Context Recall: %.2f\n", result.ContextRecall)
		fmt.Printf("  Overall: %.2f\n", result.OverallScore)
		fmt.Printf("  Status: %s\n", result.Status)

		if result.Status == "PASS" {
			passed++
		} else {
			failed++
		}
	}

	fmt.Println("\n========================================")
	fmt.Printf("Total Scenarios: %d\n", len(results))
	fmt.Printf("Passed: %d\n", passed)
	fmt.Printf("Failed: %d\n", failed)
	fmt.Println("========================================")

	// Export results
	if err := runner.ExportResults(results, *outputPath); err != nil {
		log.Fatalf("Failed to export results: %v", err)
	}

	// Exit with error code if any scenarios failed
	if failed > 0 {
		os.Exit(1)
	}
}
