// ABOUTME: Command-line benchmark runner for RAGAS tests
// ABOUTME: Executes RAGAS benchmarks and outputs JSON results

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/harper/course-advisor/benchmarks/ragas"
	"github.com/harper/course-advisor/internal/config"
)

func main() {
	// Command-line flags
	testID := flag.String("test", "", "Run specific test (test_ai, test_databases, test_followup). If empty, runs all tests.")
	outputPath := flag.String("output", "benchmark_results.json", "Output path for JSON results")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Parse()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (continuing anyway): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.OpenAIKey == "" {
		log.Fatal("OPENAI_API_KEY environment variable is required for benchmarks")
	}

	fmt.Println("========================================")
	fmt.Println("Course Advisor RAGAS Benchmarks")
	fmt.Println("========================================")
	fmt.Println()

	runner, err := ragas.NewBenchmarkRunner(cfg, *verbose)
	if err != nil {
		log.Fatalf("Failed to create benchmark runner: %v", err)
	}

	ctx := context.Background()
	var results []ragas.TestResult

	if *testID == "" {
		fmt.Println("Running all RAGAS benchmark tests...")
		fmt.Println()

		results, err = runner.RunAllTests(ctx)
		if err != nil {
			log.Fatalf("Benchmark failed: %v", err)
		}
	} else {
		scenario, ok := findScenario(*testID)
		if !ok {
			log.Fatalf("Unknown test ID: %s", *testID)
		}

		fmt.Printf("Running test: %s\n\n", scenario.Name)
		result, err := runner.RunTest(ctx, scenario)
		if err != nil {
			log.Fatalf("Benchmark failed: %v", err)
		}
		results = []ragas.TestResult{result}
	}

	// Print summary
	fmt.Println("========================================")
	fmt.Println("SUMMARY")
	fmt.Println("========================================")

	failed := 0
	for _, result := range results {
		fmt.Printf("%-45s %s (%.2f)\n", result.TestName, result.Status, result.OverallScore)
		if result.Status != "PASS" {
			failed++
		}
	}
	fmt.Println()

	if err := runner.ExportResults(results, *outputPath); err != nil {
		log.Fatalf("Failed to export results: %v", err)
	}

	if failed > 0 {
		fmt.Printf("%d of %d tests failed\n", failed, len(results))
		os.Exit(1)
	}
	fmt.Printf("All %d tests passed\n", len(results))
}

func findScenario(id string) (ragas.TestScenario, bool) {
	for _, scenario := range ragas.GetAllTests() {
		if scenario.ID == id {
			return scenario, true
		}
	}
	return ragas.TestScenario{}, false
}
