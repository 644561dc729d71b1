package pipecmd

import (
	"fmt"
	"strings"

	"github.com/ruspoetry/poemset/internal/merge"
	"github.com/ruspoetry/poemset/internal/validate"
)

func printMergeSummary(stats *merge.Stats) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("MERGE SUMMARY")
	fmt.Println(strings.Repeat("=", 70))

	for _, src := range stats.Sources {
		fmt.Printf("\n%s:\n", src.Name)
		fmt.Printf("  Read: %d\n", src.Read)
		fmt.Printf("  Accepted: %d\n", src.Accepted)
		fmt.Printf("  Rejected (incomplete): %d\n", src.RejectedIncomplete)
		fmt.Printf("  Rejected (duplicate): %d\n", src.RejectedDuplicate)
	}

	totals := stats.Totals()
	fmt.Println("\n" + strings.Repeat("-", 70))
	fmt.Printf("Total read: %d, accepted: %d, incomplete: %d, duplicates: %d\n",
		totals.Read, totals.Accepted, totals.RejectedIncomplete, totals.RejectedDuplicate)
}

func printReport(report *validate.Report) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("DATASET VALIDATION REPORT")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Total rows: %d\n", report.Rows)
	fmt.Printf("Unique authors: %d\n", report.UniqueAuthors)
	fmt.Println()

	for _, check := range []string{
		validate.CheckCompleteness,
		validate.CheckUniqueness,
		validate.CheckAuthorFormat,
		validate.CheckEncoding,
	} {
		fmt.Printf("%s: %d violation(s)\n", check, report.Count(check))
	}

	if len(report.Violations) > 0 {
		fmt.Println("\nViolations:")
		for _, v := range report.Violations {
			loc := fmt.Sprintf("row %d", v.Row)
			if v.Field != "" {
				loc += ", field " + v.Field
			}
			fmt.Printf("  [%s] %s (%s): %s\n", v.Severity, v.Check, loc, v.Detail)
		}
	}

	fmt.Println()
	if report.IsValid() {
		fmt.Println("VALIDATION PASSED: dataset is clean")
	} else {
		fmt.Println("VALIDATION FAILED: issues found")
	}
}
