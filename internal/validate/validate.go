// Package validate certifies a merged dataset against its structural
// invariants. The validator only reports; it never mutates or filters.
package validate

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ruspoetry/poemset/internal/poem"
)

// Check names, as they appear in reports.
const (
	CheckCompleteness = "completeness"
	CheckUniqueness   = "uniqueness"
	CheckAuthorFormat = "author_format"
	CheckEncoding     = "encoding"
)

// Severity classifies a violation. Errors make a dataset invalid;
// warnings are enumerated but do not block downstream use.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Violation is a single reported failure of one check against one row.
type Violation struct {
	Check    string
	Severity Severity
	Row      int
	Field    string
	Detail   string
}

// Report is the result of validating a dataset: dataset-level figures
// plus every violation from every check, in check order then row order.
type Report struct {
	Rows          int
	UniqueAuthors int
	Violations    []Violation
}

// IsValid reports whether the dataset carries zero error-severity
// violations. Author-format findings are warnings and do not count.
func (r *Report) IsValid() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Count returns the number of violations recorded for a check.
func (r *Report) Count(check string) int {
	n := 0
	for _, v := range r.Violations {
		if v.Check == check {
			n++
		}
	}
	return n
}

// Dataset runs every check over the dataset and accumulates the
// violations. No check aborts the rest.
func Dataset(ds *poem.Dataset) *Report {
	report := &Report{
		Rows:          ds.Len(),
		UniqueAuthors: ds.UniqueAuthors(),
	}

	checkCompleteness(ds, report)
	checkUniqueness(ds, report)
	checkAuthorFormat(ds, report)
	checkEncoding(ds, report)

	return report
}

func checkCompleteness(ds *poem.Dataset, report *Report) {
	for i, rec := range ds.Records {
		for _, f := range []struct {
			name  string
			value string
		}{
			{"author", rec.Author},
			{"title", rec.Title},
			{"text", rec.Text},
		} {
			if strings.TrimSpace(f.value) == "" {
				report.Violations = append(report.Violations, Violation{
					Check:    CheckCompleteness,
					Severity: SeverityError,
					Row:      i,
					Field:    f.name,
					Detail:   "field is empty",
				})
			}
		}
	}
}

func checkUniqueness(ds *poem.Dataset, report *Report) {
	first := make(map[poem.Key]int, len(ds.Records))
	for i, rec := range ds.Records {
		key := rec.Key()
		if prev, ok := first[key]; ok {
			report.Violations = append(report.Violations, Violation{
				Check:    CheckUniqueness,
				Severity: SeverityError,
				Row:      i,
				Detail:   fmt.Sprintf("duplicate of row %d (author=%q title=%q)", prev, rec.Author, rec.Title),
			})
			continue
		}
		first[key] = i
	}
}

// checkAuthorFormat applies the canonical-name heuristic: at least two
// whitespace-separated tokens, each starting with an uppercase letter.
// Pseudonyms and single-token names legitimately fail it, so findings
// are warnings, never errors.
func checkAuthorFormat(ds *poem.Dataset, report *Report) {
	for i, rec := range ds.Records {
		if wellFormedAuthor(rec.Author) {
			continue
		}
		report.Violations = append(report.Violations, Violation{
			Check:    CheckAuthorFormat,
			Severity: SeverityWarning,
			Row:      i,
			Field:    "author",
			Detail:   fmt.Sprintf("author %q does not match Surname Name [Patronymic]", rec.Author),
		})
	}
}

func wellFormedAuthor(author string) bool {
	tokens := strings.Fields(author)
	if len(tokens) < 2 {
		return false
	}
	for _, tok := range tokens {
		r, _ := utf8.DecodeRuneInString(tok)
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func checkEncoding(ds *poem.Dataset, report *Report) {
	for i, rec := range ds.Records {
		for _, f := range []struct {
			name    string
			value   string
			allowNL bool
		}{
			{"author", rec.Author, false},
			{"title", rec.Title, false},
			{"text", rec.Text, true},
		} {
			if detail, ok := encodingIssue(f.value, f.allowNL); !ok {
				report.Violations = append(report.Violations, Violation{
					Check:    CheckEncoding,
					Severity: SeverityError,
					Row:      i,
					Field:    f.name,
					Detail:   detail,
				})
			}
		}
	}
}

func encodingIssue(s string, allowNewline bool) (string, bool) {
	if !utf8.ValidString(s) {
		return "not valid UTF-8", false
	}
	for _, r := range s {
		if r == '\n' && allowNewline {
			continue
		}
		if unicode.IsControl(r) {
			return fmt.Sprintf("contains control character %q", r), false
		}
	}
	return "", true
}
