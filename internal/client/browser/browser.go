// Package browser holds the pure listing logic of the subject browser:
// department filtering, the four sort orders, and URL classification.
package browser

import (
	"path"
	"sort"
	"strings"

	"github.com/sahayak/sahayak-backend/internal/domain"
)

// DepartmentAll is the filter sentinel meaning "no department filter"
const DepartmentAll = "All"

// Sort orders
const (
	SortSemesterAsc  = "semester-asc"
	SortSemesterDesc = "semester-desc"
	SortNameAsc      = "name-asc"
	SortNameDesc     = "name-desc"
)

// Departments returns the distinct departments present in the fetched
// set, sorted, with the "All" sentinel first.
func Departments(subjects []domain.Subject) []string {
	seen := make(map[string]bool)
	for _, s := range subjects {
		if s.Course.Department != "" {
			seen[s.Course.Department] = true
		}
	}

	departments := make([]string, 0, len(seen)+1)
	for d := range seen {
		departments = append(departments, d)
	}
	sort.Strings(departments)

	return append([]string{DepartmentAll}, departments...)
}

// FilterByDepartment keeps subjects in the given department.
// The "All" sentinel (or empty string) passes everything through.
func FilterByDepartment(subjects []domain.Subject, department string) []domain.Subject {
	if department == "" || department == DepartmentAll {
		return subjects
	}

	filtered := make([]domain.Subject, 0, len(subjects))
	for _, s := range subjects {
		if s.Course.Department == department {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// Sort orders subjects in place by one of the four supported orders.
// Semester orders compare numerically, name orders lexically; an unknown
// order leaves the slice untouched.
func Sort(subjects []domain.Subject, order string) {
	switch order {
	case SortSemesterAsc:
		sort.Slice(subjects, func(i, j int) bool {
			return subjects[i].Course.Semester < subjects[j].Course.Semester
		})
	case SortSemesterDesc:
		sort.Slice(subjects, func(i, j int) bool {
			return subjects[i].Course.Semester > subjects[j].Course.Semester
		})
	case SortNameAsc:
		sort.Slice(subjects, func(i, j int) bool {
			return subjects[i].Name < subjects[j].Name
		})
	case SortNameDesc:
		sort.Slice(subjects, func(i, j int) bool {
			return subjects[i].Name > subjects[j].Name
		})
	}
}

// DocumentKind classifies a material or question-paper URL by extension
type DocumentKind string

const (
	KindPDF   DocumentKind = "pdf"
	KindImage DocumentKind = "image"
	KindOther DocumentKind = "other"
)

// ClassifyURL returns the document kind for a URL, keyed on its extension
func ClassifyURL(rawURL string) DocumentKind {
	trimmed := rawURL
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	switch strings.ToLower(path.Ext(trimmed)) {
	case ".pdf":
		return KindPDF
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return KindImage
	default:
		return KindOther
	}
}
