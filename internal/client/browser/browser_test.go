package browser

import (
	"testing"

	"github.com/sahayak/sahayak-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func subjectsFixture() []domain.Subject {
	return []domain.Subject{
		{Name: "Operating Systems", Course: domain.CourseInfo{Department: "CSE", Semester: 4}},
		{Name: "Circuit Theory", Course: domain.CourseInfo{Department: "ECE", Semester: 3}},
		{Name: "Engineering Mathematics II", Course: domain.CourseInfo{Department: "CSE", Semester: 2}},
	}
}

func TestDepartments(t *testing.T) {
	departments := Departments(subjectsFixture())
	assert.Equal(t, []string{"All", "CSE", "ECE"}, departments)
}

func TestDepartments_SkipsEmpty(t *testing.T) {
	subjects := []domain.Subject{
		{Name: "Unassigned"},
		{Name: "Circuit Theory", Course: domain.CourseInfo{Department: "ECE"}},
	}
	assert.Equal(t, []string{"All", "ECE"}, Departments(subjects))
}

func TestFilterByDepartment(t *testing.T) {
	subjects := subjectsFixture()

	filtered := FilterByDepartment(subjects, "CSE")
	assert.Len(t, filtered, 2)
	for _, s := range filtered {
		assert.Equal(t, "CSE", s.Course.Department)
	}
}

func TestFilterByDepartment_AllPassesThrough(t *testing.T) {
	subjects := subjectsFixture()

	assert.Len(t, FilterByDepartment(subjects, DepartmentAll), 3)
	assert.Len(t, FilterByDepartment(subjects, ""), 3)
}

func TestSort(t *testing.T) {
	tests := []struct {
		order string
		first string
	}{
		{SortSemesterAsc, "Engineering Mathematics II"},
		{SortSemesterDesc, "Operating Systems"},
		{SortNameAsc, "Circuit Theory"},
		{SortNameDesc, "Operating Systems"},
	}

	for _, tt := range tests {
		t.Run(tt.order, func(t *testing.T) {
			subjects := subjectsFixture()
			Sort(subjects, tt.order)
			assert.Equal(t, tt.first, subjects[0].Name)
		})
	}
}

func TestSort_UnknownOrderUntouched(t *testing.T) {
	subjects := subjectsFixture()
	Sort(subjects, "created-desc")
	assert.Equal(t, "Operating Systems", subjects[0].Name)
}

func TestClassifyURL(t *testing.T) {
	assert.Equal(t, KindPDF, ClassifyURL("https://cdn.example.com/pyq/midsem.pdf"))
	assert.Equal(t, KindPDF, ClassifyURL("https://cdn.example.com/pyq/midsem.PDF?token=abc"))
	assert.Equal(t, KindImage, ClassifyURL("https://cdn.example.com/syllabus.png"))
	assert.Equal(t, KindImage, ClassifyURL("https://cdn.example.com/syllabus.jpeg#page2"))
	assert.Equal(t, KindOther, ClassifyURL("https://youtube.com/watch?v=abc123"))
	assert.Equal(t, KindOther, ClassifyURL(""))
}
