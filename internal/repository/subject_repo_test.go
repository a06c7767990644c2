package repository

import (
	"testing"

	"github.com/sahayak/sahayak-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Subject{}))
	return db
}

func seedSubject(t *testing.T, repo SubjectRepository, name, slug, department string, semester int, published bool) *domain.Subject {
	t.Helper()
	subject := &domain.Subject{
		Name: name,
		Slug: slug,
		Course: domain.CourseInfo{
			CourseID:   "btech-" + department,
			CourseName: "B.Tech " + department,
			Semester:   semester,
			Department: department,
		},
		Units:       []domain.Unit{{UnitNumber: 1, Title: "Unit One", Topics: []string{"Basics"}}},
		IsPublished: published,
		SubmittedBy: "u-1",
	}
	require.NoError(t, repo.Create(subject))
	return subject
}

func TestSubjectRepository_CreateAssignsID(t *testing.T) {
	repo := NewSubjectRepository(setupTestDB(t))

	subject := seedSubject(t, repo, "Operating Systems", "os", "CSE", 4, false)
	assert.NotEmpty(t, subject.ID)

	found, err := repo.FindByID(subject.ID)
	require.NoError(t, err)
	assert.Equal(t, "os", found.Slug)
}

func TestSubjectRepository_SyncsQueryColumns(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubjectRepository(db)

	subject := seedSubject(t, repo, "Circuit Theory", "circuit-theory", "ECE", 3, true)

	// the denormalized columns must be queryable in raw SQL
	var department string
	var semester int
	row := db.Raw("SELECT department, semester FROM subjects WHERE id = ?", subject.ID).Row()
	require.NoError(t, row.Scan(&department, &semester))
	assert.Equal(t, "ECE", department)
	assert.Equal(t, 3, semester)
}

func TestSubjectRepository_SaveResyncsQueryColumns(t *testing.T) {
	repo := NewSubjectRepository(setupTestDB(t))

	subject := seedSubject(t, repo, "Circuit Theory", "circuit-theory", "ECE", 3, true)
	subject.Course.Department = "EEE"
	subject.Course.Semester = 4
	require.NoError(t, repo.Save(subject))

	found, err := repo.FindPublished(domain.SubjectListFilter{Department: "EEE", Semester: 4})
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestSubjectRepository_FindPublished(t *testing.T) {
	repo := NewSubjectRepository(setupTestDB(t))

	seedSubject(t, repo, "Operating Systems", "os", "CSE", 4, true)
	seedSubject(t, repo, "Engineering Mathematics II", "engg-math-2", "CSE", 2, true)
	seedSubject(t, repo, "Circuit Theory", "circuit-theory", "ECE", 3, true)
	seedSubject(t, repo, "Compilers", "compilers", "CSE", 6, false) // pending stays hidden

	subjects, err := repo.FindPublished(domain.SubjectListFilter{})
	require.NoError(t, err)
	require.Len(t, subjects, 3)
	// ordered by semester ascending
	assert.Equal(t, "engg-math-2", subjects[0].Slug)
	assert.Equal(t, "circuit-theory", subjects[1].Slug)
	assert.Equal(t, "os", subjects[2].Slug)
}

func TestSubjectRepository_FindPublishedFilters(t *testing.T) {
	repo := NewSubjectRepository(setupTestDB(t))

	seedSubject(t, repo, "Operating Systems", "os", "CSE", 4, true)
	seedSubject(t, repo, "Engineering Mathematics II", "engg-math-2", "CSE", 2, true)
	seedSubject(t, repo, "Circuit Theory", "circuit-theory", "ECE", 3, true)

	byDept, err := repo.FindPublished(domain.SubjectListFilter{Department: "CSE"})
	require.NoError(t, err)
	assert.Len(t, byDept, 2)

	bySemester, err := repo.FindPublished(domain.SubjectListFilter{Semester: 3})
	require.NoError(t, err)
	require.Len(t, bySemester, 1)
	assert.Equal(t, "circuit-theory", bySemester[0].Slug)

	bySearch, err := repo.FindPublished(domain.SubjectListFilter{Search: "MATH"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "engg-math-2", bySearch[0].Slug)

	none, err := repo.FindPublished(domain.SubjectListFilter{Department: "MECH"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSubjectRepository_FindPendingOldestFirst(t *testing.T) {
	repo := NewSubjectRepository(setupTestDB(t))

	first := seedSubject(t, repo, "Compilers", "compilers", "CSE", 6, false)
	second := seedSubject(t, repo, "Networks", "networks", "CSE", 5, false)
	seedSubject(t, repo, "Operating Systems", "os", "CSE", 4, true)

	pending, err := repo.FindPending()
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first.ID, pending[0].ID)
	assert.Equal(t, second.ID, pending[1].ID)
}

func TestSubjectRepository_ExistsBySlug(t *testing.T) {
	repo := NewSubjectRepository(setupTestDB(t))

	seedSubject(t, repo, "Operating Systems", "os", "CSE", 4, true)

	exists, err := repo.ExistsBySlug("os")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsBySlug("networks")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSubjectRepository_FindBySubmitter(t *testing.T) {
	repo := NewSubjectRepository(setupTestDB(t))

	seedSubject(t, repo, "Operating Systems", "os", "CSE", 4, true)
	other := &domain.Subject{
		Name:        "Networks",
		Slug:        "networks",
		Course:      domain.CourseInfo{Department: "CSE", Semester: 5},
		SubmittedBy: "u-2",
	}
	require.NoError(t, repo.Create(other))

	mine, err := repo.FindBySubmitter("u-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "os", mine[0].Slug)
}

func TestSubjectRepository_Delete(t *testing.T) {
	repo := NewSubjectRepository(setupTestDB(t))

	subject := seedSubject(t, repo, "Operating Systems", "os", "CSE", 4, true)
	require.NoError(t, repo.Delete(subject.ID))

	_, err := repo.FindByID(subject.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSubjectRepository_JSONBlocksRoundtrip(t *testing.T) {
	repo := NewSubjectRepository(setupTestDB(t))

	subject := seedSubject(t, repo, "Operating Systems", "os", "CSE", 4, true)
	found, err := repo.FindBySlug("os")
	require.NoError(t, err)

	require.Len(t, found.Units, 1)
	assert.Equal(t, "Unit One", found.Units[0].Title)
	assert.Equal(t, []string{"Basics"}, found.Units[0].Topics)
	assert.Equal(t, subject.Course, found.Course)
}
