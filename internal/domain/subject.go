package domain

import "time"

// Material types
const (
	MaterialDocument = "document"
	MaterialVideo    = "video"
	MaterialLink     = "link"
)

// CourseInfo identifies the course a subject guide belongs to
type CourseInfo struct {
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name"`
	Semester   int    `json:"semester"`
	Department string `json:"department"`
}

// Overview is the at-a-glance rating block of a subject
type Overview struct {
	OverallDifficulty string `json:"overall_difficulty"`
	NatureType        string `json:"nature_type"`
	TimeRequired      string `json:"time_required"`
	ScoringPotential  string `json:"scoring_potential"`
	RiskLevel         string `json:"risk_level"`
}

// DefaultOverview returns the neutral rating block
func DefaultOverview() Overview {
	return Overview{
		OverallDifficulty: "moderate",
		NatureType:        "mixed",
		TimeRequired:      "medium",
		ScoringPotential:  "medium",
		RiskLevel:         "moderate",
	}
}

// Intro is the free-text introduction block
type Intro struct {
	AboutSubject       string `json:"about_subject"`
	GeneralTips        string `json:"general_tips"`
	ThingsToKeepInMind string `json:"things_to_keep_in_mind"`
}

// Unit is one syllabus division with its topic list (markdown strings)
type Unit struct {
	UnitNumber     int      `json:"unit_number"`
	Title          string   `json:"title"`
	UnitDifficulty string   `json:"unit_difficulty"`
	ScoringValue   string   `json:"scoring_value"`
	SkipSafe       bool     `json:"skip_safe"`
	Topics         []string `json:"topics"`
}

// StudyModes holds per-timeframe prep plans
type StudyModes struct {
	OneDay       string `json:"one_day"`
	ThreeDay     string `json:"three_day"`
	FullPrep     string `json:"full_prep"`
	NinePlusMode string `json:"nine_plus_mode"`
}

// Material is one study resource link
type Material struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

// AuthorRef links a subject to a contributing user
type AuthorRef struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// Subject is a study guide for one academic course (subjects table).
// Nested blocks are stored as JSON columns; the fields clients filter
// on (slug, publish state, department, semester, name) are real columns
// kept in sync from Course so list queries run in SQL.
type Subject struct {
	ID               string      `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	Name             string      `gorm:"column:name;size:255;index" json:"name"`
	Slug             string      `gorm:"column:slug;size:255;uniqueIndex" json:"slug"`
	Department       string      `gorm:"column:department;size:100;index" json:"-"`
	Semester         int         `gorm:"column:semester;index" json:"-"`
	Course           CourseInfo  `gorm:"column:course;serializer:json" json:"course"`
	Authors          []AuthorRef `gorm:"column:authors;serializer:json" json:"authors"`
	Overview         Overview    `gorm:"column:overview;serializer:json" json:"overview"`
	Intro            Intro       `gorm:"column:intro;serializer:json" json:"intro"`
	Units            []Unit      `gorm:"column:units;serializer:json" json:"units"`
	StudyModes       StudyModes  `gorm:"column:study_modes;serializer:json" json:"study_modes"`
	MidsemStrategy   string      `gorm:"column:midsem_strategy;type:text" json:"midsem_strategy"`
	EndsemStrategy   string      `gorm:"column:endsem_strategy;type:text" json:"endsem_strategy"`
	SyllabusImageURL string      `gorm:"column:syllabus_image_url;size:500" json:"syllabus_image_url"`
	MidsemPyqURL     string      `gorm:"column:midsem_pyq_url;size:500" json:"midsem_pyq_url"`
	EndsemPyqURL     string      `gorm:"column:endsem_pyq_url;size:500" json:"endsem_pyq_url"`
	Materials        []Material  `gorm:"column:materials;serializer:json" json:"materials"`
	IsPublished      bool        `gorm:"column:is_published;index" json:"is_published"`
	SubmittedBy      string      `gorm:"column:submitted_by;type:char(36);index" json:"submitted_by,omitempty"`
	ReviewedBy       *string     `gorm:"column:reviewed_by;type:char(36)" json:"reviewed_by"`
	RejectionReason  string      `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`
	CreatedAt        time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for Subject
func (Subject) TableName() string {
	return "subjects"
}

// SyncQueryColumns copies the filterable course fields into their
// dedicated columns. Must be called before every insert or full update.
func (s *Subject) SyncQueryColumns() {
	s.Department = s.Course.Department
	s.Semester = s.Course.Semester
}

// IsAuthor reports whether the given user submitted or co-authored this subject
func (s *Subject) IsAuthor(userID string) bool {
	if s.SubmittedBy == userID {
		return true
	}
	for _, a := range s.Authors {
		if a.UserID == userID {
			return true
		}
	}
	return false
}

// SubjectCreateRequest is the full payload a contributor submits
type SubjectCreateRequest struct {
	Name             string     `json:"name" binding:"required"`
	Slug             string     `json:"slug" binding:"required"`
	Course           CourseInfo `json:"course" binding:"required"`
	Overview         *Overview  `json:"overview"`
	Intro            Intro      `json:"intro"`
	Units            []Unit     `json:"units"`
	StudyModes       StudyModes `json:"study_modes"`
	MidsemStrategy   string     `json:"midsem_strategy"`
	EndsemStrategy   string     `json:"endsem_strategy"`
	SyllabusImageURL string     `json:"syllabus_image_url"`
	MidsemPyqURL     string     `json:"midsem_pyq_url"`
	EndsemPyqURL     string     `json:"endsem_pyq_url"`
	Materials        []Material `json:"materials"`
}

// SubjectUpdateRequest is a partial update; nil fields are left untouched
type SubjectUpdateRequest struct {
	Name             *string     `json:"name"`
	Course           *CourseInfo `json:"course"`
	Overview         *Overview   `json:"overview"`
	Intro            *Intro      `json:"intro"`
	Units            *[]Unit     `json:"units"`
	StudyModes       *StudyModes `json:"study_modes"`
	MidsemStrategy   *string     `json:"midsem_strategy"`
	EndsemStrategy   *string     `json:"endsem_strategy"`
	SyllabusImageURL *string     `json:"syllabus_image_url"`
	MidsemPyqURL     *string     `json:"midsem_pyq_url"`
	EndsemPyqURL     *string     `json:"endsem_pyq_url"`
	Materials        *[]Material `json:"materials"`
}

// SubjectListFilter narrows the published subject listing
type SubjectListFilter struct {
	Department string
	Semester   int
	Search     string
}
