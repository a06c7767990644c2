package repository

import (
	"github.com/google/uuid"
	"github.com/sahayak/sahayak-backend/internal/domain"
	"gorm.io/gorm"
)

// SubjectRepository handles subject data operations
type SubjectRepository interface {
	Create(subject *domain.Subject) error
	FindByID(id string) (*domain.Subject, error)
	FindBySlug(slug string) (*domain.Subject, error)
	// FindPublished returns published subjects matching the filter,
	// ordered by course semester ascending.
	FindPublished(filter domain.SubjectListFilter) ([]domain.Subject, error)
	// FindPending returns unpublished subjects, oldest first (review order)
	FindPending() ([]domain.Subject, error)
	// FindBySubmitter returns a user's submissions in any publish state, newest first
	FindBySubmitter(userID string) ([]domain.Subject, error)
	ExistsBySlug(slug string) (bool, error)
	Save(subject *domain.Subject) error
	UpdateFields(id string, fields map[string]interface{}) error
	Delete(id string) error
}

type subjectRepository struct {
	db *gorm.DB
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

// Create inserts a new subject, assigning an ID when absent
func (r *subjectRepository) Create(subject *domain.Subject) error {
	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	subject.SyncQueryColumns()
	return r.db.Create(subject).Error
}

// FindByID returns a subject by primary key in any publish state
func (r *subjectRepository) FindByID(id string) (*domain.Subject, error) {
	var subject domain.Subject
	if err := r.db.Where("id = ?", id).First(&subject).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

// FindBySlug returns a subject by slug in any publish state
func (r *subjectRepository) FindBySlug(slug string) (*domain.Subject, error) {
	var subject domain.Subject
	if err := r.db.Where("slug = ?", slug).First(&subject).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

// FindPublished returns published subjects matching the filter
func (r *subjectRepository) FindPublished(filter domain.SubjectListFilter) ([]domain.Subject, error) {
	query := r.db.Where("is_published = ?", true)

	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Semester > 0 {
		query = query.Where("semester = ?", filter.Semester)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
	}

	var subjects []domain.Subject
	err := query.Order("semester ASC").Find(&subjects).Error
	return subjects, err
}

// FindPending returns unpublished subjects awaiting review
func (r *subjectRepository) FindPending() ([]domain.Subject, error) {
	var subjects []domain.Subject
	err := r.db.Where("is_published = ?", false).
		Order("created_at ASC").
		Find(&subjects).Error
	return subjects, err
}

// FindBySubmitter returns all subjects submitted by a user
func (r *subjectRepository) FindBySubmitter(userID string) ([]domain.Subject, error) {
	var subjects []domain.Subject
	err := r.db.Where("submitted_by = ?", userID).
		Order("created_at DESC").
		Find(&subjects).Error
	return subjects, err
}

// ExistsBySlug checks whether a slug is already in use
func (r *subjectRepository) ExistsBySlug(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Subject{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// Save writes the full subject record back
func (r *subjectRepository) Save(subject *domain.Subject) error {
	subject.SyncQueryColumns()
	return r.db.Save(subject).Error
}

// UpdateFields updates a subset of columns on a subject
func (r *subjectRepository) UpdateFields(id string, fields map[string]interface{}) error {
	return r.db.Model(&domain.Subject{}).Where("id = ?", id).
		Updates(fields).Error
}

// Delete hard-deletes a subject
func (r *subjectRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.Subject{}).Error
}
