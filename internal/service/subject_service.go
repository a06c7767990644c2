package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sahayak/sahayak-backend/internal/common"
	"github.com/sahayak/sahayak-backend/internal/domain"
	"github.com/sahayak/sahayak-backend/internal/repository"
	"github.com/sahayak/sahayak-backend/pkg/cache"
	"github.com/sahayak/sahayak-backend/pkg/logger"
	"gorm.io/gorm"
)

// SubjectService subject browsing and submission business logic
type SubjectService interface {
	// ListPublished returns published subjects matching the filter,
	// ordered by semester ascending
	ListPublished(ctx context.Context, filter domain.SubjectListFilter) ([]domain.Subject, error)
	// GetBySlug returns a published subject by its slug
	GetBySlug(ctx context.Context, slug string) (*domain.Subject, error)
	// Create submits a new subject for review (always unpublished)
	Create(ctx context.Context, req *domain.SubjectCreateRequest, userID, displayName string) (*domain.Subject, error)
	// Update applies a partial update; only an author or an admin may edit
	Update(ctx context.Context, id string, req *domain.SubjectUpdateRequest, userID, role string) (*domain.Subject, error)
	// Delete removes a subject; only an author or an admin may delete
	Delete(ctx context.Context, id string, userID, role string) error
	// ListBySubmitter returns a user's own submissions in any publish state
	ListBySubmitter(userID string) ([]domain.Subject, error)
}

type subjectService struct {
	subjectRepo repository.SubjectRepository
	cache       cache.Service
	search      SearchService
}

// NewSubjectService creates a new SubjectService
func NewSubjectService(subjectRepo repository.SubjectRepository, cacheService cache.Service, searchService SearchService) SubjectService {
	return &subjectService{
		subjectRepo: subjectRepo,
		cache:       cacheService,
		search:      searchService,
	}
}

// filterKey builds a stable cache key fragment for a listing filter
func filterKey(filter domain.SubjectListFilter) string {
	return fmt.Sprintf("d=%s:s=%d:q=%s",
		strings.ToLower(filter.Department), filter.Semester, strings.ToLower(filter.Search))
}

// ListPublished returns published subjects matching the filter
func (s *subjectService) ListPublished(ctx context.Context, filter domain.SubjectListFilter) ([]domain.Subject, error) {
	key := filterKey(filter)

	// 1. Try cache
	if data, err := s.cache.GetSubjectList(ctx, key); err == nil && data != nil {
		var cached []domain.Subject
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	// 2. Full-text search via Elasticsearch when available,
	// falling back to the SQL LIKE filter on any error
	if filter.Search != "" && s.search != nil && s.search.Available() {
		subjects, err := s.listViaSearch(ctx, filter)
		if err == nil {
			s.cacheList(ctx, key, subjects)
			return subjects, nil
		}
		logger.GetLogger().Warn().Err(err).Msg("search unavailable, falling back to SQL")
	}

	// 3. SQL path
	subjects, err := s.subjectRepo.FindPublished(filter)
	if err != nil {
		return nil, err
	}

	s.cacheList(ctx, key, subjects)
	return subjects, nil
}

// listViaSearch resolves matching IDs in Elasticsearch, then loads and
// filters the records from the database so publish state and the
// department/semester filters stay authoritative
func (s *subjectService) listViaSearch(ctx context.Context, filter domain.SubjectListFilter) ([]domain.Subject, error) {
	ids, err := s.search.SearchSubjectIDs(ctx, filter.Search, 100)
	if err != nil {
		return nil, err
	}

	subjects := make([]domain.Subject, 0, len(ids))
	for _, id := range ids {
		subject, err := s.subjectRepo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue // stale index entry
			}
			return nil, err
		}
		if !subject.IsPublished {
			continue
		}
		if filter.Department != "" && subject.Department != filter.Department {
			continue
		}
		if filter.Semester > 0 && subject.Semester != filter.Semester {
			continue
		}
		subjects = append(subjects, *subject)
	}
	return subjects, nil
}

func (s *subjectService) cacheList(ctx context.Context, key string, subjects []domain.Subject) {
	if err := s.cache.SetSubjectList(ctx, key, subjects); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("failed to cache subject list")
	}
}

// GetBySlug returns a published subject by slug
func (s *subjectService) GetBySlug(ctx context.Context, slug string) (*domain.Subject, error) {
	// 1. Try cache
	if data, err := s.cache.GetSubject(ctx, slug); err == nil && data != nil {
		var cached domain.Subject
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	subject, err := s.subjectRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrSubjectNotFound
		}
		return nil, err
	}

	// Pending submissions are only visible through the owner and admin views
	if !subject.IsPublished {
		return nil, common.ErrSubjectNotFound
	}

	if err := s.cache.SetSubject(ctx, slug, subject); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("failed to cache subject")
	}
	return subject, nil
}

// Create submits a new subject for review
func (s *subjectService) Create(ctx context.Context, req *domain.SubjectCreateRequest, userID, displayName string) (*domain.Subject, error) {
	exists, err := s.subjectRepo.ExistsBySlug(req.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrSlugTaken
	}

	overview := domain.DefaultOverview()
	if req.Overview != nil {
		overview = *req.Overview
	}

	subject := &domain.Subject{
		Name:             req.Name,
		Slug:             req.Slug,
		Course:           req.Course,
		Authors:          []domain.AuthorRef{{UserID: userID, DisplayName: displayName}},
		Overview:         overview,
		Intro:            req.Intro,
		Units:            req.Units,
		StudyModes:       req.StudyModes,
		MidsemStrategy:   req.MidsemStrategy,
		EndsemStrategy:   req.EndsemStrategy,
		SyllabusImageURL: req.SyllabusImageURL,
		MidsemPyqURL:     req.MidsemPyqURL,
		EndsemPyqURL:     req.EndsemPyqURL,
		Materials:        req.Materials,
		IsPublished:      false,
		SubmittedBy:      userID,
	}

	if err := s.subjectRepo.Create(subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// Update applies a partial update to a subject
func (s *subjectService) Update(ctx context.Context, id string, req *domain.SubjectUpdateRequest, userID, role string) (*domain.Subject, error) {
	subject, err := s.subjectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrSubjectNotFound
		}
		return nil, err
	}

	if role != domain.RoleAdmin && !subject.IsAuthor(userID) {
		return nil, common.ErrForbidden
	}

	applySubjectUpdate(subject, req)

	if err := s.subjectRepo.Save(subject); err != nil {
		return nil, err
	}

	s.invalidate(ctx, subject.Slug)
	if subject.IsPublished && s.search != nil {
		if err := s.search.IndexSubject(ctx, subject); err != nil {
			logger.GetLogger().Warn().Err(err).Str("subject_id", subject.ID).Msg("failed to reindex subject")
		}
	}

	return subject, nil
}

func applySubjectUpdate(subject *domain.Subject, req *domain.SubjectUpdateRequest) {
	if req.Name != nil {
		subject.Name = *req.Name
	}
	if req.Course != nil {
		subject.Course = *req.Course
	}
	if req.Overview != nil {
		subject.Overview = *req.Overview
	}
	if req.Intro != nil {
		subject.Intro = *req.Intro
	}
	if req.Units != nil {
		subject.Units = *req.Units
	}
	if req.StudyModes != nil {
		subject.StudyModes = *req.StudyModes
	}
	if req.MidsemStrategy != nil {
		subject.MidsemStrategy = *req.MidsemStrategy
	}
	if req.EndsemStrategy != nil {
		subject.EndsemStrategy = *req.EndsemStrategy
	}
	if req.SyllabusImageURL != nil {
		subject.SyllabusImageURL = *req.SyllabusImageURL
	}
	if req.MidsemPyqURL != nil {
		subject.MidsemPyqURL = *req.MidsemPyqURL
	}
	if req.EndsemPyqURL != nil {
		subject.EndsemPyqURL = *req.EndsemPyqURL
	}
	if req.Materials != nil {
		subject.Materials = *req.Materials
	}
}

// Delete removes a subject
func (s *subjectService) Delete(ctx context.Context, id string, userID, role string) error {
	subject, err := s.subjectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrSubjectNotFound
		}
		return err
	}

	if role != domain.RoleAdmin && !subject.IsAuthor(userID) {
		return common.ErrForbidden
	}

	if err := s.subjectRepo.Delete(id); err != nil {
		return err
	}

	s.invalidate(ctx, subject.Slug)
	if s.search != nil {
		if err := s.search.RemoveSubject(ctx, id); err != nil {
			logger.GetLogger().Warn().Err(err).Str("subject_id", id).Msg("failed to remove subject from index")
		}
	}
	return nil
}

// ListBySubmitter returns all subjects submitted by a user
func (s *subjectService) ListBySubmitter(userID string) ([]domain.Subject, error) {
	return s.subjectRepo.FindBySubmitter(userID)
}

func (s *subjectService) invalidate(ctx context.Context, slug string) {
	if err := s.cache.InvalidateSubject(ctx, slug); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("failed to invalidate subject cache")
	}
	if err := s.cache.InvalidateSubjectLists(ctx); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("failed to invalidate subject list cache")
	}
}
