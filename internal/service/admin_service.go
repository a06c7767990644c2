package service

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sahayak/sahayak-backend/internal/common"
	"github.com/sahayak/sahayak-backend/internal/domain"
	"github.com/sahayak/sahayak-backend/internal/repository"
	"github.com/sahayak/sahayak-backend/pkg/cache"
	"github.com/sahayak/sahayak-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	subjectsPublishedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "subjects_published_total",
			Help: "Total number of subjects published by moderators",
		},
	)

	subjectsRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "subjects_rejected_total",
			Help: "Total number of subjects rejected by moderators",
		},
	)
)

// AdminService moderation and user management business logic
type AdminService interface {
	// Queue returns subjects awaiting review, oldest first
	Queue() ([]domain.Subject, error)
	// Publish marks a subject as published and records the reviewer
	Publish(ctx context.Context, subjectID, reviewerID string) (*domain.Subject, error)
	// Reject keeps a subject unpublished and records the reason and reviewer
	Reject(ctx context.Context, subjectID, reviewerID, reason string) (*domain.Subject, error)
	ListUsers() ([]domain.UserResponse, error)
	UpdateUserRole(userID, role string) (*domain.UserResponse, error)
}

type adminService struct {
	subjectRepo repository.SubjectRepository
	userRepo    repository.UserRepository
	cache       cache.Service
	search      SearchService
}

// NewAdminService creates a new AdminService
func NewAdminService(subjectRepo repository.SubjectRepository, userRepo repository.UserRepository, cacheService cache.Service, searchService SearchService) AdminService {
	return &adminService{
		subjectRepo: subjectRepo,
		userRepo:    userRepo,
		cache:       cacheService,
		search:      searchService,
	}
}

// Queue returns the pending review queue
func (s *adminService) Queue() ([]domain.Subject, error) {
	return s.subjectRepo.FindPending()
}

// Publish makes a subject publicly visible
func (s *adminService) Publish(ctx context.Context, subjectID, reviewerID string) (*domain.Subject, error) {
	subject, err := s.subjectRepo.FindByID(subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrSubjectNotFound
		}
		return nil, err
	}

	subject.IsPublished = true
	subject.ReviewedBy = &reviewerID
	subject.RejectionReason = ""

	if err := s.subjectRepo.Save(subject); err != nil {
		return nil, err
	}

	s.invalidateCaches(ctx, subject.Slug)
	if s.search != nil {
		if err := s.search.IndexSubject(ctx, subject); err != nil {
			logger.GetLogger().Warn().Err(err).Str("subject_id", subject.ID).Msg("failed to index published subject")
		}
	}
	subjectsPublishedTotal.Inc()

	return subject, nil
}

// Reject records a rejection; the submission stays out of public listings
func (s *adminService) Reject(ctx context.Context, subjectID, reviewerID, reason string) (*domain.Subject, error) {
	subject, err := s.subjectRepo.FindByID(subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrSubjectNotFound
		}
		return nil, err
	}

	wasPublished := subject.IsPublished
	subject.IsPublished = false
	subject.ReviewedBy = &reviewerID
	subject.RejectionReason = reason

	if err := s.subjectRepo.Save(subject); err != nil {
		return nil, err
	}

	s.invalidateCaches(ctx, subject.Slug)
	if wasPublished && s.search != nil {
		if err := s.search.RemoveSubject(ctx, subject.ID); err != nil {
			logger.GetLogger().Warn().Err(err).Str("subject_id", subject.ID).Msg("failed to deindex rejected subject")
		}
	}
	subjectsRejectedTotal.Inc()

	return subject, nil
}

// ListUsers returns all registered users
func (s *adminService) ListUsers() ([]domain.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}

	responses := make([]domain.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *users[i].ToResponse())
	}
	return responses, nil
}

// UpdateUserRole changes a user's role
func (s *adminService) UpdateUserRole(userID, role string) (*domain.UserResponse, error) {
	if !domain.ValidRole(role) {
		return nil, common.ErrInvalidRole
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}

	if err := s.userRepo.UpdateRole(userID, role); err != nil {
		return nil, err
	}

	user.Role = role
	return user.ToResponse(), nil
}

func (s *adminService) invalidateCaches(ctx context.Context, slug string) {
	if err := s.cache.InvalidateSubject(ctx, slug); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("failed to invalidate subject cache")
	}
	if err := s.cache.InvalidateSubjectLists(ctx); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("failed to invalidate subject list cache")
	}
}
