package service

import (
	"context"

	"github.com/sahayak/sahayak-backend/internal/domain"
	"github.com/sahayak/sahayak-backend/internal/repository"
	"github.com/sahayak/sahayak-backend/pkg/elasticsearch"
	"github.com/sahayak/sahayak-backend/pkg/logger"
)

// SubjectsIndex is the Elasticsearch index holding published subjects
const SubjectsIndex = "sahayak_subjects"

// SearchService keeps the subject search index in sync and answers queries.
// All methods are safe to call with a nil ES client; they no-op or report
// unavailability so the caller can fall back to SQL.
type SearchService interface {
	Available() bool
	EnsureIndices(ctx context.Context) error
	IndexSubject(ctx context.Context, subject *domain.Subject) error
	RemoveSubject(ctx context.Context, subjectID string) error
	// SearchSubjectIDs returns IDs of published subjects matching the query,
	// best match first.
	SearchSubjectIDs(ctx context.Context, query string, size int) ([]string, error)
	// ReindexAll rebuilds the index from every published subject in the database
	ReindexAll(ctx context.Context) (int, error)
}

type searchService struct {
	esClient    *elasticsearch.Client
	subjectRepo repository.SubjectRepository
}

// NewSearchService creates a new SearchService
func NewSearchService(esClient *elasticsearch.Client, subjectRepo repository.SubjectRepository) SearchService {
	return &searchService{
		esClient:    esClient,
		subjectRepo: subjectRepo,
	}
}

func (s *searchService) Available() bool {
	return s.esClient != nil
}

// subjectDoc flattens a subject into the searchable fields
func subjectDoc(subject *domain.Subject) map[string]interface{} {
	topics := make([]string, 0)
	for _, u := range subject.Units {
		topics = append(topics, u.Title)
		topics = append(topics, u.Topics...)
	}
	return map[string]interface{}{
		"name":          subject.Name,
		"slug":          subject.Slug,
		"course_name":   subject.Course.CourseName,
		"department":    subject.Course.Department,
		"semester":      subject.Course.Semester,
		"about_subject": subject.Intro.AboutSubject,
		"topics":        topics,
	}
}

// EnsureIndices creates the subjects index if it does not exist
func (s *searchService) EnsureIndices(ctx context.Context) error {
	if s.esClient == nil {
		return nil
	}

	mapping := map[string]interface{}{
		"settings": map[string]interface{}{
			"number_of_shards":   1,
			"number_of_replicas": 0,
		},
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"name":          map[string]interface{}{"type": "text"},
				"slug":          map[string]interface{}{"type": "keyword"},
				"course_name":   map[string]interface{}{"type": "text"},
				"department":    map[string]interface{}{"type": "keyword"},
				"semester":      map[string]interface{}{"type": "integer"},
				"about_subject": map[string]interface{}{"type": "text"},
				"topics":        map[string]interface{}{"type": "text"},
			},
		},
	}

	return s.esClient.CreateIndex(ctx, SubjectsIndex, mapping)
}

// IndexSubject writes a published subject into the search index
func (s *searchService) IndexSubject(ctx context.Context, subject *domain.Subject) error {
	if s.esClient == nil {
		return nil
	}
	return s.esClient.IndexDocument(ctx, SubjectsIndex, subject.ID, subjectDoc(subject))
}

// RemoveSubject deletes a subject from the search index
func (s *searchService) RemoveSubject(ctx context.Context, subjectID string) error {
	if s.esClient == nil {
		return nil
	}
	return s.esClient.DeleteDocument(ctx, SubjectsIndex, subjectID)
}

// SearchSubjectIDs runs a multi-field match against the subjects index
func (s *searchService) SearchSubjectIDs(ctx context.Context, query string, size int) ([]string, error) {
	if s.esClient == nil {
		return nil, nil
	}
	if size <= 0 {
		size = 50
	}

	esQuery := map[string]interface{}{
		"multi_match": map[string]interface{}{
			"query":  query,
			"fields": []string{"name^3", "course_name^2", "topics", "about_subject"},
			"type":   "best_fields",
		},
	}

	resp, err := s.esClient.Search(ctx, SubjectsIndex, esQuery, 0, size)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

// ReindexAll rebuilds the index from all published subjects
func (s *searchService) ReindexAll(ctx context.Context) (int, error) {
	if s.esClient == nil {
		return 0, nil
	}

	subjects, err := s.subjectRepo.FindPublished(domain.SubjectListFilter{})
	if err != nil {
		return 0, err
	}
	if len(subjects) == 0 {
		return 0, nil
	}

	docs := make(map[string]interface{}, len(subjects))
	for i := range subjects {
		docs[subjects[i].ID] = subjectDoc(&subjects[i])
	}

	if err := s.esClient.BulkIndex(ctx, SubjectsIndex, docs); err != nil {
		return 0, err
	}

	logger.GetLogger().Info().Int("count", len(docs)).Msg("reindexed subjects")
	return len(docs), nil
}
