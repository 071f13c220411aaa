package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"

	"questlab.io/studiosite/internal/entity"
)

const contentIndex = "content"

// Document is the public search record for published content. Only published
// rows are ever indexed; unpublishing or deleting removes the document.
type Document struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"` // "course" | "game" | "job"
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Summary   string `json:"summary"`
	Body      string `json:"body"`
	CreatedAt int64  `json:"created_at"`
}

type SearchService interface {
	IndexCourse(course *entity.Course) error
	IndexGame(game *entity.Game) error
	IndexJobPosting(job *entity.JobPosting) error
	Delete(id string) error
	Search(ctx context.Context, query string, limit int64) ([]Document, error)
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

// NewSearchService wraps the Meilisearch client. A nil client disables
// indexing and search without failing writes elsewhere.
func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	if client != nil {
		s.initIndex()
	}
	return s
}

func (s *searchService) initIndex() {
	filterable := []any{"kind"}
	if _, err := s.client.Index(contentIndex).UpdateFilterableAttributes(&filterable); err != nil {
		log.Printf("Failed to update content filterable attributes: %v", err)
	}

	sortable := []string{"created_at"}
	if _, err := s.client.Index(contentIndex).UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("Failed to update content sortable attributes: %v", err)
	}
}

func (s *searchService) IndexCourse(course *entity.Course) error {
	return s.index(Document{
		ID:        course.ID.String(),
		Kind:      "course",
		Title:     course.Title,
		Slug:      course.Slug,
		Summary:   s.sanitizer.Sanitize(course.Description),
		Body:      s.sanitizer.Sanitize(course.LongDescription),
		CreatedAt: course.CreatedAt.Unix(),
	})
}

func (s *searchService) IndexGame(game *entity.Game) error {
	return s.index(Document{
		ID:        game.ID.String(),
		Kind:      "game",
		Title:     game.Name,
		Slug:      game.Slug,
		Summary:   s.sanitizer.Sanitize(game.Tagline + " " + game.Description),
		Body:      s.sanitizer.Sanitize(game.LongDescription),
		CreatedAt: game.CreatedAt.Unix(),
	})
}

func (s *searchService) IndexJobPosting(job *entity.JobPosting) error {
	return s.index(Document{
		ID:        job.ID.String(),
		Kind:      "job",
		Title:     job.Title,
		Slug:      job.Slug,
		Summary:   job.Department + " · " + job.Location,
		Body:      s.sanitizer.Sanitize(job.Description),
		CreatedAt: job.CreatedAt.Unix(),
	})
}

func (s *searchService) index(doc Document) error {
	if s.client == nil {
		return nil
	}

	if _, err := s.client.Index(contentIndex).AddDocuments([]Document{doc}, strPtr("id")); err != nil {
		return fmt.Errorf("failed to index document %s: %w", doc.ID, err)
	}
	return nil
}

func (s *searchService) Delete(id string) error {
	if s.client == nil {
		return nil
	}

	if _, err := s.client.Index(contentIndex).DeleteDocument(id); err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}
	return nil
}

func (s *searchService) Search(ctx context.Context, query string, limit int64) ([]Document, error) {
	if s.client == nil {
		return []Document{}, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	resp, err := s.client.Index(contentIndex).SearchWithContext(ctx, query, &meilisearch.SearchRequest{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	raw, err := json.Marshal(resp.Hits)
	if err != nil {
		return nil, err
	}

	var docs []Document
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func strPtr(s string) *string { return &s }
