package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"expoawards/contexts/exhibition/rating-service/domain/entities"
	domainerrors "expoawards/contexts/exhibition/rating-service/domain/errors"
	"expoawards/contexts/exhibition/rating-service/ports"

	"github.com/google/uuid"
)

// Store is the in-memory adapter used for tests and in-process wiring.
type Store struct {
	mu sync.RWMutex

	ratings     map[string]entities.Rating
	ratingOrder map[string][]string
	projects    map[string]entities.ProjectProjection
	exhibitions map[string]entities.ExhibitionProjection
	jurors      map[string]map[string]bool

	// FixedNow pins the clock for tests; zero means wall time.
	FixedNow time.Time
}

func NewStore() *Store {
	return &Store{
		ratings:     make(map[string]entities.Rating),
		ratingOrder: make(map[string][]string),
		projects:    make(map[string]entities.ProjectProjection),
		exhibitions: make(map[string]entities.ExhibitionProjection),
		jurors:      make(map[string]map[string]bool),
	}
}

func (s *Store) SetProject(project entities.ProjectProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[strings.TrimSpace(project.ProjectID)] = project
}

func (s *Store) SetExhibition(exhibition entities.ExhibitionProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exhibitions[strings.TrimSpace(exhibition.ExhibitionID)] = exhibition
}

func (s *Store) AddJuror(exhibitionID string, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exhibitionID = strings.TrimSpace(exhibitionID)
	if s.jurors[exhibitionID] == nil {
		s.jurors[exhibitionID] = make(map[string]bool)
	}
	s.jurors[exhibitionID][strings.TrimSpace(userID)] = true
}

func (s *Store) Upsert(_ context.Context, rating entities.Rating) (entities.Rating, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	projectID := strings.TrimSpace(rating.ProjectID)
	key := projectID + "/" + strings.TrimSpace(rating.UserID)
	existing, ok := s.ratings[key]
	if ok {
		rating.RatingID = existing.RatingID
		rating.CreatedAt = existing.CreatedAt
	} else {
		if strings.TrimSpace(rating.RatingID) == "" {
			rating.RatingID = uuid.NewString()
		}
		s.ratingOrder[projectID] = append(s.ratingOrder[projectID], key)
	}
	s.ratings[key] = rating
	return rating, !ok, nil
}

func (s *Store) ListByProject(_ context.Context, projectID string) ([]entities.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := s.ratingOrder[strings.TrimSpace(projectID)]
	items := make([]entities.Rating, 0, len(keys))
	for _, key := range keys {
		if rating, ok := s.ratings[key]; ok {
			items = append(items, rating)
		}
	}
	return items, nil
}

func (s *Store) GetProject(_ context.Context, projectID string) (entities.ProjectProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	project, ok := s.projects[strings.TrimSpace(projectID)]
	if !ok {
		return entities.ProjectProjection{}, domainerrors.ErrProjectNotFound
	}
	return project, nil
}

func (s *Store) GetExhibition(_ context.Context, exhibitionID string) (entities.ExhibitionProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	exhibition, ok := s.exhibitions[strings.TrimSpace(exhibitionID)]
	if !ok {
		return entities.ExhibitionProjection{}, domainerrors.ErrExhibitionNotFound
	}
	return exhibition, nil
}

func (s *Store) IsJuror(_ context.Context, exhibitionID string, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jurors[strings.TrimSpace(exhibitionID)][strings.TrimSpace(userID)], nil
}

func (s *Store) Now() time.Time {
	if !s.FixedNow.IsZero() {
		return s.FixedNow.UTC()
	}
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.RatingRepository = (*Store)(nil)
var _ ports.ProjectCatalog = (*Store)(nil)
var _ ports.ExhibitionCatalog = (*Store)(nil)
var _ ports.JuryRoster = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
