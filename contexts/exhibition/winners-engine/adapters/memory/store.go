package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"expoawards/contexts/exhibition/winners-engine/domain/entities"
	domainerrors "expoawards/contexts/exhibition/winners-engine/domain/errors"
	"expoawards/contexts/exhibition/winners-engine/ports"

	"github.com/google/uuid"
)

// Store is the in-memory adapter used for tests and in-process wiring. Seed
// setters preserve insertion order so catalog enumeration stays stable.
type Store struct {
	mu sync.RWMutex

	exhibitions     map[string]entities.Exhibition
	nominations     map[string]entities.Nomination
	nominationOrder map[string][]string
	jurors          map[string][]entities.Juror
	projects        map[string]entities.Project
	projectOrder    map[string][]string
	scores          map[string]entities.JuryScore
	winners         map[string][]entities.WinnerRecord
	previews        map[string]ports.StoredPreview
}

func NewStore() *Store {
	return &Store{
		exhibitions:     make(map[string]entities.Exhibition),
		nominations:     make(map[string]entities.Nomination),
		nominationOrder: make(map[string][]string),
		jurors:          make(map[string][]entities.Juror),
		projects:        make(map[string]entities.Project),
		projectOrder:    make(map[string][]string),
		scores:          make(map[string]entities.JuryScore),
		winners:         make(map[string][]entities.WinnerRecord),
		previews:        make(map[string]ports.StoredPreview),
	}
}

func (s *Store) SetExhibition(exhibition entities.Exhibition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exhibitions[strings.TrimSpace(exhibition.ExhibitionID)] = exhibition
}

// AddNomination assigns a nomination to an exhibition, keeping assignment
// order.
func (s *Store) AddNomination(exhibitionID string, nomination entities.Nomination) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exhibitionID = strings.TrimSpace(exhibitionID)
	s.nominations[nomination.NominationID] = nomination
	s.nominationOrder[exhibitionID] = append(s.nominationOrder[exhibitionID], nomination.NominationID)
}

func (s *Store) AddJuror(exhibitionID string, juror entities.Juror) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exhibitionID = strings.TrimSpace(exhibitionID)
	s.jurors[exhibitionID] = append(s.jurors[exhibitionID], juror)
}

func (s *Store) SetProject(project entities.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	projectID := strings.TrimSpace(project.ProjectID)
	exhibitionID := strings.TrimSpace(project.ExhibitionID)
	if _, exists := s.projects[projectID]; !exists {
		s.projectOrder[exhibitionID] = append(s.projectOrder[exhibitionID], projectID)
	}
	s.projects[projectID] = project
}

// SetScore upserts a jury score by (project, user), mirroring the rating
// store's unique constraint.
func (s *Store) SetScore(score entities.JuryScore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := scoreKey(score.ProjectID, score.UserID)
	if existing, ok := s.scores[key]; ok {
		score.ScoreID = existing.ScoreID
	} else if strings.TrimSpace(score.ScoreID) == "" {
		score.ScoreID = uuid.NewString()
	}
	s.scores[key] = score
}

// RemoveNomination drops a nomination entirely, simulating concurrent
// deletion while a preview sits in the transient store.
func (s *Store) RemoveNomination(nominationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.nominations, strings.TrimSpace(nominationID))
}

// RemoveProject drops a project entirely.
func (s *Store) RemoveProject(projectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.projects, strings.TrimSpace(projectID))
}

func (s *Store) GetExhibition(_ context.Context, exhibitionID string) (entities.Exhibition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	exhibition, ok := s.exhibitions[strings.TrimSpace(exhibitionID)]
	if !ok {
		return entities.Exhibition{}, domainerrors.ErrExhibitionNotFound
	}
	return exhibition, nil
}

func (s *Store) ListNominations(_ context.Context, exhibitionID string) ([]entities.Nomination, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.nominationOrder[strings.TrimSpace(exhibitionID)]
	items := make([]entities.Nomination, 0, len(ids))
	for _, id := range ids {
		if nomination, ok := s.nominations[id]; ok {
			items = append(items, nomination)
		}
	}
	return items, nil
}

func (s *Store) ListJurors(_ context.Context, exhibitionID string) ([]entities.Juror, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roster := s.jurors[strings.TrimSpace(exhibitionID)]
	return append([]entities.Juror(nil), roster...), nil
}

func (s *Store) ListProjects(_ context.Context, exhibitionID string) ([]entities.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.projectOrder[strings.TrimSpace(exhibitionID)]
	items := make([]entities.Project, 0, len(ids))
	for _, id := range ids {
		project, ok := s.projects[id]
		if !ok || !project.Visible {
			continue
		}
		items = append(items, project)
	}
	return items, nil
}

func (s *Store) ListJuryScores(_ context.Context, exhibitionID string) ([]entities.JuryScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	exhibitionID = strings.TrimSpace(exhibitionID)
	items := make([]entities.JuryScore, 0)
	for _, projectID := range s.projectOrder[exhibitionID] {
		project, ok := s.projects[projectID]
		if !ok || !project.Visible {
			continue
		}
		for _, score := range s.scores {
			if score.ProjectID == projectID {
				items = append(items, score)
			}
		}
	}
	return items, nil
}

func (s *Store) GetNominationsByIDs(_ context.Context, nominationIDs []string) ([]entities.Nomination, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Nomination, 0, len(nominationIDs))
	for _, id := range nominationIDs {
		if nomination, ok := s.nominations[strings.TrimSpace(id)]; ok {
			items = append(items, nomination)
		}
	}
	return items, nil
}

func (s *Store) GetProjectsByIDs(_ context.Context, projectIDs []string) ([]entities.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Project, 0, len(projectIDs))
	for _, id := range projectIDs {
		if project, ok := s.projects[strings.TrimSpace(id)]; ok {
			items = append(items, project)
		}
	}
	return items, nil
}

func (s *Store) ReplaceWinners(_ context.Context, exhibitionID string, records []entities.WinnerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.winners[strings.TrimSpace(exhibitionID)] = append([]entities.WinnerRecord(nil), records...)
	return nil
}

func (s *Store) CountWinners(_ context.Context, exhibitionID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.winners[strings.TrimSpace(exhibitionID)]), nil
}

// ListWinners exposes committed records for assertions.
func (s *Store) ListWinners(exhibitionID string) []entities.WinnerRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.WinnerRecord(nil), s.winners[strings.TrimSpace(exhibitionID)]...)
}

func (s *Store) Put(_ context.Context, record ports.StoredPreview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	operatorID := strings.TrimSpace(record.OperatorID)
	if operatorID == "" {
		return domainerrors.ErrOperatorRequired
	}
	s.previews[operatorID] = ports.StoredPreview{
		OperatorID: operatorID,
		Payload:    append([]byte(nil), record.Payload...),
		ExpiresAt:  record.ExpiresAt.UTC(),
	}
	return nil
}

func (s *Store) Get(_ context.Context, operatorID string, now time.Time) (ports.StoredPreview, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	operatorID = strings.TrimSpace(operatorID)
	record, ok := s.previews[operatorID]
	if !ok {
		return ports.StoredPreview{}, false, nil
	}
	if !record.ExpiresAt.IsZero() && !record.ExpiresAt.After(now.UTC()) {
		delete(s.previews, operatorID)
		return ports.StoredPreview{}, false, nil
	}
	return record, true, nil
}

func (s *Store) Delete(_ context.Context, operatorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.previews, strings.TrimSpace(operatorID))
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func scoreKey(projectID string, userID string) string {
	return strings.TrimSpace(projectID) + "/" + strings.TrimSpace(userID)
}

var _ ports.AwardRepository = (*Store)(nil)
var _ ports.WinnerWriter = (*Store)(nil)
var _ ports.PreviewStore = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
