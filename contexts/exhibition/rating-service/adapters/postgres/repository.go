package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"expoawards/contexts/exhibition/rating-service/domain/entities"
	domainerrors "expoawards/contexts/exhibition/rating-service/domain/errors"
	"expoawards/contexts/exhibition/rating-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists ratings and reads the catalog projections the rating
// flow validates against.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) Upsert(ctx context.Context, rating entities.Rating) (entities.Rating, bool, error) {
	row := ratingModel{
		ID:           strings.TrimSpace(rating.RatingID),
		PortfolioID:  strings.TrimSpace(rating.ProjectID),
		UserID:       strings.TrimSpace(rating.UserID),
		Star:         rating.Stars,
		IsJuryRating: rating.IsJury,
		CreatedAt:    rating.CreatedAt.UTC(),
		UpdatedAt:    rating.UpdatedAt.UTC(),
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}

	var existing ratingModel
	err := r.db.WithContext(ctx).
		Where("portfolio_id = ? AND user_id = ?", row.PortfolioID, row.UserID).
		First(&existing).
		Error
	isNew := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !isNew {
		return entities.Rating{}, false, r.logError("rating_repo_lookup_failed", err,
			"project_id", row.PortfolioID,
		)
	}
	if !isNew {
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
	}

	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "portfolio_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"star":           row.Star,
			"is_jury_rating": row.IsJuryRating,
			"updated_at":     row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return entities.Rating{}, false, domainerrors.ErrConflict
		}
		return entities.Rating{}, false, r.logError("rating_repo_upsert_failed", create.Error,
			"project_id", row.PortfolioID,
		)
	}
	return row.toEntity(), isNew, nil
}

func (r *Repository) ListByProject(ctx context.Context, projectID string) ([]entities.Rating, error) {
	var rows []ratingModel
	err := r.db.WithContext(ctx).
		Where("portfolio_id = ?", strings.TrimSpace(projectID)).
		Order("created_at ASC, id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("rating_repo_list_failed", err,
			"project_id", strings.TrimSpace(projectID),
		)
	}
	items := make([]entities.Rating, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetProject(ctx context.Context, projectID string) (entities.ProjectProjection, error) {
	var row projectProjectionRow
	err := r.db.WithContext(ctx).
		Table("portfolios AS p").
		Select("p.id, p.exhibition_id, e.user_id AS owner_user_id").
		Joins("JOIN exhibitors AS e ON e.id = p.owner_id").
		Where("p.id = ?", strings.TrimSpace(projectID)).
		Take(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ProjectProjection{}, domainerrors.ErrProjectNotFound
		}
		return entities.ProjectProjection{}, r.logError("rating_repo_get_project_failed", err,
			"project_id", strings.TrimSpace(projectID),
		)
	}
	return entities.ProjectProjection{
		ProjectID:    row.ID,
		ExhibitionID: row.ExhibitionID,
		OwnerUserID:  row.OwnerUserID,
	}, nil
}

func (r *Repository) GetExhibition(ctx context.Context, exhibitionID string) (entities.ExhibitionProjection, error) {
	var row exhibitionProjectionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(exhibitionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ExhibitionProjection{}, domainerrors.ErrExhibitionNotFound
		}
		return entities.ExhibitionProjection{}, r.logError("rating_repo_get_exhibition_failed", err,
			"exhibition_id", strings.TrimSpace(exhibitionID),
		)
	}
	return entities.ExhibitionProjection{
		ExhibitionID:    row.ID,
		DateEnd:         row.DateEnd.UTC(),
		JuryVotingUntil: row.JuryVotingUntil.UTC(),
	}, nil
}

func (r *Repository) IsJuror(ctx context.Context, exhibitionID string, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("exhibition_jury AS ej").
		Joins("JOIN jury AS j ON j.id = ej.jury_id").
		Where("ej.exhibition_id = ?", strings.TrimSpace(exhibitionID)).
		Where("j.user_id = ?", strings.TrimSpace(userID)).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("rating_repo_is_juror_failed", err,
			"exhibition_id", strings.TrimSpace(exhibitionID),
		)
	}
	return count > 0, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "exhibition/rating-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("rating repository operation failed", fields...)
	return err
}

// SystemClock satisfies ports.Clock with wall time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator satisfies ports.IDGenerator with random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type ratingModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	PortfolioID  string    `gorm:"column:portfolio_id"`
	UserID       string    `gorm:"column:user_id"`
	Star         int       `gorm:"column:star"`
	IsJuryRating bool      `gorm:"column:is_jury_rating"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (ratingModel) TableName() string {
	return "ratings"
}

func (m ratingModel) toEntity() entities.Rating {
	return entities.Rating{
		RatingID:  m.ID,
		ProjectID: m.PortfolioID,
		UserID:    m.UserID,
		Stars:     m.Star,
		IsJury:    m.IsJuryRating,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

type projectProjectionRow struct {
	ID           string `gorm:"column:id"`
	ExhibitionID string `gorm:"column:exhibition_id"`
	OwnerUserID  string `gorm:"column:owner_user_id"`
}

type exhibitionProjectionModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	DateEnd         time.Time `gorm:"column:date_end"`
	JuryVotingUntil time.Time `gorm:"column:jury_voting_until"`
}

func (exhibitionProjectionModel) TableName() string {
	return "exhibitions"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.RatingRepository = (*Repository)(nil)
var _ ports.ProjectCatalog = (*Repository)(nil)
var _ ports.ExhibitionCatalog = (*Repository)(nil)
var _ ports.JuryRoster = (*Repository)(nil)
