package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"expoawards/contexts/exhibition/winners-engine/domain/entities"
	domainerrors "expoawards/contexts/exhibition/winners-engine/domain/errors"
	"expoawards/contexts/exhibition/winners-engine/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository reads the CMS-owned exhibition tables and owns the winners and
// preview-store tables.
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

func (r *Repository) GetExhibition(ctx context.Context, exhibitionID string) (entities.Exhibition, error) {
	var row exhibitionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(exhibitionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Exhibition{}, domainerrors.ErrExhibitionNotFound
		}
		return entities.Exhibition{}, r.logError("winners_repo_get_exhibition_failed", err,
			"exhibition_id", strings.TrimSpace(exhibitionID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListNominations(ctx context.Context, exhibitionID string) ([]entities.Nomination, error) {
	var rows []nominationModel
	err := r.db.WithContext(ctx).
		Table("nominations AS n").
		Select("n.*").
		Joins("JOIN exhibition_nominations AS en ON en.nomination_id = n.id").
		Where("en.exhibition_id = ?", strings.TrimSpace(exhibitionID)).
		Order("n.sort ASC, n.id ASC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, r.logError("winners_repo_list_nominations_failed", err,
			"exhibition_id", strings.TrimSpace(exhibitionID),
		)
	}
	items := make([]entities.Nomination, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListJurors(ctx context.Context, exhibitionID string) ([]entities.Juror, error) {
	var rows []jurorModel
	err := r.db.WithContext(ctx).
		Table("jury AS j").
		Select("j.*").
		Joins("JOIN exhibition_jury AS ej ON ej.jury_id = j.id").
		Where("ej.exhibition_id = ?", strings.TrimSpace(exhibitionID)).
		Order("j.id ASC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, r.logError("winners_repo_list_jurors_failed", err,
			"exhibition_id", strings.TrimSpace(exhibitionID),
		)
	}
	items := make([]entities.Juror, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.Juror{
			JurorID: row.ID,
			UserID:  row.UserID,
			Name:    row.Name,
		})
	}
	return items, nil
}

func (r *Repository) ListProjects(ctx context.Context, exhibitionID string) ([]entities.Project, error) {
	var rows []projectRow
	err := r.db.WithContext(ctx).
		Table("portfolios AS p").
		Select("p.id, p.title, p.exhibition_id, p.owner_id, p.visible, p.sort, e.name AS owner_name").
		Joins("JOIN exhibitors AS e ON e.id = p.owner_id").
		Where("p.exhibition_id = ?", strings.TrimSpace(exhibitionID)).
		Where("p.visible = ?", true).
		Order("p.sort ASC, p.id ASC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, r.logError("winners_repo_list_projects_failed", err,
			"exhibition_id", strings.TrimSpace(exhibitionID),
		)
	}
	return r.attachNominationAssignments(ctx, rows)
}

func (r *Repository) ListJuryScores(ctx context.Context, exhibitionID string) ([]entities.JuryScore, error) {
	var rows []ratingModel
	err := r.db.WithContext(ctx).
		Table("ratings AS r").
		Select("r.*").
		Joins("JOIN portfolios AS p ON p.id = r.portfolio_id").
		Where("p.exhibition_id = ?", strings.TrimSpace(exhibitionID)).
		Where("p.visible = ?", true).
		Where("r.is_jury_rating = ?", true).
		Order("r.id ASC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, r.logError("winners_repo_list_jury_scores_failed", err,
			"exhibition_id", strings.TrimSpace(exhibitionID),
		)
	}
	items := make([]entities.JuryScore, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.JuryScore{
			ScoreID:   row.ID,
			ProjectID: row.PortfolioID,
			UserID:    row.UserID,
			Stars:     row.Star,
			UpdatedAt: row.UpdatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) GetNominationsByIDs(ctx context.Context, nominationIDs []string) ([]entities.Nomination, error) {
	if len(nominationIDs) == 0 {
		return nil, nil
	}
	var rows []nominationModel
	err := r.db.WithContext(ctx).
		Where("id IN ?", trimAll(nominationIDs)).
		Order("sort ASC, id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("winners_repo_get_nominations_by_ids_failed", err,
			"count", len(nominationIDs),
		)
	}
	items := make([]entities.Nomination, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetProjectsByIDs(ctx context.Context, projectIDs []string) ([]entities.Project, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	var rows []projectRow
	err := r.db.WithContext(ctx).
		Table("portfolios AS p").
		Select("p.id, p.title, p.exhibition_id, p.owner_id, p.visible, p.sort, e.name AS owner_name").
		Joins("JOIN exhibitors AS e ON e.id = p.owner_id").
		Where("p.id IN ?", trimAll(projectIDs)).
		Order("p.sort ASC, p.id ASC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, r.logError("winners_repo_get_projects_by_ids_failed", err,
			"count", len(projectIDs),
		)
	}
	return r.attachNominationAssignments(ctx, rows)
}

// ReplaceWinners swaps the exhibition's winner records in one transaction.
// A failure anywhere rolls back to the prior record set.
func (r *Repository) ReplaceWinners(ctx context.Context, exhibitionID string, records []entities.WinnerRecord) error {
	exhibitionID = strings.TrimSpace(exhibitionID)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("exhibition_id = ?", exhibitionID).
			Delete(&winnerModel{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		rows := make([]winnerModel, 0, len(records))
		for _, record := range records {
			rows = append(rows, winnerModelFromEntity(record))
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrConflict
		}
		return r.logError("winners_repo_replace_winners_failed", err,
			"exhibition_id", exhibitionID,
			"records", len(records),
		)
	}
	return nil
}

func (r *Repository) CountWinners(ctx context.Context, exhibitionID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&winnerModel{}).
		Where("exhibition_id = ?", strings.TrimSpace(exhibitionID)).
		Count(&count).
		Error
	if err != nil {
		return 0, r.logError("winners_repo_count_winners_failed", err,
			"exhibition_id", strings.TrimSpace(exhibitionID),
		)
	}
	return int(count), nil
}

func (r *Repository) Put(ctx context.Context, record ports.StoredPreview) error {
	row := previewModel{
		OperatorID: strings.TrimSpace(record.OperatorID),
		Payload:    append([]byte(nil), record.Payload...),
		ExpiresAt:  record.ExpiresAt.UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "operator_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"payload":    row.Payload,
			"expires_at": row.ExpiresAt,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("winners_repo_preview_put_failed", create.Error,
			"operator_id", row.OperatorID,
		)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, operatorID string, now time.Time) (ports.StoredPreview, bool, error) {
	var row previewModel
	err := r.db.WithContext(ctx).
		Where("operator_id = ?", strings.TrimSpace(operatorID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.StoredPreview{}, false, nil
		}
		return ports.StoredPreview{}, false, r.logError("winners_repo_preview_get_failed", err,
			"operator_id", strings.TrimSpace(operatorID),
		)
	}
	if !row.ExpiresAt.IsZero() && !row.ExpiresAt.UTC().After(now.UTC()) {
		if err := r.Delete(ctx, operatorID); err != nil {
			return ports.StoredPreview{}, false, err
		}
		return ports.StoredPreview{}, false, nil
	}
	return ports.StoredPreview{
		OperatorID: row.OperatorID,
		Payload:    append([]byte(nil), row.Payload...),
		ExpiresAt:  row.ExpiresAt.UTC(),
	}, true, nil
}

func (r *Repository) Delete(ctx context.Context, operatorID string) error {
	err := r.db.WithContext(ctx).
		Where("operator_id = ?", strings.TrimSpace(operatorID)).
		Delete(&previewModel{}).
		Error
	if err != nil {
		return r.logError("winners_repo_preview_delete_failed", err,
			"operator_id", strings.TrimSpace(operatorID),
		)
	}
	return nil
}

// attachNominationAssignments loads portfolio-nomination links for the given
// rows in a single query and folds them into project entities.
func (r *Repository) attachNominationAssignments(ctx context.Context, rows []projectRow) ([]entities.Project, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var links []projectNominationModel
	err := r.db.WithContext(ctx).
		Where("portfolio_id IN ?", ids).
		Order("portfolio_id ASC, nomination_id ASC").
		Find(&links).
		Error
	if err != nil {
		return nil, r.logError("winners_repo_list_project_nominations_failed", err,
			"projects", len(rows),
		)
	}
	byProject := make(map[string][]string, len(rows))
	for _, link := range links {
		byProject[link.PortfolioID] = append(byProject[link.PortfolioID], link.NominationID)
	}

	items := make([]entities.Project, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.Project{
			ProjectID:     row.ID,
			Title:         row.Title,
			ExhibitionID:  row.ExhibitionID,
			OwnerID:       row.OwnerID,
			OwnerName:     row.OwnerName,
			NominationIDs: byProject[row.ID],
			Visible:       row.Visible,
			Sort:          row.Sort,
		})
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "exhibition/winners-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("winners repository operation failed", fields...)
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

type exhibitionModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Title     string    `gorm:"column:title"`
	Slug      string    `gorm:"column:slug"`
	DateStart time.Time `gorm:"column:date_start"`
	DateEnd   time.Time `gorm:"column:date_end"`
}

func (exhibitionModel) TableName() string {
	return "exhibitions"
}

func (m exhibitionModel) toEntity() entities.Exhibition {
	return entities.Exhibition{
		ExhibitionID: m.ID,
		Title:        m.Title,
		Slug:         m.Slug,
		DateStart:    m.DateStart.UTC(),
		DateEnd:      m.DateEnd.UTC(),
	}
}

type nominationModel struct {
	ID    string `gorm:"column:id;primaryKey"`
	Title string `gorm:"column:title"`
	Slug  string `gorm:"column:slug"`
	Sort  int    `gorm:"column:sort"`
}

func (nominationModel) TableName() string {
	return "nominations"
}

func (m nominationModel) toEntity() entities.Nomination {
	return entities.Nomination{
		NominationID: m.ID,
		Title:        m.Title,
		Slug:         m.Slug,
		Sort:         m.Sort,
	}
}

type jurorModel struct {
	ID     string `gorm:"column:id;primaryKey"`
	UserID string `gorm:"column:user_id"`
	Name   string `gorm:"column:name"`
}

func (jurorModel) TableName() string {
	return "jury"
}

type projectRow struct {
	ID           string `gorm:"column:id"`
	Title        string `gorm:"column:title"`
	ExhibitionID string `gorm:"column:exhibition_id"`
	OwnerID      string `gorm:"column:owner_id"`
	OwnerName    string `gorm:"column:owner_name"`
	Visible      bool   `gorm:"column:visible"`
	Sort         int    `gorm:"column:sort"`
}

type projectNominationModel struct {
	PortfolioID  string `gorm:"column:portfolio_id"`
	NominationID string `gorm:"column:nomination_id"`
}

func (projectNominationModel) TableName() string {
	return "portfolio_nominations"
}

type ratingModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	PortfolioID  string    `gorm:"column:portfolio_id"`
	UserID       string    `gorm:"column:user_id"`
	Star         int       `gorm:"column:star"`
	IsJuryRating bool      `gorm:"column:is_jury_rating"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (ratingModel) TableName() string {
	return "ratings"
}

type winnerModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	ExhibitionID string    `gorm:"column:exhibition_id"`
	NominationID string    `gorm:"column:nomination_id"`
	ExhibitorID  string    `gorm:"column:exhibitor_id"`
	PortfolioID  string    `gorm:"column:portfolio_id"`
	Score        float64   `gorm:"column:score"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (winnerModel) TableName() string {
	return "winners"
}

func winnerModelFromEntity(record entities.WinnerRecord) winnerModel {
	row := winnerModel{
		ID:           strings.TrimSpace(record.WinnerID),
		ExhibitionID: strings.TrimSpace(record.ExhibitionID),
		NominationID: strings.TrimSpace(record.NominationID),
		ExhibitorID:  strings.TrimSpace(record.ExhibitorID),
		PortfolioID:  strings.TrimSpace(record.ProjectID),
		Score:        record.Score,
		CreatedAt:    record.CreatedAt.UTC(),
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

type previewModel struct {
	OperatorID string    `gorm:"column:operator_id;primaryKey"`
	Payload    []byte    `gorm:"column:payload"`
	ExpiresAt  time.Time `gorm:"column:expires_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (previewModel) TableName() string {
	return "winners_preview_store"
}

func trimAll(values []string) []string {
	items := make([]string, 0, len(values))
	for _, value := range values {
		items = append(items, strings.TrimSpace(value))
	}
	return items
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.AwardRepository = (*Repository)(nil)
var _ ports.WinnerWriter = (*Repository)(nil)
var _ ports.PreviewStore = (*Repository)(nil)
