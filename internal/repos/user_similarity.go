package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devfolio/devfolio-backend/internal/logger"
	"github.com/devfolio/devfolio-backend/internal/types"
)

// UserSimilarityRepo is the persisted user similarity graph. Only the
// batch updater writes edges; request paths read them.
type UserSimilarityRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, sourceID, targetID uuid.UUID, score float64, kind string) error
	// Neighbors returns edges touching userID from either side, strongest
	// first, target id breaking ties.
	Neighbors(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.UserSimilarity, error)
	// Outgoing returns only source-side edges, for the subgraph view.
	Outgoing(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.UserSimilarity, error)
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
	DeleteAll(ctx context.Context, tx *gorm.DB) error
}

type userSimilarityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserSimilarityRepo(db *gorm.DB, baseLog *logger.Logger) UserSimilarityRepo {
	repoLog := baseLog.With("repo", "UserSimilarityRepo")
	return &userSimilarityRepo{db: db, log: repoLog}
}

func (sr *userSimilarityRepo) Upsert(ctx context.Context, tx *gorm.DB, sourceID, targetID uuid.UUID, score float64, kind string) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	edge := types.UserSimilarity{
		SourceID: sourceID,
		TargetID: targetID,
		Score:    score,
		Kind:     kind,
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "source_id"}, {Name: "target_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "kind", "updated_at"}),
		}).
		Create(&edge).Error
}

func (sr *userSimilarityRepo) Neighbors(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.UserSimilarity, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	query := transaction.WithContext(ctx).
		Where("source_id = ? OR target_id = ?", userID, userID).
		Order("score DESC, target_id")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var results []*types.UserSimilarity
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *userSimilarityRepo) Outgoing(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.UserSimilarity, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	query := transaction.WithContext(ctx).
		Where("source_id = ?", userID).
		Order("score DESC, target_id")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var results []*types.UserSimilarity
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *userSimilarityRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.UserSimilarity{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (sr *userSimilarityRepo) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.UserSimilarity{}).Error
}
