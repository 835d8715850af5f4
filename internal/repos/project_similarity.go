package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devfolio/devfolio-backend/internal/logger"
	"github.com/devfolio/devfolio-backend/internal/types"
)

type ProjectSimilarityRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, sourceID, targetID uuid.UUID, score float64, kind string) error
	Neighbors(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, limit int) ([]*types.ProjectSimilarity, error)
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
	DeleteAll(ctx context.Context, tx *gorm.DB) error
}

type projectSimilarityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectSimilarityRepo(db *gorm.DB, baseLog *logger.Logger) ProjectSimilarityRepo {
	repoLog := baseLog.With("repo", "ProjectSimilarityRepo")
	return &projectSimilarityRepo{db: db, log: repoLog}
}

func (sr *projectSimilarityRepo) Upsert(ctx context.Context, tx *gorm.DB, sourceID, targetID uuid.UUID, score float64, kind string) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	edge := types.ProjectSimilarity{
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

func (sr *projectSimilarityRepo) Neighbors(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, limit int) ([]*types.ProjectSimilarity, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	query := transaction.WithContext(ctx).
		Where("source_id = ? OR target_id = ?", projectID, projectID).
		Order("score DESC, target_id")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var results []*types.ProjectSimilarity
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *projectSimilarityRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ProjectSimilarity{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (sr *projectSimilarityRepo) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.ProjectSimilarity{}).Error
}
