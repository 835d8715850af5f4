package types

import (
	"time"

	"github.com/google/uuid"
)

const SimilarityKindTagBased = "tag_based"

type ProjectSimilarity struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SourceID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_project_similarity_pair;index" json:"source_id"`
	TargetID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_project_similarity_pair;index" json:"target_id"`
	Score     float64   `gorm:"column:score;not null;default:0" json:"score"`
	Kind      string    `gorm:"column:kind;not null;default:tag_based" json:"kind"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ProjectSimilarity) TableName() string { return "project_similarity" }

func (s *ProjectSimilarity) Other(id uuid.UUID) uuid.UUID {
	if s.SourceID == id {
		return s.TargetID
	}
	return s.SourceID
}
