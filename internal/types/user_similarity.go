package types

import (
	"time"

	"github.com/google/uuid"
)

const SimilarityKindSkillBased = "skill_based"

// UserSimilarity is one directed edge of the user similarity graph. Both
// directions of a pair are stored as separate rows; the (source, target)
// pair is unique and self-edges are never written.
type UserSimilarity struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SourceID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_similarity_pair;index" json:"source_id"`
	TargetID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_similarity_pair;index" json:"target_id"`
	Score     float64   `gorm:"column:score;not null;default:0" json:"score"`
	Kind      string    `gorm:"column:kind;not null;default:skill_based" json:"kind"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserSimilarity) TableName() string { return "user_similarity" }

// Other returns the far side of the edge relative to id.
func (s *UserSimilarity) Other(id uuid.UUID) uuid.UUID {
	if s.SourceID == id {
		return s.TargetID
	}
	return s.SourceID
}
