package types

import (
	"time"

	"github.com/google/uuid"
)

type Skill struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name             string    `gorm:"column:name;not null" json:"name"`
	Description      string    `gorm:"column:description" json:"description"`
	ProficiencyLevel int       `gorm:"column:proficiency_level;not null;default:1" json:"proficiency_level"`
	CreatedAt        time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Skill) TableName() string { return "skill" }
