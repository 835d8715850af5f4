package types

import (
	"time"

	"github.com/google/uuid"
)

type ExperienceLevel string

const (
	ExperienceJunior ExperienceLevel = "junior"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
)

// experienceRank orders the scale for adjacency scoring. Unknown values
// stay out of the map and score zero against everything.
var experienceRank = map[ExperienceLevel]int{
	ExperienceJunior: 0,
	ExperienceMid:    1,
	ExperienceSenior: 2,
}

func (e ExperienceLevel) Rank() (int, bool) {
	r, ok := experienceRank[e]
	return r, ok
}

func (e ExperienceLevel) Display() string {
	switch e {
	case ExperienceJunior:
		return "Junior (0-2 years)"
	case ExperienceMid:
		return "Mid-level (3-5 years)"
	case ExperienceSenior:
		return "Senior (6+ years)"
	default:
		return string(e)
	}
}

type AvailabilityStatus string

const (
	AvailabilityOpen       AvailabilityStatus = "open"
	AvailabilityBusy       AvailabilityStatus = "busy"
	AvailabilityAvailable  AvailabilityStatus = "available"
	AvailabilityNotLooking AvailabilityStatus = "not_looking"
)

func (a AvailabilityStatus) Display() string {
	switch a {
	case AvailabilityOpen:
		return "Open to work"
	case AvailabilityBusy:
		return "Busy"
	case AvailabilityAvailable:
		return "Available for projects"
	case AvailabilityNotLooking:
		return "Not looking"
	default:
		return string(a)
	}
}

type User struct {
	ID                 uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Username           string             `gorm:"uniqueIndex;not null;column:username" json:"username"`
	Email              string             `gorm:"uniqueIndex;not null;column:email" json:"email"`
	FirstName          string             `gorm:"column:first_name" json:"first_name"`
	LastName           string             `gorm:"column:last_name" json:"last_name"`
	AvatarURL          string             `gorm:"column:avatar_url" json:"avatar_url"`
	Summary            string             `gorm:"column:summary" json:"summary"`
	About              string             `gorm:"column:about" json:"about"`
	Location           string             `gorm:"column:location" json:"location"`
	ExperienceLevel    ExperienceLevel    `gorm:"column:experience_level;default:junior" json:"experience_level"`
	AvailabilityStatus AvailabilityStatus `gorm:"column:availability_status;default:available" json:"availability_status"`
	TechnologyStack    string             `gorm:"column:technology_stack" json:"technology_stack"`
	OtherSkills        string             `gorm:"column:other_skills" json:"other_skills"`
	Skills             []Skill            `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"skills,omitempty"`
	Projects           []Project          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"projects,omitempty"`
	CreatedAt          time.Time          `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time          `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string { return "user" }

func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
