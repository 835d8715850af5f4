package similarity

import (
	"strings"

	"github.com/devfolio/devfolio-backend/internal/types"
)

// Scorer computes pairwise similarity for users and projects as a weighted
// sum of Jaccard-style sub-scores. All sub-metrics are symmetric, so
// ScoreUsers(a, b) == ScoreUsers(b, a). Missing profile data contributes
// zero to its factor instead of failing.
type Scorer struct {
	Users    UserWeights
	Projects ProjectWeights
}

func NewScorer(users UserWeights, projects ProjectWeights) (*Scorer, error) {
	if err := users.Validate(); err != nil {
		return nil, err
	}
	if err := projects.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{Users: users, Projects: projects}, nil
}

func DefaultScorer() *Scorer {
	return &Scorer{Users: DefaultUserWeights(), Projects: DefaultProjectWeights()}
}

// ScoreUsers returns a similarity in [0,1]. Identity pairs score zero.
func (s *Scorer) ScoreUsers(a, b *types.User) float64 {
	if a == nil || b == nil || a.ID == b.ID {
		return 0.0
	}

	skillScore := Jaccard(skillNames(a), skillNames(b))
	projectScore := Jaccard(projectTitles(a), projectTitles(b))
	locationScore := locationSimilarity(a.Location, b.Location)
	experienceScore := experienceSimilarity(a.ExperienceLevel, b.ExperienceLevel)
	techScore := Jaccard(SplitCSV(a.TechnologyStack), SplitCSV(b.TechnologyStack))

	return skillScore*s.Users.Skill +
		projectScore*s.Users.Project +
		locationScore*s.Users.Location +
		experienceScore*s.Users.Experience +
		techScore*s.Users.TechStack
}

// ScoreProjects returns a similarity in [0,1]. Identity pairs score zero.
// The owner-skill factor compares the owning users' skill sets, so both
// projects must be loaded with their User (and its Skills) attached.
func (s *Scorer) ScoreProjects(a, b *types.Project) float64 {
	if a == nil || b == nil || a.ID == b.ID {
		return 0.0
	}

	tagScore := Jaccard(SplitCSV(a.Tags), SplitCSV(b.Tags))
	ownerScore := Jaccard(skillNames(a.User), skillNames(b.User))
	descScore := Jaccard(Words(a.Description), Words(b.Description))

	return tagScore*s.Projects.Tag +
		ownerScore*s.Projects.OwnerSkill +
		descScore*s.Projects.Description
}

// Jaccard is |A∩B| / |A∪B|, with 0 when both sets are empty.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0.0
	}
	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// SplitCSV tokenizes a comma-separated string into a trimmed, case-folded
// set. Empty tokens are dropped.
func SplitCSV(s string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, tok := range strings.Split(s, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok != "" {
			out[tok] = struct{}{}
		}
	}
	return out
}

// Words tokenizes free text into a lower-cased word set.
func Words(s string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		out[tok] = struct{}{}
	}
	return out
}

func skillNames(u *types.User) map[string]struct{} {
	out := map[string]struct{}{}
	if u == nil {
		return out
	}
	for _, sk := range u.Skills {
		if sk.Name != "" {
			out[sk.Name] = struct{}{}
		}
	}
	return out
}

func projectTitles(u *types.User) map[string]struct{} {
	out := map[string]struct{}{}
	if u == nil {
		return out
	}
	for _, p := range u.Projects {
		if p.Title != "" {
			out[p.Title] = struct{}{}
		}
	}
	return out
}

func locationSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0.0
	}
	if a == b {
		return 1.0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 0.5
	}
	return 0.0
}

func experienceSimilarity(a, b types.ExperienceLevel) float64 {
	ra, okA := a.Rank()
	rb, okB := b.Rank()
	if !okA || !okB {
		return 0.0
	}
	switch diff := ra - rb; {
	case diff == 0:
		return 1.0
	case diff == 1 || diff == -1:
		return 0.5
	default:
		return 0.0
	}
}
