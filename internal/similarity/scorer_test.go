package similarity

import (
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/devfolio/devfolio-backend/internal/types"
)

const eps = 1e-9

func testUser(mods ...func(*types.User)) *types.User {
	u := &types.User{
		ID:              uuid.New(),
		ExperienceLevel: types.ExperienceJunior,
	}
	for _, mod := range mods {
		mod(u)
	}
	return u
}

func withSkills(names ...string) func(*types.User) {
	return func(u *types.User) {
		for _, n := range names {
			u.Skills = append(u.Skills, types.Skill{Name: n})
		}
	}
}

func withProjects(titles ...string) func(*types.User) {
	return func(u *types.User) {
		for _, t := range titles {
			u.Projects = append(u.Projects, types.Project{Title: t})
		}
	}
}

func TestScoreUsersIdentityIsZero(t *testing.T) {
	s := DefaultScorer()
	u := testUser(withSkills("go", "sql"))
	if got := s.ScoreUsers(u, u); got != 0.0 {
		t.Fatalf("ScoreUsers(u, u)=%v, want 0.0", got)
	}
}

func TestScoreUsersBoundsAndSymmetry(t *testing.T) {
	s := DefaultScorer()
	cases := []struct {
		name string
		a, b *types.User
	}{
		{
			name: "empty_profiles",
			a:    testUser(),
			b:    testUser(),
		},
		{
			name: "identical_profiles",
			a: testUser(withSkills("go", "sql"), withProjects("blog"), func(u *types.User) {
				u.Location = "Berlin"
				u.ExperienceLevel = types.ExperienceMid
				u.TechnologyStack = "Go, Postgres"
			}),
			b: testUser(withSkills("go", "sql"), withProjects("blog"), func(u *types.User) {
				u.Location = "Berlin"
				u.ExperienceLevel = types.ExperienceMid
				u.TechnologyStack = "Go, Postgres"
			}),
		},
		{
			name: "disjoint_profiles",
			a: testUser(withSkills("go"), func(u *types.User) {
				u.Location = "Berlin"
				u.TechnologyStack = "Go"
			}),
			b: testUser(withSkills("rust"), func(u *types.User) {
				u.Location = "Tokyo"
				u.ExperienceLevel = types.ExperienceSenior
				u.TechnologyStack = "Rust"
			}),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ab := s.ScoreUsers(tc.a, tc.b)
			ba := s.ScoreUsers(tc.b, tc.a)
			if ab < 0.0 || ab > 1.0 {
				t.Fatalf("ScoreUsers out of bounds: %v", ab)
			}
			if math.Abs(ab-ba) > eps {
				t.Fatalf("ScoreUsers not symmetric: %v vs %v", ab, ba)
			}
		})
	}
}

func TestSkillSubScore(t *testing.T) {
	s := DefaultScorer()

	same := s.ScoreUsers(
		testUser(withSkills("go", "sql")),
		testUser(withSkills("go", "sql")),
	)
	// Identical skill sets and junior/junior: skill 1.0*0.4 + experience 1.0*0.1.
	if math.Abs(same-0.5) > eps {
		t.Fatalf("identical skills score=%v, want 0.5", same)
	}

	disjoint := s.ScoreUsers(
		testUser(withSkills("go")),
		testUser(withSkills("rust")),
	)
	if math.Abs(disjoint-0.1) > eps {
		t.Fatalf("disjoint skills score=%v, want 0.1 (experience only)", disjoint)
	}
}

func TestExperienceSubScore(t *testing.T) {
	cases := []struct {
		name string
		a, b types.ExperienceLevel
		want float64
	}{
		{name: "equal", a: types.ExperienceJunior, b: types.ExperienceJunior, want: 1.0},
		{name: "adjacent", a: types.ExperienceJunior, b: types.ExperienceMid, want: 0.5},
		{name: "two_steps", a: types.ExperienceJunior, b: types.ExperienceSenior, want: 0.0},
		{name: "adjacent_high", a: types.ExperienceMid, b: types.ExperienceSenior, want: 0.5},
		{name: "unknown_value", a: "principal", b: types.ExperienceSenior, want: 0.0},
		{name: "both_unknown", a: "principal", b: "principal", want: 0.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := experienceSimilarity(tc.a, tc.b); got != tc.want {
				t.Fatalf("experienceSimilarity(%q, %q)=%v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestLocationSubScore(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "exact_case_folded", a: " Berlin ", b: "berlin", want: 1.0},
		{name: "substring", a: "Berlin", b: "Berlin, Germany", want: 0.5},
		{name: "different", a: "Berlin", b: "Tokyo", want: 0.0},
		{name: "one_unset", a: "", b: "Berlin", want: 0.0},
		{name: "both_unset", a: "", b: "", want: 0.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := locationSimilarity(tc.a, tc.b); got != tc.want {
				t.Fatalf("locationSimilarity(%q, %q)=%v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestScoreUsersWorkedExample(t *testing.T) {
	// Skills 1/3, same location, same level, tech stacks 1/3, no projects:
	// 0.333*0.4 + 0*0.2 + 1.0*0.1 + 1.0*0.1 + 0.333*0.2 ≈ 0.4667.
	a := testUser(withSkills("python", "sql"), func(u *types.User) {
		u.Location = "Almaty"
		u.ExperienceLevel = types.ExperienceMid
		u.TechnologyStack = "Python, Django"
	})
	b := testUser(withSkills("python", "react"), func(u *types.User) {
		u.Location = "Almaty"
		u.ExperienceLevel = types.ExperienceMid
		u.TechnologyStack = "Python, Flask"
	})

	got := DefaultScorer().ScoreUsers(a, b)
	want := (1.0/3.0)*0.4 + 0.0*0.2 + 1.0*0.1 + 1.0*0.1 + (1.0/3.0)*0.2
	if math.Abs(got-want) > eps {
		t.Fatalf("ScoreUsers=%v, want %v", got, want)
	}
	if math.Abs(got-0.4667) > 0.001 {
		t.Fatalf("ScoreUsers=%v, want ≈0.4667", got)
	}
}

func testProject(owner *types.User, mods ...func(*types.Project)) *types.Project {
	p := &types.Project{ID: uuid.New(), User: owner}
	if owner != nil {
		p.UserID = owner.ID
	}
	for _, mod := range mods {
		mod(p)
	}
	return p
}

func TestScoreProjectsIdentityIsZero(t *testing.T) {
	s := DefaultScorer()
	p := testProject(testUser(), func(p *types.Project) { p.Tags = "go, web" })
	if got := s.ScoreProjects(p, p); got != 0.0 {
		t.Fatalf("ScoreProjects(p, p)=%v, want 0.0", got)
	}
}

func TestScoreProjects(t *testing.T) {
	s := DefaultScorer()

	ownerA := testUser(withSkills("go", "sql"))
	ownerB := testUser(withSkills("go", "sql"))
	a := testProject(ownerA, func(p *types.Project) {
		p.Tags = "Go, Web"
		p.Description = "a static site generator"
	})
	b := testProject(ownerB, func(p *types.Project) {
		p.Tags = "go, cli"
		p.Description = "a static blog generator"
	})

	got := s.ScoreProjects(a, b)
	// tags 1/3, owner skills 1.0, description words 3/5.
	want := (1.0/3.0)*0.5 + 1.0*0.3 + (3.0/5.0)*0.2
	if math.Abs(got-want) > eps {
		t.Fatalf("ScoreProjects=%v, want %v", got, want)
	}

	ba := s.ScoreProjects(b, a)
	if math.Abs(got-ba) > eps {
		t.Fatalf("ScoreProjects not symmetric: %v vs %v", got, ba)
	}
}

func TestScoreProjectsMissingOwners(t *testing.T) {
	s := DefaultScorer()
	a := testProject(nil, func(p *types.Project) { p.Tags = "go" })
	b := testProject(nil, func(p *types.Project) { p.Tags = "go" })
	// Only the tag factor contributes; unloaded owners are missing data.
	if got := s.ScoreProjects(a, b); math.Abs(got-0.5) > eps {
		t.Fatalf("ScoreProjects=%v, want 0.5", got)
	}
}

func TestJaccard(t *testing.T) {
	set := func(items ...string) map[string]struct{} {
		out := map[string]struct{}{}
		for _, it := range items {
			out[it] = struct{}{}
		}
		return out
	}
	cases := []struct {
		name string
		a, b map[string]struct{}
		want float64
	}{
		{name: "both_empty", a: set(), b: set(), want: 0.0},
		{name: "identical", a: set("a", "b"), b: set("a", "b"), want: 1.0},
		{name: "disjoint", a: set("a"), b: set("b"), want: 0.0},
		{name: "overlap", a: set("a", "b"), b: set("b", "c"), want: 1.0 / 3.0},
		{name: "one_empty", a: set("a"), b: set(), want: 0.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Jaccard(tc.a, tc.b); math.Abs(got-tc.want) > eps {
				t.Fatalf("Jaccard=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestSplitCSV(t *testing.T) {
	got := SplitCSV(" Python , Django,,PYTHON ")
	if len(got) != 2 {
		t.Fatalf("SplitCSV returned %d tokens, want 2: %v", len(got), got)
	}
	for _, want := range []string{"python", "django"} {
		if _, ok := got[want]; !ok {
			t.Fatalf("SplitCSV missing token %q: %v", want, got)
		}
	}
}

func TestWeightsValidate(t *testing.T) {
	if err := DefaultUserWeights().Validate(); err != nil {
		t.Fatalf("default user weights invalid: %v", err)
	}
	if err := DefaultProjectWeights().Validate(); err != nil {
		t.Fatalf("default project weights invalid: %v", err)
	}

	bad := UserWeights{Skill: 0.9, Project: 0.2}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for weights not summing to 1.0")
	}

	negative := ProjectWeights{Tag: 1.2, OwnerSkill: -0.2, Description: 0.0}
	if err := negative.Validate(); err == nil {
		t.Fatal("expected error for out-of-range weight")
	}

	if _, err := NewScorer(bad, DefaultProjectWeights()); err == nil {
		t.Fatal("NewScorer accepted invalid weights")
	}
}
