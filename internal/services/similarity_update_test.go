package services

import (
	"context"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/devfolio/devfolio-backend/internal/similarity"
	"github.com/devfolio/devfolio-backend/internal/types"
)

type updateFixture struct {
	svc      SimilarityUpdateService
	users    *fakeUserRepo
	projects *fakeProjectRepo
	userSim  *fakeUserSimRepo
	projSim  *fakeProjectSimRepo
}

func newUpdateFixture() *updateFixture {
	f := &updateFixture{
		users:    &fakeUserRepo{},
		projects: &fakeProjectRepo{},
		userSim:  newFakeUserSimRepo(),
		projSim:  newFakeProjectSimRepo(),
	}
	f.svc = NewSimilarityUpdateService(
		nil,
		testLogger(),
		similarity.DefaultScorer(),
		f.users,
		f.projects,
		f.userSim,
		f.projSim,
	)
	return f
}

func (f *updateFixture) addUser(mods ...func(*types.User)) *types.User {
	u := &types.User{
		ID:              uuid.New(),
		ExperienceLevel: types.ExperienceMid,
	}
	for _, mod := range mods {
		mod(u)
	}
	f.users.users = append(f.users.users, u)
	return u
}

func TestUpdateAllWritesBothDirections(t *testing.T) {
	f := newUpdateFixture()

	a := f.addUser(withUserSkills("go", "sql"))
	b := f.addUser(withUserSkills("go", "sql"))
	// Same skills, same level: well above the floor.

	stats, err := f.svc.UpdateAll(context.Background())
	if err != nil {
		t.Fatalf("UpdateAll: %v", err)
	}
	if stats.UserPairs != 1 {
		t.Fatalf("UserPairs=%d, want 1", stats.UserPairs)
	}
	if stats.UserEdges != 2 {
		t.Fatalf("UserEdges=%d, want 2", stats.UserEdges)
	}

	forward, fok := f.userSim.edges[pairKey{source: a.ID, target: b.ID}]
	backward, bok := f.userSim.edges[pairKey{source: b.ID, target: a.ID}]
	if !fok || !bok {
		t.Fatal("expected both directed edges to be written")
	}
	if forward.score != backward.score {
		t.Fatalf("direction scores differ: %v vs %v", forward.score, backward.score)
	}
	if forward.kind != types.SimilarityKindSkillBased {
		t.Fatalf("edge kind=%q, want %q", forward.kind, types.SimilarityKindSkillBased)
	}
}

func TestUpdateAllHonorsRelevanceFloor(t *testing.T) {
	f := newUpdateFixture()

	f.addUser(withUserSkills("go"), func(u *types.User) { u.ExperienceLevel = "unknown" })
	f.addUser(withUserSkills("rust"), func(u *types.User) { u.ExperienceLevel = "other" })

	stats, err := f.svc.UpdateAll(context.Background())
	if err != nil {
		t.Fatalf("UpdateAll: %v", err)
	}
	if stats.UserEdges != 0 {
		t.Fatalf("UserEdges=%d, want 0 for a pair at the floor", stats.UserEdges)
	}
	if len(f.userSim.edges) != 0 {
		t.Fatalf("graph contains %d edges, want none at or below the floor", len(f.userSim.edges))
	}
}

func TestUpdateAllIdempotent(t *testing.T) {
	f := newUpdateFixture()

	f.addUser(withUserSkills("go", "sql"), func(u *types.User) { u.Location = "Berlin" })
	f.addUser(withUserSkills("go"), func(u *types.User) { u.Location = "Berlin" })
	f.addUser(withUserSkills("sql"))

	owner := f.users.users[0]
	other := f.users.users[1]
	f.projects.projects = append(f.projects.projects,
		&types.Project{ID: uuid.New(), UserID: owner.ID, User: owner, Tags: "go, web", Description: "a web thing"},
		&types.Project{ID: uuid.New(), UserID: other.ID, User: other, Tags: "go, cli", Description: "a cli thing"},
	)

	if _, err := f.svc.UpdateAll(context.Background()); err != nil {
		t.Fatalf("first UpdateAll: %v", err)
	}
	firstUserEdges := map[pairKey]fakeEdge{}
	for k, v := range f.userSim.edges {
		firstUserEdges[k] = v
	}
	firstProjEdges := map[pairKey]fakeEdge{}
	for k, v := range f.projSim.edges {
		firstProjEdges[k] = v
	}

	if _, err := f.svc.UpdateAll(context.Background()); err != nil {
		t.Fatalf("second UpdateAll: %v", err)
	}
	if !reflect.DeepEqual(firstUserEdges, f.userSim.edges) {
		t.Fatalf("user graph changed across identical runs:\nfirst: %v\nsecond: %v", firstUserEdges, f.userSim.edges)
	}
	if !reflect.DeepEqual(firstProjEdges, f.projSim.edges) {
		t.Fatalf("project graph changed across identical runs:\nfirst: %v\nsecond: %v", firstProjEdges, f.projSim.edges)
	}
}

func TestUpdateAllContinuesPastPairFailures(t *testing.T) {
	f := newUpdateFixture()

	a := f.addUser(withUserSkills("go", "sql"))
	b := f.addUser(withUserSkills("go", "sql"))
	c := f.addUser(withUserSkills("go", "sql"))

	f.userSim.failPairs = map[pairKey]bool{
		{source: a.ID, target: b.ID}: true,
	}

	stats, err := f.svc.UpdateAll(context.Background())
	if err != nil {
		t.Fatalf("UpdateAll: %v", err)
	}
	if stats.Failures != 1 {
		t.Fatalf("Failures=%d, want 1", stats.Failures)
	}
	// The rest of the batch still ran.
	if _, ok := f.userSim.edges[pairKey{source: a.ID, target: c.ID}]; !ok {
		t.Fatal("later pair missing after an earlier pair failed")
	}
	if _, ok := f.userSim.edges[pairKey{source: b.ID, target: c.ID}]; !ok {
		t.Fatal("later pair missing after an earlier pair failed")
	}
}

func TestUpdateAllScansProjects(t *testing.T) {
	f := newUpdateFixture()

	owner := f.addUser(withUserSkills("go"))
	other := f.addUser(withUserSkills("go"))
	pa := &types.Project{ID: uuid.New(), UserID: owner.ID, User: owner, Tags: "go, web"}
	pb := &types.Project{ID: uuid.New(), UserID: other.ID, User: other, Tags: "go, web"}
	f.projects.projects = append(f.projects.projects, pa, pb)

	stats, err := f.svc.UpdateAll(context.Background())
	if err != nil {
		t.Fatalf("UpdateAll: %v", err)
	}
	if stats.ProjectPairs != 1 {
		t.Fatalf("ProjectPairs=%d, want 1", stats.ProjectPairs)
	}
	if stats.ProjectEdges != 2 {
		t.Fatalf("ProjectEdges=%d, want 2", stats.ProjectEdges)
	}
	edge, ok := f.projSim.edges[pairKey{source: pa.ID, target: pb.ID}]
	if !ok {
		t.Fatal("expected project edge")
	}
	if edge.kind != types.SimilarityKindTagBased {
		t.Fatalf("edge kind=%q, want %q", edge.kind, types.SimilarityKindTagBased)
	}
}
