package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devfolio/devfolio-backend/internal/logger"
	"github.com/devfolio/devfolio-backend/internal/types"
)

func testLogger() *logger.Logger {
	log, err := logger.New("development")
	if err != nil {
		panic(fmt.Sprintf("init test logger: %v", err))
	}
	return log
}

type fakeUserRepo struct {
	users []*types.User
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
	f.users = append(f.users, users...)
	return users, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	for _, u := range f.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error) {
	want := map[uuid.UUID]struct{}{}
	for _, id := range userIDs {
		want[id] = struct{}{}
	}
	var out []*types.User
	for _, u := range f.users {
		if _, ok := want[u.ID]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.User, error) {
	return append([]*types.User(nil), f.users...), nil
}

type fakeProjectRepo struct {
	projects []*types.Project
}

func (f *fakeProjectRepo) Create(ctx context.Context, tx *gorm.DB, projects []*types.Project) ([]*types.Project, error) {
	f.projects = append(f.projects, projects...)
	return projects, nil
}

func (f *fakeProjectRepo) GetByID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*types.Project, error) {
	for _, p := range f.projects {
		if p.ID == projectID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProjectRepo) GetByIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*types.Project, error) {
	want := map[uuid.UUID]struct{}{}
	for _, id := range projectIDs {
		want[id] = struct{}{}
	}
	var out []*types.Project
	for _, p := range f.projects {
		if _, ok := want[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Project, error) {
	return append([]*types.Project(nil), f.projects...), nil
}

func (f *fakeProjectRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Project, error) {
	var out []*types.Project
	for _, p := range f.projects {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type pairKey struct {
	source uuid.UUID
	target uuid.UUID
}

type fakeEdge struct {
	score float64
	kind  string
}

type fakeUserSimRepo struct {
	edges         map[pairKey]fakeEdge
	neighborCalls int
	upsertCalls   int
	failPairs     map[pairKey]bool
}

func newFakeUserSimRepo() *fakeUserSimRepo {
	return &fakeUserSimRepo{edges: map[pairKey]fakeEdge{}}
}

func (f *fakeUserSimRepo) Upsert(ctx context.Context, tx *gorm.DB, sourceID, targetID uuid.UUID, score float64, kind string) error {
	f.upsertCalls++
	key := pairKey{source: sourceID, target: targetID}
	if f.failPairs[key] {
		return fmt.Errorf("simulated upsert failure")
	}
	f.edges[key] = fakeEdge{score: score, kind: kind}
	return nil
}

func (f *fakeUserSimRepo) Neighbors(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.UserSimilarity, error) {
	f.neighborCalls++
	var out []*types.UserSimilarity
	for key, edge := range f.edges {
		if key.source != userID && key.target != userID {
			continue
		}
		out = append(out, &types.UserSimilarity{
			SourceID: key.source,
			TargetID: key.target,
			Score:    edge.score,
			Kind:     edge.kind,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].TargetID.String() < out[j].TargetID.String()
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeUserSimRepo) Outgoing(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.UserSimilarity, error) {
	var out []*types.UserSimilarity
	for key, edge := range f.edges {
		if key.source != userID {
			continue
		}
		out = append(out, &types.UserSimilarity{
			SourceID: key.source,
			TargetID: key.target,
			Score:    edge.score,
			Kind:     edge.kind,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].TargetID.String() < out[j].TargetID.String()
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeUserSimRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	return int64(len(f.edges)), nil
}

func (f *fakeUserSimRepo) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	f.edges = map[pairKey]fakeEdge{}
	return nil
}

type fakeProjectSimRepo struct {
	edges         map[pairKey]fakeEdge
	neighborCalls int
	failPairs     map[pairKey]bool
}

func newFakeProjectSimRepo() *fakeProjectSimRepo {
	return &fakeProjectSimRepo{edges: map[pairKey]fakeEdge{}}
}

func (f *fakeProjectSimRepo) Upsert(ctx context.Context, tx *gorm.DB, sourceID, targetID uuid.UUID, score float64, kind string) error {
	key := pairKey{source: sourceID, target: targetID}
	if f.failPairs[key] {
		return fmt.Errorf("simulated upsert failure")
	}
	f.edges[key] = fakeEdge{score: score, kind: kind}
	return nil
}

func (f *fakeProjectSimRepo) Neighbors(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, limit int) ([]*types.ProjectSimilarity, error) {
	f.neighborCalls++
	var out []*types.ProjectSimilarity
	for key, edge := range f.edges {
		if key.source != projectID && key.target != projectID {
			continue
		}
		out = append(out, &types.ProjectSimilarity{
			SourceID: key.source,
			TargetID: key.target,
			Score:    edge.score,
			Kind:     edge.kind,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].TargetID.String() < out[j].TargetID.String()
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeProjectSimRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	return int64(len(f.edges)), nil
}

func (f *fakeProjectSimRepo) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	f.edges = map[pairKey]fakeEdge{}
	return nil
}
