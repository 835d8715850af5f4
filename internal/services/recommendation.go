package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devfolio/devfolio-backend/internal/apierr"
	"github.com/devfolio/devfolio-backend/internal/cache"
	"github.com/devfolio/devfolio-backend/internal/logger"
	"github.com/devfolio/devfolio-backend/internal/repos"
	"github.com/devfolio/devfolio-backend/internal/similarity"
	"github.com/devfolio/devfolio-backend/internal/types"
)

const (
	DefaultRelatedLimit = 5
	relatedUsersPrefix  = "related_users_"
	relatedProjsPrefix  = "related_projects_"

	// Score assigned to projects pulled from similar users when no
	// project-graph recommendation exists.
	fallbackProjectScore = 0.5
)

// ScoredID is the cached form of one ranked entry.
type ScoredID struct {
	ID    uuid.UUID `json:"id"`
	Score float64   `json:"score"`
}

type UserMatch struct {
	User  *types.User
	Score float64
}

type ProjectMatch struct {
	Project *types.Project
	Score   float64
}

type UserRecommendations struct {
	Users    []UserMatch
	Projects []ProjectMatch
}

// RecommendationService serves ranked neighbors from the similarity graph,
// falling back to on-the-fly scoring for entities the last batch run has
// not reached. Fallback results are cached but never written to the graph.
type RecommendationService interface {
	RelatedUsers(ctx context.Context, userID uuid.UUID, limit int) ([]UserMatch, error)
	RelatedProjects(ctx context.Context, projectID uuid.UUID, limit int) ([]ProjectMatch, error)
	ForUser(ctx context.Context, userID uuid.UUID, userLimit, projectLimit int) (*UserRecommendations, error)
	Graph(ctx context.Context, userID uuid.UUID, limit int) (*types.SimilarityGraph, error)
}

type recommendationService struct {
	db             *gorm.DB
	log            *logger.Logger
	cache          cache.Cache
	scorer         *similarity.Scorer
	userRepo       repos.UserRepo
	projectRepo    repos.ProjectRepo
	userSimRepo    repos.UserSimilarityRepo
	projectSimRepo repos.ProjectSimilarityRepo
	cacheTTL       time.Duration
}

func NewRecommendationService(
	db *gorm.DB,
	log *logger.Logger,
	c cache.Cache,
	scorer *similarity.Scorer,
	userRepo repos.UserRepo,
	projectRepo repos.ProjectRepo,
	userSimRepo repos.UserSimilarityRepo,
	projectSimRepo repos.ProjectSimilarityRepo,
	cacheTTL time.Duration,
) RecommendationService {
	serviceLog := log.With("service", "RecommendationService")
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &recommendationService{
		db:             db,
		log:            serviceLog,
		cache:          c,
		scorer:         scorer,
		userRepo:       userRepo,
		projectRepo:    projectRepo,
		userSimRepo:    userSimRepo,
		projectSimRepo: projectSimRepo,
		cacheTTL:       cacheTTL,
	}
}

func (rs *recommendationService) RelatedUsers(ctx context.Context, userID uuid.UUID, limit int) ([]UserMatch, error) {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	user, err := rs.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(fmt.Errorf("user %s not found", userID))
		}
		return nil, apierr.StoreUnavailable(fmt.Errorf("load user: %w", err))
	}

	cacheKey := relatedUsersPrefix + userID.String()
	if cached, ok := rs.getCachedScores(ctx, cacheKey); ok {
		return rs.resolveUserMatches(ctx, cached)
	}

	edges, err := rs.userSimRepo.Neighbors(ctx, nil, userID, 2*limit)
	if err != nil {
		return nil, apierr.StoreUnavailable(fmt.Errorf("query user similarity graph: %w", err))
	}

	matches := make([]UserMatch, 0, limit)
	seen := map[uuid.UUID]struct{}{userID: {}}

	neighborIDs := make([]uuid.UUID, 0, len(edges))
	neighborScores := map[uuid.UUID]float64{}
	for _, edge := range edges {
		otherID := edge.Other(userID)
		if otherID == userID {
			continue
		}
		if _, dup := neighborScores[otherID]; dup {
			continue
		}
		neighborIDs = append(neighborIDs, otherID)
		neighborScores[otherID] = edge.Score
	}
	if len(neighborIDs) > 0 {
		neighbors, err := rs.userRepo.GetByIDs(ctx, nil, neighborIDs)
		if err != nil {
			return nil, apierr.StoreUnavailable(fmt.Errorf("load neighbors: %w", err))
		}
		for _, n := range neighbors {
			matches = append(matches, UserMatch{User: n, Score: neighborScores[n.ID]})
			seen[n.ID] = struct{}{}
		}
	}

	// Fallback: score the rest of the population on the fly. Never
	// persisted; the graph catches up on the next batch run.
	if len(matches) < limit {
		all, err := rs.userRepo.ListAll(ctx, nil)
		if err != nil {
			return nil, apierr.StoreUnavailable(fmt.Errorf("list users for fallback scoring: %w", err))
		}
		for _, other := range all {
			if len(matches) >= limit {
				break
			}
			if _, done := seen[other.ID]; done {
				continue
			}
			score := rs.scorer.ScoreUsers(user, other)
			if score > similarity.RelevanceFloor {
				matches = append(matches, UserMatch{User: other, Score: score})
				seen[other.ID] = struct{}{}
			}
		}
	}

	sortUserMatches(matches)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	rs.putCachedScores(ctx, cacheKey, userScores(matches))
	return matches, nil
}

func (rs *recommendationService) RelatedProjects(ctx context.Context, projectID uuid.UUID, limit int) ([]ProjectMatch, error) {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	project, err := rs.projectRepo.GetByID(ctx, nil, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(fmt.Errorf("project %s not found", projectID))
		}
		return nil, apierr.StoreUnavailable(fmt.Errorf("load project: %w", err))
	}

	cacheKey := relatedProjsPrefix + projectID.String()
	if cached, ok := rs.getCachedScores(ctx, cacheKey); ok {
		return rs.resolveProjectMatches(ctx, cached)
	}

	edges, err := rs.projectSimRepo.Neighbors(ctx, nil, projectID, 2*limit)
	if err != nil {
		return nil, apierr.StoreUnavailable(fmt.Errorf("query project similarity graph: %w", err))
	}

	matches := make([]ProjectMatch, 0, limit)
	seen := map[uuid.UUID]struct{}{projectID: {}}

	neighborIDs := make([]uuid.UUID, 0, len(edges))
	neighborScores := map[uuid.UUID]float64{}
	for _, edge := range edges {
		otherID := edge.Other(projectID)
		if otherID == projectID {
			continue
		}
		if _, dup := neighborScores[otherID]; dup {
			continue
		}
		neighborIDs = append(neighborIDs, otherID)
		neighborScores[otherID] = edge.Score
	}
	if len(neighborIDs) > 0 {
		neighbors, err := rs.projectRepo.GetByIDs(ctx, nil, neighborIDs)
		if err != nil {
			return nil, apierr.StoreUnavailable(fmt.Errorf("load neighbor projects: %w", err))
		}
		for _, n := range neighbors {
			matches = append(matches, ProjectMatch{Project: n, Score: neighborScores[n.ID]})
			seen[n.ID] = struct{}{}
		}
	}

	if len(matches) < limit {
		all, err := rs.projectRepo.ListAll(ctx, nil)
		if err != nil {
			return nil, apierr.StoreUnavailable(fmt.Errorf("list projects for fallback scoring: %w", err))
		}
		for _, other := range all {
			if len(matches) >= limit {
				break
			}
			if _, done := seen[other.ID]; done {
				continue
			}
			score := rs.scorer.ScoreProjects(project, other)
			if score > similarity.RelevanceFloor {
				matches = append(matches, ProjectMatch{Project: other, Score: score})
				seen[other.ID] = struct{}{}
			}
		}
	}

	sortProjectMatches(matches)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	rs.putCachedScores(ctx, cacheKey, projectScores(matches))
	return matches, nil
}

// ForUser is the combined payload: related users plus projects inferred
// from the user's own recent projects, or failing that from the projects of
// their closest neighbors.
func (rs *recommendationService) ForUser(ctx context.Context, userID uuid.UUID, userLimit, projectLimit int) (*UserRecommendations, error) {
	if userLimit <= 0 {
		userLimit = 3
	}
	if projectLimit <= 0 {
		projectLimit = 3
	}

	users, err := rs.RelatedUsers(ctx, userID, userLimit)
	if err != nil {
		return nil, err
	}

	var projects []ProjectMatch

	own, err := rs.projectRepo.ListByUserID(ctx, nil, userID, 2)
	if err != nil {
		return nil, apierr.StoreUnavailable(fmt.Errorf("load own projects: %w", err))
	}
	for _, p := range own {
		related, err := rs.RelatedProjects(ctx, p.ID, projectLimit)
		if err != nil {
			return nil, err
		}
		for _, match := range related {
			if match.Project.UserID == userID {
				continue
			}
			projects = append(projects, match)
		}
	}

	if len(projects) == 0 {
		top := users
		if len(top) > 2 {
			top = top[:2]
		}
		for _, ru := range top {
			theirs, err := rs.projectRepo.ListByUserID(ctx, nil, ru.User.ID, projectLimit)
			if err != nil {
				return nil, apierr.StoreUnavailable(fmt.Errorf("load neighbor projects: %w", err))
			}
			for _, p := range theirs {
				projects = append(projects, ProjectMatch{Project: p, Score: fallbackProjectScore})
			}
		}
	}

	// Dedupe keeping the best score per project.
	best := map[uuid.UUID]ProjectMatch{}
	for _, match := range projects {
		if cur, ok := best[match.Project.ID]; !ok || match.Score > cur.Score {
			best[match.Project.ID] = match
		}
	}
	deduped := make([]ProjectMatch, 0, len(best))
	for _, match := range best {
		deduped = append(deduped, match)
	}
	sortProjectMatches(deduped)
	if len(deduped) > projectLimit {
		deduped = deduped[:projectLimit]
	}

	return &UserRecommendations{Users: users, Projects: deduped}, nil
}

// Graph returns the subgraph rooted at userID: the user, its strongest
// outgoing edges, and the users on their far ends.
func (rs *recommendationService) Graph(ctx context.Context, userID uuid.UUID, limit int) (*types.SimilarityGraph, error) {
	if limit <= 0 {
		limit = 10
	}

	user, err := rs.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(fmt.Errorf("user %s not found", userID))
		}
		return nil, apierr.StoreUnavailable(fmt.Errorf("load user: %w", err))
	}

	edges, err := rs.userSimRepo.Outgoing(ctx, nil, userID, limit)
	if err != nil {
		return nil, apierr.StoreUnavailable(fmt.Errorf("query user similarity graph: %w", err))
	}

	targetIDs := make([]uuid.UUID, 0, len(edges))
	for _, edge := range edges {
		targetIDs = append(targetIDs, edge.TargetID)
	}
	targets, err := rs.userRepo.GetByIDs(ctx, nil, targetIDs)
	if err != nil {
		return nil, apierr.StoreUnavailable(fmt.Errorf("load graph targets: %w", err))
	}
	targetsByID := map[uuid.UUID]*types.User{}
	for _, t := range targets {
		targetsByID[t.ID] = t
	}

	graph := &types.SimilarityGraph{
		UserID: userID,
		Nodes: []types.GraphNode{{
			ID:        user.ID,
			Label:     user.FullName(),
			Type:      "current_user",
			AvatarURL: user.AvatarURL,
		}},
		Edges: []types.GraphEdge{},
	}
	for _, edge := range edges {
		target, ok := targetsByID[edge.TargetID]
		if !ok {
			continue
		}
		graph.Nodes = append(graph.Nodes, types.GraphNode{
			ID:              target.ID,
			Label:           target.FullName(),
			Type:            "related_user",
			AvatarURL:       target.AvatarURL,
			SimilarityScore: edge.Score,
		})
		graph.Edges = append(graph.Edges, types.GraphEdge{
			Source: edge.SourceID,
			Target: edge.TargetID,
			Weight: edge.Score,
			Label:  fmt.Sprintf("%.2f", edge.Score),
		})
	}
	return graph, nil
}

func (rs *recommendationService) getCachedScores(ctx context.Context, key string) ([]ScoredID, bool) {
	raw, ok := rs.cache.Get(ctx, key)
	if !ok {
		return nil, false
	}
	var scores []ScoredID
	if err := json.Unmarshal(raw, &scores); err != nil {
		rs.log.Warn("Dropping unreadable cache entry", "key", key, "error", err)
		return nil, false
	}
	return scores, true
}

func (rs *recommendationService) putCachedScores(ctx context.Context, key string, scores []ScoredID) {
	raw, err := json.Marshal(scores)
	if err != nil {
		rs.log.Warn("Failed to encode cache entry", "key", key, "error", err)
		return
	}
	if err := rs.cache.Set(ctx, key, raw, rs.cacheTTL); err != nil {
		rs.log.Warn("Failed to write cache entry", "key", key, "error", err)
	}
}

// resolveUserMatches rehydrates a cached ranking. The cached list is
// trusted as-is; entries whose user has since been deleted are skipped.
func (rs *recommendationService) resolveUserMatches(ctx context.Context, scores []ScoredID) ([]UserMatch, error) {
	if len(scores) == 0 {
		return []UserMatch{}, nil
	}
	ids := make([]uuid.UUID, 0, len(scores))
	for _, s := range scores {
		ids = append(ids, s.ID)
	}
	users, err := rs.userRepo.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, apierr.StoreUnavailable(fmt.Errorf("load cached users: %w", err))
	}
	byID := map[uuid.UUID]*types.User{}
	for _, u := range users {
		byID[u.ID] = u
	}
	matches := make([]UserMatch, 0, len(scores))
	for _, s := range scores {
		if u, ok := byID[s.ID]; ok {
			matches = append(matches, UserMatch{User: u, Score: s.Score})
		}
	}
	return matches, nil
}

func (rs *recommendationService) resolveProjectMatches(ctx context.Context, scores []ScoredID) ([]ProjectMatch, error) {
	if len(scores) == 0 {
		return []ProjectMatch{}, nil
	}
	ids := make([]uuid.UUID, 0, len(scores))
	for _, s := range scores {
		ids = append(ids, s.ID)
	}
	projects, err := rs.projectRepo.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, apierr.StoreUnavailable(fmt.Errorf("load cached projects: %w", err))
	}
	byID := map[uuid.UUID]*types.Project{}
	for _, p := range projects {
		byID[p.ID] = p
	}
	matches := make([]ProjectMatch, 0, len(scores))
	for _, s := range scores {
		if p, ok := byID[s.ID]; ok {
			matches = append(matches, ProjectMatch{Project: p, Score: s.Score})
		}
	}
	return matches, nil
}

func sortUserMatches(matches []UserMatch) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].User.ID.String() < matches[j].User.ID.String()
	})
}

func sortProjectMatches(matches []ProjectMatch) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Project.ID.String() < matches[j].Project.ID.String()
	})
}

func userScores(matches []UserMatch) []ScoredID {
	out := make([]ScoredID, 0, len(matches))
	for _, m := range matches {
		out = append(out, ScoredID{ID: m.User.ID, Score: m.Score})
	}
	return out
}

func projectScores(matches []ProjectMatch) []ScoredID {
	out := make([]ScoredID, 0, len(matches))
	for _, m := range matches {
		out = append(out, ScoredID{ID: m.Project.ID, Score: m.Score})
	}
	return out
}
