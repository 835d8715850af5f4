package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/devfolio/devfolio-backend/internal/logger"
	"github.com/devfolio/devfolio-backend/internal/repos"
	"github.com/devfolio/devfolio-backend/internal/similarity"
	"github.com/devfolio/devfolio-backend/internal/types"
)

type UpdateStats struct {
	UsersScanned    int           `json:"users_scanned"`
	ProjectsScanned int           `json:"projects_scanned"`
	UserPairs       int           `json:"user_pairs"`
	ProjectPairs    int           `json:"project_pairs"`
	UserEdges       int           `json:"user_edges"`
	ProjectEdges    int           `json:"project_edges"`
	Failures        int           `json:"failures"`
	Elapsed         time.Duration `json:"elapsed"`
}

// SimilarityUpdateService rebuilds the whole similarity graph: every user
// pair and every project pair is rescored against a fixed snapshot, and
// pairs above the relevance floor are upserted in both directions. A
// single pair failing to persist is logged and skipped, not fatal.
type SimilarityUpdateService interface {
	UpdateAll(ctx context.Context) (*UpdateStats, error)
}

type similarityUpdateService struct {
	db             *gorm.DB
	log            *logger.Logger
	scorer         *similarity.Scorer
	userRepo       repos.UserRepo
	projectRepo    repos.ProjectRepo
	userSimRepo    repos.UserSimilarityRepo
	projectSimRepo repos.ProjectSimilarityRepo
}

func NewSimilarityUpdateService(
	db *gorm.DB,
	log *logger.Logger,
	scorer *similarity.Scorer,
	userRepo repos.UserRepo,
	projectRepo repos.ProjectRepo,
	userSimRepo repos.UserSimilarityRepo,
	projectSimRepo repos.ProjectSimilarityRepo,
) SimilarityUpdateService {
	serviceLog := log.With("service", "SimilarityUpdateService")
	return &similarityUpdateService{
		db:             db,
		log:            serviceLog,
		scorer:         scorer,
		userRepo:       userRepo,
		projectRepo:    projectRepo,
		userSimRepo:    userSimRepo,
		projectSimRepo: projectSimRepo,
	}
}

func (us *similarityUpdateService) UpdateAll(ctx context.Context) (*UpdateStats, error) {
	start := time.Now()
	stats := &UpdateStats{}

	users, err := us.userRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	stats.UsersScanned = len(users)

	for i, a := range users {
		for _, b := range users[i+1:] {
			stats.UserPairs++
			score := us.scorer.ScoreUsers(a, b)
			if score <= similarity.RelevanceFloor {
				continue
			}
			if us.upsertUserPair(ctx, a, b, score) {
				stats.UserEdges += 2
			} else {
				stats.Failures++
			}
		}
	}

	projects, err := us.projectRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	stats.ProjectsScanned = len(projects)

	for i, a := range projects {
		for _, b := range projects[i+1:] {
			stats.ProjectPairs++
			score := us.scorer.ScoreProjects(a, b)
			if score <= similarity.RelevanceFloor {
				continue
			}
			if us.upsertProjectPair(ctx, a, b, score) {
				stats.ProjectEdges += 2
			} else {
				stats.Failures++
			}
		}
	}

	stats.Elapsed = time.Since(start)
	us.log.Info("Similarity graph rebuilt",
		"users", stats.UsersScanned,
		"projects", stats.ProjectsScanned,
		"user_edges", stats.UserEdges,
		"project_edges", stats.ProjectEdges,
		"failures", stats.Failures,
		"elapsed", stats.Elapsed,
	)
	return stats, nil
}

// upsertUserPair writes both directions of a symmetric pair. The scorer is
// symmetric today; keeping directed rows leaves room for asymmetric kinds.
func (us *similarityUpdateService) upsertUserPair(ctx context.Context, a, b *types.User, score float64) bool {
	if err := us.userSimRepo.Upsert(ctx, nil, a.ID, b.ID, score, types.SimilarityKindSkillBased); err != nil {
		us.log.Warn("User similarity upsert failed", "source_id", a.ID, "target_id", b.ID, "error", err)
		return false
	}
	if err := us.userSimRepo.Upsert(ctx, nil, b.ID, a.ID, score, types.SimilarityKindSkillBased); err != nil {
		us.log.Warn("User similarity upsert failed", "source_id", b.ID, "target_id", a.ID, "error", err)
		return false
	}
	return true
}

func (us *similarityUpdateService) upsertProjectPair(ctx context.Context, a, b *types.Project, score float64) bool {
	if err := us.projectSimRepo.Upsert(ctx, nil, a.ID, b.ID, score, types.SimilarityKindTagBased); err != nil {
		us.log.Warn("Project similarity upsert failed", "source_id", a.ID, "target_id", b.ID, "error", err)
		return false
	}
	if err := us.projectSimRepo.Upsert(ctx, nil, b.ID, a.ID, score, types.SimilarityKindTagBased); err != nil {
		us.log.Warn("Project similarity upsert failed", "source_id", b.ID, "target_id", a.ID, "error", err)
		return false
	}
	return true
}
