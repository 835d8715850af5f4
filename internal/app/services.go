package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/devfolio/devfolio-backend/internal/logger"
	"github.com/devfolio/devfolio-backend/internal/services"
	"github.com/devfolio/devfolio-backend/internal/similarity"
)

type Services struct {
	Recommendation   services.RecommendationService
	SimilarityUpdate services.SimilarityUpdateService
	SimilarityWorker *services.SimilarityWorker
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	scorer, err := buildScorer(cfg)
	if err != nil {
		return Services{}, err
	}

	recommendationService := services.NewRecommendationService(
		db, log,
		clients.Cache,
		scorer,
		repos.User,
		repos.Project,
		repos.UserSimilarity,
		repos.ProjectSimilarity,
		cfg.CacheTTL,
	)

	similarityUpdateService := services.NewSimilarityUpdateService(
		db, log,
		scorer,
		repos.User,
		repos.Project,
		repos.UserSimilarity,
		repos.ProjectSimilarity,
	)

	similarityWorker := services.NewSimilarityWorker(log, similarityUpdateService, cfg.RefreshInterval)

	return Services{
		Recommendation:   recommendationService,
		SimilarityUpdate: similarityUpdateService,
		SimilarityWorker: similarityWorker,
	}, nil
}

func buildScorer(cfg Config) (*similarity.Scorer, error) {
	if cfg.WeightsFile == "" {
		return similarity.DefaultScorer(), nil
	}
	wf, err := similarity.LoadWeightsFile(cfg.WeightsFile)
	if err != nil {
		return nil, fmt.Errorf("load similarity weights: %w", err)
	}
	return similarity.NewScorer(wf.Users, wf.Projects)
}
