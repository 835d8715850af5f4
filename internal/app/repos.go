package app

import (
	"gorm.io/gorm"

	"github.com/devfolio/devfolio-backend/internal/logger"
	"github.com/devfolio/devfolio-backend/internal/repos"
)

type Repos struct {
	User              repos.UserRepo
	Project           repos.ProjectRepo
	UserSimilarity    repos.UserSimilarityRepo
	ProjectSimilarity repos.ProjectSimilarityRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:              repos.NewUserRepo(db, log),
		Project:           repos.NewProjectRepo(db, log),
		UserSimilarity:    repos.NewUserSimilarityRepo(db, log),
		ProjectSimilarity: repos.NewProjectSimilarityRepo(db, log),
	}
}
