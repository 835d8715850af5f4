package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/devfolio/devfolio-backend/internal/logger"
	"github.com/devfolio/devfolio-backend/internal/types"
	"github.com/devfolio/devfolio-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "devfolio", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		log.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.Skill{},
		&types.Project{},
		&types.UserSimilarity{},
		&types.ProjectSimilarity{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}

	s.log.Info("Configuring foreign key relationships for postgres tables...")
	stmts := []struct {
		table string
		name  string
		sql   string
	}{
		{
			table: "skill",
			name:  "fk_skill_user_id",
			sql: `ALTER TABLE "skill"
				ADD CONSTRAINT "fk_skill_user_id"
				FOREIGN KEY ("user_id") REFERENCES "user"("id")
				ON DELETE CASCADE`,
		},
		{
			table: "project",
			name:  "fk_project_user_id",
			sql: `ALTER TABLE "project"
				ADD CONSTRAINT "fk_project_user_id"
				FOREIGN KEY ("user_id") REFERENCES "user"("id")
				ON DELETE CASCADE`,
		},
		{
			table: "user_similarity",
			name:  "fk_user_similarity_source_id",
			sql: `ALTER TABLE "user_similarity"
				ADD CONSTRAINT "fk_user_similarity_source_id"
				FOREIGN KEY ("source_id") REFERENCES "user"("id")
				ON DELETE CASCADE`,
		},
		{
			table: "user_similarity",
			name:  "fk_user_similarity_target_id",
			sql: `ALTER TABLE "user_similarity"
				ADD CONSTRAINT "fk_user_similarity_target_id"
				FOREIGN KEY ("target_id") REFERENCES "user"("id")
				ON DELETE CASCADE`,
		},
		{
			table: "project_similarity",
			name:  "fk_project_similarity_source_id",
			sql: `ALTER TABLE "project_similarity"
				ADD CONSTRAINT "fk_project_similarity_source_id"
				FOREIGN KEY ("source_id") REFERENCES "project"("id")
				ON DELETE CASCADE`,
		},
		{
			table: "project_similarity",
			name:  "fk_project_similarity_target_id",
			sql: `ALTER TABLE "project_similarity"
				ADD CONSTRAINT "fk_project_similarity_target_id"
				FOREIGN KEY ("target_id") REFERENCES "project"("id")
				ON DELETE CASCADE`,
		},
	}
	for _, stmt := range stmts {
		drop := fmt.Sprintf(`ALTER TABLE "%s" DROP CONSTRAINT IF EXISTS "%s"`, stmt.table, stmt.name)
		if err := s.db.Exec(drop).Error; err != nil {
			return fmt.Errorf("drop %s: %w", stmt.name, err)
		}
		if err := s.db.Exec(stmt.sql).Error; err != nil {
			return fmt.Errorf("add %s: %w", stmt.name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
