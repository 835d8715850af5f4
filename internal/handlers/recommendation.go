package handlers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/devfolio/devfolio-backend/internal/apierr"
	"github.com/devfolio/devfolio-backend/internal/logger"
	"github.com/devfolio/devfolio-backend/internal/services"
)

const (
	maxLimit = 50

	relatedDescriptionLimit  = 200
	combinedDescriptionLimit = 150
)

type RecommendationHandler struct {
	log *logger.Logger
	svc services.RecommendationService
}

func NewRecommendationHandler(log *logger.Logger, svc services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		log: log.With("handler", "RecommendationHandler"),
		svc: svc,
	}
}

// RelatedUserEntry is one ranked row of the related-users payload.
type RelatedUserEntry struct {
	ID                 uuid.UUID `json:"id"`
	Username           string    `json:"username"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	AvatarURL          string    `json:"avatar_url"`
	Summary            string    `json:"summary"`
	Location           string    `json:"location"`
	ExperienceLevel    string    `json:"experience_level"`
	AvailabilityStatus string    `json:"availability_status"`
	SimilarityScore    float64   `json:"similarity_score"`
	ProfileURL         string    `json:"profile_url"`
}

type RelatedProjectEntry struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Tags             string    `json:"tags"`
	Link             string    `json:"link"`
	ImageURL         string    `json:"image_url"`
	AuthorName       string    `json:"author_name"`
	AuthorUsername   string    `json:"author_username"`
	AuthorAvatar     string    `json:"author_avatar"`
	SimilarityScore  float64   `json:"similarity_score"`
	ProjectURL       string    `json:"project_url"`
	AuthorProfileURL string    `json:"author_profile_url"`
}

// RecommendedUserEntry is the slimmer user row used by the combined payload.
type RecommendedUserEntry struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"username"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	AvatarURL       string    `json:"avatar_url"`
	Summary         string    `json:"summary"`
	SimilarityScore float64   `json:"similarity_score"`
	ProfileURL      string    `json:"profile_url"`
}

type RecommendedProjectEntry struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Tags            string    `json:"tags"`
	ImageURL        string    `json:"image_url"`
	AuthorName      string    `json:"author_name"`
	SimilarityScore float64   `json:"similarity_score"`
	ProjectURL      string    `json:"project_url"`
}

func (h *RecommendationHandler) RelatedUsers(c *gin.Context) {
	userID, ok := parseEntityID(c, "user")
	if !ok {
		return
	}
	limit, ok := parseLimit(c, "limit", services.DefaultRelatedLimit)
	if !ok {
		return
	}

	matches, err := h.svc.RelatedUsers(c.Request.Context(), userID, limit)
	if err != nil {
		RespondAPIError(c, err)
		return
	}

	entries := make([]RelatedUserEntry, 0, len(matches))
	for _, m := range matches {
		entries = append(entries, RelatedUserEntry{
			ID:                 m.User.ID,
			Username:           m.User.Username,
			FirstName:          m.User.FirstName,
			LastName:           m.User.LastName,
			AvatarURL:          m.User.AvatarURL,
			Summary:            m.User.Summary,
			Location:           m.User.Location,
			ExperienceLevel:    m.User.ExperienceLevel.Display(),
			AvailabilityStatus: m.User.AvailabilityStatus.Display(),
			SimilarityScore:    round3(m.Score),
			ProfileURL:         profileURL(m.User.Username),
		})
	}
	RespondOK(c, gin.H{
		"related_users": entries,
		"total_count":   len(entries),
	})
}

func (h *RecommendationHandler) RelatedProjects(c *gin.Context) {
	projectID, ok := parseEntityID(c, "project")
	if !ok {
		return
	}
	limit, ok := parseLimit(c, "limit", services.DefaultRelatedLimit)
	if !ok {
		return
	}

	matches, err := h.svc.RelatedProjects(c.Request.Context(), projectID, limit)
	if err != nil {
		RespondAPIError(c, err)
		return
	}

	entries := make([]RelatedProjectEntry, 0, len(matches))
	for _, m := range matches {
		entry := RelatedProjectEntry{
			ID:              m.Project.ID,
			Title:           m.Project.Title,
			Description:     truncateRunes(m.Project.Description, relatedDescriptionLimit),
			Tags:            m.Project.Tags,
			Link:            m.Project.Link,
			ImageURL:        m.Project.ImageURL,
			SimilarityScore: round3(m.Score),
			ProjectURL:      projectURL(m.Project.ID),
		}
		if author := m.Project.User; author != nil {
			entry.AuthorName = author.FullName()
			entry.AuthorUsername = author.Username
			entry.AuthorAvatar = author.AvatarURL
			entry.AuthorProfileURL = profileURL(author.Username)
		}
		entries = append(entries, entry)
	}
	RespondOK(c, gin.H{
		"related_projects": entries,
		"total_count":      len(entries),
	})
}

func (h *RecommendationHandler) Recommendations(c *gin.Context) {
	userID, ok := parseEntityID(c, "user")
	if !ok {
		return
	}
	userLimit, ok := parseLimit(c, "user_limit", 3)
	if !ok {
		return
	}
	projectLimit, ok := parseLimit(c, "project_limit", 3)
	if !ok {
		return
	}

	recs, err := h.svc.ForUser(c.Request.Context(), userID, userLimit, projectLimit)
	if err != nil {
		RespondAPIError(c, err)
		return
	}

	users := make([]RecommendedUserEntry, 0, len(recs.Users))
	for _, m := range recs.Users {
		users = append(users, RecommendedUserEntry{
			ID:              m.User.ID,
			Username:        m.User.Username,
			FirstName:       m.User.FirstName,
			LastName:        m.User.LastName,
			AvatarURL:       m.User.AvatarURL,
			Summary:         m.User.Summary,
			SimilarityScore: round3(m.Score),
			ProfileURL:      profileURL(m.User.Username),
		})
	}

	projects := make([]RecommendedProjectEntry, 0, len(recs.Projects))
	for _, m := range recs.Projects {
		entry := RecommendedProjectEntry{
			ID:              m.Project.ID,
			Title:           m.Project.Title,
			Description:     truncateRunes(m.Project.Description, combinedDescriptionLimit),
			Tags:            m.Project.Tags,
			ImageURL:        m.Project.ImageURL,
			SimilarityScore: round3(m.Score),
			ProjectURL:      projectURL(m.Project.ID),
		}
		if author := m.Project.User; author != nil {
			entry.AuthorName = author.FullName()
		}
		projects = append(projects, entry)
	}

	RespondOK(c, gin.H{
		"related_users":    users,
		"related_projects": projects,
		"user_count":       len(users),
		"project_count":    len(projects),
	})
}

func (h *RecommendationHandler) Graph(c *gin.Context) {
	userID, ok := parseEntityID(c, "user")
	if !ok {
		return
	}
	limit, ok := parseLimit(c, "limit", 10)
	if !ok {
		return
	}

	graph, err := h.svc.Graph(c.Request.Context(), userID, limit)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, graph)
}

func parseEntityID(c *gin.Context, kind string) (uuid.UUID, bool) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		RespondError(c, http.StatusNotFound, apierr.CodeNotFound,
			fmt.Errorf("%s %q not found", kind, raw))
		return uuid.Nil, false
	}
	return id, true
}

func parseLimit(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxLimit {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidLimit,
			fmt.Errorf("%s must be an integer between 1 and %d", name, maxLimit))
		return 0, false
	}
	return n, true
}

func round3(score float64) float64 {
	return math.Round(score*1000) / 1000
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func profileURL(username string) string {
	return "/profile/" + username + "/"
}

func projectURL(id uuid.UUID) string {
	return "/projects/" + id.String() + "/"
}
