package types

import "github.com/google/uuid"

// SimilarityGraph is the visualization payload: the root user plus its
// strongest outgoing edges.
type SimilarityGraph struct {
	Nodes  []GraphNode `json:"nodes"`
	Edges  []GraphEdge `json:"edges"`
	UserID uuid.UUID   `json:"user_id"`
}

type GraphNode struct {
	ID              uuid.UUID `json:"id"`
	Label           string    `json:"label"`
	Type            string    `json:"type"`
	AvatarURL       string    `json:"avatar_url,omitempty"`
	SimilarityScore float64   `json:"similarity_score,omitempty"`
}

type GraphEdge struct {
	Source uuid.UUID `json:"source"`
	Target uuid.UUID `json:"target"`
	Weight float64   `json:"weight"`
	Label  string    `json:"label"`
}
