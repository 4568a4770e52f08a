// internal/workers/music/search-tracks/models.go
package searchtracks

import "campaign-workers/internal/models"

type Input struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type Output struct {
	Tracks    []models.Track `json:"tracks"`
	Total     int            `json:"total"`
	FromCache bool           `json:"fromCache"`
}
