// internal/workers/data-access/query-influencers/queries/campaign.go
package queries

import (
	"context"
	"database/sql"
	"time"
)

// CampaignDetails fetches a campaign row for the dashboard.
func CampaignDetails(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	campaignID, ok := params["campaignId"].(string)
	if !ok || campaignID == "" {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var id, artist, song, startDate, territory, profileType, platform, status string
	var trackID, trackName, artistName string
	var budget float64
	var progress int
	var createdAt, updatedAt string

	err := db.QueryRowContext(ctx, `
		SELECT id, artist, song, start_date, audience_territory, budget,
		       profile_type, platform, track_id, track_name, artist_name,
		       status, progress, created_at, updated_at
		FROM campaigns
		WHERE id = $1`, campaignID).Scan(
		&id, &artist, &song, &startDate, &territory, &budget,
		&profileType, &platform, &trackID, &trackName, &artistName,
		&status, &progress, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"id":                id,
		"artist":            artist,
		"song":              song,
		"startDate":         startDate,
		"audienceTerritory": territory,
		"budget":            budget,
		"profileType":       profileType,
		"platform":          platform,
		"trackId":           trackID,
		"trackName":         trackName,
		"artistName":        artistName,
		"status":            status,
		"progress":          progress,
		"createdAt":         createdAt,
		"updatedAt":         updatedAt,
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}
