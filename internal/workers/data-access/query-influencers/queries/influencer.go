// internal/workers/data-access/query-influencers/queries/influencer.go
package queries

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"campaign-workers/internal/models"
)

const candidatePoolLimit = 100

// InfluencerCandidatePool fetches the bounded candidate pool for a
// recommendation request. Brands and deleted profiles never qualify. The
// limit trades completeness for latency; precision is enforced downstream by
// the recommendation worker.
func InfluencerCandidatePool(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	gender, _ := params["gender"].(string)
	if gender == "" {
		gender = "Female"
	}

	limit := candidatePoolLimit
	if raw, ok := params["limit"]; ok {
		switch v := raw.(type) {
		case int:
			limit = v
		case float64:
			limit = int(v)
		}
	}
	if limit <= 0 || limit > candidatePoolLimit {
		limit = candidatePoolLimit
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT id, handle, display_name, gender, is_brand, is_deleted, verified,
		       price, instagram_followers, tiktok_followers, youtube_followers,
		       last_location
		FROM influencer_profiles
		WHERE gender = $1 AND is_brand = FALSE AND is_deleted = FALSE
		ORDER BY id
		LIMIT $2`, gender, limit)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []models.InfluencerProfile
	for rows.Next() {
		var p models.InfluencerProfile
		var price sql.NullString
		err := rows.Scan(
			&p.ID, &p.Handle, &p.DisplayName, &p.Gender,
			&p.IsBrand, &p.IsDeleted, &p.Verified,
			&price, &p.InstagramFollowers, &p.TikTokFollowers,
			&p.YouTubeFollowers, &p.LastLocation,
		)
		if err != nil {
			return nil, 0, 0, err
		}
		if price.Valid {
			p.Price = price.String
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

// InfluencerProfileByID fetches a single profile. The id arrives as a decimal
// string from the process variables.
func InfluencerProfileByID(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	rawID, ok := params["influencerId"].(string)
	if !ok || rawID == "" {
		return nil, 0, 0, ErrMissingParam
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var p models.InfluencerProfile
	var price sql.NullString
	err = db.QueryRowContext(ctx, `
		SELECT id, handle, display_name, gender, is_brand, is_deleted, verified,
		       price, instagram_followers, tiktok_followers, youtube_followers,
		       last_location
		FROM influencer_profiles
		WHERE id = $1`, id).Scan(
		&p.ID, &p.Handle, &p.DisplayName, &p.Gender,
		&p.IsBrand, &p.IsDeleted, &p.Verified,
		&price, &p.InstagramFollowers, &p.TikTokFollowers,
		&p.YouTubeFollowers, &p.LastLocation,
	)
	if err != nil {
		return nil, 0, 0, err
	}
	if price.Valid {
		p.Price = price.String
	}

	execTime := time.Since(start).Milliseconds()
	return p, 1, execTime, nil
}
