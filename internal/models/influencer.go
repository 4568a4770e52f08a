// internal/models/influencer.go
package models

import (
	"strconv"
	"strings"
)

// InfluencerProfile is a read-only row from the influencer_profiles table.
// ID stays int64 internally and crosses every JSON boundary as a decimal
// string because the transport cannot carry full 64-bit precision as a
// number.
type InfluencerProfile struct {
	ID                 int64   `json:"id,string"`
	Handle             string  `json:"handle"`
	DisplayName        string  `json:"displayName"`
	Gender             string  `json:"gender"`
	IsBrand            bool    `json:"isBrand"`
	IsDeleted          bool    `json:"isDeleted"`
	Verified           bool    `json:"verified"`
	Price              string  `json:"price"`
	InstagramFollowers *string `json:"instagramFollowers,omitempty"`
	TikTokFollowers    *string `json:"tiktokFollowers,omitempty"`
	YouTubeFollowers   *string `json:"youtubeFollowers,omitempty"`
	LastLocation       *string `json:"lastLocation,omitempty"`
}

// WireID returns the profile id in decimal-string form for JSON transport.
func (p *InfluencerProfile) WireID() string {
	return strconv.FormatInt(p.ID, 10)
}

// ReachScore is the maximum follower count across platforms. Missing or
// unparseable counts contribute zero so bad data widens the pool instead of
// shrinking it.
func (p *InfluencerProfile) ReachScore() int64 {
	var max int64
	for _, raw := range []*string{p.InstagramFollowers, p.TikTokFollowers, p.YouTubeFollowers} {
		if n := parseFollowerCount(raw); n > max {
			max = n
		}
	}
	return max
}

func parseFollowerCount(raw *string) int64 {
	if raw == nil {
		return 0
	}
	cleaned := strings.ReplaceAll(strings.TrimSpace(*raw), ",", "")
	if cleaned == "" {
		return 0
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
