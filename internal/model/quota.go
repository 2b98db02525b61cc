package model

// DailyYouTubeQuota is the default per-project daily unit budget of the
// YouTube Data API, used to express quota usage as a percentage.
const DailyYouTubeQuota = 10000

// APIQuota tracks externally billed API usage for one day (date "YYYY-MM-DD").
type APIQuota struct {
	ID               int    `json:"id"`
	Date             string `json:"date"`
	YouTubeQuotaUsed int    `json:"youtubeQuotaUsed"`
	GeminiQuotaUsed  int    `json:"geminiQuotaUsed"`
}
