package model

// Account is a dashboard user with an optionally connected YouTube identity.
// Tokens are set on OAuth callback and cleared on disconnect.
type Account struct {
	ID                  int     `json:"id"`
	Username            string  `json:"username"`
	Password            string  `json:"-"`
	YouTubeToken        *string `json:"-"`
	YouTubeRefreshToken *string `json:"-"`
	YouTubeChannelID    *string `json:"youtubeChannelId,omitempty"`
}

// Connected reports whether the account holds a usable token pair.
func (a *Account) Connected() bool {
	return a != nil && a.YouTubeToken != nil && a.YouTubeRefreshToken != nil
}
