package middleware

import (
	"testing"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/model"
)

func TestExtractChannelHandle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"full url", "https://www.youtube.com/@Example", "@Example", false},
		{"bare domain", "youtube.com/@Example", "@Example", false},
		{"raw handle", "@Example", "@Example", false},
		{"handle with dots", "https://youtube.com/@some.channel_1", "@some.channel_1", false},
		{"trailing path", "https://youtube.com/@Example/videos", "@Example", false},
		{"trims whitespace", "  @Example  ", "@Example", false},
		{"empty", "", "", true},
		{"no handle", "https://youtube.com/watch?v=abc123", "", true},
		{"plain name", "Example", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ExtractChannelHandle(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateVideoID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  string
		wantErr bool
	}{
		{"valid short", "dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"valid with dash", "abc-def_123", "abc-def_123", false},
		{"trims whitespace", "  abc  ", "abc", false},
		{"empty", "", "", true},
		{"too long", "12345678901234567", "", true},
		{"exactly 16", "1234567890123456", "1234567890123456", false},
		{"invalid chars", "abc def", "", true},
		{"sql injection", "a'; DROP--", "", true},
		{"unicode", "abcédef", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateVideoID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.wantID {
				t.Errorf("got %q, want %q", got, tt.wantID)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"valid", "42", 42, false},
		{"trims whitespace", " 7 ", 7, false},
		{"zero", "0", 0, true},
		{"negative", "-1", 0, true},
		{"not a number", "abc", 0, true},
		{"empty", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidateSettings(t *testing.T) {
	valid := model.DefaultSettings()
	if errMsg := ValidateSettings(&valid); errMsg != "" {
		t.Errorf("default settings should validate, got %q", errMsg)
	}

	tests := []struct {
		name   string
		mutate func(*model.AutomationSettings)
	}{
		{"zero delay", func(s *model.AutomationSettings) { s.DelayMinutes = 0 }},
		{"negative delay", func(s *model.AutomationSettings) { s.DelayMinutes = -5 }},
		{"zero daily cap", func(s *model.AutomationSettings) { s.MaxCommentsPerDay = 0 }},
		{"blank prompt", func(s *model.AutomationSettings) { s.AIPrompt = "   " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := model.DefaultSettings()
			tt.mutate(&s)
			if errMsg := ValidateSettings(&s); errMsg == "" {
				t.Error("expected validation error, got none")
			}
		})
	}
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/api/channels/42/status", "/api/channels/:channelId/status"},
		{"/api/queue/7/retry", "/api/queue/:itemId/retry"},
		{"/api/auth/callback?code=secret&state=abc", "/api/auth/callback"},
		{"/api/stats", "/api/stats"},
	}
	for _, tt := range tests {
		if got := sanitizePath(tt.in); got != tt.want {
			t.Errorf("sanitizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
