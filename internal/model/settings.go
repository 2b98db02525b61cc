package model

import "time"

// DefaultAIPrompt is the operator prompt used until settings are customised.
const DefaultAIPrompt = "I want to comment on this video as a user in short version. " +
	"My comment is encouraging others and has a positive impact. " +
	"Make sure it does not look AI generated, it should read like a raw comment."

// AutomationSettings is the process-wide automation configuration singleton.
type AutomationSettings struct {
	ID                int        `json:"id"`
	IsActive          bool       `json:"isActive"`
	DelayMinutes      int        `json:"delayMinutes"`
	AIPrompt          string     `json:"aiPrompt"`
	MaxCommentsPerDay int        `json:"maxCommentsPerDay"`
	LastRunAt         *time.Time `json:"lastRunAt,omitempty"`
}

// DefaultSettings returns the settings used when no row exists yet.
func DefaultSettings() AutomationSettings {
	return AutomationSettings{
		IsActive:          false,
		DelayMinutes:      10,
		AIPrompt:          DefaultAIPrompt,
		MaxCommentsPerDay: 100,
	}
}
