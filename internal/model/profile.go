package model

import "time"

// ProfessionalContext captures the work background collected during onboarding.
type ProfessionalContext struct {
	Role         string `json:"role"`
	Organization string `json:"organization"`
	Scale        string `json:"scale"`
	Industry     string `json:"industry"`
}

// UserProfile aggregates everything the scorer needs to personalize a feed:
// stated interests, keywords extracted from the onboarding narrative, and
// monitored competitor names.
type UserProfile struct {
	ID                  string              `json:"id"`
	Email               string              `json:"email"`
	Interests           []string            `json:"interests"`
	MarketPreference    string              `json:"market_preference"`
	ExtractedKeywords   []string            `json:"extracted_keywords"`
	Competitors         []string            `json:"competitors"`
	Professional        ProfessionalContext `json:"professional_context"`
	OnboardingCompleted bool                `json:"onboarding_completed"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}
