package models

// Priority buckets applied to a blended final score.
type Priority string

const (
	PriorityHigh    Priority = "high_priority"
	PriorityMedium  Priority = "medium_priority"
	PriorityLow     Priority = "low_priority"
	PriorityVeryLow Priority = "very_low_priority"
)

// ScoreFactors is the per-factor breakdown of a rule-based score.
type ScoreFactors struct {
	PlatformWeight    float64 `json:"platform_weight"`
	KeywordScore      float64 `json:"keyword_score"`
	ToneScore         float64 `json:"tone_score"`
	QuestionScore     float64 `json:"question_score"`
	EngagementBoost   float64 `json:"engagement_boost"`
	LengthMultiplier  float64 `json:"content_length_multiplier"`
	RecencyMultiplier float64 `json:"recency_multiplier"`
}

// KeywordMatches groups matched pain-point keywords by urgency tier.
type KeywordMatches struct {
	HighUrgency   []string `json:"high_urgency"`
	MediumUrgency []string `json:"medium_urgency"`
	LowUrgency    []string `json:"low_urgency"`
}

// AIAnalysis holds the externally obtained model score for a lead.
type AIAnalysis struct {
	Score      float64  `json:"score"`
	Reasoning  string   `json:"reasoning"`
	PainPoints []string `json:"pain_points"`
}

// LeadScore is the full scoring result for one lead. The rule-based
// subtotal is kept alongside the blended final score so manual review
// can see how much the model moved the number.
type LeadScore struct {
	URL           string         `json:"url"`
	RuleBased     float64        `json:"rule_based_score"`
	Factors       ScoreFactors   `json:"score_factors"`
	Keywords      KeywordMatches `json:"keyword_matches"`
	ToneMatches   map[string]int `json:"tone_matches"`
	QuestionCount int            `json:"question_count"`
	AI            *AIAnalysis    `json:"ai_analysis,omitempty"`
	FinalScore    float64        `json:"final_score"`
	Priority      Priority       `json:"priority_level"`
}
