package leadscorer

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"leadgen-stack/internal/models"
)

// Pain-point keywords grouped by urgency. Weights are added to the base
// score for each keyword found in the text.
var (
	highUrgencyKeywords = map[string]float64{
		"need help":        3.0,
		"desperate":        3.0,
		"urgent":           3.0,
		"struggling":       2.5,
		"can't take it":    2.5,
		"at my limit":      2.5,
		"breaking point":   2.5,
		"emergency":        3.0,
		"crisis":           3.0,
		"suicidal":         0.0, // flagged for review, never scored as opportunity
		"help me":          2.0,
		"please advise":    2.0,
		"what should i do": 2.0,
		"lost my job":      2.0,
		"fired":            2.0,
		"burnout":          2.0,
		"burning out":      2.0,
		"exhausted":        1.5,
	}

	mediumUrgencyKeywords = map[string]float64{
		"stressed":           1.5,
		"anxiety":            1.5,
		"anxious":            1.5,
		"overwhelmed":        1.5,
		"frustrated":         1.0,
		"tired of":           1.0,
		"fed up":             1.0,
		"hate my job":        1.5,
		"toxic workplace":    1.5,
		"looking for advice": 1.5,
		"need advice":        1.5,
		"career change":      1.0,
		"new job":            1.0,
		"work-life balance":  1.0,
		"coaching":           1.0,
		"mentor":             1.0,
	}

	lowUrgencyKeywords = map[string]float64{
		"improvement":  0.5,
		"better":       0.5,
		"learning":     0.5,
		"growth":       0.5,
		"tips":         0.5,
		"productivity": 0.5,
		"efficiency":   0.5,
		"strategy":     0.5,
		"curious":      0.5,
		"wondering":    0.5,
	}
)

// Tone indicator patterns. Each match of a tone's pattern contributes
// that tone's weight once per occurrence. Matching is deliberately bare
// substrings, so "unhappy" counts as both positive and negative.
var tonePatterns = map[string]*regexp.Regexp{
	"positive":   regexp.MustCompile(`(?i)(happy|excited|grateful|thankful|optimistic|hopeful|looking forward)`),
	"negative":   regexp.MustCompile(`(?i)(sad|depressed|miserable|unhappy|angry|furious|hate|dislike)`),
	"desperate":  regexp.MustCompile(`(?i)(please help|i need|desperate|urgently|asap|emergency|crisis|immediately)`),
	"reflective": regexp.MustCompile(`(?i)(thinking about|considering|reflecting|wondering if|not sure if|should i)`),
}

var toneWeights = map[string]float64{
	"positive":   -0.5,
	"negative":   1.0,
	"desperate":  2.0,
	"reflective": 0.7,
}

var questionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\?`),
	regexp.MustCompile(`(?i)how (can|do|should)`),
	regexp.MustCompile(`(?i)what (should|can|do)`),
	regexp.MustCompile(`(?i)any advice`),
	regexp.MustCompile(`(?i)any suggestions`),
	regexp.MustCompile(`(?i)recommend`),
	regexp.MustCompile(`(?i)anyone have experience`),
}

const (
	baseScore      = 5.0
	questionWeight = 1.5
	ruleWeight     = 0.4
	aiWeight       = 0.6
)

var platformWeights = map[models.Platform]float64{
	models.PlatformLinkedIn: 1.0,
	models.PlatformReddit:   1.2,
}

// matchKeywords finds pain-point keywords in the text and returns the
// total weight plus the matched terms grouped by tier.
func matchKeywords(text string) (float64, models.KeywordMatches) {
	lower := strings.ToLower(text)

	var matches models.KeywordMatches
	total := 0.0

	for keyword, weight := range highUrgencyKeywords {
		if strings.Contains(lower, keyword) {
			matches.HighUrgency = append(matches.HighUrgency, keyword)
			total += weight
		}
	}
	for keyword, weight := range mediumUrgencyKeywords {
		if strings.Contains(lower, keyword) {
			matches.MediumUrgency = append(matches.MediumUrgency, keyword)
			total += weight
		}
	}
	for keyword, weight := range lowUrgencyKeywords {
		if strings.Contains(lower, keyword) {
			matches.LowUrgency = append(matches.LowUrgency, keyword)
			total += weight
		}
	}

	sort.Strings(matches.HighUrgency)
	sort.Strings(matches.MediumUrgency)
	sort.Strings(matches.LowUrgency)

	return total, matches
}

// analyzeTone counts tone indicator matches and returns the weighted
// total plus per-tone counts.
func analyzeTone(text string) (float64, map[string]int) {
	counts := make(map[string]int)
	total := 0.0

	for tone, pattern := range tonePatterns {
		found := pattern.FindAllString(text, -1)
		if len(found) == 0 {
			continue
		}
		counts[tone] = len(found)
		total += float64(len(found)) * toneWeights[tone]
	}

	return total, counts
}

// countQuestions counts question indicators across all patterns.
func countQuestions(text string) int {
	count := 0
	for _, pattern := range questionPatterns {
		count += len(pattern.FindAllString(text, -1))
	}
	return count
}

// lengthMultiplier rewards substantive posts. Very short content rarely
// carries enough signal to act on.
func lengthMultiplier(text string) float64 {
	length := len(text)
	switch {
	case length < 100:
		return 0.8
	case length < 500:
		return 1.0
	case length < 1000:
		return 1.2
	default:
		return 1.4
	}
}

// recencyMultiplier favors fresh leads. Unparseable dates score neutral.
// Age is whole elapsed days, partial days do not count.
func recencyMultiplier(dateStr string, now time.Time) float64 {
	if dateStr == "" {
		return 1.0
	}

	var parsed time.Time
	var err error
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02"} {
		parsed, err = time.Parse(layout, dateStr)
		if err == nil {
			break
		}
	}
	if err != nil {
		return 1.0
	}

	days := int(now.Sub(parsed).Hours() / 24)
	switch {
	case days <= 7:
		return 1.3
	case days <= 30:
		return 1.0
	case days <= 90:
		return 0.7
	default:
		return 0.5
	}
}

// engagementBoost converts a Reddit post score into a bonus. Highly
// upvoted posts signal the pain resonates widely.
func engagementBoost(postScore int) float64 {
	switch {
	case postScore > 100:
		return 1.0
	case postScore > 50:
		return 0.7
	case postScore > 10:
		return 0.3
	default:
		return 0
	}
}

func priorityFor(score float64) models.Priority {
	switch {
	case score >= 7:
		return models.PriorityHigh
	case score >= 4:
		return models.PriorityMedium
	case score >= 2:
		return models.PriorityLow
	default:
		return models.PriorityVeryLow
	}
}

func clampScore(score float64) float64 {
	return math.Max(1, math.Min(10, score))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ScoreInput carries everything the rule engine needs for one lead.
type ScoreInput struct {
	URL       string
	Text      string
	Platform  models.Platform
	Date      string // post date for Reddit, date added for LinkedIn
	PostScore int    // Reddit upvote score, zero for LinkedIn
}

// ScoreLead computes the rule-based score for a lead. The rule subtotal
// is stored unclamped so a later AI blend works from the raw value; only
// FinalScore is clamped to the 1-10 range.
func ScoreLead(input ScoreInput, now time.Time) *models.LeadScore {
	keywordScore, keywords := matchKeywords(input.Text)
	toneScore, toneMatches := analyzeTone(input.Text)
	questionCount := countQuestions(input.Text)
	questionScore := float64(questionCount) * questionWeight

	boost := 0.0
	if input.Platform == models.PlatformReddit {
		boost = engagementBoost(input.PostScore)
	}

	lengthMult := lengthMultiplier(input.Text)
	recencyMult := recencyMultiplier(input.Date, now)
	platformWeight := platformWeights[input.Platform]

	raw := (baseScore + keywordScore + toneScore + questionScore + boost) *
		lengthMult * recencyMult * platformWeight

	return &models.LeadScore{
		URL:       input.URL,
		RuleBased: round2(raw),
		Factors: models.ScoreFactors{
			PlatformWeight:    platformWeight,
			KeywordScore:      keywordScore,
			ToneScore:         toneScore,
			QuestionScore:     questionScore,
			EngagementBoost:   boost,
			LengthMultiplier:  lengthMult,
			RecencyMultiplier: recencyMult,
		},
		Keywords:      keywords,
		ToneMatches:   toneMatches,
		QuestionCount: questionCount,
		FinalScore:    round1(clampScore(raw)),
		Priority:      priorityFor(clampScore(raw)),
	}
}

// ApplyAIScore blends the model's score into the rule-based one and
// recomputes the priority bucket.
func ApplyAIScore(score *models.LeadScore, analysis *models.AIAnalysis) {
	score.AI = analysis
	blended := ruleWeight*score.RuleBased + aiWeight*analysis.Score
	score.FinalScore = round1(clampScore(blended))
	score.Priority = priorityFor(score.FinalScore)
}
