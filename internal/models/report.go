package models

import "time"

// LeadSummary is one row of the digest's new-leads tables.
type LeadSummary struct {
	Platform Platform `json:"platform"`
	Name     string   `json:"name"`
	Headline string   `json:"headline"` // job title or post title
	URL      string   `json:"url"`
	Score    float64  `json:"score"`
	HasScore bool     `json:"has_score"`
	Message  string   `json:"message"`
}

// ResponseEntry is a reply received to a previously sent message.
type ResponseEntry struct {
	Platform string `json:"platform"`
	Name     string `json:"name"`
	Response string `json:"response"`
	Date     string `json:"date"`
}

// EngagementMetrics are aggregate counts recomputed by re-scanning the
// spreadsheet. They are never persisted.
type EngagementMetrics struct {
	TotalLeads        int     `json:"total_leads"`
	LinkedInLeads     int     `json:"linkedin_leads"`
	RedditLeads       int     `json:"reddit_leads"`
	MessagesSent      int     `json:"messages_sent"`
	RepliesReceived   int     `json:"replies_received"`
	ResponseRate      float64 `json:"response_rate"`
	HighPriorityLeads int     `json:"high_priority_leads"`
}

// DigestReport is everything the daily email renders.
type DigestReport struct {
	Date         time.Time         `json:"date"`
	NewLinkedIn  []LeadSummary     `json:"new_linkedin_leads"`
	NewReddit    []LeadSummary     `json:"new_reddit_leads"`
	Responses    []ResponseEntry   `json:"responses"`
	Metrics      EngagementMetrics `json:"metrics"`
	LookbackDays int               `json:"lookback_days"`
	ResponseDays int               `json:"response_days"`
}
