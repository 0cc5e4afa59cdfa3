package models

// Platform identifies which source a lead was scraped from.
type Platform string

const (
	PlatformLinkedIn Platform = "linkedin"
	PlatformReddit   Platform = "reddit"
)

// LinkedInLead represents a prospect scraped from LinkedIn people search.
type LinkedInLead struct {
	Name         string            `json:"name"`
	JobTitle     string            `json:"job_title"`
	Industry     string            `json:"industry"`
	SearchedRole string            `json:"searched_role"`
	ProfileURL   string            `json:"profile_url"`
	BioSnippet   string            `json:"bio_snippet"`
	RecentPosts  []string          `json:"recent_posts"`
	ContactInfo  map[string]string `json:"contact_info"`
	DateAdded    string            `json:"date_added"`
}

// CombinedText joins the text fields used for scoring and analysis.
func (l *LinkedInLead) CombinedText() string {
	text := l.BioSnippet
	for _, post := range l.RecentPosts {
		text += " " + post
	}
	return text
}

// RedditLead represents a prospect scraped from a Reddit post.
type RedditLead struct {
	Username        string   `json:"username"`
	PostTitle       string   `json:"post_title"`
	PostContent     string   `json:"post_content"`
	Subreddit       string   `json:"subreddit"`
	PostURL         string   `json:"post_url"`
	MatchedKeywords []string `json:"matched_keywords"`
	Score           int      `json:"score"`
	CommentCount    int      `json:"comment_count"`
	CreatedUTC      string   `json:"created_utc"`
	DateAdded       string   `json:"date_added"`
}

// CombinedText joins title and body, the text used for scoring and analysis.
func (l *RedditLead) CombinedText() string {
	return l.PostTitle + " " + l.PostContent
}
