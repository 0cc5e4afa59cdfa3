package sheets

// Worksheet names inside the lead-generation spreadsheet.
const (
	WorksheetLinkedInLeads  = "Leads"
	WorksheetRedditLeads    = "RedditLeads"
	WorksheetLinkedInScores = "LinkedInLeadScores"
	WorksheetRedditScores   = "RedditLeadScores"
	WorksheetLinkedInMsgs   = "LinkedInMessages"
	WorksheetRedditMsgs     = "RedditMessages"
)

// Header rows written when a worksheet is first created.
var (
	LinkedInLeadHeaders = []string{
		"Name", "Job Title", "Industry", "Profile URL", "Bio Snippet",
		"Recent Posts", "Contact Info", "Date Added",
	}

	RedditLeadHeaders = []string{
		"Username", "Post Title", "Post Content", "Subreddit", "Post URL",
		"Matched Keywords", "Score", "Comment Count", "Created UTC", "Date Added",
	}

	LinkedInScoreHeaders = []string{
		"Name", "Job Title", "Industry", "Profile URL", "Response Score",
		"Priority Level", "High Urgency Keywords", "Medium Urgency Keywords",
		"Low Urgency Keywords", "Question Count", "AI Reasoning",
		"Manual Adjustment", "Final Score", "Notes", "Date Scored",
	}

	RedditScoreHeaders = []string{
		"Username", "Subreddit", "Post Title", "Post URL", "Response Score",
		"Priority Level", "High Urgency Keywords", "Medium Urgency Keywords",
		"Low Urgency Keywords", "Question Count", "AI Reasoning",
		"Manual Adjustment", "Final Score", "Notes", "Date Scored",
	}

	LinkedInMessageHeaders = []string{
		"Name", "Job Title", "Industry", "Profile URL",
		"Generated Message", "Reasoning", "Status", "Response",
		"Date Generated", "Date Sent",
	}

	RedditMessageHeaders = []string{
		"Username", "Subreddit", "Post Title", "Post URL",
		"Generated Message", "Reasoning", "Status", "Response",
		"Date Generated", "Date Sent",
	}
)
