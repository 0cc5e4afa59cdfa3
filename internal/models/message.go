package models

// MessageStatus tracks the manual lifecycle of an outreach message.
// Transitions happen in the spreadsheet, never in code.
type MessageStatus string

const (
	StatusPendingReview MessageStatus = "Pending Review"
	StatusSent          MessageStatus = "Sent"
	StatusResponded     MessageStatus = "Responded"
)

// OutreachMessage is a generated first-contact message for a lead.
type OutreachMessage struct {
	URL           string        `json:"url"`
	Message       string        `json:"message"`
	Reasoning     string        `json:"reasoning"`
	Status        MessageStatus `json:"status"`
	Response      string        `json:"response"`
	DateGenerated string        `json:"date_generated"`
	DateSent      string        `json:"date_sent"`
}
