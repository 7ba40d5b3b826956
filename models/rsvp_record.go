package models

import "os"

// Event name constants for the three fixed wedding-weekend events
const (
	EventWelcome = "welcome"
	EventBeach   = "beach"
	EventWedding = "wedding"
)

// RsvpRecord represents one persisted RSVP entry in DynamoDB. One record is
// written per responding guest (or plus-one); a whole-party decline is a
// single record naming all members with no guest link. Optional fields carry
// omitempty so absent values never reach the table.
type RsvpRecord struct {
	ID               string `dynamodbav:"id" json:"id"`                             // Partition Key (PK) - Unique record ID
	SubmissionID     string `dynamodbav:"submissionId" json:"submissionId"`         // Shared by all records of one submission
	GuestID          string `dynamodbav:"guestId,omitempty" json:"guestId,omitempty"` // Empty for plus-ones and party declines
	Name             string `dynamodbav:"name" json:"name"`
	Attending        bool   `dynamodbav:"attending" json:"attending"`
	AttendingWelcome bool   `dynamodbav:"attendingWelcome" json:"attendingWelcome"`
	AttendingBeach   bool   `dynamodbav:"attendingBeach" json:"attendingBeach"`
	AttendingWedding bool   `dynamodbav:"attendingWedding" json:"attendingWedding"`
	Dietary          string `dynamodbav:"dietary,omitempty" json:"dietary,omitempty"`
	IsChild          bool   `dynamodbav:"isChild" json:"isChild"`
	IsPlusOne        bool   `dynamodbav:"isPlusOne,omitempty" json:"isPlusOne,omitempty"`
	SubmittedBy      string `dynamodbav:"submittedBy,omitempty" json:"submittedBy,omitempty"`
	Message          string `dynamodbav:"message,omitempty" json:"message,omitempty"`
	CreatedAt        string `dynamodbav:"createdAt" json:"createdAt"` // RFC3339 timestamp
}

// TableName returns the DynamoDB table name for the RsvpRecord model
func (RsvpRecord) TableName() string {
	if name := os.Getenv("RSVPS_TABLE"); name != "" {
		return name
	}
	return "WeddingRsvps"
}

// Events rebuilds the event name list from the three fixed booleans
func (r RsvpRecord) Events() []string {
	var events []string
	if r.AttendingWelcome {
		events = append(events, EventWelcome)
	}
	if r.AttendingBeach {
		events = append(events, EventBeach)
	}
	if r.AttendingWedding {
		events = append(events, EventWedding)
	}
	return events
}
