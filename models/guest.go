package models

import "os"

// Guest represents one invited guest in DynamoDB. Guests are created
// out-of-band by the couple; this service only reads them and flips the
// responded flag after a submission.
type Guest struct {
	ID             string `dynamodbav:"id" json:"id"`                         // Partition Key (PK)
	FirstName      string `dynamodbav:"firstName" json:"firstName"`           // Matched case-insensitively on lookup
	LastName       string `dynamodbav:"lastName" json:"lastName"`             // Matched case-insensitively on lookup
	Email          string `dynamodbav:"email,omitempty" json:"email,omitempty"`
	Party          string `dynamodbav:"party" json:"party"`                   // Empty string = solo guest
	PlusOneAllowed bool   `dynamodbav:"plusOneAllowed" json:"plusOneAllowed"` // Only honored for solo guests
	Responded      bool   `dynamodbav:"responded" json:"responded"`
	IsChild        bool   `dynamodbav:"isChild" json:"isChild"`
}

// TableName returns the DynamoDB table name for the Guest model
func (Guest) TableName() string {
	if name := os.Getenv("GUESTS_TABLE"); name != "" {
		return name
	}
	return "WeddingGuests"
}

// FullName returns the guest's display name
func (g Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}
