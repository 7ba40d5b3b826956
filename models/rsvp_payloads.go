package models

// LookupRequest is the POST /api/rsvp/lookup payload
type LookupRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// Invitation is the resolved party for a lookup: the matched guest, every
// co-member of their party (self included) and whether a plus-one is offered
type Invitation struct {
	Leader     string        `json:"leader"` // Display name of the matched guest
	Members    []Guest       `json:"members"`
	HasPlusOne bool          `json:"hasPlusOne"`
	Existing   *ExistingRsvp `json:"existingRsvp"` // Non-nil once the party has responded
}

// RsvpGuestSummary is one attending entry of a reconstructed submission
type RsvpGuestSummary struct {
	Name    string   `json:"name"`
	Events  []string `json:"events"`
	Dietary string   `json:"dietary,omitempty"`
	IsChild bool     `json:"isChild"`
}

// ExistingRsvp is the read-only summary of a party's prior submission
type ExistingRsvp struct {
	Attending    bool               `json:"attending"`
	Guests       []RsvpGuestSummary `json:"guests"`
	NotAttending []string           `json:"notAttending,omitempty"`
	PlusOne      *RsvpGuestSummary  `json:"plusOne,omitempty"`
	SubmittedBy  string             `json:"submittedBy"`
	Message      string             `json:"message"`
}

// GuestRsvpEntry is one guest's answers inside a submission
type GuestRsvpEntry struct {
	GuestID   string `json:"guestId" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Attending bool   `json:"attending"`
	Welcome   bool   `json:"welcome"`
	Beach     bool   `json:"beach"`
	Wedding   bool   `json:"wedding"`
	Dietary   string `json:"dietary"`
	IsChild   bool   `json:"isChild"`
}

// PlusOneEntry is the optional named companion of a solo guest
type PlusOneEntry struct {
	Name    string `json:"name" validate:"required"`
	Welcome bool   `json:"welcome"`
	Beach   bool   `json:"beach"`
	Wedding bool   `json:"wedding"`
	Dietary string `json:"dietary"`
}

// SubmitRequest is the POST /api/rsvp/submit payload
type SubmitRequest struct {
	Leader    string           `json:"leader" validate:"required"`
	Members   []Guest          `json:"members" validate:"required,min=1"`
	Attending bool             `json:"attending"`
	Guests    []GuestRsvpEntry `json:"guests" validate:"dive"`
	PlusOne   *PlusOneEntry    `json:"plusOne,omitempty"`
	Message   string           `json:"message"`
}
