package workflow

import (
	"context"
	"strings"
	"sync"
	"time"

	"wedding_server/models"
	"wedding_server/services"
)

// FixtureClient serves the workflow from an in-memory guest list so the form
// can be exercised without the deployed API or any AWS access. It simulates
// network latency and applies the same locking semantics as the real backend.
type FixtureClient struct {
	mu      sync.Mutex
	guests  []models.Guest
	records []models.RsvpRecord
	latency time.Duration
	rules   *services.RsvpService
}

// NewFixtureClient creates a fixture client with the sample dataset
func NewFixtureClient(latency time.Duration) *FixtureClient {
	return &FixtureClient{
		guests: []models.Guest{
			{ID: "guest-john", FirstName: "John", LastName: "Smith", Party: "", PlusOneAllowed: true},
			{ID: "guest-laila", FirstName: "Laila", LastName: "Haddad", Party: ""},
			{ID: "guest-georges", FirstName: "Georges", LastName: "Njeim", Party: "Njeim Family"},
			{ID: "guest-maya", FirstName: "Maya", LastName: "Njeim", Party: "Njeim Family"},
			{ID: "guest-karim", FirstName: "Karim", LastName: "Njeim", Party: "Njeim Family"},
			{ID: "guest-rita", FirstName: "Rita", LastName: "Njeim", Party: "Njeim Family"},
			{ID: "guest-elias", FirstName: "Elias", LastName: "Njeim", Party: "Njeim Family", IsChild: true},
		},
		latency: latency,
		rules:   &services.RsvpService{},
	}
}

// Lookup resolves an invitation from the fixture dataset
func (f *FixtureClient) Lookup(ctx context.Context, firstName, lastName string) (*models.Invitation, error) {
	f.sleep(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched *models.Guest
	for i := range f.guests {
		if strings.EqualFold(strings.TrimSpace(f.guests[i].FirstName), strings.TrimSpace(firstName)) &&
			strings.EqualFold(strings.TrimSpace(f.guests[i].LastName), strings.TrimSpace(lastName)) {
			matched = &f.guests[i]
			break
		}
	}
	if matched == nil {
		return nil, services.ErrGuestNotFound
	}

	members := []models.Guest{*matched}
	if matched.Party != "" {
		members = members[:0]
		for _, g := range f.guests {
			if g.Party == matched.Party {
				members = append(members, g)
			}
		}
	}

	invitation := &models.Invitation{
		Leader:     matched.FullName(),
		Members:    members,
		HasPlusOne: matched.PlusOneAllowed && matched.Party == "",
	}

	for _, m := range members {
		if m.Responded {
			invitation.Existing = services.SummarizeRecords(f.records, members)
			break
		}
	}

	return invitation, nil
}

// Submit stores a submission in memory and locks the party
func (f *FixtureClient) Submit(ctx context.Context, req *models.SubmitRequest) error {
	f.sleep(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()

	declineRedirect, err := f.rules.ValidateSubmission(req)
	if err != nil {
		return err
	}
	if declineRedirect {
		req.Attending = false
	}

	f.records = append(f.records, f.rules.BuildRecords(req)...)

	for _, member := range req.Members {
		for i := range f.guests {
			if f.guests[i].ID == member.ID {
				f.guests[i].Responded = true
			}
		}
	}
	return nil
}

// Records returns a copy of everything submitted so far
func (f *FixtureClient) Records() []models.RsvpRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	records := make([]models.RsvpRecord, len(f.records))
	copy(records, f.records)
	return records
}

func (f *FixtureClient) sleep(ctx context.Context) {
	if f.latency <= 0 {
		return
	}
	select {
	case <-time.After(f.latency):
	case <-ctx.Done():
	}
}
