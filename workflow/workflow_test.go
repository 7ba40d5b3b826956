package workflow

import (
	"context"
	"errors"
	"strings"
	"testing"

	"wedding_server/models"
)

// failingClient errors on everything, standing in for an unreachable backend
type failingClient struct{}

func (f *failingClient) Lookup(ctx context.Context, firstName, lastName string) (*models.Invitation, error) {
	return nil, errors.New("backend unreachable")
}

func (f *failingClient) Submit(ctx context.Context, req *models.SubmitRequest) error {
	return errors.New("backend unreachable")
}

func startSession(t *testing.T, w *Workflow, firstName, lastName string) *Session {
	t.Helper()
	s := w.Start()
	if err := w.Lookup(context.TODO(), s, firstName, lastName); err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	return s
}

func TestWorkflowNotFound(t *testing.T) {
	w := New(NewFixtureClient(0))
	s := startSession(t, w, "Jane", "Doe")
	if s.Step != StepNotFound {
		t.Fatalf("expected not_found, got %s", s.Step)
	}
	// A second attempt with a real name is allowed
	if err := w.Lookup(context.TODO(), s, "John", "Smith"); err != nil {
		t.Fatalf("retry lookup failed: %v", err)
	}
	if s.Step != StepDetails {
		t.Fatalf("expected details, got %s", s.Step)
	}
}

func TestWorkflowSoloWithPlusOne(t *testing.T) {
	client := NewFixtureClient(0)
	w := New(client)

	s := startSession(t, w, "John", "Smith")
	if s.Step != StepDetails {
		t.Fatalf("expected details, got %s", s.Step)
	}
	if len(s.Members) != 1 || !s.HasPlusOne {
		t.Fatalf("unexpected invitation: members=%d hasPlusOne=%v", len(s.Members), s.HasPlusOne)
	}

	s.Drafts[0].Wedding = true
	s.PlusOne = &models.PlusOneEntry{Name: "Jane Roe", Wedding: true, Beach: true}
	s.Message = "See you there!"

	if err := w.Review(context.TODO(), s); err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if s.Step != StepReview {
		t.Fatalf("expected review, got %s", s.Step)
	}
	if err := w.Submit(context.TODO(), s); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if s.Step != StepSubmitted {
		t.Fatalf("expected submitted, got %s", s.Step)
	}

	records := client.Records()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	// The party is now locked for John and only John
	locked := startSession(t, w, "john", "smith")
	if locked.Step != StepLocked {
		t.Fatalf("expected locked, got %s", locked.Step)
	}
	if locked.Existing == nil || len(locked.Existing.Guests) != 1 {
		t.Fatalf("unexpected summary: %+v", locked.Existing)
	}
	if locked.Existing.PlusOne == nil || locked.Existing.PlusOne.Name != "Jane Roe" {
		t.Errorf("plus-one missing from summary: %+v", locked.Existing)
	}

	other := startSession(t, w, "Laila", "Haddad")
	if other.Step != StepDetails {
		t.Errorf("unrelated guest must not be locked, got %s", other.Step)
	}
}

func TestWorkflowPartyLocksForEveryone(t *testing.T) {
	client := NewFixtureClient(0)
	w := New(client)

	s := startSession(t, w, "Maya", "Njeim")
	if len(s.Members) != 5 {
		t.Fatalf("expected 5 members, got %d", len(s.Members))
	}

	// 3 attending, 2 declined
	for i := range s.Drafts {
		switch s.Drafts[i].Name {
		case "Georges Njeim", "Maya Njeim", "Karim Njeim":
			s.Drafts[i].Attending = true
			s.Drafts[i].Wedding = true
		default:
			s.Drafts[i].Attending = false
		}
	}

	if err := w.Review(context.TODO(), s); err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if err := w.Submit(context.TODO(), s); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	for _, name := range [][2]string{{"Georges", "Njeim"}, {"Rita", "Njeim"}, {"Elias", "Njeim"}} {
		locked := startSession(t, w, name[0], name[1])
		if locked.Step != StepLocked {
			t.Fatalf("member %s must see the locked view, got %s", name[0], locked.Step)
		}
		if len(locked.Existing.Guests) != 3 {
			t.Errorf("expected 3 attending in summary, got %d", len(locked.Existing.Guests))
		}
		if len(locked.Existing.NotAttending) != 2 {
			t.Errorf("expected 2 declined in summary, got %d", len(locked.Existing.NotAttending))
		}
	}
}

func TestWorkflowValidationStaysInDetails(t *testing.T) {
	w := New(NewFixtureClient(0))

	s := startSession(t, w, "Maya", "Njeim")
	// One attending guest with no events
	for i := range s.Drafts {
		s.Drafts[i].Attending = false
	}
	s.Drafts[0].Attending = true

	err := w.Review(context.TODO(), s)
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if s.Step != StepDetails {
		t.Errorf("session must stay in details, got %s", s.Step)
	}
	if !strings.Contains(s.LastError, s.Drafts[0].Name) {
		t.Errorf("error must name the guest: %q", s.LastError)
	}
}

func TestWorkflowAutoDecline(t *testing.T) {
	client := NewFixtureClient(0)
	w := New(client)

	s := startSession(t, w, "Maya", "Njeim")
	for i := range s.Drafts {
		s.Drafts[i].Attending = false
	}

	if err := w.Review(context.TODO(), s); err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if s.Step != StepDeclined {
		t.Fatalf("everyone opted out must skip review and decline, got %s", s.Step)
	}

	// The decline still locks the party, and reads back as declined
	locked := startSession(t, w, "Karim", "Njeim")
	if locked.Step != StepLocked {
		t.Fatalf("expected locked, got %s", locked.Step)
	}
	if locked.Existing.Attending {
		t.Error("declined party must read back as not attending")
	}
}

func TestWorkflowExplicitDecline(t *testing.T) {
	client := NewFixtureClient(0)
	w := New(client)

	s := startSession(t, w, "Laila", "Haddad")
	s.Message = "Wishing you both the best"
	if err := w.Decline(context.TODO(), s); err != nil {
		t.Fatalf("decline failed: %v", err)
	}
	if s.Step != StepDeclined {
		t.Fatalf("expected declined, got %s", s.Step)
	}

	records := client.Records()
	if len(records) != 1 || records[0].Attending {
		t.Fatalf("expected one decline record, got %+v", records)
	}
}

func TestWorkflowDeclineFailureSwallowed(t *testing.T) {
	w := New(&failingClient{})

	s := w.Start()
	s.Step = StepDetails
	s.Leader = "Laila Haddad"
	s.Members = []models.Guest{{ID: "g-laila", FirstName: "Laila", LastName: "Haddad"}}

	if err := w.Decline(context.TODO(), s); err != nil {
		t.Fatalf("decline must swallow submit failures, got %v", err)
	}
	if s.Step != StepDeclined {
		t.Errorf("expected declined, got %s", s.Step)
	}
}

func TestWorkflowSubmitFailureStaysInReview(t *testing.T) {
	fixture := NewFixtureClient(0)
	w := New(fixture)

	s := startSession(t, w, "John", "Smith")
	s.Drafts[0].Wedding = true
	if err := w.Review(context.TODO(), s); err != nil {
		t.Fatalf("review failed: %v", err)
	}

	// Swap in a broken backend for the submit itself
	w.client = &failingClient{}
	if err := w.Submit(context.TODO(), s); err == nil {
		t.Fatal("expected submit to fail")
	}
	if s.Step != StepReview {
		t.Errorf("failed submit must stay in review, got %s", s.Step)
	}
	if s.LastError == "" {
		t.Error("expected a retry message")
	}

	// Retry against the working backend succeeds
	w.client = fixture
	if err := w.Submit(context.TODO(), s); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if s.Step != StepSubmitted {
		t.Errorf("expected submitted, got %s", s.Step)
	}
}
