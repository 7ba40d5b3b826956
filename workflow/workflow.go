// Package workflow drives the multi-step RSVP form: one session per visitor,
// a fixed step sequence, and an RsvpClient carrying the actual lookups and
// submissions. The same sequencer runs against the live API or against the
// in-memory fixture dataset.
package workflow

import (
	"context"
	"errors"
	"log"

	"wedding_server/models"
	"wedding_server/services"
)

// Step identifies where a form session currently is
type Step string

const (
	StepStart     Step = "start"
	StepNotFound  Step = "not_found"
	StepLocked    Step = "locked"
	StepDetails   Step = "details"
	StepReview    Step = "review"
	StepSubmitted Step = "submitted"
	StepDeclined  Step = "declined"
)

// RsvpClient is the workflow's view of the backend
type RsvpClient interface {
	Lookup(ctx context.Context, firstName, lastName string) (*models.Invitation, error)
	Submit(ctx context.Context, req *models.SubmitRequest) error
}

// Session holds all in-progress form state. It lives only as long as the
// page; nothing here is persisted until Submit commits the whole draft.
type Session struct {
	Step       Step
	Leader     string
	Members    []models.Guest
	HasPlusOne bool
	Existing   *models.ExistingRsvp
	Drafts     []models.GuestRsvpEntry
	PlusOne    *models.PlusOneEntry
	Message    string
	LastError  string
}

// Workflow sequences a session through the form steps
type Workflow struct {
	client RsvpClient
	rules  *services.RsvpService // validation and record shaping only, no store behind it
}

// New creates a workflow over the given client
func New(client RsvpClient) *Workflow {
	return &Workflow{client: client, rules: &services.RsvpService{}}
}

// Start opens a fresh session at the name-entry step
func (w *Workflow) Start() *Session {
	return &Session{Step: StepStart}
}

// Lookup resolves the visitor's invitation and advances the session to
// NotFound, Locked or Details. A lookup failure keeps the session at Start
// with a generic retryable message.
func (w *Workflow) Lookup(ctx context.Context, s *Session, firstName, lastName string) error {
	if s.Step != StepStart && s.Step != StepNotFound {
		return errors.New("lookup is only available from the start step")
	}

	invitation, err := w.client.Lookup(ctx, firstName, lastName)
	if err != nil {
		if errors.Is(err, services.ErrGuestNotFound) {
			s.Step = StepNotFound
			s.LastError = ""
			return nil
		}
		s.LastError = "Something went wrong looking up your invitation. Please try again."
		return err
	}

	s.Leader = invitation.Leader
	s.Members = invitation.Members
	s.HasPlusOne = invitation.HasPlusOne
	s.LastError = ""

	if invitation.Existing != nil {
		s.Existing = invitation.Existing
		s.Step = StepLocked
		return nil
	}

	s.Drafts = make([]models.GuestRsvpEntry, 0, len(invitation.Members))
	for _, m := range invitation.Members {
		s.Drafts = append(s.Drafts, models.GuestRsvpEntry{
			GuestID:   m.ID,
			Name:      m.FullName(),
			Attending: true,
			IsChild:   m.IsChild,
		})
	}
	s.Step = StepDetails
	return nil
}

// Review validates the draft and advances Details to Review. When everyone
// opted out and no plus-one was named, the session skips Review and goes
// straight through the decline path.
func (w *Workflow) Review(ctx context.Context, s *Session) error {
	if s.Step != StepDetails {
		return errors.New("review is only available from the details step")
	}

	req := w.request(s, true)
	declineRedirect, err := w.rules.ValidateSubmission(req)
	if err != nil {
		s.LastError = err.Error()
		return err
	}

	if declineRedirect {
		w.submitDecline(ctx, s)
		return nil
	}

	s.LastError = ""
	s.Step = StepReview
	return nil
}

// Decline records that the whole party is not coming
func (w *Workflow) Decline(ctx context.Context, s *Session) error {
	if s.Step != StepDetails {
		return errors.New("decline is only available from the details step")
	}
	w.submitDecline(ctx, s)
	return nil
}

// Submit commits the reviewed draft. On failure the session stays at Review
// so the visitor can retry.
func (w *Workflow) Submit(ctx context.Context, s *Session) error {
	if s.Step != StepReview {
		return errors.New("submit is only available from the review step")
	}

	if err := w.client.Submit(ctx, w.request(s, true)); err != nil {
		s.LastError = "We couldn't save your RSVP. Please try again."
		return err
	}

	s.LastError = ""
	s.Step = StepSubmitted
	return nil
}

// Back returns from Review to Details so the draft can be edited
func (w *Workflow) Back(s *Session) {
	if s.Step == StepReview {
		s.Step = StepDetails
	}
}

// submitDecline sends the whole-party decline and always lands on the
// declined confirmation: a failed decline write is deliberately swallowed,
// unlike the attend path.
func (w *Workflow) submitDecline(ctx context.Context, s *Session) {
	if err := w.client.Submit(ctx, w.request(s, false)); err != nil {
		log.Printf("workflow: decline submission failed, proceeding to confirmation: %v", err)
	}
	s.LastError = ""
	s.Step = StepDeclined
}

func (w *Workflow) request(s *Session, attending bool) *models.SubmitRequest {
	return &models.SubmitRequest{
		Leader:    s.Leader,
		Members:   s.Members,
		Attending: attending,
		Guests:    s.Drafts,
		PlusOne:   s.PlusOne,
		Message:   s.Message,
	}
}
