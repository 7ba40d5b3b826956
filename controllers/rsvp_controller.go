package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"wedding_server/models"
	"wedding_server/services"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate = validator.New()

// RsvpController handles HTTP requests for the RSVP flow
type RsvpController struct {
	GuestService *services.GuestService
	RsvpService  *services.RsvpService
}

// LookupHandler resolves an invitation by first/last name. The party's
// existing response is attached when any member has already responded, which
// is what locks the form for the rest of the party.
func (c *RsvpController) LookupHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	invitation, err := c.GuestService.FindInvitation(r.Context(), req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, services.ErrGuestNotFound) {
			// Same answer for any unmatched name; never hint at near-misses.
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		log.Printf("LookupHandler: lookup failed: %v", err)
		writeError(w, http.StatusBadGateway, "lookup_failed")
		return
	}

	for _, member := range invitation.Members {
		if member.Responded {
			invitation.Existing = c.RsvpService.ResolveExisting(r.Context(), invitation.Members)
			break
		}
	}

	writeJSON(w, http.StatusOK, invitation)
}

// SubmitHandler validates, builds and commits a party's submission. Decline
// submissions answer success even when persistence fails; the attend path
// surfaces a retryable error instead.
func (c *RsvpController) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	declineRedirect, err := c.RsvpService.ValidateSubmission(&req)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			writeError(w, http.StatusBadRequest, validationErr.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if declineRedirect {
		req.Attending = false
	}

	records := c.RsvpService.BuildRecords(&req)
	err = c.RsvpService.CommitSubmission(r.Context(), records, req.Members)
	if err != nil {
		log.Printf("SubmitHandler: submission failed: %v", err)
		writeError(w, http.StatusBadGateway, "submit_failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
