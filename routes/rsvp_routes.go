package routes

import (
	"wedding_server/controllers"
	"wedding_server/services"

	"github.com/gorilla/mux"
)

// RegisterRsvpRoutes registers the RSVP lookup/submit routes under `/api/rsvp`
func RegisterRsvpRoutes(router *mux.Router, guestService *services.GuestService, rsvpService *services.RsvpService) {
	controller := &controllers.RsvpController{GuestService: guestService, RsvpService: rsvpService}

	rsvpRouter := router.PathPrefix("/api/rsvp").Subrouter()
	rsvpRouter.HandleFunc("/lookup", controller.LookupHandler).Methods("POST") // Find invitation + existing response
	rsvpRouter.HandleFunc("/submit", controller.SubmitHandler).Methods("POST") // Persist a party's submission
}
