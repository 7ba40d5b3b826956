package routes

import (
	"wedding_server/controllers"
	"wedding_server/services"

	"github.com/gorilla/mux"
)

// RegisterCalendarRoutes registers calendar export routes under `/api/calendar`
func RegisterCalendarRoutes(router *mux.Router, calendarService *services.CalendarService) {
	controller := &controllers.CalendarController{CalendarService: calendarService}

	calendarRouter := router.PathPrefix("/api/calendar").Subrouter()
	calendarRouter.HandleFunc("", controller.ListEventsHandler).Methods("GET")                // Schedule + links
	calendarRouter.HandleFunc("/all.ics", controller.DownloadAllHandler).Methods("GET")       // Whole weekend
	calendarRouter.HandleFunc("/{event}.ics", controller.DownloadEventHandler).Methods("GET") // Single event
}
