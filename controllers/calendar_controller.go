package controllers

import (
	"net/http"

	"wedding_server/services"

	"github.com/gorilla/mux"
)

// CalendarController serves calendar exports for the fixed event schedule
type CalendarController struct {
	CalendarService *services.CalendarService
}

// ListEventsHandler returns the schedule with per-event calendar links
func (c *CalendarController) ListEventsHandler(w http.ResponseWriter, r *http.Request) {
	type eventView struct {
		Key          string `json:"key"`
		Title        string `json:"title"`
		Description  string `json:"description"`
		Location     string `json:"location"`
		Start        string `json:"start"`
		End          string `json:"end"`
		GoogleLink   string `json:"googleLink"`
		DownloadPath string `json:"downloadPath"`
	}

	var views []eventView
	for _, ev := range c.CalendarService.Events() {
		views = append(views, eventView{
			Key:          ev.Key,
			Title:        ev.Title,
			Description:  ev.Description,
			Location:     ev.Location,
			Start:        ev.Start.Format("2006-01-02T15:04:05Z"),
			End:          ev.End.Format("2006-01-02T15:04:05Z"),
			GoogleLink:   c.CalendarService.GoogleCalendarLink(ev),
			DownloadPath: "/api/calendar/" + ev.Key + ".ics",
		})
	}

	writeJSON(w, http.StatusOK, views)
}

// DownloadEventHandler serves one event as an ICS download
func (c *CalendarController) DownloadEventHandler(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["event"]
	ev, ok := c.CalendarService.EventByKey(key)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+key+".ics\"")
	w.Write([]byte(c.CalendarService.BuildICS(ev)))
}

// DownloadAllHandler serves the full weekend as one ICS download
func (c *CalendarController) DownloadAllHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=\"wedding-weekend.ics\"")
	w.Write([]byte(c.CalendarService.BuildFullICS()))
}
