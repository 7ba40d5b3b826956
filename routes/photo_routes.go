package routes

import (
	"wedding_server/controllers"

	"github.com/gorilla/mux"
)

// RegisterPhotoRoutes sets up routes for guest photo sharing
func RegisterPhotoRoutes(router *mux.Router) {
	photoRouter := router.PathPrefix("/api/photos").Subrouter()
	photoRouter.HandleFunc("/upload-url", controllers.GeneratePhotoUploadURL).Methods("POST")
	photoRouter.HandleFunc("/view-url", controllers.GetPhotoViewURL).Methods("POST")
}
