package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"wedding_server/services"
)

// GeneratePhotoUploadURL generates a presigned URL for photo uploads
func GeneratePhotoUploadURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	if payload.FileName == "" || payload.FileType == "" {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}

	url, key, err := services.GeneratePhotoUploadURL(payload.FileName, payload.FileType)
	if err != nil {
		log.Printf("Error generating photo upload URL: %v", err)
		writeError(w, http.StatusInternalServerError, "upload_url_failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url, "key": key})
}

// GetPhotoViewURL generates a presigned URL for viewing a shared photo
func GetPhotoViewURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Key == "" {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	url, err := services.GeneratePhotoViewURL(payload.Key)
	if err != nil {
		log.Printf("Error generating photo view URL: %v", err)
		writeError(w, http.StatusInternalServerError, "view_url_failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
