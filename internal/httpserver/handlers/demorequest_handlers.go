package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"visiotech/internal/auth"
	"visiotech/internal/models"
)

func ListDemoRequests(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var reqs []models.DemoRequest
		if err := db.Preload("User", publicProfile).Order("created_at desc").Find(&reqs).Error; err != nil {
			respondInternal(w, lg, "list demo requests", err)
			return
		}
		respondJSON(w, http.StatusOK, reqs)
	}
}

func GetDemoRequest(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var d models.DemoRequest
		err := db.Preload("User", publicProfile).First(&d, "id = ?", chi.URLParam(r, "id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "demo request not found")
			return
		}
		if err != nil {
			respondInternal(w, lg, "get demo request", err)
			return
		}
		respondJSON(w, http.StatusOK, d)
	}
}

type createDemoRequestReq struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Company string `json:"company" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// CreateDemoRequest is the public lead-capture form. When the caller carries a
// valid bearer token the submission is linked to that user; otherwise it is
// stored anonymously.
func CreateDemoRequest(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createDemoRequestReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := checkStruct(req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		d := models.DemoRequest{Name: req.Name, Email: req.Email, Company: req.Company, Message: req.Message}
		if sub := auth.Subject(r.Context()); sub != "" {
			d.UserID = &sub
		}
		if err := db.Create(&d).Error; err != nil {
			respondInternal(w, lg, "create demo request", err)
			return
		}
		respondJSON(w, http.StatusCreated, d)
	}
}

func DeleteDemoRequest(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := db.Delete(&models.DemoRequest{}, "id = ?", chi.URLParam(r, "id"))
		if res.Error != nil {
			respondInternal(w, lg, "delete demo request", res.Error)
			return
		}
		if res.RowsAffected == 0 {
			respondError(w, http.StatusNotFound, "demo request not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
