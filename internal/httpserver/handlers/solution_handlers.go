package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"visiotech/internal/models"
)

func ListSolutions(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var solutions []models.Solution
		if err := db.Order("created_at desc").Find(&solutions).Error; err != nil {
			respondInternal(w, lg, "list solutions", err)
			return
		}
		respondJSON(w, http.StatusOK, solutions)
	}
}

func GetSolution(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var s models.Solution
		err := db.First(&s, "id = ?", chi.URLParam(r, "id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "solution not found")
			return
		}
		if err != nil {
			respondInternal(w, lg, "get solution", err)
			return
		}
		respondJSON(w, http.StatusOK, s)
	}
}

type createSolutionReq struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	ImageURL    string `json:"image_url"`
}

func CreateSolution(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSolutionReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := checkStruct(req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		// The image path is advisory: it references a previously uploaded
		// file and is not checked for existence here.
		s := models.Solution{Title: req.Title, Description: req.Description, ImageURL: req.ImageURL}
		if err := db.Create(&s).Error; err != nil {
			respondInternal(w, lg, "create solution", err)
			return
		}
		respondJSON(w, http.StatusCreated, s)
	}
}

type updateSolutionReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

func UpdateSolution(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateSolutionReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		var s models.Solution
		err := db.First(&s, "id = ?", chi.URLParam(r, "id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "solution not found")
			return
		}
		if err != nil {
			respondInternal(w, lg, "get solution", err)
			return
		}
		if req.Title != nil {
			s.Title = *req.Title
		}
		if req.Description != nil {
			s.Description = *req.Description
		}
		if req.ImageURL != nil {
			s.ImageURL = *req.ImageURL
		}
		if err := db.Save(&s).Error; err != nil {
			respondInternal(w, lg, "update solution", err)
			return
		}
		respondJSON(w, http.StatusOK, s)
	}
}

func DeleteSolution(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := db.Delete(&models.Solution{}, "id = ?", chi.URLParam(r, "id"))
		if res.Error != nil {
			respondInternal(w, lg, "delete solution", res.Error)
			return
		}
		if res.RowsAffected == 0 {
			respondError(w, http.StatusNotFound, "solution not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
