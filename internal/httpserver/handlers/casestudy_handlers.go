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

func ListCaseStudies(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var studies []models.CaseStudy
		if err := db.Order("created_at desc").Find(&studies).Error; err != nil {
			respondInternal(w, lg, "list case studies", err)
			return
		}
		respondJSON(w, http.StatusOK, studies)
	}
}

func GetCaseStudy(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cs models.CaseStudy
		err := db.First(&cs, "id = ?", chi.URLParam(r, "id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "case study not found")
			return
		}
		if err != nil {
			respondInternal(w, lg, "get case study", err)
			return
		}
		respondJSON(w, http.StatusOK, cs)
	}
}

type createCaseStudyReq struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description" validate:"required"`
	BeforeImage string          `json:"before_image" validate:"required"`
	AfterImage  string          `json:"after_image" validate:"required"`
	Metrics     json.RawMessage `json:"metrics"`
	SolutionID  *string         `json:"solution_id"`
}

func CreateCaseStudy(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCaseStudyReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := checkStruct(req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		cs := models.CaseStudy{
			Title:       req.Title,
			Description: req.Description,
			BeforeImage: req.BeforeImage,
			AfterImage:  req.AfterImage,
			Metrics:     models.JSONB(req.Metrics),
			SolutionID:  req.SolutionID,
		}
		if err := db.Create(&cs).Error; err != nil {
			respondInternal(w, lg, "create case study", err)
			return
		}
		respondJSON(w, http.StatusCreated, cs)
	}
}

type updateCaseStudyReq struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	BeforeImage *string         `json:"before_image"`
	AfterImage  *string         `json:"after_image"`
	Metrics     json.RawMessage `json:"metrics"`
	SolutionID  *string         `json:"solution_id"`
}

func UpdateCaseStudy(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateCaseStudyReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		var cs models.CaseStudy
		err := db.First(&cs, "id = ?", chi.URLParam(r, "id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "case study not found")
			return
		}
		if err != nil {
			respondInternal(w, lg, "get case study", err)
			return
		}
		if req.Title != nil {
			cs.Title = *req.Title
		}
		if req.Description != nil {
			cs.Description = *req.Description
		}
		if req.BeforeImage != nil {
			cs.BeforeImage = *req.BeforeImage
		}
		if req.AfterImage != nil {
			cs.AfterImage = *req.AfterImage
		}
		if req.Metrics != nil {
			cs.Metrics = models.JSONB(req.Metrics)
		}
		if req.SolutionID != nil {
			// Sent empty clears the optional relation.
			if *req.SolutionID == "" {
				cs.SolutionID = nil
			} else {
				cs.SolutionID = req.SolutionID
			}
		}
		if err := db.Save(&cs).Error; err != nil {
			respondInternal(w, lg, "update case study", err)
			return
		}
		respondJSON(w, http.StatusOK, cs)
	}
}

func DeleteCaseStudy(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := db.Delete(&models.CaseStudy{}, "id = ?", chi.URLParam(r, "id"))
		if res.Error != nil {
			respondInternal(w, lg, "delete case study", res.Error)
			return
		}
		if res.RowsAffected == 0 {
			respondError(w, http.StatusNotFound, "case study not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
