package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"visiotech/internal/auth"
	"visiotech/internal/models"
)

// publicProfile limits a preloaded user to the fields safe to expose alongside
// another record. The password hash is already excluded from serialization,
// but it is never selected either.
func publicProfile(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email")
}

// ListProjects is ownership-scoped: an admin sees every project, a client sees
// only their own.
func ListProjects(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())
		q := db.Preload("Client", publicProfile).Order("created_at desc")
		if !claims.IsAdmin() {
			q = q.Where("client_id = ?", claims.Subject)
		}
		var projects []models.Project
		if err := q.Find(&projects).Error; err != nil {
			respondInternal(w, lg, "list projects", err)
			return
		}
		respondJSON(w, http.StatusOK, projects)
	}
}

func GetProject(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())
		var p models.Project
		err := db.Preload("Client", publicProfile).First(&p, "id = ?", chi.URLParam(r, "id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "project not found")
			return
		}
		if err != nil {
			respondInternal(w, lg, "get project", err)
			return
		}
		if !claims.IsAdmin() && p.ClientID != claims.Subject {
			// No project fields leak past this point.
			respondError(w, http.StatusForbidden, "not authorized to access this project")
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

type createProjectReq struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description" validate:"required"`
	Status      string     `json:"status" validate:"omitempty,oneof=Pending 'In Progress' Completed 'On Hold' Cancelled"`
	Progress    int        `json:"progress" validate:"min=0,max=100"`
	ClientID    string     `json:"client_id" validate:"required"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

func CreateProject(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createProjectReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := checkStruct(req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		var count int64
		db.Model(&models.User{}).Where("id = ?", req.ClientID).Count(&count)
		if count == 0 {
			respondError(w, http.StatusBadRequest, "client not found")
			return
		}
		if req.Status == "" {
			req.Status = models.StatusPending
		}
		p := models.Project{
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
			Progress:    req.Progress,
			ClientID:    req.ClientID,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
		}
		if err := db.Create(&p).Error; err != nil {
			respondInternal(w, lg, "create project", err)
			return
		}
		respondJSON(w, http.StatusCreated, p)
	}
}

type updateProjectReq struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Progress    *int       `json:"progress"`
	ClientID    *string    `json:"client_id"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

func UpdateProject(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateProjectReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		var p models.Project
		err := db.First(&p, "id = ?", chi.URLParam(r, "id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "project not found")
			return
		}
		if err != nil {
			respondInternal(w, lg, "get project", err)
			return
		}
		if req.Title != nil {
			p.Title = *req.Title
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.Status != nil {
			if !models.ValidStatus(*req.Status) {
				respondError(w, http.StatusBadRequest, "invalid project status")
				return
			}
			p.Status = *req.Status
		}
		if req.Progress != nil {
			if *req.Progress < 0 || *req.Progress > 100 {
				respondError(w, http.StatusBadRequest, "progress must be between 0 and 100")
				return
			}
			p.Progress = *req.Progress
		}
		if req.ClientID != nil {
			var count int64
			db.Model(&models.User{}).Where("id = ?", *req.ClientID).Count(&count)
			if count == 0 {
				respondError(w, http.StatusBadRequest, "client not found")
				return
			}
			p.ClientID = *req.ClientID
		}
		if req.StartDate != nil {
			p.StartDate = req.StartDate
		}
		if req.EndDate != nil {
			p.EndDate = req.EndDate
		}
		if err := db.Save(&p).Error; err != nil {
			respondInternal(w, lg, "update project", err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

func DeleteProject(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := db.Delete(&models.Project{}, "id = ?", chi.URLParam(r, "id"))
		if res.Error != nil {
			respondInternal(w, lg, "delete project", res.Error)
			return
		}
		if res.RowsAffected == 0 {
			respondError(w, http.StatusNotFound, "project not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
