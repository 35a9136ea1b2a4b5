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

func ListMediaAssets(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var assets []models.MediaAsset
		if err := db.Order("created_at desc").Find(&assets).Error; err != nil {
			respondInternal(w, lg, "list media assets", err)
			return
		}
		respondJSON(w, http.StatusOK, assets)
	}
}

func GetMediaAsset(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var m models.MediaAsset
		err := db.First(&m, "id = ?", chi.URLParam(r, "id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "media asset not found")
			return
		}
		if err != nil {
			respondInternal(w, lg, "get media asset", err)
			return
		}
		respondJSON(w, http.StatusOK, m)
	}
}

type createMediaAssetReq struct {
	URL        string  `json:"url" validate:"required"`
	AltText    string  `json:"alt_text" validate:"required"`
	SolutionID *string `json:"solution_id"`
	ProductID  *string `json:"product_id"`
}

func CreateMediaAsset(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMediaAssetReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := checkStruct(req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		m := models.MediaAsset{URL: req.URL, AltText: req.AltText, SolutionID: req.SolutionID, ProductID: req.ProductID}
		if err := db.Create(&m).Error; err != nil {
			respondInternal(w, lg, "create media asset", err)
			return
		}
		respondJSON(w, http.StatusCreated, m)
	}
}

type updateMediaAssetReq struct {
	URL        *string `json:"url"`
	AltText    *string `json:"alt_text"`
	SolutionID *string `json:"solution_id"`
	ProductID  *string `json:"product_id"`
}

func UpdateMediaAsset(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateMediaAssetReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		var m models.MediaAsset
		err := db.First(&m, "id = ?", chi.URLParam(r, "id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "media asset not found")
			return
		}
		if err != nil {
			respondInternal(w, lg, "get media asset", err)
			return
		}
		if req.URL != nil {
			m.URL = *req.URL
		}
		if req.AltText != nil {
			m.AltText = *req.AltText
		}
		if req.SolutionID != nil {
			if *req.SolutionID == "" {
				m.SolutionID = nil
			} else {
				m.SolutionID = req.SolutionID
			}
		}
		if req.ProductID != nil {
			if *req.ProductID == "" {
				m.ProductID = nil
			} else {
				m.ProductID = req.ProductID
			}
		}
		if err := db.Save(&m).Error; err != nil {
			respondInternal(w, lg, "update media asset", err)
			return
		}
		respondJSON(w, http.StatusOK, m)
	}
}

func DeleteMediaAsset(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := db.Delete(&models.MediaAsset{}, "id = ?", chi.URLParam(r, "id"))
		if res.Error != nil {
			respondInternal(w, lg, "delete media asset", res.Error)
			return
		}
		if res.RowsAffected == 0 {
			respondError(w, http.StatusNotFound, "media asset not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
