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

func ListProducts(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var products []models.Product
		if err := db.Order("created_at desc").Find(&products).Error; err != nil {
			respondInternal(w, lg, "list products", err)
			return
		}
		respondJSON(w, http.StatusOK, products)
	}
}

func GetProduct(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p models.Product
		err := db.First(&p, "id = ?", chi.URLParam(r, "id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "product not found")
			return
		}
		if err != nil {
			respondInternal(w, lg, "get product", err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

type createProductReq struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	ImageURL1   string `json:"image_url_1"`
	ImageURL2   string `json:"image_url_2"`
}

func CreateProduct(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createProductReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := checkStruct(req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		p := models.Product{Name: req.Name, Description: req.Description, ImageURL1: req.ImageURL1, ImageURL2: req.ImageURL2}
		if err := db.Create(&p).Error; err != nil {
			respondInternal(w, lg, "create product", err)
			return
		}
		respondJSON(w, http.StatusCreated, p)
	}
}

type updateProductReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL1   *string `json:"image_url_1"`
	ImageURL2   *string `json:"image_url_2"`
}

func UpdateProduct(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateProductReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		var p models.Product
		err := db.First(&p, "id = ?", chi.URLParam(r, "id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "product not found")
			return
		}
		if err != nil {
			respondInternal(w, lg, "get product", err)
			return
		}
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.ImageURL1 != nil {
			p.ImageURL1 = *req.ImageURL1
		}
		if req.ImageURL2 != nil {
			p.ImageURL2 = *req.ImageURL2
		}
		if err := db.Save(&p).Error; err != nil {
			respondInternal(w, lg, "update product", err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

func DeleteProduct(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := db.Delete(&models.Product{}, "id = ?", chi.URLParam(r, "id"))
		if res.Error != nil {
			respondInternal(w, lg, "delete product", res.Error)
			return
		}
		if res.RowsAffected == 0 {
			respondError(w, http.StatusNotFound, "product not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
