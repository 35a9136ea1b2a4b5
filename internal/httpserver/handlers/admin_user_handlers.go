package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"visiotech/internal/auth"
	"visiotech/internal/models"
)

// Admin-only user management. PasswordHash carries `json:"-"` so no response
// here can leak it.

func ListUsers(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var users []models.User
		if err := db.Order("created_at desc").Find(&users).Error; err != nil {
			respondInternal(w, lg, "list users", err)
			return
		}
		respondJSON(w, http.StatusOK, users)
	}
}

func GetUser(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var u models.User
		err := db.First(&u, "id = ?", chi.URLParam(r, "id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		if err != nil {
			respondInternal(w, lg, "get user", err)
			return
		}
		respondJSON(w, http.StatusOK, u)
	}
}

type createUserReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=CLIENT ADMIN"`
}

func CreateUser(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if err := checkStruct(req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		var count int64
		db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
		if count > 0 {
			respondError(w, http.StatusBadRequest, "user already exists")
			return
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			respondInternal(w, lg, "hash password", err)
			return
		}
		u := models.User{Name: req.Name, Email: req.Email, PasswordHash: hash, Role: req.Role}
		if err := db.Create(&u).Error; err != nil {
			respondInternal(w, lg, "create user", err)
			return
		}
		respondJSON(w, http.StatusCreated, u)
	}
}

type updateUserReq struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	Password *string `json:"password"`
}

func UpdateUser(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateUserReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		var u models.User
		err := db.First(&u, "id = ?", chi.URLParam(r, "id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		if err != nil {
			respondInternal(w, lg, "get user", err)
			return
		}
		if req.Name != nil {
			u.Name = *req.Name
		}
		if req.Email != nil {
			email := strings.TrimSpace(strings.ToLower(*req.Email))
			if email != u.Email {
				var count int64
				db.Model(&models.User{}).Where("email = ?", email).Count(&count)
				if count > 0 {
					respondError(w, http.StatusBadRequest, "user already exists")
					return
				}
			}
			u.Email = email
		}
		if req.Role != nil {
			if !models.ValidRole(*req.Role) {
				respondError(w, http.StatusBadRequest, "role must be one of: CLIENT ADMIN")
				return
			}
			u.Role = *req.Role
		}
		// A blank password is ignored rather than cleared; an empty hash is
		// never a valid credential.
		if req.Password != nil && *req.Password != "" {
			hash, err := auth.HashPassword(*req.Password)
			if err != nil {
				respondInternal(w, lg, "hash password", err)
				return
			}
			u.PasswordHash = hash
		}
		if err := db.Save(&u).Error; err != nil {
			respondInternal(w, lg, "update user", err)
			return
		}
		respondJSON(w, http.StatusOK, u)
	}
}

func DeleteUser(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := db.Delete(&models.User{}, "id = ?", chi.URLParam(r, "id"))
		if res.Error != nil {
			respondInternal(w, lg, "delete user", res.Error)
			return
		}
		if res.RowsAffected == 0 {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
