package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"visiotech/internal/auth"
	"visiotech/internal/models"
)

type registerReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type authResp struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token,omitempty"`
}

// Register is public self-registration. The role is always CLIENT here; only
// an administrator can create users with an explicit role.
func Register(db *gorm.DB, tokens *auth.Tokens, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerReq
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
		u := models.User{Name: req.Name, Email: req.Email, PasswordHash: hash, Role: models.RoleClient}
		if err := db.Create(&u).Error; err != nil {
			respondInternal(w, lg, "create user", err)
			return
		}
		tok, err := tokens.Issue(u.ID, u.Role)
		if err != nil {
			respondInternal(w, lg, "issue token", err)
			return
		}
		respondJSON(w, http.StatusCreated, authResp{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Token: tok})
	}
}

type loginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func Login(db *gorm.DB, tokens *auth.Tokens, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := checkStruct(req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		var u models.User
		err := db.First(&u, "email = ?", strings.TrimSpace(strings.ToLower(req.Email))).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				respondInternal(w, lg, "lookup user", err)
				return
			}
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if err := auth.CheckPassword(u.PasswordHash, req.Password); err != nil {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		tok, err := tokens.Issue(u.ID, u.Role)
		if err != nil {
			respondInternal(w, lg, "issue token", err)
			return
		}
		respondJSON(w, http.StatusOK, authResp{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Token: tok})
	}
}

func Me(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := auth.Subject(r.Context())
		var u models.User
		if err := db.First(&u, "id = ?", sub).Error; err != nil {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		respondJSON(w, http.StatusOK, authResp{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
	}
}
