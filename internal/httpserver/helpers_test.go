package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"visiotech/internal/auth"
	"visiotech/internal/config"
	"visiotech/internal/models"
)

type testEnv struct {
	db     *gorm.DB
	router http.Handler
	cfg    *config.Config
	tokens *auth.Tokens
}

func setupEnv(t *testing.T) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Solution{},
		&models.Product{},
		&models.CaseStudy{},
		&models.MediaAsset{},
		&models.DemoRequest{},
		&models.Project{},
	))

	cfg := &config.Config{
		DatabaseURL: "test",
		HTTPPort:    "0",
		JWTSecret:   []byte("test-secret"),
		JWTTTL:      time.Hour,
		UploadDir:   t.TempDir(),
	}
	return testEnv{
		db:     db,
		router: NewRouter(db, cfg, zap.NewNop().Sugar()),
		cfg:    cfg,
		tokens: auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL),
	}
}

func (e testEnv) createUser(t *testing.T, name, email, role string) models.User {
	t.Helper()
	hash, err := auth.HashPassword("password1")
	require.NoError(t, err)
	u := models.User{Name: name, Email: email, PasswordHash: hash, Role: role}
	require.NoError(t, e.db.Create(&u).Error)
	return u
}

func (e testEnv) tokenFor(t *testing.T, u models.User) string {
	t.Helper()
	tok, err := e.tokens.Issue(u.ID, u.Role)
	require.NoError(t, err)
	return tok
}

func (e testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}
