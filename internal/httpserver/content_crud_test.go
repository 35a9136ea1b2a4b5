package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"visiotech/internal/models"
)

func TestSolutionCRUD(t *testing.T) {
	env := setupEnv(t)
	admin := env.createUser(t, "Admin", "admin@x.com", models.RoleAdmin)
	client := env.createUser(t, "C", "c@x.com", models.RoleClient)
	adminTok := env.tokenFor(t, admin)

	// Reads are public, writes are admin-only.
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/solutions", "", nil).Code)
	require.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodPost, "/api/solutions", "", map[string]string{"title": "T", "description": "D"}).Code)
	require.Equal(t, http.StatusForbidden, env.do(t, http.MethodPost, "/api/solutions", env.tokenFor(t, client), map[string]string{"title": "T", "description": "D"}).Code)

	rec := env.do(t, http.MethodPost, "/api/solutions", adminTok, map[string]string{
		"title": "Visual Inspection", "description": "AI inspection", "image_url": "/uploads/x.png",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var s models.Solution
	decodeBody(t, rec, &s)
	require.NotEmpty(t, s.ID)

	rec = env.do(t, http.MethodGet, "/api/solutions/"+s.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Merge update: description untouched, image cleared by an explicit empty.
	rec = env.do(t, http.MethodPut, "/api/solutions/"+s.ID, adminTok, map[string]string{
		"title": "Visual Inspection v2", "image_url": "",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Solution
	require.NoError(t, env.db.First(&got, "id = ?", s.ID).Error)
	require.Equal(t, "Visual Inspection v2", got.Title)
	require.Equal(t, "AI inspection", got.Description)
	require.Empty(t, got.ImageURL)

	require.Equal(t, http.StatusNotFound, env.do(t, http.MethodPut, "/api/solutions/missing", adminTok, map[string]string{"title": "x"}).Code)
	require.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/api/solutions/"+s.ID, adminTok, nil).Code)
	require.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, "/api/solutions/"+s.ID, adminTok, nil).Code)
	require.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/solutions/"+s.ID, "", nil).Code)
}

func TestProductCRUD(t *testing.T) {
	env := setupEnv(t)
	admin := env.createUser(t, "Admin", "admin@x.com", models.RoleAdmin)
	adminTok := env.tokenFor(t, admin)

	rec := env.do(t, http.MethodPost, "/api/products", adminTok, map[string]string{
		"name": "Vision Inspect Pro", "description": "High-speed line inspection",
		"image_url_1": "/uploads/a.png", "image_url_2": "/uploads/b.png",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var p models.Product
	decodeBody(t, rec, &p)

	rec = env.do(t, http.MethodPut, "/api/products/"+p.ID, adminTok, map[string]string{"image_url_2": ""})
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Product
	require.NoError(t, env.db.First(&got, "id = ?", p.ID).Error)
	require.Equal(t, "/uploads/a.png", got.ImageURL1)
	require.Empty(t, got.ImageURL2)

	require.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/api/products", adminTok, map[string]string{"name": "NoDesc"}).Code)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/products", "", nil).Code)
	require.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/api/products/"+p.ID, adminTok, nil).Code)
}

func TestCaseStudyCRUD(t *testing.T) {
	env := setupEnv(t)
	admin := env.createUser(t, "Admin", "admin@x.com", models.RoleAdmin)
	adminTok := env.tokenFor(t, admin)

	sol := models.Solution{Title: "S", Description: "d"}
	require.NoError(t, env.db.Create(&sol).Error)

	rec := env.do(t, http.MethodPost, "/api/case-studies", adminTok, map[string]interface{}{
		"title": "Plant retrofit", "description": "d",
		"before_image": "/uploads/before.png", "after_image": "/uploads/after.png",
		"metrics":     map[string]interface{}{"defect_rate": "-37%"},
		"solution_id": sol.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var cs models.CaseStudy
	decodeBody(t, rec, &cs)
	require.NotNil(t, cs.SolutionID)

	// The optional relation clears on an explicit empty id.
	rec = env.do(t, http.MethodPut, "/api/case-studies/"+cs.ID, adminTok, map[string]interface{}{"solution_id": ""})
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.CaseStudy
	require.NoError(t, env.db.First(&got, "id = ?", cs.ID).Error)
	require.Nil(t, got.SolutionID)

	// Deleting the referenced solution leaves the case study dangling but readable.
	require.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/api/solutions/"+sol.ID, adminTok, nil).Code)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/case-studies/"+cs.ID, "", nil).Code)

	require.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/api/case-studies", adminTok, map[string]interface{}{"title": "x"}).Code)
}

func TestMediaAssetCRUD(t *testing.T) {
	env := setupEnv(t)
	admin := env.createUser(t, "Admin", "admin@x.com", models.RoleAdmin)
	adminTok := env.tokenFor(t, admin)

	prod := models.Product{Name: "P", Description: "d"}
	require.NoError(t, env.db.Create(&prod).Error)

	rec := env.do(t, http.MethodPost, "/api/media-assets", adminTok, map[string]interface{}{
		"url": "/uploads/m.png", "alt_text": "machine", "product_id": prod.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var m models.MediaAsset
	decodeBody(t, rec, &m)
	require.NotNil(t, m.ProductID)
	require.Nil(t, m.SolutionID)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/media-assets/"+m.ID, "", nil).Code)
	require.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/api/media-assets", adminTok, map[string]string{"url": "/uploads/m.png"}).Code)
	require.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/api/media-assets/"+m.ID, adminTok, nil).Code)
	require.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, "/api/media-assets/"+m.ID, adminTok, nil).Code)
}

func TestDemoRequests(t *testing.T) {
	env := setupEnv(t)
	admin := env.createUser(t, "Admin", "admin@x.com", models.RoleAdmin)
	client := env.createUser(t, "C", "c@x.com", models.RoleClient)
	adminTok := env.tokenFor(t, admin)

	// Anonymous submission.
	rec := env.do(t, http.MethodPost, "/api/demo-requests", "", map[string]string{
		"name": "Lead", "email": "lead@corp.com", "company": "Corp", "message": "demo please",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var anon models.DemoRequest
	decodeBody(t, rec, &anon)
	require.Nil(t, anon.UserID)

	// Authenticated submission links the user.
	rec = env.do(t, http.MethodPost, "/api/demo-requests", env.tokenFor(t, client), map[string]string{
		"name": "C", "email": "c@x.com", "company": "Corp", "message": "demo please",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var linked models.DemoRequest
	decodeBody(t, rec, &linked)
	require.NotNil(t, linked.UserID)
	require.Equal(t, client.ID, *linked.UserID)

	// Listing is admin-only.
	require.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/demo-requests", "", nil).Code)
	require.Equal(t, http.StatusForbidden, env.do(t, http.MethodGet, "/api/demo-requests", env.tokenFor(t, client), nil).Code)
	rec = env.do(t, http.MethodGet, "/api/demo-requests", adminTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.DemoRequest
	decodeBody(t, rec, &list)
	require.Len(t, list, 2)

	require.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/api/demo-requests", "", map[string]string{"name": "x"}).Code)
	require.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/api/demo-requests/"+anon.ID, adminTok, nil).Code)
	require.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, "/api/demo-requests/"+anon.ID, adminTok, nil).Code)
}
