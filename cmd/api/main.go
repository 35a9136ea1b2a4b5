package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"visiotech/internal/auth"
	"visiotech/internal/config"
	"visiotech/internal/httpserver"
	"visiotech/internal/logger"
	"visiotech/internal/models"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		logger.New("").Fatalw("config load failed", "error", err)
	}
	lg := logger.New(cfg.LogLevel)
	defer lg.Sync()

	// Deletes are hard and may orphan dependent rows; referential integrity
	// is deliberately not enforced at the schema level.
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		lg.Fatalw("db connect failed", "error", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Solution{},
		&models.Product{},
		&models.CaseStudy{},
		&models.MediaAsset{},
		&models.DemoRequest{},
		&models.Project{},
	); err != nil {
		lg.Fatalw("automigrate failed", "error", err)
	}
	seedDefaultAdmin(db, lg)
	seedStarterContent(db, lg)

	router := httpserver.NewRouter(db, cfg, lg)
	lg.Infow("listening", "port", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		lg.Fatalw("server stopped", "error", err)
	}
}

func seedDefaultAdmin(db *gorm.DB, lg *zap.SugaredLogger) {
	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}
	hash, err := auth.HashPassword("admin123")
	if err != nil {
		lg.Errorw("seed admin hash failed", "error", err)
		return
	}
	u := models.User{
		Name:         "Admin User",
		Email:        "admin@visiotech.com",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&u).Error; err != nil {
		lg.Errorw("seed admin failed", "error", err)
		return
	}
	lg.Infow("seeded default admin", "email", u.Email)
}

// seedStarterContent populates the public content tables so a fresh install
// has something to show. It runs only when no solutions exist yet.
func seedStarterContent(db *gorm.DB, lg *zap.SugaredLogger) {
	var count int64
	db.Model(&models.Solution{}).Count(&count)
	if count > 0 {
		return
	}

	hash, err := auth.HashPassword("client123")
	if err != nil {
		lg.Errorw("seed client hash failed", "error", err)
		return
	}
	client := models.User{
		Name:         "Client User",
		Email:        "client@visiotech.com",
		PasswordHash: hash,
		Role:         models.RoleClient,
	}
	if err := db.Create(&client).Error; err != nil {
		lg.Errorw("seed client failed", "error", err)
		return
	}

	inspection := models.Solution{
		Title:       "Industrial Visual Inspection",
		Description: "AI-powered visual inspection systems that detect defects, anomalies, and deviations in manufacturing processes.",
		ImageURL:    "https://images.unsplash.com/photo-1517048676732-d65bc937f952",
	}
	defectDetection := models.Solution{
		Title:       "AI Defect Detection",
		Description: "Deep learning models trained on vast datasets to recognize even the most subtle imperfections.",
		ImageURL:    "https://images.unsplash.com/photo-1593642632777-277ac02e1de5",
	}
	for _, s := range []*models.Solution{&inspection, &defectDetection} {
		if err := db.Create(s).Error; err != nil {
			lg.Errorw("seed solution failed", "error", err)
			return
		}
	}

	visionPro := models.Product{
		Name:        "Vision Inspect Pro",
		Description: "An advanced AI inspection system for high-speed manufacturing lines.",
		ImageURL1:   "https://images.unsplash.com/photo-1581091226065-225ad7575217",
		ImageURL2:   "https://images.unsplash.com/photo-1531844973345-5645532454a3",
	}
	roboGuide := models.Product{
		Name:        "RoboGuide AI",
		Description: "Vision-guided robotics solution that enhances the precision and autonomy of industrial robots.",
		ImageURL1:   "https://images.unsplash.com/photo-1581091870631-f925b4b1a4a4",
		ImageURL2:   "https://images.unsplash.com/photo-1520607162513-774438312759",
	}
	for _, p := range []*models.Product{&visionPro, &roboGuide} {
		if err := db.Create(p).Error; err != nil {
			lg.Errorw("seed product failed", "error", err)
			return
		}
	}

	assets := []models.MediaAsset{
		{URL: inspection.ImageURL, AltText: "Industrial Visual Inspection", SolutionID: &inspection.ID},
		{URL: defectDetection.ImageURL, AltText: "AI Defect Detection", SolutionID: &defectDetection.ID},
		{URL: visionPro.ImageURL1, AltText: "Vision Inspect Pro", ProductID: &visionPro.ID},
	}
	for i := range assets {
		if err := db.Create(&assets[i]).Error; err != nil {
			lg.Errorw("seed media asset failed", "error", err)
			return
		}
	}

	study := models.CaseStudy{
		Title:       "Automotive Factory Inspection",
		Description: "Implemented an AI vision system for a leading automotive manufacturer.",
		BeforeImage: "https://images.unsplash.com/photo-1550608552-0c9f13c6b2b4",
		AfterImage:  "https://images.unsplash.com/photo-1521737711867-e6f7762692e8",
		Metrics:     models.JSONB(`{"Defect Reduction": 45, "Inspection Speed": 120}`),
		SolutionID:  &inspection.ID,
	}
	if err := db.Create(&study).Error; err != nil {
		lg.Errorw("seed case study failed", "error", err)
		return
	}

	demo := models.DemoRequest{
		Name:    "John Doe",
		Email:   "john.doe@example.com",
		Company: "Example Corp",
		Message: "I would like to request a demo of your industrial visual inspection system.",
		UserID:  &client.ID,
	}
	if err := db.Create(&demo).Error; err != nil {
		lg.Errorw("seed demo request failed", "error", err)
		return
	}

	lg.Infow("seeded starter content",
		"solutions", 2, "products", 2, "media_assets", len(assets), "case_studies", 1)
}
