package main

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"minascan/config"
	"minascan/router"

	// Rules/LLM
	"minascan/pkg/ai"

	// Auth
	authCtrlImp "minascan/pkg/auth/controllerImp"
	authRepoImp "minascan/pkg/auth/repositoryImp"
	authSvcImp "minascan/pkg/auth/serviceImp"
	"minascan/pkg/auth/token"
	"minascan/pkg/ratelimit"

	// Field
	fieldCtrlImp "minascan/pkg/field/controllerImp"
	fieldRepoImp "minascan/pkg/field/repositoryImp"
	fieldSvcImp "minascan/pkg/field/serviceImp"

	// Detection
	detectionCtrlImp "minascan/pkg/detection/controllerImp"
	"minascan/pkg/detection/inference"
	detectionRepoImp "minascan/pkg/detection/repositoryImp"
	detectionSvcImp "minascan/pkg/detection/serviceImp"

	// Image
	imageCtrlImp "minascan/pkg/image/controllerImp"
	imageRepoImp "minascan/pkg/image/repositoryImp"
	imageSvcImp "minascan/pkg/image/serviceImp"
	"minascan/pkg/image/storage"

	// Report
	reportCtrlImp "minascan/pkg/report/controllerImp"
	reportRepoImp "minascan/pkg/report/repositoryImp"
	reportSvcImp "minascan/pkg/report/serviceImp"

	// Health
	healthCtrlImp "minascan/pkg/health/controllerImp"
)

// newServer builds every feature package and the route table. The returned
// cleanup releases external clients.
func newServer(cfg config.AppConfig, db *gorm.DB, lg *logrus.Logger) (*echo.Echo, func(), error) {
	var closers []func() error
	cleanup := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				lg.WithError(err).Warn("cleanup")
			}
		}
	}

	tokens, err := token.NewManager(cfg.SecretKey, cfg.Algorithm, time.Duration(cfg.AccessTokenMinutes)*time.Minute)
	if err != nil {
		return nil, cleanup, err
	}

	// Login limiter (redis when configured)
	extras := map[string]healthCtrlImp.Check{}
	limiter := ratelimit.NewMemory()
	if cfg.RedisURL != "" {
		rl, err := ratelimit.NewRedis(cfg.RedisURL)
		if err != nil {
			return nil, cleanup, err
		}
		limiter = rl
		if p, ok := rl.(interface{ Ping(context.Context) error }); ok {
			extras["redis"] = p.Ping
		}
		if c, ok := rl.(interface{ Close() error }); ok {
			closers = append(closers, c.Close)
		}
	}

	// Detector (mock fallback)
	var detector inference.Detector
	if cfg.InferenceAPIKey != "" {
		detector = inference.NewRoboflow(cfg.InferenceURL, cfg.InferenceAPIKey, cfg.InferenceWorkspace, cfg.InferenceWorkflow)
	} else {
		lg.Warn("INFERENCE_API_KEY not set, using mock detector")
		detector = inference.NewMock()
	}

	// LLM (mock fallback)
	var llm ai.Client
	switch {
	case cfg.GeminiAPIKey != "":
		llm = ai.NewGemini("", cfg.GeminiAPIKey, cfg.GeminiModel)
	case cfg.LLMEndpoint != "" && cfg.LLMAPIKey != "":
		llm = ai.NewOpenAI(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel)
	default:
		lg.Warn("no AI key set, using mock report writer")
		llm = ai.NewMock()
	}

	// Object store
	var store storage.ObjectStore
	uploadsDir := ""
	switch cfg.StorageDriver {
	case "gcs":
		gcs := storage.NewGCS(cfg.StorageBucket, cfg.StorageCredentialsFile, cfg.StorageProjectID, cfg.StoragePublicBaseURL)
		if err := gcs.Check(); err != nil {
			lg.WithError(err).Warn("object store credentials incomplete; uploads will fail")
		}
		closers = append(closers, gcs.Close)
		store = gcs
	case "local":
		local, err := storage.NewLocal(cfg.StorageLocalDir, cfg.StoragePublicBaseURL)
		if err != nil {
			return nil, cleanup, err
		}
		uploadsDir = local.Dir()
		store = local
	default:
		return nil, cleanup, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	// Repos/Services
	authSvc := authSvcImp.NewAuthService(authRepoImp.New(db), tokens)
	fieldSvc := fieldSvcImp.NewFieldService(fieldRepoImp.New(db))
	detectionSvc := detectionSvcImp.NewDetectionService(detectionRepoImp.New(db), fieldSvc, detector)
	imageSvc := imageSvcImp.NewImageService(imageRepoImp.New(db), store)
	reportSvc := reportSvcImp.NewReportService(reportRepoImp.New(db), fieldSvc, detectionSvc, llm, cfg.ReportsDir)

	// Router
	e := router.New(echo.New(), router.Deps{
		Log:         lg,
		CORSOrigins: cfg.CORSOrigins,
		Proxies:     cfg.TrustedProxies,
		UploadsDir:  uploadsDir,
		Users:       authSvc,
		Auth:        authCtrlImp.NewAuthController(authSvc, limiter),
		Field:       fieldCtrlImp.New(fieldSvc, authSvc),
		Detection:   detectionCtrlImp.New(detectionSvc),
		Image:       imageCtrlImp.New(imageSvc),
		Report:      reportCtrlImp.New(reportSvc, authSvc),
		Health:      healthCtrlImp.NewHealthCtrl(db, extras),
	})
	return e, cleanup, nil
}
