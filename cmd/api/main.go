package main

import (
	"context"
	"os"

	appconfig "radarcnpj/cmd/internal/config"
	"radarcnpj/cmd/internal/domain/sqlite"
	"radarcnpj/cmd/internal/domain/sqlite/repository"
	"radarcnpj/cmd/internal/http/handler"
	appmiddleware "radarcnpj/cmd/internal/http/middleware"
	"radarcnpj/cmd/internal/infrastructure/radar"
	"radarcnpj/cmd/internal/infrastructure/receitaws"
	"radarcnpj/cmd/internal/service"
	"radarcnpj/cmd/internal/service/jobs"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const envVarsPrefix = "/radarcnpj/prod/"

func main() {
	// Loads env vars depending on environment
	if os.Getenv("GO_ENV") == "production" {
		loadProdEnv() // AWS SSM Parameter Store
	} else {
		// Loads from .env
		err := godotenv.Load()
		if err != nil {
			panic(err)
		}
	}

	cfg := appconfig.Load()
	if cfg.RadarToken == "" || cfg.RadarURL == "" {
		log.Warn("API_TOKEN or URL_RADAR not set, habilitation lookups will fail until configured")
	}

	validate := validator.New()

	// Init SQLite
	db, err := sqlite.Init(cfg.DatabasePath)
	if err != nil {
		panic(err)
	}
	if err := sqlite.SeedAdminUser(db); err != nil {
		panic(err)
	}

	// Upstream clients
	receitaClient := receitaws.NewClient()
	radarClient := radar.NewClient(cfg.RadarURL, cfg.RadarToken)

	// Repositories
	consultaRepo := repository.NewConsultationRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// Services
	consultaService := service.NewConsultaService(radarClient, receitaClient, consultaRepo, userRepo, auditRepo, cfg.RetentionDays)
	historicoService := service.NewHistoricoService(consultaRepo)
	userService := service.NewUserService(userRepo, validate, cfg.JWTSecret)

	// Handlers
	consultaRoutes := handler.NewConsultaDefault(consultaService, receitaClient, radarClient)
	historicoRoutes := handler.NewHistoricoDefault(historicoService)
	userRoutes := handler.NewUserDefault(userService)

	authRequired := appmiddleware.NewAuthMiddleware(&appmiddleware.AuthMiddlewareConfig{
		JWTSecret: cfg.JWTSecret,
		UserRepo:  userRepo,
	})
	adminOnly := appmiddleware.NewAdminMiddleware()

	// Background sweep of expired cache rows
	cleanerCtx, stopCleaner := context.WithCancel(context.Background())
	defer stopCleaner()
	cleaner := jobs.NewConsultationCleaner(consultaRepo, cfg.RetentionDays)
	go cleaner.Start(cleanerCtx)

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("1M"))

	// Auth
	e.POST("/auth/login", userRoutes.Login)
	e.GET("/auth/me", userRoutes.Me, authRequired)

	// Consultation
	e.GET("/consulta-completa", consultaRoutes.GetConsultaCompleta, authRequired)
	e.GET("/consulta-receitaws", consultaRoutes.GetReceitaWS)
	e.GET("/consulta-radar", consultaRoutes.GetRadar)

	// History
	e.GET("/historico", historicoRoutes.GetHistorico, authRequired)
	e.GET("/historico/datas", historicoRoutes.GetHistoricoDatas, authRequired)

	// Admin panel
	e.GET("/admin/usuarios", userRoutes.GetUsers, authRequired, adminOnly)
	e.POST("/admin/usuarios", userRoutes.CreateUser, authRequired, adminOnly)
	e.PUT("/admin/usuarios/:id", userRoutes.UpdateUser, authRequired, adminOnly)
	e.DELETE("/admin/usuarios/:id", userRoutes.DeleteUser, authRequired, adminOnly)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	if err := e.Start(":" + cfg.Port); err != nil {
		panic(err)
	}
}

func loadProdEnv() {
	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion("us-east-2"))
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})
	if err != nil {
		log.Fatalf("unable to load prod environment, %v", err)
	}

	prefixLength := len(envVarsPrefix)
	// Export vars
	for _, param := range out.Parameters {
		key := (*param.Name)[prefixLength:]
		value := *param.Value
		enverr := os.Setenv(key, value)
		if enverr != nil {
			log.Fatalf("unable to set environment variable, %v", enverr)
		}
	}
	log.Debugf("loaded %d prod environment variables", len(out.Parameters))
}

func healthCheckRoute(c echo.Context) error {
	return c.String(200, "OK")
}
