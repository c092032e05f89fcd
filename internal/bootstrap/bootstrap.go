package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appAuth "github.com/kursroster/backend/internal/app/auth"
	appControllers "github.com/kursroster/backend/internal/app/controllers"
	appRepos "github.com/kursroster/backend/internal/app/repositories"
	appRoutes "github.com/kursroster/backend/internal/app/routes"
	appServices "github.com/kursroster/backend/internal/app/services"
	"github.com/kursroster/backend/internal/config"
	"github.com/kursroster/backend/internal/db"
	appMiddleware "github.com/kursroster/backend/internal/middleware"
	pkgAuth "github.com/kursroster/backend/internal/pkg/auth"
	"github.com/kursroster/backend/internal/pkg/logger"
	"github.com/kursroster/backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	RosterStore       appRepos.RosterStore
	Policy            *appAuth.Policy
	AuthService       appServices.AuthService
	StudentService    appServices.StudentService
	CourseService     appServices.CourseService
	AuthController    *appControllers.AuthController
	StudentController *appControllers.StudentController
	CourseController  *appControllers.CourseController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	JWTService        *pkgAuth.JWTService
	Database          *db.PostgresDB
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore builds the roster store selected by configuration and seeds it
// when requested.
func SetupStore(cfg *config.Config, lgr zerolog.Logger) (appRepos.RosterStore, *db.PostgresDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var store appRepos.RosterStore
	var database *db.PostgresDB

	switch strings.ToLower(cfg.Storage.Driver) {
	case "postgres":
		lgr.Info().Msg("Establishing database connection...")
		var err error
		database, err = db.NewPostgresDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, nil, err
		}
		store, err = appRepos.NewPostgresRosterStore(ctx, database)
		if err != nil {
			database.Close()
			return nil, nil, err
		}
		lgr.Info().Msg("Postgres roster store ready")

	case "file":
		fileStore, err := appRepos.NewFileRosterStore(cfg.Storage.FilePath)
		if err != nil {
			return nil, nil, err
		}
		store = fileStore
		lgr.Info().Str("path", cfg.Storage.FilePath).Msg("File roster store ready")

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	if cfg.Storage.Seed {
		if err := seed.CreateDefaultRoster(ctx, store, lgr); err != nil {
			// A failed seed should not keep the server from starting.
			lgr.Error().Err(err).Msg("Failed to seed sample roster, proceeding anyway...")
		}
	}

	return store, database, nil
}

// BuildDependencies initializes repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, store appRepos.RosterStore, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, RosterStore: store, Database: database}

	tokenExp, err := time.ParseDuration(cfg.JWT.TokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid token expiration: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    tokenExp,
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.Policy = appAuth.NewPolicy()

	deps.AuthService = appServices.NewAuthService(store, deps.JWTService, cfg.Auth.AdminPassword, cfg.Auth.CoursePassword)
	deps.StudentService = appServices.NewStudentService(store, deps.Policy)
	deps.CourseService = appServices.NewCourseService(store)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()
	router.Use(appMiddleware.CORS())

	// Setup Swagger. doc.json is served by the swag-generated docs package;
	// run `swag init -g cmd/api/main.go` and blank-import the resulting
	// docs package here, otherwise the UI loads without a spec.
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.CourseController,
		deps.AuthMiddleware,
	)

	return router
}
