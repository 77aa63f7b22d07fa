package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/caresync/patient-records/internal/api/handler"
	"github.com/caresync/patient-records/internal/api/middleware"
	"github.com/caresync/patient-records/internal/core/domain"
	"github.com/caresync/patient-records/internal/core/ports"
	"github.com/caresync/patient-records/internal/infrastructure/http/handlers"
)

// Dependencies carries everything the router needs; services are constructed
// once at startup and injected here.
type Dependencies struct {
	AuthService    ports.AuthService
	PatientService ports.PatientService
	SummaryService ports.SummaryService
	Tokens         ports.TokenService

	Mongo *mongo.Database
	Redis *redis.Client

	// PublicReads restores the legacy open-read behaviour: when true, GET
	// endpoints skip the auth gate. Default (false) requires a token for
	// every patient operation.
	PublicReads bool

	// Metrics overrides the prometheus registry for the request-level
	// middleware. Nil uses the default registry.
	Metrics prometheus.Registerer

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "caresync",
		Registerer: deps.Metrics,
	}))

	authHandler := handler.NewAuthHandler(deps.AuthService)
	patientHandler := handler.NewPatientHandler(deps.PatientService)
	summaryHandler := handler.NewSummaryHandler(deps.SummaryService)

	authMW := middleware.Auth(deps.Tokens)
	nurseOnly := middleware.RBAC(domain.RoleNurse)
	moodRoles := middleware.RBAC(domain.RoleNurse, domain.RolePatient)

	var readMW []echo.MiddlewareFunc
	if !deps.PublicReads {
		readMW = append(readMW, authMW)
	}

	// --- API routes ---
	apiGroup := e.Group("/api")
	apiGroup.POST("/register", authHandler.Register)
	apiGroup.POST("/login", authHandler.Login)

	apiGroup.POST("/patients", patientHandler.Create, authMW, nurseOnly)
	apiGroup.GET("/patients", patientHandler.List, readMW...)
	apiGroup.GET("/patients/:id", patientHandler.Get, readMW...)
	apiGroup.POST("/patients/:id/medications", patientHandler.AddMedication, authMW, nurseOnly)
	apiGroup.GET("/patients/:id/medications", patientHandler.ListMedications, readMW...)
	apiGroup.POST("/patients/:id/moods", patientHandler.AddMoodLog, authMW, moodRoles)
	apiGroup.GET("/patients/:id/summary", summaryHandler.Summary, readMW...)
	apiGroup.GET("/patients/:id/recommendation", summaryHandler.Recommendation, readMW...)

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
