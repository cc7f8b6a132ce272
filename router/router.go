package router

import (
	"net"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"minascan/entities"
	authCtrl "minascan/pkg/auth/controller"
	detectionCtrl "minascan/pkg/detection/controller"
	fieldCtrl "minascan/pkg/field/controller"
	imageCtrl "minascan/pkg/image/controller"
	"minascan/pkg/logger"
	"minascan/pkg/middleware"
	reportCtrl "minascan/pkg/report/controller"
	"minascan/pkg/validation"
)

// Deps carries everything the route table needs.
type Deps struct {
	Log         *logrus.Logger
	CORSOrigins []string
	// Proxies are CIDRs allowed to set X-Forwarded-For.
	Proxies []string
	// UploadsDir is served at /uploads when images live on local disk.
	UploadsDir string

	Users     middleware.UserResolver
	Auth      authCtrl.AuthController
	Field     fieldCtrl.FieldController
	Detection detectionCtrl.DetectionController
	Image     imageCtrl.ImageController
	Report    reportCtrl.ReportController
	Health    interface{ Health(echo.Context) error }
}

func New(e *echo.Echo, d Deps) *echo.Echo {
	if d.Log == nil {
		d.Log = logger.Get()
	}
	if len(d.CORSOrigins) == 0 {
		d.CORSOrigins = []string{"*"}
	}

	e.HideBanner = true
	e.IPExtractor = ipExtractor(d.Proxies, d.Log)
	e.Validator = validation.New()
	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(logger.Requests(d.Log))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: d.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoMiddleware.BodyLimit("12M"))

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "MinaScan API"})
	})
	e.GET("/health", d.Health.Health)
	if d.UploadsDir != "" {
		e.Static("/uploads", d.UploadsDir)
	}

	bearer := middleware.Bearer(d.Users)
	boss := middleware.RequireRole(entities.RoleBoss)
	employee := middleware.RequireRole(entities.RoleEmployee)

	auth := e.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.GET("/me", d.Auth.Me, bearer)
	auth.PUT("/me", d.Auth.UpdateMe, bearer)
	auth.POST("/link-employee", d.Auth.LinkEmployee, bearer, employee)
	auth.GET("/boss", d.Auth.Boss, bearer, employee)
	auth.GET("/employees", d.Auth.Employees, bearer, boss)
	auth.POST("/regenerate-linking-code", d.Auth.RegenerateLinkingCode, bearer, boss)
	auth.GET("/linking-code", d.Auth.LinkingCode, bearer, boss)

	fields := e.Group("/fields", bearer)
	fields.POST("", d.Field.Create)
	fields.GET("", d.Field.List)
	fields.GET("/boss/employees", d.Field.EmployeeFields, boss)
	fields.GET("/:id", d.Field.Get)
	fields.PUT("/:id", d.Field.Update)
	fields.DELETE("/:id", d.Field.Delete)

	det := e.Group("/detection", bearer)
	det.POST("/detect-pests", d.Detection.DetectPests)
	det.POST("/save_detection", d.Detection.Save)
	det.GET("", d.Detection.List)
	det.GET("/export", d.Detection.Export)
	det.GET("/:id", d.Detection.Get)
	det.DELETE("/:id", d.Detection.Delete)

	photo := e.Group("/photo", bearer)
	photo.POST("/upload", d.Image.Upload)
	photo.GET("", d.Image.List)
	photo.GET("/:id", d.Image.Get)
	photo.PATCH("/:id/validation", d.Image.SetValidation)
	photo.DELETE("/:id", d.Image.Delete)

	reports := e.Group("/reports", bearer)
	reports.POST("", d.Report.Create)
	reports.POST("/generate-ai", d.Report.GenerateAI)
	reports.GET("", d.Report.List)
	reports.GET("/boss/employees", d.Report.EmployeeReports, boss)
	reports.GET("/:id", d.Report.Get)
	reports.PUT("/:id", d.Report.Update)
	reports.DELETE("/:id", d.Report.Delete)
	reports.POST("/:id/export-pdf", d.Report.ExportPDF)

	return e
}

// ipExtractor takes the socket peer as client IP unless it is a listed proxy,
// in which case X-Forwarded-For is walked back to the first untrusted hop.
func ipExtractor(proxies []string, log *logrus.Logger) echo.IPExtractor {
	opts := []echo.TrustOption{echo.TrustLoopback(false), echo.TrustLinkLocal(false), echo.TrustPrivateNet(false)}
	for _, cidr := range proxies {
		_, n, err := net.ParseCIDR(cidr)
		if err != nil {
			log.WithError(err).WithField("cidr", cidr).Warn("ignoring trusted proxy")
			continue
		}
		opts = append(opts, echo.TrustIPRange(n))
	}
	if len(opts) == 3 {
		return echo.ExtractIPDirect()
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}
