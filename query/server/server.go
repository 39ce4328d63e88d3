package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/CPU-commits/Intranet_BSubjects/bootstrap"
	"github.com/CPU-commits/Intranet_BSubjects/middlewares"
	"github.com/CPU-commits/Intranet_BSubjects/models"
	controllers_query "github.com/CPU-commits/Intranet_BSubjects/query/controllers"
	"github.com/CPU-commits/Intranet_BSubjects/res"
	"github.com/CPU-commits/Intranet_BSubjects/settings"
	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const BASE_PATH = "/api/c/subjects"

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, &res.Response{
		Success: false,
		Message: "Too many requests. Try again in " + time.Until(info.ResetTime).String(),
	})
}

func Init() {
	settingsData := settings.GetSettings()
	// Zap logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	// Services
	ctx := context.Background()
	app, err := bootstrap.Init(ctx, bootstrap.ConfigFromSettings(), logger)
	if err != nil {
		logger.Fatal("Error init subjects service", zap.Error(err))
	}
	defer app.Close(ctx)
	// Nats
	if app.Nats != nil {
		if err := app.SubjectsService.SubscribeNats(app.Nats); err != nil {
			logger.Fatal("Error subscribing nats", zap.Error(err))
		}
	}

	router := gin.New()
	// Proxies
	router.SetTrustedProxies([]string{"localhost"})
	router.Use(ginzap.GinzapWithConfig(logger, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{BASE_PATH + "/healthz"},
	}))
	router.Use(ginzap.RecoveryWithZap(logger, true))

	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		if err, ok := recovered.(string); ok {
			c.String(http.StatusInternalServerError, fmt.Sprintf("Server Internal Error: %s", err))
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, res.Response{
			Success: false,
			Message: "Server Internal Error",
		})
	}))
	// CORS
	httpOrigin := "http://" + settingsData.CLIENT_URL
	httpsOrigin := "https://" + settingsData.CLIENT_URL
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{httpOrigin, httpsOrigin},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
		AllowWebSockets:  false,
		MaxAge:           12 * time.Hour,
	}))
	// Secure
	sslUrl := "ssl." + settingsData.CLIENT_URL
	router.Use(secure.New(secure.Config{
		SSLHost:              sslUrl,
		STSSeconds:           315360000,
		STSIncludeSubdomains: true,
		FrameDeny:            true,
		ContentTypeNosniff:   true,
		BrowserXssFilter:     true,
		IENoOpen:             true,
		ReferrerPolicy:       "strict-origin-when-cross-origin",
		SSLProxyHeaders: map[string]string{
			"X-Fowarded-Proto": "https",
		},
	}))
	// Rate limit
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Second,
		Limit: 7,
	})
	router.Use(ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: ErrorHandler,
		KeyFunc:      keyFunc,
	}))
	// Routes
	subjects := router.Group(
		BASE_PATH,
		middlewares.JWTMiddleware(settingsData.JWT_SECRET_KEY),
	)
	exportRoles := []string{
		models.DIRECTOR,
		models.DIRECTIVE,
		models.TEACHER,
	}
	{
		// Init controllers
		subjectsController := controllers_query.NewSubjectsController(app.SubjectsService)
		// Define routes
		subjects.GET("/get_subjects", subjectsController.GetSubjects)
		subjects.GET("/get_subject/:idSubject", subjectsController.GetSubject)
		subjects.GET("/exists/:idSubject", subjectsController.ExistsSubject)
		subjects.GET("/count", subjectsController.CountSubjects)
		subjects.GET("/search", subjectsController.Search)
		subjects.GET(
			"/export",
			middlewares.RolesMiddleware(exportRoles),
			subjectsController.ExportSubjects,
		)
	}
	// Route healthz
	router.GET(BASE_PATH+"/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, &res.Response{
			Success: true,
		})
	})
	// No route
	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(404, res.Response{
			Success: false,
			Message: "Not found",
		})
	})
	// Init server
	if err := router.Run(); err != nil {
		log.Fatalf("Error init server")
	}
}
