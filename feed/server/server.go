package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/CPU-commits/Intranet_BSubjects/bootstrap"
	"github.com/CPU-commits/Intranet_BSubjects/controllers"
	"github.com/CPU-commits/Intranet_BSubjects/forms"
	"github.com/CPU-commits/Intranet_BSubjects/middlewares"
	"github.com/CPU-commits/Intranet_BSubjects/models"
	"github.com/CPU-commits/Intranet_BSubjects/res"
	"github.com/CPU-commits/Intranet_BSubjects/settings"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const BASE_PATH = "/api/c/subjects"

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

	router := gin.New()
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		if err, ok := recovered.(string); ok {
			c.String(http.StatusInternalServerError, fmt.Sprintf("Server Internal Error: %s", err))
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, res.Response{
			Success: false,
			Message: "Server Internal Error",
		})
	}))
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"*"},
		AllowHeaders: []string{"*"},
	}))
	// Validators
	if err := forms.InitValidators(); err != nil {
		logger.Fatal("Error init validators", zap.Error(err))
	}
	// Routes
	directiveRoles := []string{models.DIRECTOR, models.DIRECTIVE}
	subjects := router.Group(
		BASE_PATH,
		middlewares.JWTMiddleware(settingsData.JWT_SECRET_KEY),
		middlewares.RolesMiddleware(directiveRoles),
	)
	{
		// Init controllers
		subjectsController := controllers.NewSubjectsController(app.SubjectsService)
		// Define routes
		subjects.POST("/new_subject", subjectsController.NewSubject)
		subjects.PUT("/update_subject/:idSubject", subjectsController.UpdateSubject)
		subjects.DELETE("/delete_subject/:idSubject", subjectsController.DeleteSubject)
	}
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
