package middlewares

import (
	"net/http"
	"strings"

	"github.com/CPU-commits/Intranet_BSubjects/res"
	"github.com/CPU-commits/Intranet_BSubjects/services"
	"github.com/gin-gonic/gin"
)

func JWTMiddleware(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		bearer := ctx.GetHeader("Authorization")
		token := strings.TrimPrefix(bearer, "Bearer ")
		if bearer == "" || token == bearer {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, &res.Response{
				Success: false,
				Message: "Unauthorized",
			})
			return
		}

		claims, err := services.ParseToken(token, secret)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, &res.Response{
				Success: false,
				Message: err.Error(),
			})
			return
		}
		ctx.Set(services.CLAIMS_KEY, claims)
		ctx.Next()
	}
}
