package router

import (
	"github.com/gin-gonic/gin"
	"github.com/nanami9426/officerchat/internal/docs"
	"github.com/nanami9426/officerchat/internal/push"
	"github.com/nanami9426/officerchat/internal/router/middlewares"
	"github.com/nanami9426/officerchat/internal/service"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Deps struct {
	Chat           *service.OfficerChatService
	Duty           service.DutyResolver
	Hub            *push.Hub
	JWTSecret      []byte
	CookieName     string
	AllowedOrigins []string
}

func Router(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middlewares.RecoveryMiddleware(),
		middlewares.LoggingMiddleware(),
		CORSMiddleware(deps.AllowedOrigins),
	)

	docs.SwaggerInfo.BasePath = "/"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
	r.GET("/healthz", service.Healthz)

	RegisterLeoRoutes(r, deps)
	RegisterWSRoutes(r, deps)
	return r
}

func authChain(deps Deps, opts ...middlewares.AuthOption) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		middlewares.AuthMiddleware(deps.JWTSecret, deps.CookieName, opts...),
		middlewares.RequirePermission("Leo"),
	}
}
