package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nanami9426/officerchat/internal/duty"
	"github.com/nanami9426/officerchat/internal/push"
	"github.com/nanami9426/officerchat/internal/router"
	"github.com/nanami9426/officerchat/internal/service"
	"github.com/nanami9426/officerchat/internal/utils"
	"github.com/redis/go-redis/v9"
)

// @title Officer Chat API
// @version 1.0
// @description LEO 警员聊天接口
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	utils.InitConfig()
	utils.InitLogger()
	gin.SetMode(utils.V.GetString("server.mode"))

	secret := utils.V.GetString("auth.jwt_secret")
	if secret == "" {
		utils.Log.Fatal().Msg("auth.jwt_secret is required")
	}
	if err := utils.InitIDNode(utils.V.GetInt64("snowflake.node")); err != nil {
		utils.Log.Fatal().Err(err).Msg("invalid snowflake node")
	}
	utils.InitDB()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := push.NewHub(push.Config{
		PingInterval:   utils.V.GetDuration("websocket.ping_interval"),
		PongWait:       utils.V.GetDuration("websocket.pong_wait"),
		WriteWait:      utils.V.GetDuration("websocket.write_wait"),
		MaxMessageSize: utils.V.GetInt64("websocket.max_message_size"),
	})
	go hub.Run(ctx)

	var rdb *redis.Client
	needRedis := utils.V.GetString("push.driver") == "redis" || utils.V.GetDuration("duty.cache_ttl") > 0
	if needRedis {
		client, err := utils.NewRedisClient(ctx)
		if err != nil {
			utils.Log.Fatal().Err(err).Msg("redis unavailable")
		}
		rdb = client
		defer rdb.Close()
	}

	var publisher push.Publisher = hub
	switch driver := utils.V.GetString("push.driver"); driver {
	case "local":
	case "redis":
		broker := push.NewRedisBroker(rdb, utils.V.GetString("push.channel"))
		publisher = broker
		go func() {
			if err := broker.Relay(ctx, hub); err != nil {
				utils.Log.Error().Err(err).Msg("push relay stopped")
			}
		}()
	default:
		utils.Log.Fatal().Str("driver", driver).Msg("unsupported push driver")
	}

	var resolver service.DutyResolver = duty.NewGormResolver()
	if ttl := utils.V.GetDuration("duty.cache_ttl"); ttl > 0 {
		resolver = duty.NewCachedResolver(duty.NewGormResolver(), rdb, ttl)
	}

	r := router.Router(router.Deps{
		Chat:           service.NewOfficerChatService(resolver, push.NewNotifier(publisher)),
		Duty:           resolver,
		Hub:            hub,
		JWTSecret:      []byte(secret),
		CookieName:     utils.V.GetString("auth.cookie_name"),
		AllowedOrigins: utils.V.GetStringSlice("cors.allowed_origins"),
	})

	srv := &http.Server{
		Addr:              utils.V.GetString("server.addr"),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		utils.Log.Info().Str("addr", srv.Addr).Msg("officer chat api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	utils.Log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
