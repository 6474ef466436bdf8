package router

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/nanami9426/officerchat/internal/push"
	"github.com/nanami9426/officerchat/internal/router/middlewares"
	"github.com/nanami9426/officerchat/internal/utils"
)

func RegisterWSRoutes(r *gin.Engine, deps Deps) {
	h := NewWSHandler(deps.Hub, deps.AllowedOrigins)
	r.GET("/ws", append(authChain(deps, middlewares.WithQueryToken()), h.Serve)...)
}

type WSHandler struct {
	hub      *push.Hub
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *push.Hub, origins []string) *WSHandler {
	allowed := originSet(origins)
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				if originAllowed(allowed, origin) {
					return true
				}
				u, err := url.Parse(origin)
				return err == nil && u.Host == r.Host
			},
		},
	}
}

// Serve
// @Summary 推送事件 WebSocket
// @Description 服务端推送 officer-chat / officer-chat-deleted 事件，客户端消息会被忽略
// @Tags push
// @Security BearerAuth
// @Param token query string false "浏览器无法设置请求头时使用"
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /ws [get]
func (h *WSHandler) Serve(c *gin.Context) {
	l := utils.LogCtx(c.Request.Context())
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		l.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := push.NewClient(uuid.NewString(), middlewares.GetUserID(c), h.hub, conn)
	if err := h.hub.Register(client); err != nil {
		l.Warn().Err(err).Msg("push hub unavailable")
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
