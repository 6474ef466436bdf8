package router

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nanami9426/officerchat/internal/models"
	"github.com/nanami9426/officerchat/internal/response"
	"github.com/nanami9426/officerchat/internal/router/middlewares"
	"github.com/nanami9426/officerchat/internal/service"
	"github.com/nanami9426/officerchat/internal/utils"
)

func RegisterLeoRoutes(r *gin.Engine, deps Deps) {
	h := &LeoHandler{chat: deps.Chat, duty: deps.Duty}
	leo := r.Group("/leo", authChain(deps)...)
	leo.GET("/officer-chat", h.ListOfficerChat)
	leo.POST("/officer-chat", h.CreateOfficerChat)
	leo.DELETE("/officer-chat/:id", h.DeleteOfficerChat)
	leo.GET("/active-officer", h.ActiveOfficer)
}

type LeoHandler struct {
	chat *service.OfficerChatService
	duty service.DutyResolver
}

type OfficerChatListResp struct {
	Success bool                      `json:"success" example:"true"`
	Data    []*models.OfficerChatView `json:"data"`
}

type OfficerChatResp struct {
	Success bool                    `json:"success" example:"true"`
	Data    *models.OfficerChatView `json:"data"`
}

type DeleteOfficerChatResp struct {
	Success bool `json:"success" example:"true"`
	Data    bool `json:"data" example:"true"`
}

// ListOfficerChat
// @Summary 获取警员聊天记录
// @Description 返回最近 100 条消息，按时间正序
// @Tags leo
// @Produce json
// @Security BearerAuth
// @Success 200 {object} OfficerChatListResp
// @Failure 400 {object} response.Response "mustBeOnDuty"
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /leo/officer-chat [get]
func (h *LeoHandler) ListOfficerChat(c *gin.Context) {
	list, err := h.chat.List(c.Request.Context(), middlewares.GetUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, list)
}

// CreateOfficerChat
// @Summary 发送警员聊天消息
// @Tags leo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateOfficerChatRequest true "消息内容，1-1000 字符"
// @Success 200 {object} OfficerChatResp
// @Failure 400 {object} response.Response "mustBeOnDuty 或参数校验失败"
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /leo/officer-chat [post]
func (h *LeoHandler) CreateOfficerChat(c *gin.Context) {
	var req service.CreateOfficerChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailParam(c, http.StatusBadRequest, utils.StatInvalidParam, "invalid request body", "message", err)
		return
	}
	view, err := h.chat.Create(c.Request.Context(), middlewares.GetUserID(c), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, view)
}

// DeleteOfficerChat
// @Summary 删除自己单位发送的消息
// @Tags leo
// @Produce json
// @Security BearerAuth
// @Param id path string true "消息ID"
// @Success 200 {object} DeleteOfficerChatResp
// @Failure 400 {object} response.Response "mustBeOnDuty / cannotDeleteMessage / canOnlyDeleteOwnMessages"
// @Failure 404 {object} response.Response "messageNotFound"
// @Router /leo/officer-chat/{id} [delete]
func (h *LeoHandler) DeleteOfficerChat(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusNotFound, utils.StatNotFound, service.ErrMessageNotFound.Error(), nil)
		return
	}
	ok, err := h.chat.Delete(c.Request.Context(), middlewares.GetUserID(c), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, ok)
}

// ActiveOfficer
// @Summary 当前用户的在岗单位
// @Description 不在岗时 data 为 null
// @Tags leo
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /leo/active-officer [get]
func (h *LeoHandler) ActiveOfficer(c *gin.Context) {
	unit, err := h.duty.ActiveUnit(c.Request.Context(), middlewares.GetUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	// a typed nil still encodes as "data": null
	response.Success(c, unit)
}

func writeServiceError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		response.FailParam(c, http.StatusBadRequest, utils.StatInvalidParam, verr.Reason, verr.Field, nil)
	case errors.Is(err, service.ErrMustBeOnDuty):
		response.Fail(c, http.StatusBadRequest, utils.StatPreconditionFailed, err.Error(), nil)
	case errors.Is(err, service.ErrMessageNotFound):
		response.Fail(c, http.StatusNotFound, utils.StatNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrCannotDeleteMessage):
		response.Fail(c, http.StatusBadRequest, utils.StatInvalidParam, err.Error(), nil)
	case errors.Is(err, service.ErrCanOnlyDeleteOwnMessages):
		response.Fail(c, http.StatusBadRequest, utils.StatForbidden, err.Error(), nil)
	default:
		l := utils.LogCtx(c.Request.Context())
		l.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		response.Fail(c, http.StatusInternalServerError, utils.StatInternalError, "", err)
	}
}
