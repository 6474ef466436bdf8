package service

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nanami9426/officerchat/internal/response"
	"github.com/nanami9426/officerchat/internal/utils"
)

type HealthzResp struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
}

// Healthz
// @Summary 健康检查
// @Tags system
// @Produce json
// @Success 200 {object} response.Response{data=HealthzResp}
// @Failure 503 {object} response.Response
// @Router /healthz [get]
func Healthz(c *gin.Context) {
	resp := HealthzResp{Status: "ok", Database: "ok"}
	if utils.DB == nil {
		response.Fail(c, http.StatusServiceUnavailable, utils.StatDatabaseError, "database not initialized", nil)
		return
	}
	sqlDB, err := utils.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		response.Fail(c, http.StatusServiceUnavailable, utils.StatDatabaseError, "database unavailable", err)
		return
	}
	response.Success(c, resp)
}
