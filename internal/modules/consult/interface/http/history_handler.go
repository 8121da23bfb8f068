package handler

import (
	consultRequest "SaDam/internal/modules/consult/application/dto/request"
	"SaDam/internal/modules/consult/application/service"
	"SaDam/pkg/back"
	"SaDam/pkg/xerr"
	"SaDam/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	svc service.HistoryService
}

func NewHistoryHandler(svc service.HistoryService) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

func (h *HistoryHandler) GetSessionList(c *gin.Context) {
	var req consultRequest.GetSessionListRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	data, err := h.svc.GetSessionList(req.UserId, req.Limit)
	back.Result(c, data, err)
}

func (h *HistoryHandler) GetSessionDetail(c *gin.Context) {
	var req consultRequest.GetSessionDetailRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	data, err := h.svc.GetSessionDetail(req.SessionId)
	back.Result(c, data, err)
}
