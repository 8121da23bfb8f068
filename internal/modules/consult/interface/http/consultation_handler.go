package handler

import (
	consultRequest "SaDam/internal/modules/consult/application/dto/request"
	"SaDam/internal/modules/consult/application/service"
	"SaDam/pkg/back"
	"SaDam/pkg/xerr"
	"SaDam/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type ConsultationHandler struct {
	svc service.ConsultationService
}

func NewConsultationHandler(svc service.ConsultationService) *ConsultationHandler {
	return &ConsultationHandler{svc: svc}
}

func (h *ConsultationHandler) GetState(c *gin.Context) {
	var req consultRequest.GetStateRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	data, err := h.svc.GetState(req.UserId)
	back.Result(c, data, err)
}

func (h *ConsultationHandler) Begin(c *gin.Context) {
	var req consultRequest.BeginConsultationRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	data, err := h.svc.Begin(c.Request.Context(), req.UserId)
	back.Result(c, data, err)
}

func (h *ConsultationHandler) SendMessage(c *gin.Context) {
	var req consultRequest.SendMessageRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	data, err := h.svc.SendMessage(c.Request.Context(), req.UserId, req.Content)
	back.Result(c, data, err)
}

func (h *ConsultationHandler) End(c *gin.Context) {
	var req consultRequest.EndConsultationRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	data, err := h.svc.End(c.Request.Context(), req.UserId)
	back.Result(c, data, err)
}

func (h *ConsultationHandler) Reset(c *gin.Context) {
	var req consultRequest.ResetRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	data, err := h.svc.Reset(req.UserId)
	back.Result(c, data, err)
}
