package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leogretz2/bp-planner1/internal/modules/serializer"
	"github.com/leogretz2/bp-planner1/internal/modules/service"
	"github.com/shopspring/decimal"
)

type WorkLogHandler struct {
	svc service.WorkLogService
}

func NewWorkLogHandler(s service.WorkLogService) *WorkLogHandler {
	return &WorkLogHandler{svc: s}
}

type CreateWorkLogReq struct {
	UserID     string           `json:"userId" binding:"required,uuid"`
	TaskID     string           `json:"taskId" binding:"required,uuid"`
	StartedAt  *time.Time       `json:"startedAt" example:"2025-06-02T09:00:00Z"`
	EndedAt    *time.Time       `json:"endedAt" example:"2025-06-02T11:30:00Z"`
	DeltaHours *decimal.Decimal `json:"deltaHours" swaggertype:"number" example:"2.5"`
	Notes      *string          `json:"notes"`
}

// Create godoc
//
//	@Summary		Log work
//	@Description	endedAt must not precede startedAt when both are given.
//	@Tags			workLogs
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.CreateWorkLogReq	true	"CreateWorkLog payload"
//	@Success		200		{object}	serializer.Response{data=model.WorkLog}
//	@Router			/workLogs.create [post]
func (h *WorkLogHandler) Create(c *gin.Context) {
	req := CreateWorkLogReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	if err := checkHours(req.DeltaHours); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	taskID, err := uuid.Parse(req.TaskID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	w, err := h.svc.Create(c.Request.Context(), service.CreateWorkLogInput{
		UserID:     userID,
		TaskID:     taskID,
		StartedAt:  req.StartedAt,
		EndedAt:    req.EndedAt,
		DeltaHours: req.DeltaHours,
		Notes:      req.Notes,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: w})
}

type ListWorkLogsReq struct {
	TaskID *string `form:"taskId" binding:"omitempty,uuid"`
	UserID *string `form:"userId" binding:"omitempty,uuid"`
}

// List godoc
//
//	@Summary	List work logs
//	@Tags		workLogs
//	@Produce	json
//	@Param		taskId	query		string	false	"Task ID"	format(uuid)
//	@Param		userId	query		string	false	"User ID"	format(uuid)
//	@Success	200		{object}	serializer.Response{data=[]model.WorkLog}
//	@Router		/workLogs.list [get]
func (h *WorkLogHandler) List(c *gin.Context) {
	req := ListWorkLogsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	taskID, err := parseOptUUID(req.TaskID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	userID, err := parseOptUUID(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	logs, err := h.svc.List(c.Request.Context(), service.ListWorkLogsInput{TaskID: taskID, UserID: userID})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: logs})
}
