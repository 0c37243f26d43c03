package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leogretz2/bp-planner1/internal/modules/serializer"
	"github.com/leogretz2/bp-planner1/internal/modules/service"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(s service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: s}
}

type EnqueueNotificationReq struct {
	UserID  string `json:"userId" binding:"required,uuid"`
	Payload string `json:"payload" binding:"required,min=1" example:"{\"kind\":\"task_assigned\"}"`
}

// Enqueue godoc
//
//	@Summary		Queue notification
//	@Description	Stores an unsent notification and announces it on the broker when one is configured.
//	@Tags			notifications
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.EnqueueNotificationReq	true	"EnqueueNotification payload"
//	@Success		200		{object}	serializer.Response{data=model.Notification}
//	@Router			/notifications.enqueue [post]
func (h *NotificationHandler) Enqueue(c *gin.Context) {
	req := EnqueueNotificationReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	n, err := h.svc.Enqueue(c.Request.Context(), service.EnqueueNotificationInput{
		UserID:  userID,
		Payload: req.Payload,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: n})
}

type ListPendingReq struct {
	UserID string `form:"userId" binding:"required,uuid"`
}

// ListPending godoc
//
//	@Summary	List pending notifications
//	@Tags		notifications
//	@Produce	json
//	@Param		userId	query		string	true	"User ID"	format(uuid)
//	@Success	200		{object}	serializer.Response{data=[]model.Notification}
//	@Router		/notifications.listPending [get]
func (h *NotificationHandler) ListPending(c *gin.Context) {
	req := ListPendingReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	items, err := h.svc.ListPending(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: items})
}
