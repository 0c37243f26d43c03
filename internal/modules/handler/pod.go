package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leogretz2/bp-planner1/internal/modules/serializer"
	"github.com/leogretz2/bp-planner1/internal/modules/service"
)

type PodHandler struct {
	svc service.PodService
}

func NewPodHandler(s service.PodService) *PodHandler {
	return &PodHandler{svc: s}
}

// List godoc
//
//	@Summary	List pods
//	@Tags		pods
//	@Produce	json
//	@Success	200	{object}	serializer.Response{data=[]model.Pod}
//	@Router		/pods.list [get]
func (h *PodHandler) List(c *gin.Context) {
	pods, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: pods})
}

type CreatePodReq struct {
	Name      string  `json:"name" binding:"required,min=1" example:"Platform"`
	ManagerID *string `json:"manager_id" binding:"omitempty,uuid" example:"123e4567-e89b-12d3-a456-426614174000"`
}

// Create godoc
//
//	@Summary	Create pod
//	@Tags		pods
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		handler.CreatePodReq	true	"CreatePod payload"
//	@Success	200		{object}	serializer.Response{data=model.Pod}
//	@Router		/pods.create [post]
func (h *PodHandler) Create(c *gin.Context) {
	req := CreatePodReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	managerID, err := parseOptUUID(req.ManagerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	p, err := h.svc.Create(c.Request.Context(), service.CreatePodInput{
		Name:      req.Name,
		ManagerID: managerID,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: p})
}

// GetByID godoc
//
//	@Summary	Get pod by id
//	@Tags		pods
//	@Produce	json
//	@Param		id	query		string	true	"Pod ID"	format(uuid)
//	@Success	200	{object}	serializer.Response{data=model.Pod}
//	@Router		/pods.getById [get]
func (h *PodHandler) GetByID(c *gin.Context) {
	req := IDReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	p, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: p})
}
