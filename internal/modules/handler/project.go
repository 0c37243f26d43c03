package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leogretz2/bp-planner1/internal/modules/serializer"
	"github.com/leogretz2/bp-planner1/internal/modules/service"
)

type ProjectHandler struct {
	svc service.ProjectService
}

func NewProjectHandler(s service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: s}
}

// List godoc
//
//	@Summary	List projects
//	@Tags		projects
//	@Produce	json
//	@Success	200	{object}	serializer.Response{data=[]model.Project}
//	@Router		/projects.list [get]
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: projects})
}

type CreateProjectReq struct {
	Name        string  `json:"name" binding:"required,min=1" example:"Launch"`
	Description *string `json:"description" example:"Q3 launch plan"`
	PodID       *string `json:"pod_id" binding:"omitempty,uuid" example:"123e4567-e89b-12d3-a456-426614174000"`
}

// Create godoc
//
//	@Summary		Create project
//	@Description	New projects start as "active".
//	@Tags			projects
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.CreateProjectReq	true	"CreateProject payload"
//	@Success		200		{object}	serializer.Response{data=model.Project}
//	@Router			/projects.create [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	req := CreateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	podID, err := parseOptUUID(req.PodID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	p, err := h.svc.Create(c.Request.Context(), service.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		PodID:       podID,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: p})
}

// GetByID godoc
//
//	@Summary	Get project by id
//	@Tags		projects
//	@Produce	json
//	@Param		id	query		string	true	"Project ID"	format(uuid)
//	@Success	200	{object}	serializer.Response{data=model.Project}
//	@Router		/projects.getById [get]
func (h *ProjectHandler) GetByID(c *gin.Context) {
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
