package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/leogretz2/bp-planner1/internal/modules/serializer"
	"github.com/leogretz2/bp-planner1/internal/modules/service"
)

type TagHandler struct {
	svc service.TagService
}

func NewTagHandler(s service.TagService) *TagHandler {
	return &TagHandler{svc: s}
}

// List godoc
//
//	@Summary	List tags
//	@Tags		tags
//	@Produce	json
//	@Success	200	{object}	serializer.Response{data=[]model.Tag}
//	@Router		/tags.list [get]
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: tags})
}

type CreateTagReq struct {
	Slug  string `json:"slug" binding:"required,slug" example:"backend"`
	Label string `json:"label" binding:"required,min=1" example:"Backend"`
}

// Create godoc
//
//	@Summary		Create tag
//	@Description	Slugs are lowercase alphanumerics joined by dashes and must be unique.
//	@Tags			tags
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.CreateTagReq	true	"CreateTag payload"
//	@Success		200		{object}	serializer.Response{data=model.Tag}
//	@Router			/tags.create [post]
func (h *TagHandler) Create(c *gin.Context) {
	req := CreateTagReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	tag, err := h.svc.Create(c.Request.Context(), service.CreateTagInput{
		Slug:  req.Slug,
		Label: req.Label,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: tag})
}
