package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leogretz2/bp-planner1/internal/modules/serializer"
	"github.com/leogretz2/bp-planner1/internal/modules/service"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{svc: s}
}

// List godoc
//
//	@Summary	List users
//	@Tags		users
//	@Produce	json
//	@Success	200	{object}	serializer.Response{data=[]model.User}
//	@Router		/users.list [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: users})
}

type CreateUserReq struct {
	Email       string  `json:"email" binding:"required,email" example:"ana@example.com"`
	DisplayName *string `json:"display_name" example:"Ana"`
	Role        *string `json:"role" binding:"omitempty,min=1" example:"member"`
}

// Create godoc
//
//	@Summary		Create user
//	@Description	Role defaults to "member". A duplicate email is rejected with 409.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.CreateUserReq	true	"CreateUser payload"
//	@Success		200		{object}	serializer.Response{data=model.User}
//	@Router			/users.create [post]
func (h *UserHandler) Create(c *gin.Context) {
	req := CreateUserReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	u, err := h.svc.Create(c.Request.Context(), service.CreateUserInput{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Role:        req.Role,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: u})
}

// GetByID godoc
//
//	@Summary	Get user by id
//	@Tags		users
//	@Produce	json
//	@Param		id	query		string	true	"User ID"	format(uuid)
//	@Success	200	{object}	serializer.Response{data=model.User}
//	@Router		/users.getById [get]
func (h *UserHandler) GetByID(c *gin.Context) {
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

	u, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: u})
}
