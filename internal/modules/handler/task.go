package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leogretz2/bp-planner1/internal/modules/model"
	"github.com/leogretz2/bp-planner1/internal/modules/serializer"
	"github.com/leogretz2/bp-planner1/internal/modules/service"
	"github.com/shopspring/decimal"
)

type TaskHandler struct {
	svc service.TaskService
}

func NewTaskHandler(s service.TaskService) *TaskHandler {
	return &TaskHandler{svc: s}
}

type ListTasksReq struct {
	ProjectID  *string  `form:"projectId" json:"projectId" binding:"omitempty,uuid"`
	AssigneeID *string  `form:"assigneeId" json:"assigneeId" binding:"omitempty,uuid"`
	Status     []string `form:"status" json:"status" binding:"omitempty,dive,min=1" example:"todo,in_progress"`
}

// List godoc
//
//	@Summary		List tasks
//	@Description	Filters combine with AND; absent filters match everything. At most 500 rows, unordered.
//	@Tags			tasks
//	@Produce		json
//	@Param			projectId	query		string		false	"Project ID"	format(uuid)
//	@Param			assigneeId	query		string		false	"Only tasks with an assignment for this user"	format(uuid)
//	@Param			status		query		[]string	false	"Status set"	collectionFormat(multi)
//	@Success		200			{object}	serializer.Response{data=[]model.Task}
//	@Router			/tasks.list [get]
func (h *TaskHandler) List(c *gin.Context) {
	req := ListTasksReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	projectID, err := parseOptUUID(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	assigneeID, err := parseOptUUID(req.AssigneeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	tasks, err := h.svc.List(c.Request.Context(), service.ListTasksInput{
		ProjectID:  projectID,
		AssigneeID: assigneeID,
		Status:     req.Status,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: tasks})
}

type CreateTaskReq struct {
	ProjectID      string           `json:"projectId" binding:"required,uuid"`
	Title          string           `json:"title" binding:"required,min=1" example:"Write spec"`
	Description    *string          `json:"description"`
	StartDate      *string          `json:"startDate" binding:"omitempty,datetime=2006-01-02" example:"2025-06-01"`
	DueDate        *string          `json:"dueDate" binding:"omitempty,datetime=2006-01-02" example:"2025-06-30"`
	EstimatedHours *decimal.Decimal `json:"estimatedHours" swaggertype:"number" example:"1.5"`
}

// Create godoc
//
//	@Summary		Create task
//	@Description	New tasks start as "todo" with priority 3.
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.CreateTaskReq	true	"CreateTask payload"
//	@Success		200		{object}	serializer.Response{data=model.Task}
//	@Router			/tasks.create [post]
func (h *TaskHandler) Create(c *gin.Context) {
	req := CreateTaskReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	if err := checkHours(req.EstimatedHours); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	startDate, err := model.ParseDatePtr(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	dueDate, err := model.ParseDatePtr(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	task, err := h.svc.Create(c.Request.Context(), service.CreateTaskInput{
		ProjectID:      projectID,
		Title:          req.Title,
		Description:    req.Description,
		StartDate:      startDate,
		DueDate:        dueDate,
		EstimatedHours: req.EstimatedHours,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: task})
}

// GetByID godoc
//
//	@Summary	Get task by id
//	@Tags		tasks
//	@Produce	json
//	@Param		id	query		string	true	"Task ID"	format(uuid)
//	@Success	200	{object}	serializer.Response{data=model.Task}
//	@Router		/tasks.getById [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
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

	task, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: task})
}

type AssignTaskReq struct {
	TaskID         string           `json:"taskId" binding:"required,uuid"`
	UserID         string           `json:"userId" binding:"required,uuid"`
	Role           *string          `json:"role" binding:"omitempty,min=1" example:"assignee"`
	PlannedDay     *string          `json:"plannedDay" binding:"omitempty,datetime=2006-01-02" example:"2025-06-02"`
	EstimatedHours *decimal.Decimal `json:"estimatedHours" swaggertype:"number" example:"2"`
}

// AssignTask godoc
//
//	@Summary		Assign task
//	@Description	Always inserts a new assignment; the same user may be assigned to a task more than once.
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.AssignTaskReq	true	"AssignTask payload"
//	@Success		200		{object}	serializer.Response{data=model.TaskAssignment}
//	@Router			/tasks.assignTask [post]
func (h *TaskHandler) AssignTask(c *gin.Context) {
	req := AssignTaskReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	if err := checkHours(req.EstimatedHours); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	taskID, err := uuid.Parse(req.TaskID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	plannedDay, err := model.ParseDatePtr(req.PlannedDay)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	a, err := h.svc.AssignTask(c.Request.Context(), service.AssignTaskInput{
		TaskID:         taskID,
		UserID:         userID,
		Role:           req.Role,
		PlannedDay:     plannedDay,
		EstimatedHours: req.EstimatedHours,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: a})
}

type TaskIDQuery struct {
	TaskID string `form:"taskId" binding:"required,uuid"`
}

func (q TaskIDQuery) parse() (uuid.UUID, error) {
	return uuid.Parse(q.TaskID)
}

// ListAssignments godoc
//
//	@Summary	List assignments of a task
//	@Tags		tasks
//	@Produce	json
//	@Param		taskId	query		string	true	"Task ID"	format(uuid)
//	@Success	200		{object}	serializer.Response{data=[]model.TaskAssignment}
//	@Router		/tasks.listAssignments [get]
func (h *TaskHandler) ListAssignments(c *gin.Context) {
	req := TaskIDQuery{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	taskID, err := req.parse()
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	items, err := h.svc.ListAssignments(c.Request.Context(), taskID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: items})
}

type UpdateTaskStatusReq struct {
	TaskID string `json:"taskId" binding:"required,uuid"`
	Status string `json:"status" binding:"required,min=1" example:"in_progress"`
}

// UpdateStatus godoc
//
//	@Summary		Update task status
//	@Description	Returns the updated task, or null data when no task has the given id.
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.UpdateTaskStatusReq	true	"UpdateTaskStatus payload"
//	@Success		200		{object}	serializer.Response{data=model.Task}
//	@Router			/tasks.updateStatus [post]
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	req := UpdateTaskStatusReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	taskID, err := uuid.Parse(req.TaskID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	task, err := h.svc.UpdateStatus(c.Request.Context(), service.UpdateTaskStatusInput{
		TaskID: taskID,
		Status: req.Status,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: task})
}

type TaskTagReq struct {
	TaskID string `json:"taskId" binding:"required,uuid"`
	TagID  string `json:"tagId" binding:"required,uuid"`
}

func (r TaskTagReq) input() (service.TaskTagInput, error) {
	taskID, err := uuid.Parse(r.TaskID)
	if err != nil {
		return service.TaskTagInput{}, err
	}
	tagID, err := uuid.Parse(r.TagID)
	if err != nil {
		return service.TaskTagInput{}, err
	}
	return service.TaskTagInput{TaskID: taskID, TagID: tagID}, nil
}

// AddTag godoc
//
//	@Summary		Attach tag to task
//	@Description	Re-adding an attached tag is a no-op and reports changed=false.
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.TaskTagReq	true	"TaskTag payload"
//	@Success		200		{object}	serializer.Response{data=service.TaskTagOutput}
//	@Router			/tasks.addTag [post]
func (h *TaskHandler) AddTag(c *gin.Context) {
	req := TaskTagReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	in, err := req.input()
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.AddTag(c.Request.Context(), in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// RemoveTag godoc
//
//	@Summary	Detach tag from task
//	@Tags		tasks
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		handler.TaskTagReq	true	"TaskTag payload"
//	@Success	200		{object}	serializer.Response{data=service.TaskTagOutput}
//	@Router		/tasks.removeTag [post]
func (h *TaskHandler) RemoveTag(c *gin.Context) {
	req := TaskTagReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	in, err := req.input()
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.RemoveTag(c.Request.Context(), in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// ListTags godoc
//
//	@Summary	List tags of a task
//	@Tags		tasks
//	@Produce	json
//	@Param		taskId	query		string	true	"Task ID"	format(uuid)
//	@Success	200		{object}	serializer.Response{data=[]model.Tag}
//	@Router		/tasks.listTags [get]
func (h *TaskHandler) ListTags(c *gin.Context) {
	req := TaskIDQuery{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	taskID, err := req.parse()
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	tags, err := h.svc.ListTags(c.Request.Context(), taskID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: tags})
}
