package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/leogretz2/bp-planner1/internal/modules/model"
	"github.com/leogretz2/bp-planner1/internal/modules/serializer"
	"github.com/leogretz2/bp-planner1/internal/modules/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) List(ctx context.Context, in service.ListTasksInput) ([]*model.Task, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Task), args.Error(1)
}

func (m *MockTaskService) Create(ctx context.Context, in service.CreateTaskInput) (*model.Task, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) AssignTask(ctx context.Context, in service.AssignTaskInput) (*model.TaskAssignment, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaskAssignment), args.Error(1)
}

func (m *MockTaskService) ListAssignments(ctx context.Context, taskID uuid.UUID) ([]*model.TaskAssignment, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.TaskAssignment), args.Error(1)
}

func (m *MockTaskService) UpdateStatus(ctx context.Context, in service.UpdateTaskStatusInput) (*model.Task, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) AddTag(ctx context.Context, in service.TaskTagInput) (*service.TaskTagOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TaskTagOutput), args.Error(1)
}

func (m *MockTaskService) RemoveTag(ctx context.Context, in service.TaskTagInput) (*service.TaskTagOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TaskTagOutput), args.Error(1)
}

func (m *MockTaskService) ListTags(ctx context.Context, taskID uuid.UUID) ([]*model.Tag, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Tag), args.Error(1)
}

func TestTaskHandler_List(t *testing.T) {
	projectID := uuid.New()
	assigneeID := uuid.New()

	tests := []struct {
		name           string
		query          string
		setup          func(*MockTaskService)
		expectedStatus int
	}{
		{
			name:  "success - no filters",
			query: "",
			setup: func(svc *MockTaskService) {
				svc.On("List", mock.Anything, mock.MatchedBy(func(in service.ListTasksInput) bool {
					return in.ProjectID == nil && in.AssigneeID == nil && len(in.Status) == 0
				})).Return([]*model.Task{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "success - all filters",
			query: "?projectId=" + projectID.String() + "&assigneeId=" + assigneeID.String() + "&status=todo&status=done",
			setup: func(svc *MockTaskService) {
				svc.On("List", mock.Anything, mock.MatchedBy(func(in service.ListTasksInput) bool {
					return *in.ProjectID == projectID &&
						*in.AssigneeID == assigneeID &&
						assert.ObjectsAreEqual([]string{"todo", "done"}, in.Status)
				})).Return([]*model.Task{{ID: uuid.New(), Status: "todo"}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "error - malformed project id",
			query:          "?projectId=nope",
			setup:          func(svc *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockTaskService{}
			tt.setup(svc)

			rec := serve(http.MethodGet, "/tasks.list", NewTaskHandler(svc).List, "/tasks.list"+tt.query, "")

			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_Create(t *testing.T) {
	projectID := uuid.New()

	tests := []struct {
		name           string
		body           string
		setup          func(*MockTaskService)
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "success - dates and numeric hours",
			body: `{"projectId":"` + projectID.String() + `","title":"Write spec","dueDate":"2025-06-30","estimatedHours":1.5}`,
			setup: func(svc *MockTaskService) {
				svc.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateTaskInput) bool {
					return in.ProjectID == projectID &&
						in.Title == "Write spec" &&
						in.StartDate == nil &&
						in.DueDate.String() == "2025-06-30" &&
						in.EstimatedHours.String() == "1.5"
				})).Return(&model.Task{ID: uuid.New(), Title: "Write spec", Status: "todo", Priority: 3}, nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp serializer.Response
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				data := resp.Data.(map[string]interface{})
				assert.Equal(t, "todo", data["status"])
				assert.Equal(t, float64(3), data["priority"])
			},
		},
		{
			name: "success - hours as string",
			body: `{"projectId":"` + projectID.String() + `","title":"x","estimatedHours":"2.25"}`,
			setup: func(svc *MockTaskService) {
				svc.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateTaskInput) bool {
					return in.EstimatedHours.String() == "2.25"
				})).Return(&model.Task{ID: uuid.New()}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "error - bad date",
			body:           `{"projectId":"` + projectID.String() + `","title":"x","dueDate":"30/06/2025"}`,
			setup:          func(svc *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "error - missing title",
			body:           `{"projectId":"` + projectID.String() + `"}`,
			setup:          func(svc *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "error - hours exponent too large",
			body:           `{"projectId":"` + projectID.String() + `","title":"x","estimatedHours":"1e50000000"}`,
			setup:          func(svc *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "error - hours with too many digits",
			body:           `{"projectId":"` + projectID.String() + `","title":"x","estimatedHours":"1.` + strings.Repeat("1", 40) + `"}`,
			setup:          func(svc *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "error - missing project",
			body:           `{"title":"x"}`,
			setup:          func(svc *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "error - unknown project",
			body: `{"projectId":"` + projectID.String() + `","title":"x"}`,
			setup: func(svc *MockTaskService) {
				svc.On("Create", mock.Anything, mock.Anything).Return(nil, service.ErrConstraint)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockTaskService{}
			tt.setup(svc)

			rec := serve(http.MethodPost, "/tasks.create", NewTaskHandler(svc).Create, "/tasks.create", tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, rec)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_AssignTask(t *testing.T) {
	taskID, userID := uuid.New(), uuid.New()

	svc := &MockTaskService{}
	svc.On("AssignTask", mock.Anything, mock.MatchedBy(func(in service.AssignTaskInput) bool {
		return in.TaskID == taskID && in.UserID == userID && in.Role == nil && in.PlannedDay.String() == "2025-06-02"
	})).Return(&model.TaskAssignment{ID: uuid.New(), TaskID: taskID, UserID: userID, Role: "assignee"}, nil)

	body := `{"taskId":"` + taskID.String() + `","userId":"` + userID.String() + `","plannedDay":"2025-06-02"}`
	rec := serve(http.MethodPost, "/tasks.assignTask", NewTaskHandler(svc).AssignTask, "/tasks.assignTask", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestTaskHandler_AssignTask_HoursOutOfRange(t *testing.T) {
	svc := &MockTaskService{}

	body := `{"taskId":"` + uuid.NewString() + `","userId":"` + uuid.NewString() + `","estimatedHours":"1e-50000000"}`
	rec := serve(http.MethodPost, "/tasks.assignTask", NewTaskHandler(svc).AssignTask, "/tasks.assignTask", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "AssignTask", mock.Anything, mock.Anything)
}

func TestTaskHandler_UpdateStatus(t *testing.T) {
	taskID := uuid.New()

	tests := []struct {
		name           string
		body           string
		setup          func(*MockTaskService)
		expectedStatus int
		expectNull     bool
	}{
		{
			name: "success",
			body: `{"taskId":"` + taskID.String() + `","status":"done"}`,
			setup: func(svc *MockTaskService) {
				svc.On("UpdateStatus", mock.Anything, service.UpdateTaskStatusInput{TaskID: taskID, Status: "done"}).
					Return(&model.Task{ID: taskID, Status: "done"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unknown task yields null",
			body: `{"taskId":"` + taskID.String() + `","status":"done"}`,
			setup: func(svc *MockTaskService) {
				svc.On("UpdateStatus", mock.Anything, mock.Anything).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectNull:     true,
		},
		{
			name:           "error - empty status",
			body:           `{"taskId":"` + taskID.String() + `","status":""}`,
			setup:          func(svc *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockTaskService{}
			tt.setup(svc)

			rec := serve(http.MethodPost, "/tasks.updateStatus", NewTaskHandler(svc).UpdateStatus, "/tasks.updateStatus", tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectNull {
				var resp serializer.Response
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Nil(t, resp.Data)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_Tags(t *testing.T) {
	taskID, tagID := uuid.New(), uuid.New()
	in := service.TaskTagInput{TaskID: taskID, TagID: tagID}
	body := `{"taskId":"` + taskID.String() + `","tagId":"` + tagID.String() + `"}`

	svc := &MockTaskService{}
	svc.On("AddTag", mock.Anything, in).Return(&service.TaskTagOutput{TaskID: taskID, TagID: tagID, Changed: false}, nil)
	svc.On("RemoveTag", mock.Anything, in).Return(&service.TaskTagOutput{TaskID: taskID, TagID: tagID, Changed: true}, nil)
	svc.On("ListTags", mock.Anything, taskID).Return([]*model.Tag{{ID: tagID, Slug: "backend", Label: "Backend"}}, nil)
	h := NewTaskHandler(svc)

	rec := serve(http.MethodPost, "/tasks.addTag", h.AddTag, "/tasks.addTag", body)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp serializer.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp.Data.(map[string]interface{})["changed"])

	rec = serve(http.MethodPost, "/tasks.removeTag", h.RemoveTag, "/tasks.removeTag", body)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp.Data.(map[string]interface{})["changed"])

	rec = serve(http.MethodGet, "/tasks.listTags", h.ListTags, "/tasks.listTags?taskId="+taskID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(http.MethodGet, "/tasks.listTags", h.ListTags, "/tasks.listTags", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.AssertExpectations(t)
}
