package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leogretz2/bp-planner1/internal/config"
	"github.com/leogretz2/bp-planner1/internal/infra/db"
	"github.com/leogretz2/bp-planner1/internal/middleware"
	"github.com/leogretz2/bp-planner1/internal/modules/handler"
	"github.com/leogretz2/bp-planner1/internal/modules/repo"
	"github.com/leogretz2/bp-planner1/internal/modules/service"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Code int             `json:"code"`
	Data json.RawMessage `json:"data"`
	Msg  string          `json:"msg"`
}

type apiClient struct {
	t *testing.T
	r *gin.Engine
}

func (a apiClient) call(method, path, body string) (int, envelope) {
	a.t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/api/v1/"+path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	a.r.ServeHTTP(w, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

// id posts a mutation expected to succeed and returns the created row's id.
func (a apiClient) id(path, body string) string {
	a.t.Helper()
	code, env := a.call(http.MethodPost, path, body)
	require.Equal(a.t, http.StatusOK, code, string(env.Data))
	var row struct {
		ID string `json:"id"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &row))
	require.NotEmpty(a.t, row.ID)
	return row.ID
}

func rows(t *testing.T, env envelope) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func newTestRouter(t *testing.T, limiter *middleware.RateLimiter) apiClient {
	t.Helper()
	return newTestRouterWithConfig(t, &config.Config{App: config.AppConfig{Name: "planner-test"}}, limiter)
}

func newTestRouterWithConfig(t *testing.T, appCfg *config.Config, limiter *middleware.RateLimiter) apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := db.Options()
	cfg.Logger = logger.Default.LogMode(logger.Silent)
	gdb, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), cfg)
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gdb.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.Migrate(gdb))

	log := zap.NewNop()
	r, err := NewRouter(RouterDeps{
		Config:              appCfg,
		Log:                 log,
		RateLimiter:         limiter,
		UserHandler:         handler.NewUserHandler(service.NewUserService(repo.NewUserRepo(gdb))),
		PodHandler:          handler.NewPodHandler(service.NewPodService(repo.NewPodRepo(gdb))),
		ProjectHandler:      handler.NewProjectHandler(service.NewProjectService(repo.NewProjectRepo(gdb))),
		TagHandler:          handler.NewTagHandler(service.NewTagService(repo.NewTagRepo(gdb))),
		TaskHandler:         handler.NewTaskHandler(service.NewTaskService(repo.NewTaskRepo(gdb), log)),
		WorkLogHandler:      handler.NewWorkLogHandler(service.NewWorkLogService(repo.NewWorkLogRepo(gdb))),
		NotificationHandler: handler.NewNotificationHandler(service.NewNotificationService(repo.NewNotificationRepo(gdb), nil, service.NotificationRoute{}, log)),
	})
	require.NoError(t, err)
	return apiClient{t: t, r: r}
}

func TestHealth(t *testing.T) {
	api := newTestRouter(t, nil)
	w := httptest.NewRecorder()
	api.r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUsers(t *testing.T) {
	api := newTestRouter(t, nil)

	code, env := api.call(http.MethodPost, "users.create", `{"email":"a@x.io"}`)
	require.Equal(t, http.StatusOK, code)
	var u map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &u))
	assert.Equal(t, "member", u["role"])
	assert.Equal(t, "a@x.io", u["email"])

	code, _ = api.call(http.MethodPost, "users.create", `{"email":"a@x.io"}`)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = api.call(http.MethodPost, "users.create", `{"email":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	_, env = api.call(http.MethodGet, "users.list", "")
	assert.Len(t, rows(t, env), 1)

	code, env = api.call(http.MethodGet, "users.getById?id="+u["id"].(string), "")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "a@x.io")

	code, env = api.call(http.MethodGet, "users.getById?id=6f1e7d0c-8a55-4b3f-9d8e-2a6b1c0f9e11", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "null", string(env.Data))
}

func TestProjectTaskFlow(t *testing.T) {
	api := newTestRouter(t, nil)

	userID := api.id("users.create", `{"email":"u@x.io"}`)
	podID := api.id("pods.create", `{"name":"Platform","manager_id":"`+userID+`"}`)
	projectID := api.id("projects.create", `{"name":"Launch","pod_id":"`+podID+`"}`)

	_, env := api.call(http.MethodGet, "projects.getById?id="+projectID, "")
	assert.Contains(t, string(env.Data), `"status":"active"`)

	taskID := api.id("tasks.create", `{"projectId":"`+projectID+`","title":"Write spec","dueDate":"2025-06-30","estimatedHours":1.5}`)
	otherID := api.id("tasks.create", `{"projectId":"`+projectID+`","title":"Review"}`)

	_, env = api.call(http.MethodGet, "tasks.getById?id="+taskID, "")
	var task map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &task))
	assert.Equal(t, "todo", task["status"])
	assert.Equal(t, float64(3), task["priority"])
	assert.Equal(t, "2025-06-30", task["due_date"])
	assert.Equal(t, "1.5", task["estimated_hours"])
	assert.Nil(t, task["created_by"])

	// assignments are never deduplicated
	assign := `{"taskId":"` + taskID + `","userId":"` + userID + `"}`
	first := api.id("tasks.assignTask", assign)
	second := api.id("tasks.assignTask", assign)
	assert.NotEqual(t, first, second)
	_, env = api.call(http.MethodGet, "tasks.listAssignments?taskId="+taskID, "")
	assert.Len(t, rows(t, env), 2)

	_, env = api.call(http.MethodGet, "tasks.list?assigneeId="+userID, "")
	listed := rows(t, env)
	require.Len(t, listed, 1)
	assert.Equal(t, taskID, listed[0]["id"])

	code, env := api.call(http.MethodPost, "tasks.updateStatus", `{"taskId":"`+taskID+`","status":"done"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"status":"done"`)

	code, env = api.call(http.MethodPost, "tasks.updateStatus", `{"taskId":"6f1e7d0c-8a55-4b3f-9d8e-2a6b1c0f9e11","status":"done"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "null", string(env.Data))

	_, env = api.call(http.MethodGet, "tasks.list?projectId="+projectID+"&status=done", "")
	assert.Len(t, rows(t, env), 1)
	_, env = api.call(http.MethodGet, "tasks.list?status=todo&status=done", "")
	assert.Len(t, rows(t, env), 2)
	_, env = api.call(http.MethodGet, "tasks.list?status=blocked", "")
	assert.Len(t, rows(t, env), 0)

	// dangling project reference is a constraint violation
	code, _ = api.call(http.MethodPost, "tasks.create", `{"projectId":"6f1e7d0c-8a55-4b3f-9d8e-2a6b1c0f9e11","title":"x"}`)
	assert.Equal(t, http.StatusConflict, code)

	tagID := api.id("tags.create", `{"slug":"backend","label":"Backend"}`)
	code, _ = api.call(http.MethodPost, "tags.create", `{"slug":"backend","label":"Again"}`)
	assert.Equal(t, http.StatusConflict, code)

	pair := `{"taskId":"` + otherID + `","tagId":"` + tagID + `"}`
	_, env = api.call(http.MethodPost, "tasks.addTag", pair)
	assert.Contains(t, string(env.Data), `"changed":true`)
	_, env = api.call(http.MethodPost, "tasks.addTag", pair)
	assert.Contains(t, string(env.Data), `"changed":false`)
	_, env = api.call(http.MethodGet, "tasks.listTags?taskId="+otherID, "")
	assert.Len(t, rows(t, env), 1)
	_, env = api.call(http.MethodPost, "tasks.removeTag", pair)
	assert.Contains(t, string(env.Data), `"changed":true`)

	api.id("workLogs.create", `{"userId":"`+userID+`","taskId":"`+taskID+`","startedAt":"2025-06-02T09:00:00Z","endedAt":"2025-06-02T10:00:00Z","deltaHours":"1"}`)
	code, _ = api.call(http.MethodPost, "workLogs.create", `{"userId":"`+userID+`","taskId":"`+taskID+`","startedAt":"2025-06-02T09:00:00Z","endedAt":"2025-06-02T08:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	_, env = api.call(http.MethodGet, "workLogs.list?userId="+userID, "")
	assert.Len(t, rows(t, env), 1)

	api.id("notifications.enqueue", `{"userId":"`+userID+`","payload":"assigned"}`)
	_, env = api.call(http.MethodGet, "notifications.listPending?userId="+userID, "")
	pending := rows(t, env)
	require.Len(t, pending, 1)
	assert.Equal(t, "false", pending[0]["sent"])
}

func TestRateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	api := newTestRouter(t, middleware.NewRateLimiter(rdb, 1, 60))

	code, _ := api.call(http.MethodGet, "users.list", "")
	assert.Equal(t, http.StatusOK, code)
	code, env := api.call(http.MethodGet, "users.list", "")
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, http.StatusTooManyRequests, env.Code)

	// health is outside the limited group
	w := httptest.NewRecorder()
	api.r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimited_ForwardedFor(t *testing.T) {
	forwardedStatuses := func(t *testing.T, cfg *config.Config) []int {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
		api := newTestRouterWithConfig(t, cfg, middleware.NewRateLimiter(rdb, 2, 60))

		var codes []int
		for i := 0; i < 6; i++ {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users.list", nil)
			req.RemoteAddr = "192.0.2.10:40000"
			req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
			api.r.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}
		return codes
	}

	t.Run("untrusted peer is keyed by socket address", func(t *testing.T) {
		cfg := &config.Config{App: config.AppConfig{Name: "planner-test"}}
		assert.Equal(t, []int{200, 200, 429, 429, 429, 429}, forwardedStatuses(t, cfg))
	})

	t.Run("trusted proxy forwards client address", func(t *testing.T) {
		cfg := &config.Config{
			App:    config.AppConfig{Name: "planner-test"},
			Server: config.ServerConfig{TrustedProxies: []string{"192.0.2.0/24"}},
		}
		assert.Equal(t, []int{200, 200, 200, 200, 200, 200}, forwardedStatuses(t, cfg))
	})
}

func TestTaskCreate_HoursOutOfRange(t *testing.T) {
	api := newTestRouter(t, nil)

	body := `{"projectId":"` + uuid.NewString() + `","title":"x","estimatedHours":"1e50000000"}`
	code, env := api.call(http.MethodPost, "tasks.create", body)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "null", string(env.Data))
}
