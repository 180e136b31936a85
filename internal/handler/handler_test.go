package handler_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"startask/internal/domain"
	"startask/internal/handler"
	"startask/internal/middleware"
	"startask/internal/mocks"
	"startask/internal/repository"
	"startask/internal/service/auth"
	"startask/internal/service/deadline"
)

type testEnv struct {
	app      *fiber.App
	auth     auth.Service
	notif    *mocks.NotificationService
	deadline *mocks.DeadlineService
	projects *mocks.ProjectService
	tasks    *mocks.TaskService
	audit    *mocks.AuditService
}

func newTestEnv(scheduler *deadline.Scheduler) *testEnv {
	env := &testEnv{
		auth:     auth.NewService("handler-secret"),
		notif:    new(mocks.NotificationService),
		deadline: new(mocks.DeadlineService),
		projects: new(mocks.ProjectService),
		tasks:    new(mocks.TaskService),
		audit:    new(mocks.AuditService),
	}

	h := &handler.Handlers{
		Notification: handler.NewNotificationHandler(env.notif),
		Sweep:        handler.NewSweepHandler(env.deadline, scheduler),
		Project:      handler.NewProjectHandler(env.projects, env.tasks),
		Task:         handler.NewTaskHandler(env.tasks),
		Audit:        handler.NewAuditHandler(env.audit),
	}

	env.app = fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	handler.SetupRoutes(env.app, h, env.auth)
	return env
}

func (e *testEnv) token(t *testing.T, p domain.Principal) string {
	t.Helper()
	tok, err := e.auth.IssueToken(p, time.Hour)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req)
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decode(t *testing.T, data []byte) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	return body
}

func TestHealth(t *testing.T) {
	env := newTestEnv(nil)

	resp, data := env.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode(t, data)["status"])
}

func TestNotificationRoutes_RequireAuth(t *testing.T) {
	env := newTestEnv(nil)

	resp, _ := env.do(t, http.MethodGet, "/api/v1/notifications", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	env.notif.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestNotificationHandler_List(t *testing.T) {
	user := domain.Principal{UserID: uuid.New(), Role: domain.RoleMember}

	t.Run("Returns caller's notifications", func(t *testing.T) {
		env := newTestEnv(nil)
		items := []domain.Notification{{ID: uuid.New(), UserID: user.UserID, Title: "Deadline approaching"}}
		env.notif.On("List", mock.Anything, user.UserID, domain.DefaultNotificationLimit).Return(items, nil).Once()

		resp, data := env.do(t, http.MethodGet, "/api/v1/notifications", env.token(t, user), "")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got []domain.Notification
		require.NoError(t, json.Unmarshal(data, &got))
		require.Len(t, got, 1)
		assert.Equal(t, "Deadline approaching", got[0].Title)
		env.notif.AssertExpectations(t)
	})

	t.Run("Custom limit", func(t *testing.T) {
		env := newTestEnv(nil)
		env.notif.On("List", mock.Anything, user.UserID, 5).Return([]domain.Notification{}, nil).Once()

		resp, _ := env.do(t, http.MethodGet, "/api/v1/notifications?limit=5", env.token(t, user), "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		env.notif.AssertExpectations(t)
	})

	t.Run("Storage failure yields empty list", func(t *testing.T) {
		env := newTestEnv(nil)
		env.notif.On("List", mock.Anything, user.UserID, mock.Anything).Return(nil, repository.ErrStorageUnavailable).Once()

		resp, data := env.do(t, http.MethodGet, "/api/v1/notifications", env.token(t, user), "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, "[]", string(data))
	})
}

func TestNotificationHandler_UnreadCount(t *testing.T) {
	user := domain.Principal{UserID: uuid.New(), Role: domain.RoleMember}

	t.Run("Count", func(t *testing.T) {
		env := newTestEnv(nil)
		env.notif.On("GetUnreadCount", mock.Anything, user.UserID).Return(int64(3), nil).Once()

		resp, data := env.do(t, http.MethodGet, "/api/v1/notifications/unread-count", env.token(t, user), "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"count":3}`, string(data))
	})

	t.Run("Failure yields zero", func(t *testing.T) {
		env := newTestEnv(nil)
		env.notif.On("GetUnreadCount", mock.Anything, user.UserID).Return(int64(0), errors.New("db down")).Once()

		resp, data := env.do(t, http.MethodGet, "/api/v1/notifications/unread-count", env.token(t, user), "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"count":0}`, string(data))
	})
}

func TestNotificationHandler_Mutations(t *testing.T) {
	user := domain.Principal{UserID: uuid.New(), Role: domain.RoleMember}
	notifID := uuid.New()

	t.Run("Mark as read", func(t *testing.T) {
		env := newTestEnv(nil)
		env.notif.On("MarkAsRead", mock.Anything, notifID, user.UserID).Return(true, nil).Once()

		resp, data := env.do(t, http.MethodPost, "/api/v1/notifications/"+notifID.String()+"/read", env.token(t, user), "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"success":true}`, string(data))
	})

	t.Run("Mark as read on someone else's notification", func(t *testing.T) {
		env := newTestEnv(nil)
		env.notif.On("MarkAsRead", mock.Anything, notifID, user.UserID).Return(false, nil).Once()

		_, data := env.do(t, http.MethodPost, "/api/v1/notifications/"+notifID.String()+"/read", env.token(t, user), "")
		assert.JSONEq(t, `{"success":false}`, string(data))
	})

	t.Run("Malformed id", func(t *testing.T) {
		env := newTestEnv(nil)

		resp, data := env.do(t, http.MethodPost, "/api/v1/notifications/not-a-uuid/read", env.token(t, user), "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid notification ID", decode(t, data)["message"])
	})

	t.Run("Mark all as read", func(t *testing.T) {
		env := newTestEnv(nil)
		env.notif.On("MarkAllAsRead", mock.Anything, user.UserID).Return(nil).Once()

		_, data := env.do(t, http.MethodPost, "/api/v1/notifications/read-all", env.token(t, user), "")
		assert.JSONEq(t, `{"success":true}`, string(data))
	})

	t.Run("Mark all as read failure", func(t *testing.T) {
		env := newTestEnv(nil)
		env.notif.On("MarkAllAsRead", mock.Anything, user.UserID).Return(repository.ErrStorageUnavailable).Once()

		resp, data := env.do(t, http.MethodPost, "/api/v1/notifications/read-all", env.token(t, user), "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"success":false}`, string(data))
	})

	t.Run("Delete", func(t *testing.T) {
		env := newTestEnv(nil)
		env.notif.On("Delete", mock.Anything, notifID, user.UserID).Return(true, nil).Once()

		_, data := env.do(t, http.MethodDelete, "/api/v1/notifications/"+notifID.String(), env.token(t, user), "")
		assert.JSONEq(t, `{"success":true}`, string(data))
	})
}

func TestSweepHandler_Run(t *testing.T) {
	leader := domain.Principal{UserID: uuid.New(), Role: domain.RoleLeader}

	t.Run("Members are forbidden", func(t *testing.T) {
		env := newTestEnv(nil)
		member := domain.Principal{UserID: uuid.New(), Role: domain.RoleMember}

		resp, _ := env.do(t, http.MethodPost, "/api/v1/sweeps/deadline", env.token(t, member), "")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		env.deadline.AssertNotCalled(t, "RunSweep", mock.Anything)
	})

	t.Run("Runs synchronously", func(t *testing.T) {
		env := newTestEnv(nil)
		result := &domain.SweepResult{RunID: uuid.New(), ProjectsScanned: 4, NotificationsCreated: 3}
		env.deadline.On("RunSweep", mock.Anything).Return(result, nil).Once()

		resp, data := env.do(t, http.MethodPost, "/api/v1/sweeps/deadline", env.token(t, leader), "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got domain.SweepResult
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, result.RunID, got.RunID)
		assert.Equal(t, 3, got.NotificationsCreated)
	})

	t.Run("Already running", func(t *testing.T) {
		env := newTestEnv(nil)
		env.deadline.On("RunSweep", mock.Anything).Return(nil, deadline.ErrSweepInProgress).Once()

		resp, data := env.do(t, http.MethodPost, "/api/v1/sweeps/deadline", env.token(t, leader), "")
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "CONFLICT", decode(t, data)["code"])
	})

	t.Run("Storage failure", func(t *testing.T) {
		env := newTestEnv(nil)
		env.deadline.On("RunSweep", mock.Anything).Return(nil, repository.ErrStorageUnavailable).Once()

		resp, _ := env.do(t, http.MethodPost, "/api/v1/sweeps/deadline", env.token(t, leader), "")
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("Async queues on the scheduler", func(t *testing.T) {
		svc := new(mocks.DeadlineService)
		env := newTestEnv(deadline.NewScheduler(svc, time.Hour, false))

		resp, data := env.do(t, http.MethodPost, "/api/v1/sweeps/deadline?async=true", env.token(t, leader), "")
		assert.Equal(t, http.StatusAccepted, resp.StatusCode)
		assert.JSONEq(t, `{"queued":true}`, string(data))
		env.deadline.AssertNotCalled(t, "RunSweep", mock.Anything)
	})
}

func TestSweepHandler_Last(t *testing.T) {
	admin := domain.Principal{UserID: uuid.New(), Role: domain.RoleAdmin}

	t.Run("No run yet", func(t *testing.T) {
		env := newTestEnv(nil)
		env.deadline.On("LastResult").Return(nil).Once()

		resp, _ := env.do(t, http.MethodGet, "/api/v1/sweeps/deadline/last", env.token(t, admin), "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Returns last result", func(t *testing.T) {
		env := newTestEnv(nil)
		env.deadline.On("LastResult").Return(&domain.SweepResult{ProjectsNotified: 1}).Once()

		resp, data := env.do(t, http.MethodGet, "/api/v1/sweeps/deadline/last", env.token(t, admin), "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.EqualValues(t, 1, decode(t, data)["projects_notified"])
	})
}

func TestProjectHandler(t *testing.T) {
	leader := domain.Principal{UserID: uuid.New(), Role: domain.RoleLeader}
	member := domain.Principal{UserID: uuid.New(), Role: domain.RoleMember}
	projectID := uuid.New()

	t.Run("List", func(t *testing.T) {
		env := newTestEnv(nil)
		env.projects.On("List", mock.Anything).Return([]domain.Project{{ID: projectID, Name: "Launch"}}, nil).Once()

		resp, data := env.do(t, http.MethodGet, "/api/v1/projects", env.token(t, member), "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(data), "Launch")
	})

	t.Run("Get unknown", func(t *testing.T) {
		env := newTestEnv(nil)
		env.projects.On("GetByID", mock.Anything, projectID).Return(nil, domain.ErrProjectNotFound).Once()

		resp, _ := env.do(t, http.MethodGet, "/api/v1/projects/"+projectID.String(), env.token(t, member), "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Create", func(t *testing.T) {
		env := newTestEnv(nil)
		env.projects.On("Create", mock.Anything, leader, mock.MatchedBy(func(in domain.CreateProjectInput) bool {
			return in.Name == "Launch" && in.DueDate != nil
		})).Return(&domain.Project{ID: projectID, Name: "Launch", LeaderID: leader.UserID}, nil).Once()

		resp, data := env.do(t, http.MethodPost, "/api/v1/projects", env.token(t, leader), `{"name":"Launch","due_date":"2026-11-01"}`)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, projectID.String(), decode(t, data)["id"])
		env.projects.AssertExpectations(t)
	})

	t.Run("Create invalid", func(t *testing.T) {
		env := newTestEnv(nil)
		env.projects.On("Create", mock.Anything, leader, mock.Anything).Return(nil, domain.ErrInvalidProject).Once()

		resp, _ := env.do(t, http.MethodPost, "/api/v1/projects", env.token(t, leader), `{"name":""}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Members cannot create", func(t *testing.T) {
		env := newTestEnv(nil)

		resp, _ := env.do(t, http.MethodPost, "/api/v1/projects", env.token(t, member), `{"name":"Launch"}`)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Update forbidden for other leader", func(t *testing.T) {
		env := newTestEnv(nil)
		env.projects.On("Update", mock.Anything, leader, projectID, mock.Anything).Return(nil, domain.ErrForbidden).Once()

		resp, _ := env.do(t, http.MethodPut, "/api/v1/projects/"+projectID.String(), env.token(t, leader), `{"name":"Renamed"}`)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Delete", func(t *testing.T) {
		env := newTestEnv(nil)
		env.projects.On("Delete", mock.Anything, leader, projectID).Return(nil).Once()

		resp, _ := env.do(t, http.MethodDelete, "/api/v1/projects/"+projectID.String(), env.token(t, leader), "")
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("Create task", func(t *testing.T) {
		env := newTestEnv(nil)
		taskID := uuid.New()
		env.tasks.On("Create", mock.Anything, leader, projectID, mock.MatchedBy(func(in domain.CreateTaskInput) bool {
			return in.Title == "Ship it"
		})).Return(&domain.Task{ID: taskID, ProjectID: projectID, Title: "Ship it"}, nil).Once()

		resp, data := env.do(t, http.MethodPost, "/api/v1/projects/"+projectID.String()+"/tasks", env.token(t, leader), `{"title":"Ship it"}`)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, taskID.String(), decode(t, data)["id"])
	})

	t.Run("List tasks", func(t *testing.T) {
		env := newTestEnv(nil)
		env.tasks.On("ListByProject", mock.Anything, projectID).Return([]domain.Task{{Title: "Docs"}}, nil).Once()

		resp, data := env.do(t, http.MethodGet, "/api/v1/projects/"+projectID.String()+"/tasks", env.token(t, member), "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(data), "Docs")
	})
}

func TestTaskHandler_Delete(t *testing.T) {
	leader := domain.Principal{UserID: uuid.New(), Role: domain.RoleLeader}
	taskID := uuid.New()

	env := newTestEnv(nil)
	env.tasks.On("Delete", mock.Anything, leader, taskID).Return(domain.ErrTaskNotFound).Once()

	resp, _ := env.do(t, http.MethodDelete, "/api/v1/tasks/"+taskID.String(), env.token(t, leader), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTaskHandler_Update(t *testing.T) {
	leader := domain.Principal{UserID: uuid.New(), Role: domain.RoleLeader}
	member := domain.Principal{UserID: uuid.New(), Role: domain.RoleMember}
	taskID := uuid.New()

	t.Run("Full edit", func(t *testing.T) {
		env := newTestEnv(nil)
		assignee := uuid.New()
		env.tasks.On("Update", mock.Anything, leader, taskID, mock.MatchedBy(func(in domain.UpdateTaskInput) bool {
			return in.AssigneeID != nil && *in.AssigneeID == assignee &&
				in.Status != nil && *in.Status == domain.TaskInProgress && in.Title == nil
		})).Return(&domain.Task{ID: taskID, AssigneeID: &assignee, Status: domain.TaskInProgress}, nil).Once()

		body := `{"assignee_id":"` + assignee.String() + `","status":"in_progress"}`
		resp, data := env.do(t, http.MethodPut, "/api/v1/tasks/"+taskID.String(), env.token(t, leader), body)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "in_progress", decode(t, data)["status"])
		env.tasks.AssertExpectations(t)
	})

	t.Run("Invalid status", func(t *testing.T) {
		env := newTestEnv(nil)
		env.tasks.On("Update", mock.Anything, leader, taskID, mock.Anything).Return(nil, domain.ErrInvalidTask).Once()

		resp, _ := env.do(t, http.MethodPut, "/api/v1/tasks/"+taskID.String(), env.token(t, leader), `{"status":"blocked"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Members cannot edit", func(t *testing.T) {
		env := newTestEnv(nil)

		resp, _ := env.do(t, http.MethodPut, "/api/v1/tasks/"+taskID.String(), env.token(t, member), `{"title":"x"}`)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		env.tasks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTaskHandler_UpdateStatus(t *testing.T) {
	member := domain.Principal{UserID: uuid.New(), Role: domain.RoleMember}
	taskID := uuid.New()

	t.Run("Assignee marks done", func(t *testing.T) {
		env := newTestEnv(nil)
		env.tasks.On("UpdateStatus", mock.Anything, member, taskID, domain.TaskDone).
			Return(&domain.Task{ID: taskID, Status: domain.TaskDone}, nil).Once()

		resp, data := env.do(t, http.MethodPatch, "/api/v1/tasks/"+taskID.String()+"/status", env.token(t, member), `{"status":"done"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "done", decode(t, data)["status"])
	})

	t.Run("Not the assignee", func(t *testing.T) {
		env := newTestEnv(nil)
		env.tasks.On("UpdateStatus", mock.Anything, member, taskID, domain.TaskDone).Return(nil, domain.ErrForbidden).Once()

		resp, _ := env.do(t, http.MethodPatch, "/api/v1/tasks/"+taskID.String()+"/status", env.token(t, member), `{"status":"done"}`)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestAuditHandler_Recent(t *testing.T) {
	admin := domain.Principal{UserID: uuid.New(), Role: domain.RoleAdmin}

	env := newTestEnv(nil)
	env.audit.On("GetRecentActivities", mock.Anything, 20).Return([]domain.AuditLog{{Action: domain.AuditDeadlineSweep}}, nil).Once()

	resp, data := env.do(t, http.MethodGet, "/api/v1/audit/recent", env.token(t, admin), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), string(domain.AuditDeadlineSweep))
	env.audit.AssertExpectations(t)
}

func TestAuditHandler_AdminsOnly(t *testing.T) {
	env := newTestEnv(nil)
	leader := domain.Principal{UserID: uuid.New(), Role: domain.RoleLeader}

	resp, data := env.do(t, http.MethodGet, "/api/v1/audit/recent", env.token(t, leader), "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decode(t, data)["code"])
	env.audit.AssertNotCalled(t, "GetRecentActivities", mock.Anything, mock.Anything)
}
