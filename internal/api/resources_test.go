package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alhassanmohamed2/companySYS/internal/policy"
	"github.com/alhassanmohamed2/companySYS/internal/session"
)

// recorder captures the requests a resource method makes.
type recorder struct {
	method string
	path   string
	query  string
	body   []byte
}

func newRecordingClient(t *testing.T, respond func(r *http.Request) (int, any)) (*Client, *recorder) {
	t.Helper()

	rec := &recorder{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.body, _ = io.ReadAll(r.Body)

		status, v := respond(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if v != nil {
			require.NoError(t, json.NewEncoder(w).Encode(v))
		}
	})

	client, store := newTestClient(t, handler)
	require.NoError(t, store.Save(session.TokenPair{Access: "acc-1", Refresh: "ref-1"}))
	return client, rec
}

func TestListProjects_Filters(t *testing.T) {
	client, rec := newRecordingClient(t, func(*http.Request) (int, any) {
		return http.StatusOK, []Project{{ID: 1, Name: "apollo"}}
	})

	projects, err := client.ListProjects(context.Background(), ProjectFilter{Search: "apo", PM: 3})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "apollo", projects[0].Name)

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/projects/", rec.path)
	assert.Contains(t, rec.query, "search=apo")
	assert.Contains(t, rec.query, "pm=3")
}

func TestCreateProject(t *testing.T) {
	client, rec := newRecordingClient(t, func(*http.Request) (int, any) {
		return http.StatusCreated, Project{ID: 7, Name: "apollo"}
	})

	project, err := client.CreateProject(context.Background(), ProjectInput{
		Name:      "apollo",
		StartDate: "2026-09-01",
		PMID:      3,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, project.ID)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/projects/", rec.path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &sent))
	assert.Equal(t, "apollo", sent["name"])
	assert.Equal(t, "2026-09-01", sent["start_date"])
	assert.Equal(t, float64(3), sent["pm_id"])
}

func TestDeleteProject(t *testing.T) {
	client, rec := newRecordingClient(t, func(*http.Request) (int, any) {
		return http.StatusNoContent, nil
	})

	require.NoError(t, client.DeleteProject(context.Background(), 7))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/projects/7/", rec.path)
}

func TestUpdateTask_Patch(t *testing.T) {
	client, rec := newRecordingClient(t, func(*http.Request) (int, any) {
		return http.StatusOK, Task{ID: 5, Status: TaskReview}
	})

	task, err := client.UpdateTask(context.Background(), 5, TaskInput{Status: TaskReview})
	require.NoError(t, err)
	assert.Equal(t, TaskReview, task.Status)

	assert.Equal(t, http.MethodPatch, rec.method)
	assert.Equal(t, "/tasks/5/", rec.path)
	assert.JSONEq(t, `{"status": "REVIEW"}`, string(rec.body))
}

func TestAdvanceTask(t *testing.T) {
	t.Run("moves the task one step", func(t *testing.T) {
		var patched bool
		client, _ := newRecordingClient(t, func(r *http.Request) (int, any) {
			if r.Method == http.MethodPatch {
				patched = true
				return http.StatusOK, Task{ID: 5, Status: TaskInProgress}
			}
			return http.StatusOK, Task{ID: 5, Status: TaskTodo}
		})

		task, err := client.AdvanceTask(context.Background(), 5)
		require.NoError(t, err)
		assert.True(t, patched)
		assert.Equal(t, TaskInProgress, task.Status)
	})

	t.Run("done task stays done without a write", func(t *testing.T) {
		client, rec := newRecordingClient(t, func(r *http.Request) (int, any) {
			return http.StatusOK, Task{ID: 5, Status: TaskDone}
		})

		task, err := client.AdvanceTask(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, TaskDone, task.Status)
		assert.Equal(t, http.MethodGet, rec.method, "no update should be sent")
	})
}

func TestTaskStatus_Next(t *testing.T) {
	assert.Equal(t, TaskInProgress, TaskTodo.Next())
	assert.Equal(t, TaskReview, TaskInProgress.Next())
	assert.Equal(t, TaskDone, TaskReview.Next())
	assert.Equal(t, TaskDone, TaskDone.Next())
}

func TestListAssets_Filters(t *testing.T) {
	client, rec := newRecordingClient(t, func(*http.Request) (int, any) {
		return http.StatusOK, map[string]any{"results": []Asset{{ID: 2, AssetType: AssetGithub}}}
	})

	assets, err := client.ListAssets(context.Background(), AssetFilter{Project: 7, AssetType: AssetGithub})
	require.NoError(t, err)
	require.Len(t, assets, 1)

	assert.Equal(t, "/assets/", rec.path)
	assert.Contains(t, rec.query, "project=7")
	assert.Contains(t, rec.query, "asset_type=GITHUB")
}

func TestMarkNotificationRead(t *testing.T) {
	client, rec := newRecordingClient(t, func(*http.Request) (int, any) {
		return http.StatusOK, map[string]string{"status": "notification marked as read"}
	})

	require.NoError(t, client.MarkNotificationRead(context.Background(), 12))
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/notifications/12/mark_read/", rec.path)
}

func TestUsers(t *testing.T) {
	t.Run("me", func(t *testing.T) {
		client, rec := newRecordingClient(t, func(*http.Request) (int, any) {
			return http.StatusOK, User{ID: 1, Username: "admin", Role: policy.RoleAdmin}
		})

		me, err := client.Me(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "admin", me.Username)
		assert.Equal(t, "/users/me/", rec.path)
	})

	t.Run("change password", func(t *testing.T) {
		client, rec := newRecordingClient(t, func(*http.Request) (int, any) {
			return http.StatusOK, nil
		})

		require.NoError(t, client.ChangePassword(context.Background(), "old", "new"))
		assert.Equal(t, "/users/change-password/", rec.path)
		assert.JSONEq(t, `{"old_password": "old", "new_password": "new"}`, string(rec.body))
	})

	t.Run("create carries role", func(t *testing.T) {
		client, rec := newRecordingClient(t, func(*http.Request) (int, any) {
			return http.StatusCreated, User{ID: 9, Username: "sara", Role: policy.RolePM}
		})

		user, err := client.CreateUser(context.Background(), UserInput{Username: "sara", Password: "pw", Role: policy.RolePM})
		require.NoError(t, err)
		assert.Equal(t, policy.RolePM, user.Role)

		var sent map[string]any
		require.NoError(t, json.Unmarshal(rec.body, &sent))
		assert.Equal(t, "PM", sent["role"])
	})
}

func TestComments(t *testing.T) {
	client, rec := newRecordingClient(t, func(r *http.Request) (int, any) {
		if r.Method == http.MethodPost {
			return http.StatusCreated, Comment{ID: 3, Task: 5, Body: "lgtm"}
		}
		return http.StatusOK, []Comment{{ID: 3, Task: 5, Body: "lgtm"}}
	})

	comments, err := client.ListComments(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "task=5", rec.query)

	comment, err := client.CreateComment(context.Background(), CommentInput{Task: 5, Body: "lgtm"})
	require.NoError(t, err)
	assert.Equal(t, "lgtm", comment.Body)
}
