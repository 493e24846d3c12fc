package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktracker/internal/model"
)

func TestE2E_FullWorkflow(t *testing.T) {
	server := SetupServer(t)
	token := RegisterAndLogin(t, server.URL, "worker", "worker@example.com", "pa55word")

	t.Run("complete CRUD workflow", func(t *testing.T) {
		// 1. Create task
		resp, body := Do(t, http.MethodPost, server.URL+"/api/tasks", token,
			`{"title":"E2E Test Task","priority":"high","dueDate":"2024-03-15"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

		var created model.Task
		require.NoError(t, json.Unmarshal(body, &created))
		require.NotEmpty(t, created.ID)
		assert.Equal(t, "E2E Test Task", created.Title)
		assert.Equal(t, "high", created.Priority)
		assert.False(t, created.Completed)
		require.NotNil(t, created.DueDate)
		assert.Equal(t, "2024-03-15", *created.DueDate)
		assert.NotEmpty(t, created.OwnerID)

		// 2. Get task, dueDate round-trips literally
		resp, body = Do(t, http.MethodGet, server.URL+"/api/tasks/"+created.ID, token, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var fetched model.Task
		require.NoError(t, json.Unmarshal(body, &fetched))
		assert.Equal(t, created.ID, fetched.ID)
		require.NotNil(t, fetched.DueDate)
		assert.Equal(t, "2024-03-15", *fetched.DueDate)

		// 3. Partial update flips only completed
		resp, body = Do(t, http.MethodPut, server.URL+"/api/tasks/"+created.ID, token,
			`{"completed":true}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated model.Task
		require.NoError(t, json.Unmarshal(body, &updated))
		assert.True(t, updated.Completed)
		assert.Equal(t, "E2E Test Task", updated.Title)
		assert.Equal(t, "high", updated.Priority)
		require.NotNil(t, updated.DueDate)
		assert.Equal(t, "2024-03-15", *updated.DueDate)

		// 4. List tasks
		resp, body = Do(t, http.MethodGet, server.URL+"/api/tasks", token, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var tasks []model.Task
		require.NoError(t, json.Unmarshal(body, &tasks))
		assert.Len(t, tasks, 1)

		// 5. Delete returns removed task
		resp, body = Do(t, http.MethodDelete, server.URL+"/api/tasks/"+created.ID, token, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var deleteResp struct {
			Message string     `json:"message"`
			Task    model.Task `json:"task"`
		}
		require.NoError(t, json.Unmarshal(body, &deleteResp))
		assert.Equal(t, created.ID, deleteResp.Task.ID)

		// 6. Verify deletion
		resp, _ = Do(t, http.MethodGet, server.URL+"/api/tasks/"+created.ID, token, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestE2E_Validation(t *testing.T) {
	server := SetupServer(t)
	token := RegisterAndLogin(t, server.URL, "val", "val@example.com", "pa55word")

	t.Run("missing title reports one error", func(t *testing.T) {
		resp, body := Do(t, http.MethodPost, server.URL+"/api/tasks", token, `{"description":"x"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var errResp struct {
			Errors []string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(body, &errResp))
		require.Len(t, errResp.Errors, 1)
		assert.Contains(t, errResp.Errors[0], "title")
	})

	t.Run("impossible calendar date rejected", func(t *testing.T) {
		resp, _ := Do(t, http.MethodPost, server.URL+"/api/tasks", token,
			`{"title":"Bad date","dueDate":"2024-02-30"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("bad filter value", func(t *testing.T) {
		resp, _ := Do(t, http.MethodGet, server.URL+"/api/tasks?completed=maybe", token, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestE2E_Filtering(t *testing.T) {
	server := SetupServer(t)
	token := RegisterAndLogin(t, server.URL, "filt", "filt@example.com", "pa55word")

	seed := []string{
		`{"title":"Done","completed":true,"priority":"high"}`,
		`{"title":"Open low","priority":"low"}`,
		`{"title":"Open high","priority":"high","dueDate":"2024-07-01"}`,
	}
	for _, payload := range seed {
		resp, body := Do(t, http.MethodPost, server.URL+"/api/tasks", token, payload)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	}

	t.Run("completed=true", func(t *testing.T) {
		resp, body := Do(t, http.MethodGet, server.URL+"/api/tasks?completed=true", token, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var tasks []model.Task
		require.NoError(t, json.Unmarshal(body, &tasks))
		require.Len(t, tasks, 1)
		assert.True(t, tasks[0].Completed)
	})

	t.Run("priority and dueDate compose", func(t *testing.T) {
		resp, body := Do(t, http.MethodGet,
			server.URL+"/api/tasks?priority=high&dueDate=2024-07-01", token, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var tasks []model.Task
		require.NoError(t, json.Unmarshal(body, &tasks))
		require.Len(t, tasks, 1)
		assert.Equal(t, "Open high", tasks[0].Title)
	})
}

func TestE2E_AuthFlow(t *testing.T) {
	server := SetupServer(t)

	t.Run("task routes closed without token", func(t *testing.T) {
		resp, _ := Do(t, http.MethodGet, server.URL+"/api/tasks", "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("register login me", func(t *testing.T) {
		token := RegisterAndLogin(t, server.URL, "grace", "grace@example.com", "pa55word")

		resp, body := Do(t, http.MethodGet, server.URL+"/api/auth/me", token, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var user model.User
		require.NoError(t, json.Unmarshal(body, &user))
		assert.Equal(t, "grace", user.Username)
	})

	t.Run("duplicate registration rejected", func(t *testing.T) {
		payload := `{"username":"grace2","email":"grace@example.com","password":"other"}`
		resp, _ := Do(t, http.MethodPost, server.URL+"/api/auth/register", "", payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("expired token rejected with 403", func(t *testing.T) {
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "someone",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		}).SignedString([]byte(TestSecret))
		require.NoError(t, err)

		resp, _ := Do(t, http.MethodGet, server.URL+"/api/auth/me", expired, "")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("unknown endpoint", func(t *testing.T) {
		resp, body := Do(t, http.MethodGet, server.URL+"/api/unknown", "", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, string(body), "error")
	})
}

func TestE2E_OpenVariant(t *testing.T) {
	server := SetupOpenServer(t)

	resp, body := Do(t, http.MethodPost, server.URL+"/api/tasks", "", `{"title":"No auth needed"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var task model.Task
	require.NoError(t, json.Unmarshal(body, &task))
	assert.Empty(t, task.OwnerID)

	resp, _ = Do(t, http.MethodGet, server.URL+"/api/tasks", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
