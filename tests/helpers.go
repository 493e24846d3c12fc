package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"tasktracker/internal/handler"
	"tasktracker/internal/repo"
	"tasktracker/internal/service"
)

const TestSecret = "e2e-test-secret"

// SetupServer поднимает полный стек с аутентификацией поверх httptest
func SetupServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := zap.NewNop()

	taskService := service.NewTaskService(repo.NewTaskRepo())
	taskHandler := handler.NewTaskHandler(taskService, logger)

	authService := service.NewAuthService(repo.NewUserRepo(), []byte(TestSecret))
	authHandler := handler.NewAuthHandler(authService, logger)

	r := handler.NewRouter(taskHandler, authHandler, handler.Authenticator(authService))

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

// SetupOpenServer поднимает вариант без аутентификации
func SetupOpenServer(t *testing.T) *httptest.Server {
	t.Helper()
	taskService := service.NewTaskService(repo.NewTaskRepo())
	taskHandler := handler.NewTaskHandler(taskService, zap.NewNop())

	server := httptest.NewServer(handler.NewRouter(taskHandler, nil, nil))
	t.Cleanup(server.Close)
	return server
}

// Do выполняет запрос с опциональным bearer-токеном и JSON-телом
func Do(t *testing.T, method, url, token, body string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, url, bytes.NewReader([]byte(body)))
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	return resp, data
}

// RegisterAndLogin регистрирует пользователя и возвращает его токен
func RegisterAndLogin(t *testing.T, baseURL, username, email, password string) string {
	t.Helper()

	payload, _ := json.Marshal(map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	resp, body := Do(t, http.MethodPost, baseURL+"/api/auth/register", "", string(payload))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Register failed: %d %s", resp.StatusCode, body)
	}

	payload, _ = json.Marshal(map[string]string{"email": email, "password": password})
	resp, body = Do(t, http.MethodPost, baseURL+"/api/auth/login", "", string(payload))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Login failed: %d %s", resp.StatusCode, body)
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &loginResp); err != nil || loginResp.Token == "" {
		t.Fatalf("Failed to parse token from %s", body)
	}
	return loginResp.Token
}
