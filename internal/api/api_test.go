package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/projectforgeai/forge-server/internal/flow"
	"github.com/projectforgeai/forge-server/internal/identity"
	"github.com/projectforgeai/forge-server/internal/service"
	"github.com/projectforgeai/forge-server/internal/store"
)

// staticGenerator returns one canned payload for every call.
type staticGenerator struct {
	payload string
	usage   flow.Usage
}

func (g staticGenerator) GenerateJSON(_ context.Context, _ flow.ModelRequest) ([]byte, flow.Usage, error) {
	return []byte(g.payload), g.usage, nil
}

// newTestServer wires the full router the way cmd/server does, against a
// temp database and the given generator.
func newTestServer(t *testing.T, gen flow.Generator) (*httptest.Server, *http.Client) {
	t.Helper()

	repo, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	flows := flow.NewService(gen)
	tokens := service.NewTokenService(repo, logger)
	account := service.NewAccountService(repo)
	projects := service.NewProjectService(repo, flows, tokens, logger)
	paths := service.NewLearningPathService(repo, flows, tokens, logger)
	interviews := service.NewInterviewService(repo, flows, tokens, logger)

	base := NewHandler(repo)
	r := chi.NewRouter()
	r.Use(identity.Middleware(repo, true))
	NewFlowHandler(base, flows, projects, paths, tokens, account).RegisterRoutes(r)
	NewProjectHandler(base, projects).RegisterRoutes(r)
	NewLearningPathHandler(base, paths, account).RegisterRoutes(r)
	NewInterviewHandler(base, interviews).RegisterRoutes(r)
	NewAccountHandler(base, account, tokens).RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Failed to create cookie jar: %v", err)
	}
	return srv, &http.Client{Jar: jar}
}

func doJSON(t *testing.T, client *http.Client, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("Failed to read response: %v", err)
	}
	return resp, data
}

func TestProjectRoutes_ListSeedsDefaults(t *testing.T) {
	srv, client := newTestServer(t, flow.Disabled{})

	resp, body := doJSON(t, client, http.MethodGet, srv.URL+"/api/projects", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, body)
	}

	var projects []map[string]interface{}
	if err := json.Unmarshal(body, &projects); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(projects) != len(service.DefaultProjects()) {
		t.Errorf("Expected %d seeded projects, got %d", len(service.DefaultProjects()), len(projects))
	}
}

func TestProjectRoutes_ToggleSubTask(t *testing.T) {
	srv, client := newTestServer(t, flow.Disabled{})

	// Seed and pick a known starter project.
	resp, body := doJSON(t, client, http.MethodGet, srv.URL+"/api/projects", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	var projects []struct {
		ID    string `json:"id"`
		Steps []struct {
			ID       string `json:"id"`
			SubTasks []struct {
				ID string `json:"id"`
			} `json:"subTasks"`
		} `json:"steps"`
	}
	if err := json.Unmarshal(body, &projects); err != nil {
		t.Fatalf("Failed to decode projects: %v", err)
	}
	p := projects[0]
	url := srv.URL + "/api/projects/" + p.ID + "/steps/" + p.Steps[0].ID + "/subtasks/" + p.Steps[0].SubTasks[0].ID + "/toggle"

	resp, body = doJSON(t, client, http.MethodPost, url, `{"completed": true}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, body)
	}
	var updated struct {
		Steps []struct {
			SubTasks []struct {
				Completed bool `json:"completed"`
			} `json:"subTasks"`
		} `json:"steps"`
	}
	if err := json.Unmarshal(body, &updated); err != nil {
		t.Fatalf("Failed to decode project: %v", err)
	}
	if !updated.Steps[0].SubTasks[0].Completed {
		t.Error("Expected sub-task marked completed")
	}

	// Unknown sub-task maps to 404.
	resp, _ = doJSON(t, client, http.MethodPost, srv.URL+"/api/projects/"+p.ID+"/steps/"+p.Steps[0].ID+"/subtasks/nope/toggle", `{"completed": true}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}
}

func TestFlowRoutes_StatusMapping(t *testing.T) {
	srv, client := newTestServer(t, flow.Disabled{})

	// Invalid input never reaches the model: 400.
	resp, _ := doJSON(t, client, http.MethodPost, srv.URL+"/api/flows/tutorial", `{"prompt": "x", "difficulty": "Impossible"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400 for invalid input, got %d", resp.StatusCode)
	}

	// A failing model maps to 502.
	resp, _ = doJSON(t, client, http.MethodPost, srv.URL+"/api/flows/tutorial", `{"prompt": "build a chat app", "difficulty": "Easy"}`)
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("Expected status 502 for failed generation, got %d", resp.StatusCode)
	}
}

func TestFlowRoutes_TutorialPersists(t *testing.T) {
	gen := staticGenerator{
		payload: `{
			"title": "Build a Chat App",
			"description": "d",
			"steps": [{"id": "step-1", "title": "Setup", "description": "d", "subTasks": [
				{"id": "sub-1", "title": "Init", "description": "d"}
			]}],
			"tags": [], "skills": [], "simulationDiagram": ""
		}`,
		usage: flow.Usage{InputTokens: 10, OutputTokens: 90},
	}
	srv, client := newTestServer(t, gen)

	resp, body := doJSON(t, client, http.MethodPost, srv.URL+"/api/flows/tutorial", `{"prompt": "chat app", "difficulty": "Easy"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.StatusCode, body)
	}
	var project struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &project); err != nil {
		t.Fatalf("Failed to decode project: %v", err)
	}

	resp, _ = doJSON(t, client, http.MethodGet, srv.URL+"/api/projects/"+project.ID, "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected generated project retrievable, got %d", resp.StatusCode)
	}

	// Token accounting is visible on the usage endpoint.
	resp, body = doJSON(t, client, http.MethodGet, srv.URL+"/api/tokens", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	var usage struct {
		Count     int `json:"count"`
		Allowance int `json:"allowance"`
	}
	if err := json.Unmarshal(body, &usage); err != nil {
		t.Fatalf("Failed to decode usage: %v", err)
	}
	if usage.Count != 100 {
		t.Errorf("Expected 100 tokens counted, got %d", usage.Count)
	}
	if usage.Allowance != 200_000 {
		t.Errorf("Expected free-tier allowance, got %d", usage.Allowance)
	}
}

func TestAccountRoutes_Preferences(t *testing.T) {
	srv, client := newTestServer(t, flow.Disabled{})

	resp, _ := doJSON(t, client, http.MethodPut, srv.URL+"/api/preferences", `{"operatingSystem": "TempleOS"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown OS, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, client, http.MethodPut, srv.URL+"/api/preferences", `{"operatingSystem": "Linux"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	resp, body := doJSON(t, client, http.MethodGet, srv.URL+"/api/preferences", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	var prefs struct {
		OperatingSystem string `json:"operatingSystem"`
	}
	if err := json.Unmarshal(body, &prefs); err != nil {
		t.Fatalf("Failed to decode preferences: %v", err)
	}
	if prefs.OperatingSystem != "Linux" {
		t.Errorf("Expected stored preference Linux, got %q", prefs.OperatingSystem)
	}
}

func TestInterviewRoutes_SubmitUnknownQuestion(t *testing.T) {
	srv, client := newTestServer(t, flow.Disabled{})

	resp, _ := doJSON(t, client, http.MethodPost, srv.URL+"/api/interview/answers", `{"questionId": "nope", "answerText": "hi"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}
