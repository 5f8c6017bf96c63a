//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tmls-media/vidrag/internal/api/handlers"
	"github.com/tmls-media/vidrag/internal/server"
	"github.com/tmls-media/vidrag/internal/service"
	"github.com/tmls-media/vidrag/internal/store"
	"github.com/tmls-media/vidrag/internal/youtube"
)

// E2ETestEnv holds all resources needed for E2E tests
type E2ETestEnv struct {
	T            *testing.T
	Ctx          context.Context
	ServerURL    string
	ServerCloser func()
	Store        *store.EmbeddingStore
	YouTubeStub  *httptest.Server
	HTTPClient   *http.Client
}

// SetupE2EEnv starts the API server with stubbed providers. Embeddings are
// deterministic word-count vectors so similarity ranking is reproducible, and
// the metadata source is an in-process stub of the videos endpoint.
func SetupE2EEnv(t *testing.T) *E2ETestEnv {
	ctx := context.Background()

	chunkStore := store.NewEmbeddingStore(t.TempDir())

	ytStub := newYouTubeStub()
	ytClient, err := youtube.NewClient("test-key", ytStub.URL)
	if err != nil {
		t.Fatalf("failed to create youtube client: %v", err)
	}

	port, err := getFreePort()
	if err != nil {
		t.Fatalf("failed to get free port: %v", err)
	}

	serverURL, serverCloser := startServer(t, chunkStore, ytClient, port)

	return &E2ETestEnv{
		T:            t,
		Ctx:          ctx,
		ServerURL:    serverURL,
		ServerCloser: serverCloser,
		Store:        chunkStore,
		YouTubeStub:  ytStub,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Cleanup releases all resources
func (e *E2ETestEnv) Cleanup() {
	if e.ServerCloser != nil {
		e.ServerCloser()
	}
	if e.YouTubeStub != nil {
		e.YouTubeStub.Close()
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error,omitempty"`
}

// Get performs a GET request
func (e *E2ETestEnv) Get(path string) (*APIResponse, error) {
	return e.doRequest("GET", path, nil)
}

// Post performs a POST request
func (e *E2ETestEnv) Post(path string, body interface{}) (*APIResponse, error) {
	return e.doRequest("POST", path, body)
}

func (e *E2ETestEnv) doRequest(method, path string, body interface{}) (*APIResponse, error) {
	url := e.ServerURL + path

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var apiResp APIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
		}
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, apiResp.Error)
	}

	return &apiResp, nil
}

// startServer starts the HTTP server with all handlers
func startServer(t *testing.T, chunkStore *store.EmbeddingStore, meta handlers.MetadataService, port int) (string, func()) {
	embedding := &stubEmbeddingClient{}
	generator := &stubGenerationClient{}

	indexSvc := service.NewIndexService(embedding, chunkStore)
	answerSvc := service.NewAnswerService(embedding, generator, chunkStore)
	postSvc := service.NewPostService(generator)
	workflowSvc := service.NewWorkflowService(generator, nil)

	cfg := server.RouterConfig{
		VideoHandler:    handlers.NewVideoHandler(meta),
		ChunkHandler:    handlers.NewChunkHandler(indexSvc, meta),
		AskHandler:      handlers.NewAskHandler(answerSvc),
		PostHandler:     handlers.NewPostHandler(postSvc, meta),
		WorkflowHandler: handlers.NewWorkflowHandler(workflowSvc, meta),
	}

	router := server.NewRouter(cfg)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := fmt.Sprintf("http://localhost:%d", port)
	waitForServer(t, serverURL, 10*time.Second)

	return serverURL, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}

func waitForServer(t *testing.T, url string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("server did not start within %v", timeout)
}

func getFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// stubEmbeddingClient folds the text's runes into a small vector, so distinct
// chunks get distinct but stable embeddings.
type stubEmbeddingClient struct{}

func (c *stubEmbeddingClient) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	vec := make([]float32, 8)
	for i, r := range text {
		vec[i%8] += float32(r)
	}
	return vec, nil
}

type stubGenerationClient struct{}

func (c *stubGenerationClient) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	return "stub answer", nil
}

// newYouTubeStub serves the videos endpoint shape the metadata client expects.
func newYouTubeStub() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		videoID := r.URL.Query().Get("id")
		if videoID == "missing" {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"items": []}`)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"items": [{
				"snippet": {
					"title": "Scaling Vector Search",
					"description": "A talk about embedding pipelines. Chunking strategies matter. Retrieval quality depends on both.",
					"channelTitle": "TMLS",
					"publishedAt": "2024-06-01T00:00:00Z"
				},
				"statistics": {"viewCount": "1234"}
			}]
		}`)
	}))
}
