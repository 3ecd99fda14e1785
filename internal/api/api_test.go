package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/edusosyal/hapbilgi/internal/index"
	"github.com/edusosyal/hapbilgi/internal/kvstore"
	"github.com/edusosyal/hapbilgi/internal/remote"
	"github.com/edusosyal/hapbilgi/internal/tips"
)

// testEnv sets up a temp store, SQLite index, service, and router.
// authToken="" means disabled mode; non-empty means token mode.
func testEnv(t *testing.T, authToken string) (*tips.Service, http.Handler) {
	t.Helper()
	return testEnvFull(t, authToken != "", authToken, nil, nil)
}

func testEnvFull(t *testing.T, authEnabled bool, authToken string, rc *remote.Client, sseHandler http.Handler) (*tips.Service, http.Handler) {
	t.Helper()

	kv, err := kvstore.NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}

	dbFile, err := os.CreateTemp("", "hapbilgi-api-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := tips.NewService(tips.NewStore(kv, logger), db, logger)
	router := NewRouter(svc, db, rc, authEnabled, authToken, sseHandler)
	return svc, router
}

func createTip(t *testing.T, router http.Handler, question, answer string) map[string]any {
	t.Helper()
	body, _ := json.Marshal(map[string]any{"question": question, "ai_response": answer})
	req := httptest.NewRequest(http.MethodPost, "/tips", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return resp["data"].(map[string]any)
}

func TestCreateAndGetTip(t *testing.T) {
	_, router := testEnv(t, "")

	tip := createTip(t, router, "İntegral hesaplama nasıl yapılır, zor bir konu mu?", "Parçalı integral şöyle alınır: önce u seç.")
	id, _ := tip["id"].(string)
	if id == "" {
		t.Fatal("create returned no id")
	}

	req := httptest.NewRequest(http.MethodGet, "/tips/"+id, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data TipDetail `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.ID != id {
		t.Errorf("id = %q, want %q", resp.Data.ID, id)
	}
	if resp.Data.Category != "math" {
		t.Errorf("category = %q, want math", resp.Data.Category)
	}
	if !resp.Data.IsLocal {
		t.Error("isLocal = false, want true")
	}
}

func TestCreateTip_MissingFields(t *testing.T) {
	_, router := testEnv(t, "")

	body, _ := json.Marshal(map[string]any{"question": "  ", "ai_response": ""})
	req := httptest.NewRequest(http.MethodPost, "/tips", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("blank create = %d, want 400", w.Code)
	}
}

func TestCreateTip_InvalidJSON(t *testing.T) {
	_, router := testEnv(t, "")

	req := httptest.NewRequest(http.MethodPost, "/tips", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad json = %d, want 400", w.Code)
	}
}

func TestListRecommended(t *testing.T) {
	_, router := testEnv(t, "")

	createTip(t, router, "Mitoz bölünme evreleri nelerdir?", "Profaz, metafaz, anafaz, telofaz.")
	createTip(t, router, "Osmanlı Devleti ne zaman kuruldu?", "1299 yılında Osman Bey tarafından kuruldu.")

	req := httptest.NewRequest(http.MethodGet, "/tips/recommended?limit=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("recommended = %d", w.Code)
	}
	var resp struct {
		Data []TipDetail `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Data) != 2 {
		t.Errorf("len = %d, want 2", len(resp.Data))
	}
}

func TestListRecommended_EmptyStore(t *testing.T) {
	_, router := testEnv(t, "")

	req := httptest.NewRequest(http.MethodGet, "/tips/recommended", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("recommended empty = %d, want 200", w.Code)
	}
	var resp struct {
		Data []TipDetail `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data == nil || len(resp.Data) != 0 {
		t.Errorf("data = %v, want []", resp.Data)
	}
}

func TestListTips_Indexed(t *testing.T) {
	_, router := testEnv(t, "")

	createTip(t, router, "İntegral hesaplama nasıl yapılır?", "Parçalı integral şöyle alınır.")
	createTip(t, router, "Mitoz bölünme evreleri nelerdir?", "Profaz, metafaz, anafaz, telofaz.")

	req := httptest.NewRequest(http.MethodGet, "/tips?limit=10&category=math", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data TipListResponse `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Total != 1 {
		t.Errorf("total = %d, want 1", resp.Data.Total)
	}
	if len(resp.Data.Tips) != 1 || resp.Data.Tips[0].Category != "math" {
		t.Errorf("tips = %+v", resp.Data.Tips)
	}
}

func TestSearchEndpoint(t *testing.T) {
	_, router := testEnv(t, "")

	createTip(t, router, "İntegral hesaplama nasıl yapılır?", "Parçalı integral şöyle alınır: önce u seç.")

	req := httptest.NewRequest(http.MethodGet, "/tips/search?q=integral", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("search = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data []SearchResult `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Data) != 1 {
		t.Errorf("results = %d, want 1", len(resp.Data))
	}
}

func TestSearchMissingQuery(t *testing.T) {
	_, router := testEnv(t, "")

	req := httptest.NewRequest(http.MethodGet, "/tips/search", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("search no query = %d, want 400", w.Code)
	}
}

func TestGetTip_NotFound(t *testing.T) {
	_, router := testEnv(t, "")

	req := httptest.NewRequest(http.MethodGet, "/tips/local_999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing tip = %d, want 404", w.Code)
	}
}

func TestResetTips(t *testing.T) {
	_, router := testEnv(t, "")

	createTip(t, router, "Mitoz bölünme evreleri nelerdir?", "Profaz, metafaz, anafaz, telofaz.")

	req := httptest.NewRequest(http.MethodDelete, "/tips", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("reset = %d, body = %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/tips/recommended", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	var resp struct {
		Data []TipDetail `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Data) != 0 {
		t.Errorf("after reset len = %d, want 0", len(resp.Data))
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	_, router := testEnv(t, "secret123")

	body, _ := json.Marshal(map[string]any{"question": "Atomun yapısı nedir?", "ai_response": "Proton, nötron ve elektron."})
	req := httptest.NewRequest(http.MethodPost, "/tips", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer secret123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Errorf("authed create = %d, want 201", w.Code)
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	_, router := testEnv(t, "secret123")

	req := httptest.NewRequest(http.MethodGet, "/tips/recommended", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthed = %d, want 401", w.Code)
	}
}

func TestAuthMiddleware_WrongToken(t *testing.T) {
	_, router := testEnv(t, "secret123")

	req := httptest.NewRequest(http.MethodGet, "/tips/recommended", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token = %d, want 401", w.Code)
	}
}

func TestAuthMiddleware_Disabled(t *testing.T) {
	_, router := testEnv(t, "")

	req := httptest.NewRequest(http.MethodGet, "/tips/recommended", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("no auth = %d, want 200", w.Code)
	}
}

// Proxy tests use a stub backend speaking the hap-bilgi envelope.

func proxyEnv(t *testing.T, backend http.Handler) http.Handler {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	rc := remote.NewClient(srv.URL, func() (string, error) { return "tok", nil }, time.Second)
	_, router := testEnvFull(t, false, "", rc, nil)
	return router
}

func TestProxySearch(t *testing.T) {
	router := proxyEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hap-bilgi/search" {
			t.Errorf("backend path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("auth header = %q", got)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"srv_1","title":"İntegral"}]}`))
	}))

	req := httptest.NewRequest(http.MethodGet, "/remote/search?q=integral", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("proxy search = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data []TipDetail `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Data) != 1 || resp.Data[0].ID != "srv_1" {
		t.Errorf("data = %+v", resp.Data)
	}
}

func TestProxyBackendDown(t *testing.T) {
	router := proxyEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":"boom"}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/remote/tips/srv_1/like", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadGateway {
		t.Errorf("proxy failure = %d, want 502", w.Code)
	}
}

func TestProxyRoutesAbsentWithoutClient(t *testing.T) {
	_, router := testEnv(t, "")

	req := httptest.NewRequest(http.MethodGet, "/remote/search?q=x", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("remote without client = %d, want 404", w.Code)
	}
}

// SSE endpoint auth tests.

func TestSSEEvents_AuthProtected(t *testing.T) {
	sse := blockingSSEHandler()
	_, router := testEnvFull(t, true, "secret", nil, sse)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("SSE no auth = %d, want 401", w.Code)
	}
}

func TestSSEEvents_ValidToken(t *testing.T) {
	sse := blockingSSEHandler()
	_, router := testEnvFull(t, true, "tok", nil, sse)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code == http.StatusUnauthorized {
		t.Error("SSE with valid token should not 401")
	}
}

// blockingSSEHandler writes headers and blocks until context done,
// mimicking the real broker endpoint.
func blockingSSEHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		<-r.Context().Done()
	})
}
