package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"horse.fit/localizer/internal/config"
	"horse.fit/localizer/internal/service"
)

// testServer wires the full service against unreachable backend
// endpoints, so every model call fails fast and routing lands on the
// emergency lexicon.
func testServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		Environment:              "test",
		ListenAddr:               ":0",
		BilingualEndpoint:        "http://127.0.0.1:1/v1",
		BilingualModel:           "test-bilingual",
		BilingualSizeMB:          100,
		MultilingualEndpoint:     "http://127.0.0.1:1/v1",
		MultilingualModel:        "test-multilingual",
		MultilingualSizeMB:       100,
		MemoryBudgetMB:           1000,
		MaxChunkChars:            600,
		SingleShotMaxChars:       800,
		ChunkTimeoutSeconds:      1,
		TargetConcurrency:        2,
		SkipMultilingualForIndic: true,
	}
	svc := service.New(cfg, nil, zerolog.Nop())
	return NewServer(svc, cfg, zerolog.Nop(), Options{})
}

func doRequest(t *testing.T, s *Server, method, path, body string) (int, apiEnvelope) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echoContentType, "application/json")
	}
	rec := httptest.NewRecorder()
	s.buildEcho().ServeHTTP(rec, req)

	var envelope apiEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec.Code, envelope
}

const echoContentType = "Content-Type"

func dataMap(t *testing.T, envelope apiEnvelope) map[string]any {
	t.Helper()
	data, ok := envelope.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %T", envelope.Data)
	}
	return data
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	status, envelope := doRequest(t, testServer(t), http.MethodGet, "/healthz", "")
	if status != http.StatusOK || !envelope.Success {
		t.Fatalf("unexpected health response: %d %+v", status, envelope)
	}
	if dataMap(t, envelope)["service"] != "localizer" {
		t.Fatalf("unexpected service name: %+v", envelope.Data)
	}
}

func TestLanguagesEndpoint(t *testing.T) {
	t.Parallel()

	status, envelope := doRequest(t, testServer(t), http.MethodGet, "/api/v1/languages", "")
	if status != http.StatusOK {
		t.Fatalf("unexpected status: %d", status)
	}
	items, ok := dataMap(t, envelope)["items"].([]any)
	if !ok || len(items) != 23 {
		t.Fatalf("expected 23 catalog languages, got %v", envelope.Data)
	}
}

func TestModelsEndpoint(t *testing.T) {
	t.Parallel()

	status, envelope := doRequest(t, testServer(t), http.MethodGet, "/api/v1/models", "")
	if status != http.StatusOK {
		t.Fatalf("unexpected status: %d", status)
	}
	data := dataMap(t, envelope)
	if data["bilingual"] == nil || data["multilingual"] == nil || data["registry"] == nil {
		t.Fatalf("missing model metadata: %v", data)
	}
}

func TestHistoryEndpointWithoutStore(t *testing.T) {
	t.Parallel()

	status, _ := doRequest(t, testServer(t), http.MethodGet, "/api/v1/history", "")
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 without a configured store, got %d", status)
	}
}

func TestTranslateValidation(t *testing.T) {
	t.Parallel()

	server := testServer(t)

	status, envelope := doRequest(t, server, http.MethodPost, "/api/v1/translate",
		`{"target_languages":["hi"]}`)
	if status != http.StatusBadRequest || envelope.Success {
		t.Fatalf("expected schema rejection, got %d %+v", status, envelope)
	}
	if len(envelope.Fields) == 0 {
		t.Fatalf("expected field-level errors, got %+v", envelope)
	}

	status, _ = doRequest(t, server, http.MethodPost, "/api/v1/translate", `not json`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid JSON, got %d", status)
	}

	status, _ = doRequest(t, server, http.MethodPost, "/api/v1/translate",
		`{"text":"hello","target_languages":[]}`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty target list, got %d", status)
	}
}

func TestTranslateFallsBackToLexiconWhenBackendsUnreachable(t *testing.T) {
	t.Parallel()

	status, envelope := doRequest(t, testServer(t), http.MethodPost, "/api/v1/translate",
		`{"text":"hello","source_language":"en","target_languages":["hi"]}`)
	if status != http.StatusOK || !envelope.Success {
		t.Fatalf("unexpected response: %d %+v", status, envelope)
	}

	results := dataMap(t, envelope)["results"].(map[string]any)
	hindi, ok := results["hi"].(map[string]any)
	if !ok {
		t.Fatalf("missing hi result: %v", results)
	}
	if hindi["translated_text"] != "नमस्ते" {
		t.Fatalf("unexpected emergency translation: %v", hindi["translated_text"])
	}
	if hindi["model_used"] != "emergency-lexicon" {
		t.Fatalf("unexpected model: %v", hindi["model_used"])
	}
}

func TestTranslateIsolatesUnsupportedTarget(t *testing.T) {
	t.Parallel()

	status, envelope := doRequest(t, testServer(t), http.MethodPost, "/api/v1/translate",
		`{"text":"hello","source_language":"en","target_languages":["hi","fr"]}`)
	if status != http.StatusOK {
		t.Fatalf("unexpected status: %d", status)
	}

	results := dataMap(t, envelope)["results"].(map[string]any)
	french, ok := results["fr"].(map[string]any)
	if !ok {
		t.Fatalf("missing fr result: %v", results)
	}
	if french["error"] == nil || french["error"] == "" {
		t.Fatalf("expected per-target error for fr: %v", french)
	}
	hindi := results["hi"].(map[string]any)
	if hindi["error"] != nil {
		t.Fatalf("healthy target must not fail: %v", hindi)
	}
}

func TestDetectLanguageEndpoint(t *testing.T) {
	t.Parallel()

	server := testServer(t)

	status, _ := doRequest(t, server, http.MethodPost, "/api/v1/detect-language", `{"text":""}`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty text, got %d", status)
	}

	status, envelope := doRequest(t, server, http.MethodPost, "/api/v1/detect-language",
		`{"text":"The weather is nice today and the children are playing in the garden."}`)
	if status != http.StatusOK {
		t.Fatalf("unexpected status: %d", status)
	}
	data := dataMap(t, envelope)
	if data["language"] != "en" {
		t.Fatalf("expected English detection, got %v", data)
	}
}

func TestTranslateFieldsEndpoint(t *testing.T) {
	t.Parallel()

	status, envelope := doRequest(t, testServer(t), http.MethodPost, "/api/v1/translate-fields",
		`{"document":{"id":"doc-1","title":"hello"},"source_language":"en","target_language":"hi"}`)
	if status != http.StatusOK || !envelope.Success {
		t.Fatalf("unexpected response: %d %+v", status, envelope)
	}

	document := dataMap(t, envelope)["document"].(map[string]any)
	if document["title"] != "नमस्ते" {
		t.Fatalf("title not translated: %v", document)
	}
	if document["id"] != "doc-1" {
		t.Fatalf("machine field must pass through: %v", document)
	}
}
