package web

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/local/ideagen/internal/config"
	"github.com/local/ideagen/internal/jobs"
	"github.com/local/ideagen/internal/store"
)

type noopExtractor struct{}

func (noopExtractor) Text(string, func(int, int)) (string, error) {
	return "A fé cresce quando você decide confiar mesmo sem entender tudo.", nil
}

func newTestServer(t *testing.T) (*Server, *store.MemoryKV, *store.MemoryStatus) {
	t.Helper()
	corpus := store.NewMemoryKV()
	status := store.NewMemoryStatus()
	runner := jobs.New(jobs.Dependencies{
		Extractor: noopExtractor{},
		Status:    status,
		Corpus:    corpus,
	})
	s := &Server{
		tpl:    template.Must(template.New("dashboard.html").Parse("<html>{{.Count}}</html>")),
		corpus: corpus,
		status: status,
		runner: runner,
		defaults: config.GeneratorConfig{
			DefaultCount: 9,
			DefaultLang:  "PT",
			WithPrompts:  true,
		},
		maxUp: 50 << 20,
	}
	return s, corpus, status
}

func doRequest(s *Server, r *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}

const testCorpus = `Quando a ansiedade aperta, retome a respiração e a oração simples.
A fé cresce quando você decide confiar mesmo sem entender tudo.
Você não precisa vencer sozinho o que enfrenta hoje.
Deus não se esquece de você, mesmo no silêncio.`

func TestGenerateHandler(t *testing.T) {
	s, _, _ := newTestServer(t)

	body, _ := json.Marshal(map[string]any{
		"lang":   "PT",
		"count":  3,
		"date":   "2024-05-01",
		"corpus": testCorpus,
	})
	w := doRequest(s, httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Date  string           `json:"date"`
		Lang  string           `json:"lang"`
		Ideas []map[string]any `json:"ideas"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2024-05-01", resp.Date)
	assert.Equal(t, "PT", resp.Lang)
	assert.Len(t, resp.Ideas, 3)
	assert.NotEmpty(t, resp.Ideas[0]["titulo"])
	assert.NotEmpty(t, resp.Ideas[0]["ideiaCentral"])
}

func TestGenerateDeterministicAcrossRequests(t *testing.T) {
	s, _, _ := newTestServer(t)
	body, _ := json.Marshal(map[string]any{"lang": "PT", "count": 3, "date": "2024-05-01", "corpus": testCorpus})

	w1 := doRequest(s, httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader(body)))
	w2 := doRequest(s, httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader(body)))

	assert.Equal(t, w1.Body.String(), w2.Body.String())
}

func TestGenerateDoesNotPersistPastedCorpus(t *testing.T) {
	s, corpus, _ := newTestServer(t)
	corpus.Save(context.Background(), store.KeyCorpus, "stored corpus stays")
	body, _ := json.Marshal(map[string]any{"lang": "PT", "corpus": testCorpus})

	w := doRequest(s, httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "stored corpus stays", corpus.Load(context.Background(), store.KeyCorpus, ""),
		"saving is the explicit /api/corpus action, not a generate side effect")
}

func TestGenerateUsesStoredCorpusWhenBodyEmpty(t *testing.T) {
	s, corpus, _ := newTestServer(t)
	corpus.Save(context.Background(), store.KeyCorpus, testCorpus)
	body, _ := json.Marshal(map[string]any{"lang": "PT", "count": 2, "date": "2024-05-01"})

	w := doRequest(s, httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)
}

func TestGenerateEmptyCorpus(t *testing.T) {
	s, _, _ := newTestServer(t)
	body, _ := json.Marshal(map[string]any{"lang": "PT"})

	w := doRequest(s, httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "empty corpus")
}

func TestGenerateBadLanguage(t *testing.T) {
	s, _, _ := newTestServer(t)
	body, _ := json.Marshal(map[string]any{"lang": "FR", "corpus": testCorpus})

	w := doRequest(s, httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateMethodNotAllowed(t *testing.T) {
	s, _, _ := newTestServer(t)
	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/generate", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCorpusRoundTrip(t *testing.T) {
	s, _, _ := newTestServer(t)

	body, _ := json.Marshal(map[string]string{"corpus": "linha um", "verses": "Salmo 23:1"})
	w := doRequest(s, httptest.NewRequest(http.MethodPost, "/api/corpus", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(s, httptest.NewRequest(http.MethodGet, "/api/corpus", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "linha um", got["corpus"])
	assert.Equal(t, "Salmo 23:1", got["verses"])
}

func TestProgressNotFound(t *testing.T) {
	s, _, _ := newTestServer(t)
	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/progress/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProgressReturnsStatus(t *testing.T) {
	s, _, status := newTestServer(t)
	status.Set(context.Background(), "job-1", store.JobStatus{Status: "processing", Progress: 40, Message: "Lendo PDF…"})

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/progress/job-1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var st store.JobStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, "processing", st.Status)
	assert.Equal(t, 40, st.Progress)
}

func TestExportCSV(t *testing.T) {
	s, corpus, _ := newTestServer(t)
	corpus.Save(context.Background(), store.KeyCorpus, testCorpus)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/export/csv?lang=PT&count=2&date=2024-05-01", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ideias_2024-05-01.csv")
	assert.True(t, strings.HasPrefix(w.Body.String(), "Data,Título,Gancho"))
}

func TestExportJSON(t *testing.T) {
	s, corpus, _ := newTestServer(t)
	corpus.Save(context.Background(), store.KeyCorpus, testCorpus)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/export/json?lang=PT&count=2&date=2024-05-01", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ideias_2024-05-01.json")
	var ideas []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ideas))
	assert.Len(t, ideas, 2)
}

func TestExportUnknownFormat(t *testing.T) {
	s, corpus, _ := newTestServer(t)
	corpus.Save(context.Background(), store.KeyCorpus, testCorpus)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/export/xml?lang=PT", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func uploadTemps(t *testing.T) []string {
	t.Helper()
	paths, err := filepath.Glob(filepath.Join(os.TempDir(), "upload-*.pdf"))
	require.NoError(t, err)
	return paths
}

func TestUploadAcceptsPDFAndCleansUpTemp(t *testing.T) {
	s, _, status := newTestServer(t)
	before := len(uploadTemps(t))

	var b bytes.Buffer
	mw := multipart.NewWriter(&b)
	fw, err := mw.CreateFormFile("file", "devocional.pdf")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("%PDF-1.4 minimal"))
	_ = mw.WriteField("use_ocr", "false")
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/upload", &b)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := doRequest(s, r)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		JobID string `json:"job_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.JobID)

	require.Eventually(t, func() bool {
		st, ok := status.Get(context.Background(), resp.JobID)
		return ok && (st.Status == "completed" || st.Status == "error")
	}, 3*time.Second, 20*time.Millisecond)

	require.Eventually(t, func() bool {
		return len(uploadTemps(t)) == before
	}, 3*time.Second, 20*time.Millisecond, "upload temp file should be removed after the job")
}

func TestUploadRejectsNonPDF(t *testing.T) {
	s, _, _ := newTestServer(t)

	var b bytes.Buffer
	mw := multipart.NewWriter(&b)
	fw, err := mw.CreateFormFile("file", "notes.txt")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("plain text, not a pdf"))
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/upload", &b)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := doRequest(s, r)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestUploadMissingFile(t *testing.T) {
	s, _, _ := newTestServer(t)

	var b bytes.Buffer
	mw := multipart.NewWriter(&b)
	_ = mw.WriteField("name", "x")
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/upload", &b)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := doRequest(s, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	s, _, _ := newTestServer(t)
	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
