package web

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/local/ideagen/internal/config"
	"github.com/local/ideagen/internal/export"
	"github.com/local/ideagen/internal/filetype"
	"github.com/local/ideagen/internal/generator"
	"github.com/local/ideagen/internal/jobs"
	"github.com/local/ideagen/internal/language"
	"github.com/local/ideagen/internal/statuscheck"
	"github.com/local/ideagen/internal/store"
	"github.com/local/ideagen/internal/textproc"
)

// Server serves the dashboard and the JSON API in front of the generator and
// the extraction pipeline.
type Server struct {
	tpl      *template.Template
	corpus   store.KV
	status   store.StatusStore
	runner   *jobs.Runner
	checker  *statuscheck.Checker
	defaults config.GeneratorConfig
	maxUp    int64
}

type Options struct {
	Corpus       store.KV
	Status       store.StatusStore
	Runner       *jobs.Runner
	Checker      *statuscheck.Checker
	Generator    config.GeneratorConfig
	MaxUploadMB  int
	TemplatesDir string
}

func New(opts Options) *Server {
	dir := opts.TemplatesDir
	if dir == "" {
		dir = filepath.Join("web", "templates")
	}
	tpl := template.Must(template.ParseGlob(filepath.Join(dir, "*.html")))
	maxUp := int64(opts.MaxUploadMB)
	if maxUp <= 0 {
		maxUp = 50
	}
	return &Server{
		tpl:      tpl,
		corpus:   opts.Corpus,
		status:   opts.Status,
		runner:   opts.Runner,
		checker:  opts.Checker,
		defaults: opts.Generator,
		maxUp:    maxUp << 20,
	}
}

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.handleDashboard)
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/api/upload", s.handleUpload)
	mux.HandleFunc("/api/progress/", s.handleProgress)
	mux.HandleFunc("/api/corpus", s.handleCorpus)
	mux.HandleFunc("/api/export/", s.handleExport)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data := map[string]any{
		"Corpus":      s.corpus.Load(r.Context(), store.KeyCorpus, ""),
		"Verses":      s.corpus.Load(r.Context(), store.KeyVerses, ""),
		"Count":       s.defaults.DefaultCount,
		"Lang":        s.defaults.DefaultLang,
		"WithPrompts": s.defaults.WithPrompts,
		"Today":       generator.SlugDate(time.Now()),
	}
	if err := s.tpl.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		log.Error().Err(err).Msg("dashboard render failed")
	}
}

// generateReq mirrors the dashboard controls. Corpus and Verses are raw
// multi-line text; when Corpus is empty the stored one is used.
type generateReq struct {
	Lang           string `json:"lang"`
	Count          int    `json:"count"`
	Date           string `json:"date"`
	EmphasizeTitle bool   `json:"emphasize_title"`
	IncludeVerse   bool   `json:"include_verse"`
	WithPrompts    *bool  `json:"with_prompts"`
	Corpus         string `json:"corpus"`
	Verses         string `json:"verses"`
}

func (s *Server) buildRequest(r *http.Request, req generateReq) (generator.Request, error) {
	lang := language.Lang(strings.ToUpper(strings.TrimSpace(req.Lang)))
	if lang == "" {
		lang = language.Lang(s.defaults.DefaultLang)
	}
	if !lang.Valid() {
		return generator.Request{}, fmt.Errorf("unsupported language %q", req.Lang)
	}
	count := req.Count
	if count == 0 {
		count = s.defaults.DefaultCount
	}
	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = generator.SlugDate(time.Now())
	}
	withPrompts := s.defaults.WithPrompts
	if req.WithPrompts != nil {
		withPrompts = *req.WithPrompts
	}

	corpusText := req.Corpus
	if strings.TrimSpace(corpusText) == "" {
		corpusText = s.corpus.Load(r.Context(), store.KeyCorpus, "")
	}
	versesText := req.Verses
	if strings.TrimSpace(versesText) == "" {
		versesText = s.corpus.Load(r.Context(), store.KeyVerses, "")
	}

	return generator.Request{
		Lang:           lang,
		Count:          count,
		Date:           date,
		EmphasizeTitle: req.EmphasizeTitle,
		IncludeVerse:   req.IncludeVerse,
		WithPrompts:    withPrompts,
		Corpus:         textproc.SplitEntries(corpusText),
		Verses:         textproc.SplitEntries(versesText),
	}, nil
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	genReq, err := s.buildRequest(r, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	// Pasted text is used for this request only; saving is the explicit
	// /api/corpus action.
	batch, err := generator.Generate(genReq)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if err == generator.ErrEmptyCorpus {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":  batch.Date,
		"lang":  batch.Lang,
		"ideas": batch.Ideas,
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(s.maxUp); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "upload-*.pdf")
	if err != nil {
		http.Error(w, "upload error", http.StatusInternalServerError)
		return
	}
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		http.Error(w, "upload error", http.StatusInternalServerError)
		return
	}
	tmp.Close()

	if err := filetype.RequirePDF(tmp.Name()); err != nil {
		os.Remove(tmp.Name())
		http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
		return
	}

	useOCR := true
	if v := r.FormValue("use_ocr"); v != "" {
		useOCR = boolQuery(v)
	}
	langHint := r.FormValue("ocr_lang")
	jobID := s.runner.Submit(tmp.Name(), jobs.SubmitOptions{
		LangHint:     langHint,
		UseOCR:       useOCR,
		RemoveSource: true,
	})
	log.Info().Str("job_id", jobID).Str("filename", hdr.Filename).Str("ocr_lang", langHint).Bool("use_ocr", useOCR).Msg("upload accepted")
	writeJSON(w, http.StatusCreated, map[string]any{"job_id": jobID})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	jobID := strings.TrimPrefix(r.URL.Path, "/api/progress/")
	if jobID == "" {
		http.Error(w, "missing job id", http.StatusBadRequest)
		return
	}
	st, ok := s.status.Get(r.Context(), jobID)
	if !ok {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleCorpus(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]string{
			"corpus": s.corpus.Load(r.Context(), store.KeyCorpus, ""),
			"verses": s.corpus.Load(r.Context(), store.KeyVerses, ""),
		})
	case http.MethodPost:
		defer r.Body.Close()
		var body struct {
			Corpus *string `json:"corpus"`
			Verses *string `json:"verses"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if body.Corpus != nil {
			s.corpus.Save(r.Context(), store.KeyCorpus, *body.Corpus)
		}
		if body.Verses != nil {
			s.corpus.Save(r.Context(), store.KeyVerses, *body.Verses)
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := strings.TrimPrefix(r.URL.Path, "/api/export/")
	q := r.URL.Query()
	req := generateReq{
		Lang:           q.Get("lang"),
		Count:          intQuery(q.Get("count")),
		Date:           q.Get("date"),
		EmphasizeTitle: boolQuery(q.Get("emphasize_title")),
		IncludeVerse:   boolQuery(q.Get("include_verse")),
	}
	if v := q.Get("with_prompts"); v != "" {
		b := boolQuery(v)
		req.WithPrompts = &b
	}
	genReq, err := s.buildRequest(r, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	batch, err := generator.Generate(genReq)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	switch format {
	case "csv":
		serveDownload(w, export.CSVFilename(batch.Date), "text/csv; charset=utf-8", []byte(export.CSV(batch)))
	case "json":
		data, err := export.JSON(batch)
		if err != nil {
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}
		serveDownload(w, export.JSONFilename(batch.Date), "application/json", data)
	case "text":
		serveDownload(w, export.TextFilename(batch.Date), "text/plain; charset=utf-8", []byte(export.Text(batch)))
	default:
		http.Error(w, "unknown format: use csv, json or text", http.StatusNotFound)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if s.checker == nil {
		http.Error(w, "status checks unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, s.checker.Summary(r.Context()))
}

func serveDownload(w http.ResponseWriter, filename, mime string, data []byte) {
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func intQuery(s string) int {
	var n int
	fmt.Sscan(s, &n)
	return n
}

func boolQuery(s string) bool {
	v := strings.ToLower(s)
	return v == "1" || v == "true" || v == "on" || v == "yes"
}
