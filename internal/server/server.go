// Package server exposes keyword extraction over HTTP.
package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/deidaraiorek/deirake/internal/logging"
	"github.com/deidaraiorek/deirake/internal/rake"
	"github.com/deidaraiorek/deirake/internal/textprocessor"
	"github.com/deidaraiorek/deirake/internal/tokenizer"
)

const (
	DefaultCacheSize    = 1024
	DefaultMaxTextBytes = 1 << 20
)

type Config struct {
	CacheSize    int
	MaxTextBytes int
	// Stemmer backs /stem. Nil selects the English stemmer.
	Stemmer *textprocessor.Stemmer
}

type KeywordRequest struct {
	Text string `json:"text"`
	Top  int    `json:"top"`
}

type StemResponse struct {
	Language string   `json:"language"`
	Words    []string `json:"words"`
	Stems    []string `json:"stems"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Server struct {
	extractor *rake.Extractor
	logger    *logging.Logger
	cache     *lru.Cache[string, []rake.Keyword]
	stemmer   *textprocessor.Stemmer
	words     *tokenizer.Tokenizer
	maxBytes  int
}

func New(extractor *rake.Extractor, logger *logging.Logger, config Config) (*Server, error) {
	if config.CacheSize <= 0 {
		config.CacheSize = DefaultCacheSize
	}
	if config.MaxTextBytes <= 0 {
		config.MaxTextBytes = DefaultMaxTextBytes
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if config.Stemmer == nil {
		config.Stemmer = textprocessor.NewStemmer()
	}

	cache, err := lru.New[string, []rake.Keyword](config.CacheSize)
	if err != nil {
		return nil, err
	}

	return &Server{
		extractor: extractor,
		logger:    logger,
		cache:     cache,
		stemmer:   config.Stemmer,
		words:     tokenizer.NewTokenizer(),
		maxBytes:  config.MaxTextBytes,
	}, nil
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/keywords", s.handleGetKeywords)
	r.Post("/keywords", s.handlePostKeywords)
	r.Get("/stem", s.handleGetStem)
	r.Post("/stem", s.handlePostStem)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetKeywords(w http.ResponseWriter, r *http.Request) {
	top, err := parseTop(r.URL.Query().Get("top"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	s.respond(w, r, KeywordRequest{Text: r.URL.Query().Get("text"), Top: top})
}

func (s *Server) handlePostKeywords(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeBody(w, r)
	if !ok {
		return
	}
	s.respond(w, r, req)
}

// decodeBody reads a JSON or form request body into a KeywordRequest. It
// writes the error response itself and reports whether decoding succeeded.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request) (KeywordRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, int64(s.maxBytes)+1024)

	var req KeywordRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBodyError(w, err, "invalid JSON body")
			return req, false
		}
		return req, true
	}

	if err := r.ParseForm(); err != nil {
		writeBodyError(w, err, "invalid form body")
		return req, false
	}
	top, err := parseTop(r.PostForm.Get("top"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return req, false
	}
	return KeywordRequest{Text: r.PostForm.Get("text"), Top: top}, true
}

func (s *Server) handleGetStem(w http.ResponseWriter, r *http.Request) {
	s.stem(w, r.URL.Query().Get("text"))
}

func (s *Server) handlePostStem(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeBody(w, r)
	if !ok {
		return
	}
	s.stem(w, req.Text)
}

func (s *Server) stem(w http.ResponseWriter, text string) {
	if strings.TrimSpace(text) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "text is required"})
		return
	}
	if len(text) > s.maxBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "text is too large"})
		return
	}

	words := s.words.Words(text)
	if words == nil {
		words = []string{}
	}
	writeJSON(w, http.StatusOK, StemResponse{
		Language: s.stemmer.Language(),
		Words:    words,
		Stems:    s.stemmer.StemBatch(words),
	})
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, req KeywordRequest) {
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "text is required"})
		return
	}
	if len(req.Text) > s.maxBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "text is too large"})
		return
	}
	if req.Top < 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "top must not be negative"})
		return
	}

	keywords, err := s.extract(req.Text)
	if err != nil {
		s.logger.Error("Request %s: extraction failed: %v", middleware.GetReqID(r.Context()), err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "extraction failed"})
		return
	}

	if req.Top > 0 && len(keywords) > req.Top {
		keywords = keywords[:req.Top]
	}
	writeJSON(w, http.StatusOK, rake.Result{Keywords: keywords})
}

func (s *Server) extract(text string) ([]rake.Keyword, error) {
	sum := sha256.Sum256([]byte(text))
	key := hex.EncodeToString(sum[:])

	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	keywords, err := s.extractor.Extract(text)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, keywords)
	return keywords, nil
}

func parseTop(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	top, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.New("top must be an integer")
	}
	return top, nil
}

func writeBodyError(w http.ResponseWriter, err error, message string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body is too large"})
		return
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
