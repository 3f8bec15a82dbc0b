package pastetest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Messages returned with {"status":1}. They match the wording of PrivateBin
// so clients exercise the same not-found detection as in production.
const (
	MsgNotFound      = "Paste does not exist, has expired or has been deleted."
	MsgInvalidID     = "Invalid paste ID."
	MsgInvalidData   = "Invalid data."
	MsgWrongToken    = "Wrong deletion token. Paste was not deleted."
	MsgTooLarge      = "Paste is limited to %d bytes of encrypted data."
	MsgPasteDeleted  = "Paste was properly deleted."
	defaultExpire    = "1week"
	defaultSizeLimit = 10 << 20
)

var pasteIDPattern = regexp.MustCompile(`^[a-f0-9]{16}$`)

// expireSeconds mirrors the PrivateBin expire options; "never" maps to 0.
var expireSeconds = map[string]int64{
	"5min":   300,
	"10min":  600,
	"1hour":  3600,
	"1day":   86400,
	"1week":  604800,
	"1month": 2592000,
	"1year":  31536000,
	"never":  0,
}

type storedPaste struct {
	AData       json.RawMessage
	CT          string
	Expire      string
	ExpiresAt   time.Time // zero for "never"
	DeleteToken string
	Burn        bool
}

// Server is an in-memory paste store speaking the PrivateBin v2 JSON API.
// It is safe for concurrent use.
type Server struct {
	mu       sync.Mutex
	pastes   map[string]*storedPaste
	requests map[string]int
	failures []int

	now       func() time.Time
	sizeLimit int
	logf      func(format string, args ...interface{})
	router    *mux.Router
}

// Option configures a Server.
type Option func(*Server)

// WithClock replaces time.Now, for expiry tests.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithSizeLimit sets the maximum accepted ciphertext size in bytes.
func WithSizeLimit(n int) Option {
	return func(s *Server) {
		s.sizeLimit = n
	}
}

// WithLogf enables one log line per request.
func WithLogf(logf func(format string, args ...interface{})) Option {
	return func(s *Server) {
		s.logf = logf
	}
}

// NewServer returns an empty store.
func NewServer(opts ...Option) *Server {
	s := &Server{
		pastes:    make(map[string]*storedPaste),
		requests:  make(map[string]int),
		now:       time.Now,
		sizeLimit: defaultSizeLimit,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := mux.NewRouter()
	r.Use(s.countRequests)
	if s.logf != nil {
		r.Use(s.logRequests)
	}

	api := r.Path("/").Headers("X-Requested-With", "JSONHttpRequest").Subrouter()
	api.Methods(http.MethodGet).HandlerFunc(s.handleRead)
	api.Methods(http.MethodPost).HandlerFunc(s.handleWrite)

	// Without the JSON header PrivateBin serves its web front end.
	r.Path("/").HandlerFunc(s.handleFrontEnd)

	s.router = r
	return s
}

// Start serves a new Server on a local listener closed at test cleanup.
func Start(t testing.TB, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	s := NewServer(opts...)
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)
	return s, ts
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Len returns the number of stored pastes, expired ones included.
func (s *Server) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pastes)
}

// Requests returns how many requests with method reached the server.
func (s *Server) Requests(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[method]
}

// Expire marks id as expired so the next read reports it missing.
func (s *Server) Expire(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pastes[id]; ok {
		p.ExpiresAt = s.now().Add(-time.Second)
	}
}

// StoredCT returns the ciphertext stored under id.
func (s *Server) StoredCT(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pastes[id]
	if !ok {
		return "", false
	}
	return p.CT, true
}

// Tamper replaces the ciphertext stored under id.
func (s *Server) Tamper(id, ct string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pastes[id]; ok {
		p.CT = ct
	}
}

// FailNext makes the next requests answer with the given HTTP status codes,
// one per request, before normal handling resumes.
func (s *Server) FailNext(statusCodes ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, statusCodes...)
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests[r.Method]++
		var fail int
		if len(s.failures) > 0 {
			fail, s.failures = s.failures[0], s.failures[1:]
		}
		s.mu.Unlock()

		if fail != 0 {
			http.Error(w, http.StatusText(fail), fail)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		s.logf("[%s] %s %s - Status: %d - Duration: %v",
			r.Method, r.URL.Path, r.RemoteAddr, rw.statusCode, time.Since(start))
	})
}

func (s *Server) handleFrontEnd(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, "<!DOCTYPE html><html><head><title>PrivateBin</title></head><body></body></html>\n")
}

func (s *Server) handleRead(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("pasteid")
	if id == "" {
		id = r.URL.RawQuery
	}
	if id == "" {
		s.handleFrontEnd(w, r)
		return
	}
	if !pasteIDPattern.MatchString(id) {
		writeError(w, MsgInvalidID)
		return
	}

	s.mu.Lock()
	p, ok := s.pastes[id]
	now := s.now()
	if ok && !p.ExpiresAt.IsZero() && !now.Before(p.ExpiresAt) {
		delete(s.pastes, id)
		ok = false
	}
	if ok && p.Burn {
		delete(s.pastes, id)
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, MsgNotFound)
		return
	}

	meta := map[string]int64{}
	if !p.ExpiresAt.IsZero() {
		meta["time_to_live"] = int64(p.ExpiresAt.Sub(now) / time.Second)
	}

	writeJSON(w, map[string]interface{}{
		"status":         0,
		"id":             id,
		"url":            "/?" + id,
		"v":              2,
		"adata":          p.AData,
		"ct":             p.CT,
		"meta":           meta,
		"comments":       []interface{}{},
		"comment_count":  0,
		"comment_offset": 0,
		"@context":       "?jsonld=paste",
	})
}

// writeRequest covers both POST bodies: a new paste or a deletion.
type writeRequest struct {
	V     *int            `json:"v"`
	AData json.RawMessage `json:"adata"`
	CT    string          `json:"ct"`
	Meta  struct {
		Expire string `json:"expire"`
	} `json:"meta"`
	PasteID     string `json:"pasteid"`
	DeleteToken string `json:"deletetoken"`
}

func (s *Server) handleWrite(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, int64(s.sizeLimit)+64<<10))
	if err != nil {
		writeError(w, MsgInvalidData)
		return
	}

	var req writeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, MsgInvalidData)
		return
	}

	if req.PasteID != "" {
		s.deletePaste(w, req.PasteID, req.DeleteToken)
		return
	}
	s.createPaste(w, &req)
}

func (s *Server) createPaste(w http.ResponseWriter, req *writeRequest) {
	if req.V == nil || *req.V != 2 || req.CT == "" {
		writeError(w, MsgInvalidData)
		return
	}

	var adata []json.RawMessage
	if err := json.Unmarshal(req.AData, &adata); err != nil || len(adata) != 4 {
		writeError(w, MsgInvalidData)
		return
	}
	var burn int
	json.Unmarshal(adata[3], &burn)

	if len(req.CT) > s.sizeLimit {
		writeError(w, fmt.Sprintf(MsgTooLarge, s.sizeLimit))
		return
	}

	expire := req.Meta.Expire
	seconds, ok := expireSeconds[expire]
	if !ok {
		expire = defaultExpire
		seconds = expireSeconds[expire]
	}

	id := newPasteID()
	p := &storedPaste{
		AData:       req.AData,
		CT:          req.CT,
		Expire:      expire,
		DeleteToken: newDeleteToken(),
		Burn:        burn == 1,
	}

	s.mu.Lock()
	if seconds > 0 {
		p.ExpiresAt = s.now().Add(time.Duration(seconds) * time.Second)
	}
	s.pastes[id] = p
	s.mu.Unlock()

	writeJSON(w, map[string]interface{}{
		"status":      0,
		"id":          id,
		"url":         "/?" + id,
		"deletetoken": p.DeleteToken,
	})
}

func (s *Server) deletePaste(w http.ResponseWriter, id, token string) {
	if !pasteIDPattern.MatchString(id) {
		writeError(w, MsgInvalidID)
		return
	}

	s.mu.Lock()
	p, ok := s.pastes[id]
	tokenOK := ok && p.DeleteToken == token
	if tokenOK {
		delete(s.pastes, id)
	}
	s.mu.Unlock()

	switch {
	case !ok:
		writeError(w, MsgNotFound)
		return
	case !tokenOK:
		writeError(w, MsgWrongToken)
		return
	}
	writeJSON(w, map[string]interface{}{
		"status":  0,
		"id":      id,
		"url":     "/?" + id,
		"message": MsgPasteDeleted,
	})
}

func newPasteID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

func newDeleteToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, message string) {
	writeJSON(w, map[string]interface{}{
		"status":  1,
		"message": message,
	})
}
