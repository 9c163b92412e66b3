package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/asmit/lexiq/internal/quiz"
	"github.com/asmit/lexiq/internal/quizgen"
)

const sessionCookie = "lexiq_session"

// Server exposes the quiz engine's four operations over HTTP. It is a
// thin adapter: session lookup, per-session serialization, and JSON
// encoding live here; all quiz semantics live in the engine.
type Server struct {
	engine   *quiz.Engine
	sessions SessionStore
	log      *zap.Logger
	locks    *sessionLocks
}

// NewServer creates a Server.
func NewServer(engine *quiz.Engine, sessions SessionStore, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		engine:   engine,
		sessions: sessions,
		log:      log,
		locks:    newSessionLocks(),
	}
}

// Router builds the HTTP router.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/question", s.handleQuestion).Methods(http.MethodGet)
	r.HandleFunc("/answer", s.handleAnswer).Methods(http.MethodPost)
	r.HandleFunc("/result", s.handleResult).Methods(http.MethodGet)
	r.HandleFunc("/restart", s.handleRestart).Methods(http.MethodPost)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return r
}

// session loads the request's session, creating one when the cookie is
// missing or stale. It returns the session and its release function.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*quiz.Session, func(), error) {
	var session *quiz.Session

	if cookie, err := r.Cookie(sessionCookie); err == nil {
		release := s.locks.acquire(cookie.Value)
		session, err = s.sessions.Get(r.Context(), cookie.Value)
		if err == nil {
			return session, release, nil
		}
		release()
		s.locks.forget(cookie.Value)
		if !errors.Is(err, ErrSessionNotFound) {
			return nil, nil, err
		}
	}

	session = s.engine.Start()
	release := s.locks.acquire(session.ID)
	if err := s.sessions.Put(r.Context(), session); err != nil {
		release()
		return nil, nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return session, release, nil
}

func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	session, release, err := s.session(w, r)
	if err != nil {
		s.serverError(w, "load session", err)
		return
	}
	defer release()

	if session.Completed() {
		writeJSON(w, http.StatusOK, map[string]any{"done": true})
		return
	}

	q, err := s.engine.NextQuestion(r.Context(), session)
	if err != nil {
		s.protocolError(w, err)
		return
	}

	if err := s.sessions.Put(r.Context(), session); err != nil {
		s.serverError(w, "save session", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"done":     false,
		"question": q.Prompt,
		"options":  q.Options,
		"number":   session.Position + 1,
		"total":    len(session.Categories),
	})
}

type answerRequest struct {
	Answer string `json:"answer"`
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	label, ok := quizgen.ParseLabel(req.Answer)
	if !ok {
		writeError(w, http.StatusBadRequest, "answer must be one of A, B, C, D")
		return
	}

	session, release, err := s.session(w, r)
	if err != nil {
		s.serverError(w, "load session", err)
		return
	}
	defer release()

	result, err := s.engine.SubmitAnswer(session, label)
	if err != nil {
		s.protocolError(w, err)
		return
	}

	if err := s.sessions.Put(r.Context(), session); err != nil {
		s.serverError(w, "save session", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	session, release, err := s.session(w, r)
	if err != nil {
		s.serverError(w, "load session", err)
		return
	}
	defer release()

	result, err := s.engine.Result(session)
	if err != nil {
		s.protocolError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if err := s.sessions.Delete(r.Context(), cookie.Value); err != nil {
			s.log.Warn("delete session", zap.Error(err))
		}
		s.locks.forget(cookie.Value)
	}

	session := s.engine.Start()
	if err := s.sessions.Put(r.Context(), session); err != nil {
		s.serverError(w, "save session", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"total": len(session.Categories),
	})
}

// protocolError maps session protocol errors to 409; these are the only
// errors the engine surfaces.
func (s *Server) protocolError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quiz.ErrSessionExhausted),
		errors.Is(err, quiz.ErrNoPendingQuestion),
		errors.Is(err, quiz.ErrEmptyHistory):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.serverError(w, "quiz operation", err)
	}
}

func (s *Server) serverError(w http.ResponseWriter, op string, err error) {
	s.log.Error(op, zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
