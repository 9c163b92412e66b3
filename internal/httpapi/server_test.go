package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/asmit/lexiq/internal/quiz"
	"github.com/asmit/lexiq/internal/quizgen"
)

type stubSource struct{}

func (stubSource) Assemble(_ context.Context, _ quizgen.QuestionSpec) *quizgen.CanonicalQuestion {
	return quizgen.FallbackQuestion()
}

type testClient struct {
	t       *testing.T
	server  *Server
	store   SessionStore
	handler http.Handler
	cookies []*http.Cookie
}

func newTestClient(t *testing.T, length int) *testClient {
	t.Helper()
	engine := quiz.NewEngine(stubSource{}, quiz.Config{Length: length})
	store := NewMemorySessionStore(time.Minute)
	srv := NewServer(engine, store, nil)
	return &testClient{
		t:       t,
		server:  srv,
		store:   store,
		handler: srv.Router(),
	}
}

func (c *testClient) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	if set := rec.Result().Cookies(); len(set) > 0 {
		c.cookies = set
	}
	return rec
}

// correctLabel peeks at the stored session to find the pending correct label.
func (c *testClient) correctLabel() quizgen.Label {
	c.t.Helper()
	require.NotEmpty(c.t, c.cookies, "no session cookie set")
	session, err := c.store.Get(context.Background(), c.cookies[0].Value)
	require.NoError(c.t, err)
	require.NotNil(c.t, session.Pending, "no pending question")
	return session.Pending.CorrectLabel
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestQuestionFlow(t *testing.T) {
	c := newTestClient(t, 5)

	rec := c.do(http.MethodGet, "/question", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, c.cookies, "expected session cookie")

	body := decode[map[string]any](t, rec)
	require.Equal(t, false, body["done"])
	require.NotEmpty(t, body["question"])
	require.Len(t, body["options"], 4)
	require.EqualValues(t, 1, body["number"])
	require.EqualValues(t, 5, body["total"])
}

func TestQuestionIdempotentUntilAnswered(t *testing.T) {
	c := newTestClient(t, 5)

	first := decode[map[string]any](t, c.do(http.MethodGet, "/question", ""))
	second := decode[map[string]any](t, c.do(http.MethodGet, "/question", ""))

	require.Equal(t, first["question"], second["question"])
	require.Equal(t, first["options"], second["options"])
	require.Equal(t, first["number"], second["number"])
}

func TestAnswerGrading(t *testing.T) {
	c := newTestClient(t, 5)
	c.do(http.MethodGet, "/question", "")

	correct := c.correctLabel()
	rec := c.do(http.MethodPost, "/answer", `{"answer":"`+string(correct)+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[quiz.AnswerResult](t, rec)
	require.True(t, body.Correct)
	require.Equal(t, correct, body.CorrectLabel)
	require.NotEmpty(t, body.Explanation)
}

func TestAnswerWithoutQuestionRejected(t *testing.T) {
	c := newTestClient(t, 5)
	c.do(http.MethodGet, "/question", "")
	c.do(http.MethodPost, "/answer", `{"answer":"A"}`)

	// Second submit for the same position has no pending question.
	rec := c.do(http.MethodPost, "/answer", `{"answer":"A"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestAnswerInvalidLabel(t *testing.T) {
	c := newTestClient(t, 5)
	c.do(http.MethodGet, "/question", "")

	rec := c.do(http.MethodPost, "/answer", `{"answer":"E"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodPost, "/answer", `not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResultBeforeAnyAnswer(t *testing.T) {
	c := newTestClient(t, 5)
	c.do(http.MethodGet, "/question", "")

	rec := c.do(http.MethodGet, "/result", "")
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestFullQuiz(t *testing.T) {
	c := newTestClient(t, 3)

	for i := 0; i < 3; i++ {
		rec := c.do(http.MethodGet, "/question", "")
		require.Equal(t, http.StatusOK, rec.Code)

		correct := c.correctLabel()
		rec = c.do(http.MethodPost, "/answer", `{"answer":"`+string(correct)+`"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	done := decode[map[string]any](t, c.do(http.MethodGet, "/question", ""))
	require.Equal(t, true, done["done"])

	rec := c.do(http.MethodGet, "/result", "")
	require.Equal(t, http.StatusOK, rec.Code)

	result := decode[quiz.Result](t, rec)
	require.Equal(t, 1.0, result.Accuracy)
	// Difficulty walks 4→5→6; mean 5.0 → score 5.0*8 + 3*2 = 46.
	require.Equal(t, 5.0, result.AverageDifficulty)
	require.Equal(t, 46, result.Score)
}

func TestRestart(t *testing.T) {
	c := newTestClient(t, 3)

	c.do(http.MethodGet, "/question", "")
	correct := c.correctLabel()
	c.do(http.MethodPost, "/answer", `{"answer":"`+string(correct)+`"}`)

	oldID := c.cookies[0].Value
	rec := c.do(http.MethodPost, "/restart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEqual(t, oldID, c.cookies[0].Value, "restart should issue a new session")

	_, err := c.store.Get(context.Background(), oldID)
	require.ErrorIs(t, err, ErrSessionNotFound)

	fresh := decode[map[string]any](t, c.do(http.MethodGet, "/question", ""))
	require.EqualValues(t, 1, fresh["number"])
}

func TestHealth(t *testing.T) {
	c := newTestClient(t, 3)
	rec := c.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
}
