package reader

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/veerladharma/news-aggregator/internal/api"
	"github.com/veerladharma/news-aggregator/internal/mockapi"
	"github.com/veerladharma/news-aggregator/internal/news"
	"github.com/veerladharma/news-aggregator/internal/session"
	"github.com/veerladharma/news-aggregator/internal/store"
	"go.uber.org/zap"
)

type call struct {
	method string
	path   string
	query  url.Values
	auth   string
	body   string
}

// fakeAPI routes "METHOD /path" to a canned status and body.
type fakeAPI struct {
	mu     sync.Mutex
	routes map[string]reply
	calls  []call
}

type reply struct {
	status int
	body   string
}

func newFakeAPI(t *testing.T, routes map[string]reply) (*fakeAPI, *api.Client) {
	t.Helper()
	f := &fakeAPI{routes: routes}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, api.New(srv.URL + "/api")
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.calls = append(f.calls, call{r.Method, r.URL.Path, r.URL.Query(), r.Header.Get("Authorization"), string(data)})
	rep, ok := f.routes[r.Method+" "+strings.TrimPrefix(r.URL.Path, "/api")]
	f.mu.Unlock()
	if !ok {
		rep = reply{http.StatusNotFound, `{"message":"not found"}`}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rep.status)
	io.WriteString(w, rep.body)
}

func (f *fakeAPI) recorded() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func testStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "storage.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestLoginPersistsSession(t *testing.T) {
	_, client := newFakeAPI(t, map[string]reply{
		"POST /login": {200, `{"token":"t1","user":{"name":"A","role":"user"}}`},
	})
	st := testStore(t)
	svc := NewService(client, st, nil)

	sess, err := svc.Login(context.Background(), news.Credentials{Email: "a@b.com", Password: "x"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Token != "t1" || sess.User.DisplayName("") != "A" {
		t.Errorf("unexpected session %+v", sess)
	}

	tok, _, _ := st.Get(session.KeyToken)
	if tok != "t1" {
		t.Errorf("stored token = %q, want t1", tok)
	}
	loaded, err := session.Load(st, zap.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if "Welcome, "+loaded.User.Name != "Welcome, A" {
		t.Errorf("reloaded user = %+v", loaded.User)
	}
}

func TestLoginFailureMessages(t *testing.T) {
	_, client := newFakeAPI(t, map[string]reply{
		"POST /login": {401, `{"message":"Invalid credentials"}`},
	})
	st := testStore(t)
	svc := NewService(client, st, nil)

	_, err := svc.Login(context.Background(), news.Credentials{Email: "a@b.com", Password: "bad"})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := AuthFailure(err); got != "Invalid credentials" {
		t.Errorf("AuthFailure = %q", got)
	}
	if keys, _ := st.Keys(); len(keys) != 0 {
		t.Errorf("failed login stored %v", keys)
	}
}

func TestAuthFailureFallbacks(t *testing.T) {
	status := &api.StatusError{Method: "POST", Path: "/login", Code: 500}
	if got := AuthFailure(status); got != "Authentication failed" {
		t.Errorf("status without message = %q", got)
	}
	transport := &api.TransportError{Method: "POST", Path: "/login", Err: errors.New("connection refused")}
	if got := AuthFailure(transport); got != "Error: connection refused" {
		t.Errorf("transport = %q", got)
	}
	verr := news.Validate(news.Credentials{Email: "a@b.com"})
	if got := AuthFailure(verr); got != verr.Error() {
		t.Errorf("validation = %q", got)
	}
}

func TestLoginValidatesBeforeSending(t *testing.T) {
	f, client := newFakeAPI(t, nil)
	svc := NewService(client, testStore(t), nil)

	if _, err := svc.Login(context.Background(), news.Credentials{Email: "not-an-email", Password: "x"}); err == nil {
		t.Fatal("expected validation error")
	}
	if n := len(f.recorded()); n != 0 {
		t.Errorf("sent %d requests for an invalid form", n)
	}
}

func TestRegisterDoesNotSignIn(t *testing.T) {
	f, client := newFakeAPI(t, map[string]reply{
		"POST /register": {201, `{"message":"ok"}`},
	})
	st := testStore(t)
	svc := NewService(client, st, nil)

	err := svc.Register(context.Background(), news.Registration{Name: "A", Email: "a@b.com", Password: "x"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if keys, _ := st.Keys(); len(keys) != 0 {
		t.Errorf("register stored %v", keys)
	}
	var body map[string]string
	json.Unmarshal([]byte(f.recorded()[0].body), &body)
	if body["name"] != "A" || body["email"] != "a@b.com" || body["password"] != "x" {
		t.Errorf("unexpected register body %v", body)
	}
}

func TestForgotPassword(t *testing.T) {
	got, err := ForgotPassword(news.ResetRequest{Email: "a@b.com"})
	if err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if got != "Password reset link sent to a@b.com\n(Feature coming soon!)" {
		t.Errorf("ForgotPassword = %q", got)
	}
	if _, err := ForgotPassword(news.ResetRequest{}); err == nil {
		t.Error("expected validation error for empty email")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	st := testStore(t)
	session.Save(st, "t1", news.User{Name: "A"})
	svc := NewService(api.New(""), st, nil)

	if err := svc.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	sess, _ := session.Load(st, zap.NewNop())
	if sess.Active() {
		t.Errorf("session still active after logout: %+v", sess)
	}
}

func TestFeedSendsQueryAndToken(t *testing.T) {
	f, client := newFakeAPI(t, map[string]reply{
		"GET /articles": {200, `[{"id":1,"title":"One"},{"title":"Two"}]`},
	})
	svc := NewService(client, testStore(t), nil)
	sess := session.Session{Token: "t1"}

	q := Filter{Category: news.CategoryForYou}.Query(news.Preferences{Interests: []string{"AI"}})
	articles, err := svc.Feed(context.Background(), sess, q)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles", len(articles))
	}

	c := f.recorded()[0]
	if c.auth != "Bearer t1" {
		t.Errorf("Authorization = %q", c.auth)
	}
	if c.query.Get("search") != "AI" || c.query.Get("fetch_live") != "true" || c.query.Has("category") {
		t.Errorf("unexpected query %v", c.query)
	}
}

func TestFeedFailureIsEmpty(t *testing.T) {
	_, client := newFakeAPI(t, map[string]reply{
		"GET /articles": {500, `{"message":"boom"}`},
	})
	svc := NewService(client, testStore(t), nil)

	articles, err := svc.Feed(context.Background(), session.Session{Token: "t1"}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if articles == nil || len(articles) != 0 {
		t.Errorf("failed feed should be empty and non-nil, got %#v", articles)
	}
}

func TestFeedShapeMismatchIsEmpty(t *testing.T) {
	_, client := newFakeAPI(t, map[string]reply{
		"GET /articles": {200, `{"error":"not a list"}`},
	})
	svc := NewService(client, testStore(t), nil)

	articles, err := svc.Feed(context.Background(), session.Session{Token: "t1"}, nil)
	if err == nil || len(articles) != 0 {
		t.Errorf("got %v, %v", articles, err)
	}
}

func TestInteractionID(t *testing.T) {
	if got := InteractionID(news.Article{ID: 42}, 3); got != 42 {
		t.Errorf("with id: %d", got)
	}
	if got := InteractionID(news.Article{}, 3); got != 3 {
		t.Errorf("without id: %d", got)
	}
}

func TestInteract(t *testing.T) {
	f, client := newFakeAPI(t, map[string]reply{
		"POST /interactions": {201, `{}`},
	})
	svc := NewService(client, testStore(t), nil)

	got, err := svc.Interact(context.Background(), session.Session{Token: "t1"}, news.Article{ID: 42}, 0, news.Bookmark)
	if err != nil {
		t.Fatalf("Interact: %v", err)
	}
	if got != "Bookmarked! Interaction saved to database." {
		t.Errorf("notice = %q", got)
	}

	var body map[string]any
	json.Unmarshal([]byte(f.recorded()[0].body), &body)
	if body["article_id"] != float64(42) || body["type"] != "bookmark" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestInteractFailureIsSilent(t *testing.T) {
	_, client := newFakeAPI(t, map[string]reply{
		"POST /interactions": {500, `{}`},
	})
	svc := NewService(client, testStore(t), nil)

	got, err := svc.Interact(context.Background(), session.Session{Token: "t1"}, news.Article{ID: 1}, 0, news.Like)
	if err == nil || got != "" {
		t.Errorf("got %q, %v", got, err)
	}
}

func TestSavePreferences(t *testing.T) {
	f, client := newFakeAPI(t, map[string]reply{
		"POST /preferences": {200, `{}`},
	})
	svc := NewService(client, testStore(t), nil)
	prefs := news.Preferences{Interests: news.SplitList("AI, Space"), PreferredSources: news.SplitList("")}

	got, err := svc.SavePreferences(context.Background(), session.Session{Token: "t1"}, prefs)
	if err != nil || got != NoticePreferencesSaved {
		t.Fatalf("got %q, %v", got, err)
	}

	var body struct {
		Interests        []string `json:"interests"`
		PreferredSources []string `json:"preferred_sources"`
	}
	json.Unmarshal([]byte(f.recorded()[0].body), &body)
	if len(body.Interests) != 2 || body.Interests[1] != "Space" {
		t.Errorf("interests = %v", body.Interests)
	}
	if len(body.PreferredSources) != 1 || body.PreferredSources[0] != "" {
		t.Errorf("preferred_sources = %q", body.PreferredSources)
	}
}

func TestSavePreferencesFailures(t *testing.T) {
	_, client := newFakeAPI(t, map[string]reply{
		"POST /preferences": {400, `{"message":"bad"}`},
	})
	svc := NewService(client, testStore(t), nil)

	got, err := svc.SavePreferences(context.Background(), session.Session{Token: "t1"}, news.Preferences{})
	if err == nil || got != NoticeSaveFailed {
		t.Errorf("rejected: got %q, %v", got, err)
	}

	dead := NewService(api.New("http://127.0.0.1:1/api"), testStore(t), nil)
	got, err = dead.SavePreferences(context.Background(), session.Session{Token: "t1"}, news.Preferences{})
	if err == nil || got != NoticeSaveError {
		t.Errorf("unreachable: got %q, %v", got, err)
	}
}

func TestPreferencesLoads(t *testing.T) {
	f, client := newFakeAPI(t, map[string]reply{
		"GET /preferences": {200, `{"interests":["AI","Space"],"preferred_sources":["BBC"]}`},
	})
	svc := NewService(client, testStore(t), nil)

	got, err := svc.Preferences(context.Background(), session.Session{Token: "t1"})
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if !slices.Equal(got.Interests, []string{"AI", "Space"}) || !slices.Equal(got.PreferredSources, []string{"BBC"}) {
		t.Errorf("preferences = %+v", got)
	}
	if c := f.recorded()[0]; c.auth != "Bearer t1" {
		t.Errorf("Authorization = %q", c.auth)
	}
}

func TestPreferencesFailureIsZero(t *testing.T) {
	_, client := newFakeAPI(t, map[string]reply{
		"GET /preferences": {500, `{"message":"boom"}`},
	})
	svc := NewService(client, testStore(t), nil)

	got, err := svc.Preferences(context.Background(), session.Session{Token: "t1"})
	if !api.IsStatus(err, http.StatusInternalServerError) {
		t.Errorf("err = %v", err)
	}
	if got.Interests != nil || got.PreferredSources != nil {
		t.Errorf("failed load returned %+v", got)
	}
}

func TestPreferencesRoundTripAgainstMockServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv, err := mockapi.New(mockapi.DefaultOptions())
	if err != nil {
		t.Fatalf("mockapi.New: %v", err)
	}
	hs := httptest.NewServer(srv.Router())
	t.Cleanup(hs.Close)

	svc := NewService(api.New(hs.URL+"/api"), testStore(t), nil)
	ctx := context.Background()
	if err := svc.Register(ctx, news.Registration{Name: "A", Email: "a@b.com", Password: "x"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	sess, err := svc.Login(ctx, news.Credentials{Email: "a@b.com", Password: "x"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	want := news.Preferences{Interests: []string{"A", "B"}, PreferredSources: []string{"C"}}
	if notice, err := svc.SavePreferences(ctx, sess, want); err != nil || notice != NoticePreferencesSaved {
		t.Fatalf("SavePreferences: %q, %v", notice, err)
	}
	got, err := svc.Preferences(ctx, sess)
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if !slices.Equal(got.Interests, want.Interests) || !slices.Equal(got.PreferredSources, want.PreferredSources) {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}
