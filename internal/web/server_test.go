package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/abdalla1234567890/chatbot/internal/apiclient"
	"github.com/abdalla1234567890/chatbot/internal/i18n"
	"github.com/abdalla1234567890/chatbot/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeBackend is a scriptable stand-in for the assistant API.
type fakeBackend struct {
	mu        sync.Mutex
	srv       *httptest.Server
	chatReply string
	chatCode  int
	requests  []string // "METHOD path" per backend call
	lastChat  struct {
		Message string   `json:"message"`
		History []string `json:"history"`
	}
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{chatReply: "أبشر", chatCode: http.StatusOK}

	mux := http.NewServeMux()
	mux.HandleFunc("/login_json", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)

		switch body["code"] {
		case "ADMIN001":
			writeJSON(w, map[string]interface{}{
				"access_token": "tok-admin", "token_type": "bearer",
				"user": map[string]interface{}{"code": "ADMIN001", "name": "Main Admin", "phone": "0500000000", "is_admin": 1, "id_hash": "h-admin"},
			})
		case "cust0001":
			writeJSON(w, map[string]interface{}{
				"access_token": "tok-cust", "token_type": "bearer",
				"user": map[string]interface{}{"code": "cust0001", "name": "أحمد", "phone": "0501234567", "is_admin": 0, "id_hash": "h-cust"},
			})
		default:
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]string{"detail": "كود خاطئ"})
		}
	})
	mux.HandleFunc("/chat", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		b.mu.Lock()
		code, reply := b.chatCode, b.chatReply
		json.NewDecoder(r.Body).Decode(&b.lastChat)
		b.mu.Unlock()

		if code != http.StatusOK {
			w.WriteHeader(code)
			writeJSON(w, map[string]string{"detail": "رفض"})
			return
		}
		writeJSON(w, map[string]interface{}{"reply": reply, "order_placed": false})
	})
	mux.HandleFunc("/user-locations", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		writeJSON(w, []map[string]interface{}{{"id": 1, "name": "الرياض"}, {"id": 2, "name": "جدة"}})
	})
	mux.HandleFunc("/admin/users", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		if r.Method == http.MethodGet {
			writeJSON(w, []map[string]interface{}{{"code": "ADMIN001", "name": "Main Admin", "phone": "0500000000", "is_admin": 1, "id_hash": "h-admin"}})
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("/admin/locations", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		if r.Method == http.MethodGet {
			writeJSON(w, []map[string]interface{}{{"id": 1, "name": "الرياض"}})
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("/admin/statistics", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		writeJSON(w, map[string]int64{"total_users": 1, "total_admins": 1, "total_locations": 1, "total_orders": 0, "orders_today": 0})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		w.WriteHeader(http.StatusOK)
	})

	b.srv = httptest.NewServer(mux)
	t.Cleanup(b.srv.Close)
	return b
}

func (b *fakeBackend) record(r *http.Request) {
	b.mu.Lock()
	b.requests = append(b.requests, r.Method+" "+r.URL.Path)
	b.mu.Unlock()
}

func (b *fakeBackend) calls(prefix string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, req := range b.requests {
		if strings.HasPrefix(req, prefix) {
			n++
		}
	}
	return n
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// newWebClient stands the whole frontend up and returns a cookie-carrying
// HTTP client that does not follow redirects.
func newWebClient(t *testing.T, backend *fakeBackend) (*httptest.Server, *http.Client) {
	t.Helper()
	server := NewServer(apiclient.New(backend.srv.URL), session.NewCookieStore("test-secret"))
	srv := httptest.NewServer(server.Router())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return srv, client
}

func postForm(t *testing.T, client *http.Client, target string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(target, form)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, client *http.Client, target string) *http.Response {
	t.Helper()
	resp, err := client.Get(target)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func login(t *testing.T, client *http.Client, base, code string) *http.Response {
	return postForm(t, client, base+"/login", url.Values{"code": {code}})
}

func TestProtectedPageRedirectsToLogin(t *testing.T) {
	srv, client := newWebClient(t, newFakeBackend(t))

	resp := get(t, client, srv.URL+"/")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLoginRoundTrip(t *testing.T) {
	backend := newFakeBackend(t)
	srv, client := newWebClient(t, backend)

	resp := login(t, client, srv.URL, "cust0001")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	// With the session cookie, a protected page reload no longer redirects.
	page := get(t, client, srv.URL+"/")
	assert.Equal(t, http.StatusOK, page.StatusCode)
	content := body(t, page)
	assert.Contains(t, content, "أحمد")
	// The greeting is synthesized locally, not fetched.
	assert.Zero(t, backend.calls("POST /chat"))
}

func TestAdminLoginLandsOnConsole(t *testing.T) {
	backend := newFakeBackend(t)
	srv, client := newWebClient(t, backend)

	resp := login(t, client, srv.URL, "ADMIN001")
	assert.Equal(t, "/admin", resp.Header.Get("Location"))

	page := get(t, client, srv.URL+"/admin")
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Contains(t, body(t, page), "Main Admin")
}

func TestNonAdminBlockedFromConsole(t *testing.T) {
	backend := newFakeBackend(t)
	srv, client := newWebClient(t, backend)
	login(t, client, srv.URL, "cust0001")

	resp := get(t, client, srv.URL+"/admin")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	assert.Zero(t, backend.calls("GET /admin/users"))
}

func TestShortCodeBlockedBeforeRequest(t *testing.T) {
	backend := newFakeBackend(t)
	srv, client := newWebClient(t, backend)

	resp := login(t, client, srv.URL, "abc")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "/login?error=")
	assert.Zero(t, backend.calls("POST /login_json"))
}

func TestInvalidCodeShowsError(t *testing.T) {
	backend := newFakeBackend(t)
	srv, client := newWebClient(t, backend)

	resp := login(t, client, srv.URL, "wrongpas")
	assert.Contains(t, resp.Header.Get("Location"), "/login?error=")
	assert.Equal(t, 1, backend.calls("POST /login_json"))
}

func TestChatSendAndHistoryFormat(t *testing.T) {
	backend := newFakeBackend(t)
	srv, client := newWebClient(t, backend)
	login(t, client, srv.URL, "cust0001")

	resp := postForm(t, client, srv.URL+"/chat/send", url.Values{"message": {"أحتاج اسمنت"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	backend.mu.Lock()
	assert.Equal(t, "أحتاج اسمنت", backend.lastChat.Message)
	// History carries the greeting with the seller prefix.
	require.Len(t, backend.lastChat.History, 1)
	assert.True(t, strings.HasPrefix(backend.lastChat.History[0], "البائع: "))
	backend.mu.Unlock()

	page := get(t, client, srv.URL+"/")
	content := body(t, page)
	assert.Contains(t, content, "أحتاج اسمنت")
	assert.Contains(t, content, "أبشر")
}

func TestLocationHandshake(t *testing.T) {
	backend := newFakeBackend(t)
	srv, client := newWebClient(t, backend)
	login(t, client, srv.URL, "cust0001")

	backend.mu.Lock()
	backend.chatReply = "اختر الموقع ###ASK_LOCATION###"
	backend.mu.Unlock()

	postForm(t, client, srv.URL+"/chat/send", url.Values{"message": {"أحتاج اسمنت"}})

	// The picker appears and the rendered reply has the marker stripped.
	page := get(t, client, srv.URL+"/")
	content := body(t, page)
	assert.Contains(t, content, "اختر الموقع")
	assert.NotContains(t, content, "###ASK_LOCATION###")
	assert.Contains(t, content, "📍 الرياض")

	// Clicking a location submits its name as the next message.
	backend.mu.Lock()
	backend.chatReply = "تم التأكيد"
	backend.mu.Unlock()
	postForm(t, client, srv.URL+"/chat/send", url.Values{"location": {"الرياض"}})

	backend.mu.Lock()
	assert.Equal(t, "الرياض", backend.lastChat.Message)
	backend.mu.Unlock()

	// The buttons are gone again.
	page = get(t, client, srv.URL+"/")
	assert.NotContains(t, body(t, page), "📍 الرياض")
}

func TestUnauthorizedChatLogsOut(t *testing.T) {
	backend := newFakeBackend(t)
	srv, client := newWebClient(t, backend)
	login(t, client, srv.URL, "cust0001")

	backend.mu.Lock()
	backend.chatCode = http.StatusUnauthorized
	backend.mu.Unlock()

	resp := postForm(t, client, srv.URL+"/chat/send", url.Values{"message": {"هلا"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	// The session is gone: the next protected page redirects again.
	next := get(t, client, srv.URL+"/")
	assert.Equal(t, http.StatusSeeOther, next.StatusCode)
	assert.Equal(t, "/login", next.Header.Get("Location"))
}

func TestAdminCreateUserBlocksBadPhone(t *testing.T) {
	backend := newFakeBackend(t)
	srv, client := newWebClient(t, backend)
	login(t, client, srv.URL, "ADMIN001")

	resp := postForm(t, client, srv.URL+"/admin/users/create", url.Values{
		"code":  {"cust0002"},
		"name":  {"عميل"},
		"phone": {"1234567890"},
	})
	assert.Contains(t, resp.Header.Get("Location"), "error=")
	assert.Zero(t, backend.calls("POST /admin/users"))
}

func TestAdminCreateUserMultipleViolationsFlashesCodeFirst(t *testing.T) {
	backend := newFakeBackend(t)
	srv, client := newWebClient(t, backend)
	login(t, client, srv.URL, "ADMIN001")

	// Code and phone are both invalid; the code message wins every time.
	resp := postForm(t, client, srv.URL+"/admin/users/create", url.Values{
		"code":  {"short"},
		"name":  {"عميل"},
		"phone": {"1234567890"},
	})
	assert.Contains(t, resp.Header.Get("Location"), "error="+url.QueryEscape(i18n.T("ar", "code_length")))
	assert.Zero(t, backend.calls("POST /admin/users"))
}

func TestAdminUpdatePhoneBlockedBeforeRequest(t *testing.T) {
	backend := newFakeBackend(t)
	srv, client := newWebClient(t, backend)
	login(t, client, srv.URL, "ADMIN001")

	resp := postForm(t, client, srv.URL+"/admin/users/update", url.Values{
		"ref":   {"h-cust"},
		"field": {"phone"},
		"value": {"1234567890"},
	})
	assert.Contains(t, resp.Header.Get("Location"), "error=")
	assert.Zero(t, backend.calls("PUT /admin/users"))
}

func TestLogoutClearsSession(t *testing.T) {
	backend := newFakeBackend(t)
	srv, client := newWebClient(t, backend)
	login(t, client, srv.URL, "cust0001")

	resp := get(t, client, srv.URL+"/logout")
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	next := get(t, client, srv.URL+"/")
	assert.Equal(t, http.StatusSeeOther, next.StatusCode)
}
