package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/nanami9426/officerchat/internal/chatbox"
	"github.com/nanami9426/officerchat/internal/duty"
	"github.com/nanami9426/officerchat/internal/models"
	"github.com/nanami9426/officerchat/internal/push"
	"github.com/nanami9426/officerchat/internal/router"
	"github.com/nanami9426/officerchat/internal/service"
	"github.com/nanami9426/officerchat/internal/testutil"
	"github.com/nanami9426/officerchat/internal/utils"
)

var secret = []byte("router-test-secret")

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Message string `json:"message"`
		Param   string `json:"param"`
		Code    string `json:"code"`
	} `json:"error"`
}

type env struct {
	t      *testing.T
	server *httptest.Server
	hub    *push.Hub
	fix    *testutil.Fixture
}

func setup(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	testutil.SetupDB(t)
	fix := testutil.SeedFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	hub := push.NewHub(push.DefaultConfig())
	go hub.Run(ctx)

	resolver := duty.NewGormResolver()
	r := router.Router(router.Deps{
		Chat:           service.NewOfficerChatService(resolver, push.NewNotifier(hub)),
		Duty:           resolver,
		Hub:            hub,
		JWTSecret:      secret,
		CookieName:     "session",
		AllowedOrigins: []string{"http://localhost:3000"},
	})
	server := httptest.NewServer(r)
	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return &env{t: t, server: server, hub: hub, fix: fix}
}

func (e *env) token(userID string, permissions ...string) string {
	e.t.Helper()
	if len(permissions) == 0 {
		permissions = []string{"Leo"}
	}
	s, err := utils.GenerateToken(secret, userID, userID, permissions, time.Hour)
	if err != nil {
		e.t.Fatalf("generate token: %v", err)
	}
	return s
}

func (e *env) do(method, path, token string, body interface{}) (int, apiResponse) {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			e.t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	if err != nil {
		e.t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		e.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		e.t.Fatalf("decode %s %s: %v", method, path, err)
	}
	return resp.StatusCode, out
}

func expectError(t *testing.T, status int, resp apiResponse, wantStatus int, key string) {
	t.Helper()
	if status != wantStatus {
		t.Fatalf("expected status %d, got %d", wantStatus, status)
	}
	if resp.Success || resp.Error == nil || resp.Error.Message != key {
		t.Fatalf("expected error %s, got %+v", key, resp.Error)
	}
}

func (e *env) dial(token string) *websocket.Conn {
	e.t.Helper()
	before := e.hub.ClientCount()
	url := "ws" + strings.TrimPrefix(e.server.URL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		e.t.Fatalf("dial websocket: %v", err)
	}
	e.t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for e.hub.ClientCount() <= before {
		if time.Now().After(deadline) {
			e.t.Fatalf("websocket client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) *push.Event {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var e push.Event
	if err := conn.ReadJSON(&e); err != nil {
		t.Fatalf("read event: %v", err)
	}
	return &e
}

func TestGuards(t *testing.T) {
	e := setup(t)
	e.fix.Officer(t, "user-off", "12", e.fix.OffDuty)

	status, resp := e.do(http.MethodGet, "/leo/officer-chat", "", nil)
	expectError(t, status, resp, http.StatusUnauthorized, "notAuthenticated")

	status, resp = e.do(http.MethodGet, "/leo/officer-chat?token="+e.token("user-off"), "", nil)
	expectError(t, status, resp, http.StatusUnauthorized, "notAuthenticated")

	status, resp = e.do(http.MethodGet, "/leo/officer-chat", e.token("user-x", "Dispatch"), nil)
	expectError(t, status, resp, http.StatusForbidden, "insufficientPermissions")

	off := e.token("user-off")
	status, resp = e.do(http.MethodGet, "/leo/officer-chat", off, nil)
	expectError(t, status, resp, http.StatusBadRequest, "mustBeOnDuty")

	status, resp = e.do(http.MethodPost, "/leo/officer-chat", off, map[string]string{"message": "hi"})
	expectError(t, status, resp, http.StatusBadRequest, "mustBeOnDuty")

	status, resp = e.do(http.MethodDelete, "/leo/officer-chat/1", off, nil)
	expectError(t, status, resp, http.StatusBadRequest, "mustBeOnDuty")

	status, resp = e.do(http.MethodGet, "/leo/active-officer", off, nil)
	if status != http.StatusOK || string(resp.Data) != "null" {
		t.Fatalf("expected null active officer, got %d %s", status, resp.Data)
	}
}

func TestCreateValidation(t *testing.T) {
	e := setup(t)
	e.fix.Officer(t, "user-a", "12", e.fix.OnDuty)
	tok := e.token("user-a")

	for _, body := range []interface{}{
		map[string]string{"message": ""},
		map[string]string{"message": strings.Repeat("x", 1001)},
		map[string]int{"message": 5},
		"{",
	} {
		status, resp := e.do(http.MethodPost, "/leo/officer-chat", tok, body)
		if status != http.StatusBadRequest || resp.Error == nil || resp.Error.Param != "message" {
			t.Fatalf("expected 400 on message for %v, got %d %+v", body, status, resp.Error)
		}
	}
}

func TestDeleteBadIDIsNotFound(t *testing.T) {
	e := setup(t)
	e.fix.Officer(t, "user-a", "12", e.fix.OnDuty)
	tok := e.token("user-a")

	status, resp := e.do(http.MethodDelete, "/leo/officer-chat/not-a-number", tok, nil)
	expectError(t, status, resp, http.StatusNotFound, "messageNotFound")
	status, resp = e.do(http.MethodDelete, "/leo/officer-chat/123456", tok, nil)
	expectError(t, status, resp, http.StatusNotFound, "messageNotFound")
}

func TestOfficerChatEndToEnd(t *testing.T) {
	e := setup(t)
	a := e.fix.Officer(t, "user-a", "12", e.fix.OnDuty)
	e.fix.Officer(t, "user-b", "34", e.fix.OnDuty)
	tokA, tokB := e.token("user-a"), e.token("user-b")

	conn := e.dial(tokB)

	status, resp := e.do(http.MethodGet, "/leo/active-officer", tokB, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var viewer models.Unit
	if err := json.Unmarshal(resp.Data, &viewer); err != nil {
		t.Fatalf("decode viewer: %v", err)
	}
	state := &chatbox.State{}
	if !state.SetViewer(&viewer) {
		t.Fatalf("expected widget to become visible for on-duty viewer")
	}

	status, resp = e.do(http.MethodPost, "/leo/officer-chat", tokA, map[string]string{"message": "10-4"})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d %+v", status, resp.Error)
	}
	var created models.OfficerChatView
	if err := json.Unmarshal(resp.Data, &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.Message != "10-4" || created.Creator.Unit.ID() != a.ID {
		t.Fatalf("unexpected created message %+v", created)
	}
	if !bytes.Contains(resp.Data, []byte(`"id":"`)) {
		t.Fatalf("expected string id in %s", resp.Data)
	}

	event := readEvent(t, conn)
	if event.Name != push.EventOfficerChat {
		t.Fatalf("expected %s, got %s", push.EventOfficerChat, event.Name)
	}
	if _, err := state.ApplyEvent(event); err != nil {
		t.Fatalf("apply created: %v", err)
	}
	if len(state.Messages) != 1 || state.Messages[0].ID != created.ID {
		t.Fatalf("expected state to hold created message, got %+v", state.Messages)
	}
	if state.IsOwn(state.Messages[0]) {
		t.Fatalf("expected message of user-a not to be own for user-b")
	}

	status, resp = e.do(http.MethodGet, "/leo/officer-chat", tokB, nil)
	var list []models.OfficerChatView
	if err := json.Unmarshal(resp.Data, &list); err != nil || status != http.StatusOK {
		t.Fatalf("list: %d %v", status, err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("unexpected list %+v", list)
	}

	path := "/leo/officer-chat/" + strconv.FormatInt(created.ID, 10)
	status, resp = e.do(http.MethodDelete, path, tokB, nil)
	expectError(t, status, resp, http.StatusBadRequest, "canOnlyDeleteOwnMessages")

	status, resp = e.do(http.MethodDelete, path, tokA, nil)
	if status != http.StatusOK || string(resp.Data) != "true" {
		t.Fatalf("expected delete true, got %d %s", status, resp.Data)
	}

	event = readEvent(t, conn)
	if event.Name != push.EventOfficerChatDeleted {
		t.Fatalf("expected %s, got %s", push.EventOfficerChatDeleted, event.Name)
	}
	if _, err := state.ApplyEvent(event); err != nil {
		t.Fatalf("apply deleted: %v", err)
	}
	if len(state.Messages) != 0 {
		t.Fatalf("expected state to drop deleted message, got %+v", state.Messages)
	}

	status, resp = e.do(http.MethodDelete, path, tokA, nil)
	expectError(t, status, resp, http.StatusNotFound, "messageNotFound")
}

func TestWebsocketRequiresAuth(t *testing.T) {
	e := setup(t)
	url := "ws" + strings.TrimPrefix(e.server.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatalf("expected dial without token to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %+v", resp)
	}
}
