package restapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"todoctl/internal/backend/restapi"
	"todoctl/internal/service"
)

type staticTokens string

func (s staticTokens) AccessToken() string { return string(s) }

// recordingServer captures the last request seen by the handler.
type recordingServer struct {
	*httptest.Server
	lastAuth   string
	lastPath   string
	lastMethod string
	lastBody   []byte
}

func newRecordingServer(t *testing.T, status int, response string) *recordingServer {
	t.Helper()
	rs := &recordingServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.lastAuth = r.Header.Get("Authorization")
		rs.lastPath = r.URL.Path
		rs.lastMethod = r.Method
		rs.lastBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(rs.Close)
	return rs
}

func TestRegisterCarriesNoAuthHeader(t *testing.T) {
	srv := newRecordingServer(t, http.StatusCreated, `{"access":"a","refresh":"r"}`)
	c := restapi.New(srv.URL, staticTokens("stored-token"))

	if _, err := c.Register(context.Background(), "frank", "frank@example.com", "pw"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if srv.lastAuth != "" {
		t.Errorf("register must not carry authorization header, got %q", srv.lastAuth)
	}
}

func TestLoginCarriesNoAuthHeader(t *testing.T) {
	srv := newRecordingServer(t, http.StatusOK, `{"access":"a","refresh":"r"}`)
	c := restapi.New(srv.URL, staticTokens("stored-token"))

	pair, err := c.Login(context.Background(), "frank", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if srv.lastAuth != "" {
		t.Errorf("login must not carry authorization header, got %q", srv.lastAuth)
	}
	if pair.Access != "a" || pair.Refresh != "r" {
		t.Errorf("unexpected token pair: %+v", pair)
	}
}

func TestTodosCarryBearerWhenTokenStored(t *testing.T) {
	srv := newRecordingServer(t, http.StatusOK, `[]`)
	c := restapi.New(srv.URL, staticTokens("stored-token"))

	if _, err := c.ListTasks(context.Background()); err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if srv.lastAuth != "Bearer stored-token" {
		t.Errorf("expected bearer header, got %q", srv.lastAuth)
	}
}

func TestTodosOmitHeaderWhenNoToken(t *testing.T) {
	srv := newRecordingServer(t, http.StatusOK, `[]`)
	c := restapi.New(srv.URL, staticTokens(""))

	if _, err := c.ListTasks(context.Background()); err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if srv.lastAuth != "" {
		t.Errorf("expected no authorization header without token, got %q", srv.lastAuth)
	}
}

func TestRefreshEndpointIsNotPublic(t *testing.T) {
	srv := newRecordingServer(t, http.StatusOK, `{"access":"new"}`)
	c := restapi.New(srv.URL, staticTokens("stored-token"))

	access, err := c.RefreshToken(context.Background(), "refresh-token")
	if err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}
	if access != "new" {
		t.Errorf("expected new access token, got %q", access)
	}
	// Exact-match allow-list: /auth/token/refresh/ still gets the header.
	if srv.lastAuth != "Bearer stored-token" {
		t.Errorf("expected bearer header on refresh, got %q", srv.lastAuth)
	}
}

func TestCreateTaskSendsCompletedFalse(t *testing.T) {
	srv := newRecordingServer(t, http.StatusCreated, `{"id":7,"name":"Buy milk","completed":false}`)
	c := restapi.New(srv.URL, staticTokens("tok"))

	task, err := c.CreateTask(context.Background(), "Buy milk")
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.ID != 7 || task.Name != "Buy milk" || task.Completed {
		t.Errorf("unexpected task: %+v", task)
	}

	var body map[string]any
	if err := json.Unmarshal(srv.lastBody, &body); err != nil {
		t.Fatalf("request body not JSON: %v", err)
	}
	if body["name"] != "Buy milk" {
		t.Errorf("expected name in body, got %v", body)
	}
	if completed, ok := body["completed"].(bool); !ok || completed {
		t.Errorf("expected completed:false in body, got %v", body)
	}
}

func TestUpdateTaskOmitsNilPatchFields(t *testing.T) {
	srv := newRecordingServer(t, http.StatusOK, `{"id":3,"name":"A","completed":true}`)
	c := restapi.New(srv.URL, staticTokens("tok"))

	completed := true
	if _, err := c.UpdateTask(context.Background(), 3, service.TaskPatch{Completed: &completed}); err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if srv.lastMethod != http.MethodPatch || srv.lastPath != "/todos/3/" {
		t.Errorf("expected PATCH /todos/3/, got %s %s", srv.lastMethod, srv.lastPath)
	}

	var body map[string]any
	if err := json.Unmarshal(srv.lastBody, &body); err != nil {
		t.Fatal(err)
	}
	if _, ok := body["name"]; ok {
		t.Errorf("nil name must be omitted from patch body, got %v", body)
	}
	if completed, ok := body["completed"].(bool); !ok || !completed {
		t.Errorf("expected completed:true, got %v", body)
	}
}

func TestDeleteTask(t *testing.T) {
	srv := newRecordingServer(t, http.StatusNoContent, "")
	c := restapi.New(srv.URL, staticTokens("tok"))

	if err := c.DeleteTask(context.Background(), 9); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if srv.lastMethod != http.MethodDelete || srv.lastPath != "/todos/9/" {
		t.Errorf("expected DELETE /todos/9/, got %s %s", srv.lastMethod, srv.lastPath)
	}
}

func TestValidationErrorDecoding(t *testing.T) {
	srv := newRecordingServer(t, http.StatusBadRequest,
		`{"username":["This field is required."],"password":["Too short.","Too common."]}`)
	c := restapi.New(srv.URL, staticTokens(""))

	_, err := c.Register(context.Background(), "", "", "")
	var verr *restapi.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if len(verr.Fields["password"]) != 2 {
		t.Errorf("expected two password messages, got %v", verr.Fields)
	}
	want := "password: Too short., Too common.; username: This field is required."
	if verr.Error() != want {
		t.Errorf("expected flattened %q, got %q", want, verr.Error())
	}
}

func TestMessageErrorDecoding(t *testing.T) {
	srv := newRecordingServer(t, http.StatusUnauthorized, `{"detail":"Invalid credentials."}`)
	c := restapi.New(srv.URL, staticTokens(""))

	_, err := c.Login(context.Background(), "frank", "wrong")
	var merr *restapi.MessageError
	if !errors.As(err, &merr) {
		t.Fatalf("expected MessageError, got %T: %v", err, err)
	}
	if merr.Status != http.StatusUnauthorized || merr.Message != "Invalid credentials." {
		t.Errorf("unexpected message error: %+v", merr)
	}
}

func TestNonJSONErrorBodyFallsBack(t *testing.T) {
	srv := newRecordingServer(t, http.StatusBadGateway, "<html>bad gateway</html>")
	c := restapi.New(srv.URL, staticTokens("tok"))

	_, err := c.ListTasks(context.Background())
	var merr *restapi.MessageError
	if !errors.As(err, &merr) {
		t.Fatalf("expected MessageError, got %T: %v", err, err)
	}
	if merr.Status != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", merr.Status)
	}
}

func TestTransportError(t *testing.T) {
	srv := newRecordingServer(t, http.StatusOK, `[]`)
	url := srv.URL
	srv.Close()

	c := restapi.New(url, staticTokens("tok"))
	_, err := c.ListTasks(context.Background())
	var terr *restapi.TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
}
