package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func runCLI(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--api", srv.URL}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestTaskUpdateSendsOnlyChangedFlags(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"Task Updated Successfully!","task":{"id":"t1","title":"Ship","status":"In Progress","priority":"High","assignedTo":null}}`))
	}))
	defer srv.Close()

	out, err := runCLI(t, srv, "task", "update", "t1", "--status", "In Progress")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if gotPath != "PUT /task/t1" {
		t.Fatalf("unexpected request %q", gotPath)
	}
	if len(gotBody) != 1 || gotBody["status"] != "In Progress" {
		t.Fatalf("expected only status in body, got %v", gotBody)
	}
	if !strings.Contains(out, "Task Updated Successfully!") || !strings.Contains(out, "Ship") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestEmployeeCreateMapsFlagNames(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"message":"Employee Created Successfully!","employee":{"id":"e1","firstName":"Ada","lastName":"Lovelace","email":"ada@example.com"}}`))
	}))
	defer srv.Close()

	_, err := runCLI(t, srv, "employee", "create", "--first-name", "Ada", "--last-name", "Lovelace", "--email", "ada@example.com")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if gotBody["firstName"] != "Ada" || gotBody["lastName"] != "Lovelace" || gotBody["email"] != "ada@example.com" {
		t.Fatalf("unexpected body %v", gotBody)
	}
	if _, ok := gotBody["designation"]; ok {
		t.Fatalf("unset flags must not be sent, got %v", gotBody)
	}
}

func TestServerFailureBecomesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Task not found!"}`))
	}))
	defer srv.Close()

	_, err := runCLI(t, srv, "task", "delete", "missing")
	if err == nil || !strings.Contains(err.Error(), "Task not found!") {
		t.Fatalf("expected server message in error, got %v", err)
	}
}

func TestTaskListRendersOrphanAsDash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"tasks":[{"id":"t1","title":"Orphan","status":"Pending","priority":"Low","assignedTo":null}]}`))
	}))
	defer srv.Close()

	out, err := runCLI(t, srv, "task", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasSuffix(strings.TrimSpace(lines[1]), "-") {
		t.Fatalf("unexpected table %q", out)
	}
}
