package httpstore

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Makepad-fr/todos/internal/logging"
	"github.com/Makepad-fr/todos/internal/model"
	"github.com/Makepad-fr/todos/internal/store/schema"
)

func newClient(url string, timeout time.Duration) *Client {
	return New(url, timeout, logging.Discard())
}

func TestFetch(t *testing.T) {
	var gotMethod, gotAccept, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"title":"a","completed":false},{"id":2,"title":"b","completed":true}]`))
	}))
	defer srv.Close()

	c := newClient(srv.URL, time.Second)
	c.UserAgent = "todos/test"
	todos, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	want := []model.Todo{{ID: 1, Title: "a"}, {ID: 2, Title: "b", Completed: true}}
	if !reflect.DeepEqual(todos, want) {
		t.Fatalf("got %+v, want %+v", todos, want)
	}
	if gotMethod != http.MethodGet {
		t.Errorf("method: got %s", gotMethod)
	}
	if gotAccept != "application/json" {
		t.Errorf("accept: got %q", gotAccept)
	}
	if gotUA != "todos/test" {
		t.Errorf("user agent: got %q", gotUA)
	}
}

func TestFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newClient(srv.URL, time.Second).Fetch(context.Background())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Code != http.StatusServiceUnavailable {
		t.Errorf("code: got %d", se.Code)
	}
}

func TestFetchShapeError(t *testing.T) {
	tests := map[string]string{
		"malformed": `[{"id":1,`,
		"object":    `{"todos":[]}`,
		"bad field": `[{"id":"1","title":"a","completed":false}]`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			todos, err := newClient(srv.URL, time.Second).Fetch(context.Background())
			var se *schema.ShapeError
			if !errors.As(err, &se) {
				t.Fatalf("expected ShapeError, got %v", err)
			}
			if todos != nil {
				t.Errorf("expected no todos, got %+v", todos)
			}
		})
	}
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := newClient(srv.URL, 50*time.Millisecond).Fetch(context.Background())
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), srv.URL) {
		t.Errorf("error should name the endpoint: %v", err)
	}
}

func TestFetchCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newClient(srv.URL, time.Second).Fetch(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
