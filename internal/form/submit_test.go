// internal/form/submit_test.go
//
// Unit-tests for the submission client against an httptest endpoint.
//
// Run: go test ./internal/form -v

package form

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yanizio/shopadmin/internal/product"
)

func testPayload() product.Payload {
	return product.Draft{
		Name:  "Classic Tee",
		Price: 499,
		Type:  product.TypeTShirt,
		Color: product.ColorBlue,
	}.Payload()
}

func TestClientCreate_OK(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	cli := NewClient(srv.URL, srv.Client())
	if err := cli.Create(context.Background(), testPayload()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if got["name"] != "Classic Tee" || got["price"] != float64(499) {
		t.Fatalf("body = %+v", got)
	}
	if got["type"] != "TSHIRT" || got["color"] != "BLUE" {
		t.Fatalf("enums = %v / %v", got["type"], got["color"])
	}
	if got["image"] != product.PlaceholderImage {
		t.Fatalf("image = %v, want placeholder", got["image"])
	}
	if _, ok := got["description"]; !ok {
		t.Fatal("description key absent; it must always be present")
	}
}

func TestClientCreate_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cli := NewClient(srv.URL, srv.Client())
	err := cli.Create(context.Background(), testPayload())
	if !IsSubmissionError(err) {
		t.Fatalf("err = %v, want submission error", err)
	}

	var se *SubmissionError
	if !errors.As(err, &se) || se.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %+v, want 500", se)
	}
}

func TestClientCreate_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close() // connection refused from here on

	cli := NewClient(url, nil)
	err := cli.Create(context.Background(), testPayload())
	if !IsSubmissionError(err) {
		t.Fatalf("err = %v, want submission error", err)
	}
}

func TestClientCreate_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cli := NewClient(srv.URL, srv.Client())
	if err := cli.Create(ctx, testPayload()); !IsSubmissionError(err) {
		t.Fatalf("err = %v, want submission error", err)
	}
}
