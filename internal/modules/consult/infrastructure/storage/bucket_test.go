package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"SaDam/internal/config"
)

func newTestBucket(baseURL string) *bucketImpl {
	conf := &config.Config{}
	conf.StorageConfig.URL = baseURL
	conf.StorageConfig.APIKey = "test-key"
	conf.StorageConfig.Bucket = "character-portraits"
	return NewStorageBucket(conf).(*bucketImpl)
}

func TestUploadReturnsPublicURL(t *testing.T) {
	var gotMethods []string
	var gotBody []byte
	var gotAuth, gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethods = append(gotMethods, r.Method)
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	b := newTestBucket(srv.URL)
	payload := []byte{0x89, 0x50, 0x4E, 0x47}

	publicURL, err := b.Upload(context.Background(), "portraits/abc.png", payload, "image/png")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	want := srv.URL + "/storage/v1/object/public/character-portraits/portraits/abc.png"
	if publicURL != want {
		t.Fatalf("public url mismatch: got %s want %s", publicURL, want)
	}
	if len(gotMethods) != 2 || gotMethods[0] != http.MethodDelete || gotMethods[1] != http.MethodPost {
		t.Fatalf("expected delete-then-post, got %v", gotMethods)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("auth header mismatch: %q", gotAuth)
	}
	if gotContentType != "image/png" {
		t.Fatalf("content type mismatch: %q", gotContentType)
	}
	if !bytes.Equal(gotBody, payload) {
		t.Fatalf("uploaded body mismatch: %v", gotBody)
	}
}

func TestUploadFailsOnNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	b := newTestBucket(srv.URL)
	if _, err := b.Upload(context.Background(), "portraits/abc.png", []byte("x"), "image/png"); err == nil {
		t.Fatal("expected upload failure")
	}
}

func TestUploadToleratesDeleteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	b := newTestBucket(srv.URL)
	if _, err := b.Upload(context.Background(), "portraits/abc.png", []byte("x"), "image/png"); err != nil {
		t.Fatalf("delete failure must not block upload: %v", err)
	}
}
