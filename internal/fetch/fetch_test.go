package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resumatch/internal/errors"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Job</title><style>body { color: red; }</style></head>
<body>
<header>Acme Careers</header>
<nav>Home | Jobs</nav>
<script>console.log("tracking");</script>
<main>
  <h1>Backend   Engineer</h1>
  <p>We require Python and Docker experience.</p>
</main>
<footer>© Acme</footer>
</body>
</html>`

func TestPageText(t *testing.T) {
	var gotUserAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	f := New(Options{})
	text, err := f.PageText(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(text, "Backend Engineer") {
		t.Errorf("whitespace should collapse to single spaces, got %q", text)
	}
	if !strings.Contains(text, "Python and Docker") {
		t.Errorf("posting body missing from %q", text)
	}
	for _, stripped := range []string{"tracking", "color: red", "Acme Careers", "Home | Jobs", "© Acme"} {
		if strings.Contains(text, stripped) {
			t.Errorf("chrome content %q should be stripped, got %q", stripped, text)
		}
	}
	if gotUserAgent != DefaultUserAgent {
		t.Errorf("User-Agent = %q, expected %q", gotUserAgent, DefaultUserAgent)
	}
}

func TestPageTextCustomUserAgent(t *testing.T) {
	var gotUserAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	f := New(Options{UserAgent: "resumatch-test/0.1"})
	if _, err := f.PageText(context.Background(), srv.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUserAgent != "resumatch-test/0.1" {
		t.Errorf("User-Agent = %q, expected custom agent", gotUserAgent)
	}
}

func TestPageTextErrors(t *testing.T) {
	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer notFound.Close()

	tests := []struct {
		name string
		url  string
	}{
		{name: "non-200 status", url: notFound.URL},
		{name: "connection refused", url: "http://127.0.0.1:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(Options{})
			_, err := f.PageText(context.Background(), tt.url)
			if err == nil {
				t.Fatal("expected error")
			}
			if !IsFetchError(err) {
				t.Errorf("expected fetch error classification, got %v", err)
			}
		})
	}
}

func TestPageTextRejectsInvalidURLs(t *testing.T) {
	// Bad URLs are the caller's mistake, not a transient fetch failure,
	// so they must not carry the degradable FETCH_FAILED code.
	tests := []struct {
		name string
		url  string
	}{
		{name: "unsupported scheme", url: "ftp://example.com/job"},
		{name: "unparseable url", url: "http://\x7f"},
		{name: "empty url", url: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(Options{})
			_, err := f.PageText(context.Background(), tt.url)
			if err == nil {
				t.Fatal("expected error")
			}
			if IsFetchError(err) {
				t.Errorf("invalid URL should be a validation error, got fetch error %v", err)
			}
			if !errors.HasCode(err, errors.ErrCodeInvalidRequest) {
				t.Errorf("error code = %v, expected %s", err, errors.ErrCodeInvalidRequest)
			}
		})
	}
}

func TestPageTextContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := New(Options{})
	_, err := f.PageText(ctx, srv.URL)
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if !IsFetchError(err) {
		t.Errorf("expected fetch error classification, got %v", err)
	}
}
