package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/imRishabh-ofc/narad-muni/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Second, zap.NewNop()), srv
}

func TestFetchQuotesEnvelopeShape(t *testing.T) {
	var gotPath, gotSymbols string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSymbols = r.URL.Query().Get("symbols")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"spark":{"result":[
			{"symbol":"FOO.NS","response":[{"timestamp":[1,2,3],"indicators":{"quote":[{"close":[100.5,null,105.25]}]}}]},
			{"symbol":"BAR.NS","response":[{"timestamp":[1],"indicators":{"quote":[{"close":[50.0]}]}}]}
		]}}`))
	})

	quotes, err := client.FetchQuotes(context.Background(), []string{"FOO.NS", "BAR.NS"})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotPath != "/v8/finance/spark" {
		t.Fatalf("path = %s", gotPath)
	}
	if gotSymbols != "FOO.NS,BAR.NS" {
		t.Fatalf("symbols = %s", gotSymbols)
	}

	foo, ok := quotes["FOO.NS"]
	if !ok {
		t.Fatal("FOO.NS missing")
	}
	// Nulls are skipped: last close 105.25, second-last 100.5.
	if foo.Current.String() != "105.25" || foo.PreviousClose.String() != "100.5" {
		t.Fatalf("FOO.NS quote = %+v", foo)
	}

	bar, ok := quotes["BAR.NS"]
	if !ok {
		t.Fatal("BAR.NS missing")
	}
	if !bar.PreviousClose.Equal(bar.Current) {
		t.Fatalf("single close must fall back to previous=current, got %+v", bar)
	}
}

func TestFetchQuotesFlatShape(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"FOO.NS":{"symbol":"FOO.NS","timestamp":[1,2],"close":[98.0,105.0]}}`))
	})

	quotes, err := client.FetchQuotes(context.Background(), []string{"FOO.NS"})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	foo := quotes["FOO.NS"]
	if foo.Current.String() != "105" || foo.PreviousClose.String() != "98" {
		t.Fatalf("quote = %+v", foo)
	}
}

func TestFetchQuotesOmitsUnresolvedSymbols(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"spark":{"result":[
			{"symbol":"FOO.NS","response":[{"indicators":{"quote":[{"close":[105.0]}]}}]},
			{"symbol":"GONE.NS","response":[{"indicators":{"quote":[{"close":[null,null]}]}}]}
		]}}`))
	})

	quotes, err := client.FetchQuotes(context.Background(), []string{"FOO.NS", "GONE.NS"})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if _, ok := quotes["GONE.NS"]; ok {
		t.Fatal("all-null series must be absent, not zero")
	}
	if _, ok := quotes["FOO.NS"]; !ok {
		t.Fatal("resolved symbol missing")
	}
}

func TestFetchQuotesServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := client.FetchQuotes(context.Background(), []string{"FOO.NS"}); !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestFetchQuotesGarbageBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>rate limited</html>"))
	})

	if _, err := client.FetchQuotes(context.Background(), []string{"FOO.NS"}); !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestFetchQuotesEmptyBatch(t *testing.T) {
	called := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	quotes, err := client.FetchQuotes(context.Background(), nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(quotes) != 0 || called {
		t.Fatal("empty batch must not hit the provider")
	}
}

func TestFetchQuotesSendsBrowserAgent(t *testing.T) {
	var agent string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{"spark":{"result":[]}}`))
	})

	if _, err := client.FetchQuotes(context.Background(), []string{"FOO.NS"}); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !strings.Contains(agent, "Mozilla") {
		t.Fatalf("user agent = %q", agent)
	}
}
