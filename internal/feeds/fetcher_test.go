package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

func TestFetchFeed(t *testing.T) {
	rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Flux Test</title>
    <item>
      <title>Un &lt;b&gt;accord&lt;/b&gt; historique</title>
      <link>http://example.com/article1</link>
      <guid>guid-1</guid>
      <description>&lt;p&gt;La France et la Chine signent un accord.&lt;/p&gt;</description>
      <pubDate>Mon, 01 Jan 2024 12:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Tensions en mer Noire</title>
      <link>http://example.com/article2</link>
      <description>Second article</description>
      <pubDate>Mon, 01 Jan 2024 11:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != userAgent {
			t.Errorf("unexpected User-Agent: %s", ua)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rss))
	}))
	defer server.Close()

	fetcher := NewFetcher(NewFetcherParams{MinDelay: time.Millisecond})
	articles, err := fetcher.FetchFeed(context.Background(), server.URL, false)
	if err != nil {
		t.Fatalf("FetchFeed failed: %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	first := articles[0]
	if first.Title != "Un accord historique" {
		t.Errorf("unexpected title: %q", first.Title)
	}
	if first.Content != "La France et la Chine signent un accord." {
		t.Errorf("unexpected content: %q", first.Content)
	}
	if first.Link != "http://example.com/article1" {
		t.Errorf("unexpected link: %s", first.Link)
	}
	if first.Source != "Flux Test" {
		t.Errorf("unexpected source: %s", first.Source)
	}
	want := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	if !first.PublishedAt.Equal(want) {
		t.Errorf("unexpected published time: %v", first.PublishedAt)
	}
	if first.ID == "" || first.ID == articles[1].ID {
		t.Errorf("expected distinct non-empty IDs, got %q and %q", first.ID, articles[1].ID)
	}
}

func TestFetchFeedHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	fetcher := NewFetcher(NewFetcherParams{MinDelay: time.Millisecond})
	if _, err := fetcher.FetchFeed(context.Background(), server.URL, false); err == nil {
		t.Fatal("expected error for HTTP 403")
	}
}

func TestGenerateIDDeterministic(t *testing.T) {
	a := &gofeed.Item{GUID: "guid-1", Link: "http://example.com/a"}
	b := &gofeed.Item{GUID: "guid-1", Link: "http://example.com/other"}
	c := &gofeed.Item{Link: "http://example.com/a"}

	if generateID(a) != generateID(b) {
		t.Error("same GUID should produce same ID")
	}
	if generateID(a) == generateID(c) {
		t.Error("GUID and link fallback should produce different IDs")
	}
	if generateID(c) != generateID(c) {
		t.Error("ID generation should be deterministic")
	}
}

func TestConvertItemFallbacks(t *testing.T) {
	fetchTime := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	item := &gofeed.Item{
		Title:   "Sans date",
		Link:    "http://example.com/undated",
		Content: "<div>Contenu <i>complet</i> de secours</div>",
	}

	got := convertItem(item, "Source X", fetchTime)
	if !got.PublishedAt.Equal(fetchTime) {
		t.Errorf("expected fetch time fallback, got %v", got.PublishedAt)
	}
	if got.Content != "Contenu complet de secours" {
		t.Errorf("unexpected content fallback: %q", got.Content)
	}
	if got.Source != "Source X" {
		t.Errorf("unexpected source: %s", got.Source)
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Un accord signé", "Un accord signé"},
		{"tags removed", "<p>Un <b>accord</b> signé</p>", "Un accord signé"},
		{"entities decoded", "Paix &amp; dialogue", "Paix & dialogue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripHTML(tt.in); got != tt.want {
				t.Errorf("stripHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
