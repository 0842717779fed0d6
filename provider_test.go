package metalsim

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchSpot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rates":{"XAU":{"price":2375.5},"XAG":{"price":28.1},"XPT":{"price":940.0},"XPD":{"price":910.25}}}`))
	}))
	defer server.Close()

	cfg := FeedConfig{
		URL:      server.URL,
		Currency: "EUR",
		Paths: map[Metal]string{
			Gold:      "$.rates.XAU.price",
			Silver:    "$.rates.XAG.price",
			Platinum:  "$.rates.XPT.price",
			Palladium: "$.rates.XPD.price",
		},
	}
	quote, err := FetchSpot(server.Client(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if quote.On != Today() {
		t.Errorf("quote date = %s, want today", quote.On)
	}
	if !quote.Prices[Gold].Equal(eur(2375.5)) {
		t.Errorf("gold = %s, want %s", quote.Prices[Gold], eur(2375.5))
	}
	if !quote.Prices[Palladium].Equal(eur(910.25)) {
		t.Errorf("palladium = %s, want %s", quote.Prices[Palladium], eur(910.25))
	}
}

func TestFetchSpotMissingPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rates":{}}`))
	}))
	defer server.Close()

	cfg := FeedConfig{
		URL:      server.URL,
		Currency: "EUR",
		Paths:    map[Metal]string{Gold: "$.rates.XAU.price"},
	}
	if _, err := FetchSpot(server.Client(), cfg); err == nil {
		t.Error("FetchSpot with missing metal paths should fail")
	}
}

func TestFetchSpotHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := FeedConfig{
		URL:      server.URL,
		Currency: "EUR",
		Paths: map[Metal]string{
			Gold: "$.x", Silver: "$.x", Platinum: "$.x", Palladium: "$.x",
		},
	}
	if _, err := FetchSpot(server.Client(), cfg); err == nil {
		t.Error("FetchSpot on a failing feed should fail")
	}
}

func TestExtractFloat(t *testing.T) {
	jobj := map[string]any{
		"price": 42.5,
		"list":  []any{13.25, 14.0},
		"text":  "not a number",
	}
	if v, err := extractFloat(jobj, "$.price"); err != nil || v != 42.5 {
		t.Errorf("extractFloat($.price) = %v, %v", v, err)
	}
	// A list answer keeps its first element.
	if v, err := extractFloat(jobj, "$.list"); err != nil || v != 13.25 {
		t.Errorf("extractFloat($.list) = %v, %v", v, err)
	}
	if _, err := extractFloat(jobj, "$.text"); err == nil {
		t.Error("extractFloat on a string should fail")
	}
	if _, err := extractFloat(jobj, "$.missing"); err == nil {
		t.Error("extractFloat on a missing path should fail")
	}
}
