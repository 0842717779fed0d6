package metalsim

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
)

// A spot feed is any HTTP endpoint answering JSON that contains the current
// per-metal prices somewhere in its payload. Feeds disagree wildly on shape,
// so the per-metal location is configured as a JSONPath expression instead of
// a dedicated struct per provider.

// FeedConfig describes how to read one JSON spot feed.
type FeedConfig struct {
	URL      string
	Currency string
	// Paths locates each metal's spot price in the response, e.g.
	// "$.rates.XAU.price".
	Paths map[Metal]string
}

// FetchSpot fetches the feed and extracts today's quote.
func FetchSpot(client *http.Client, cfg FeedConfig) (Quote, error) {
	var jobj any
	if err := jwget(client, cfg.URL, &jobj); err != nil {
		return Quote{}, fmt.Errorf("cannot fetch spot feed: %w", err)
	}
	prices := make(map[Metal]Money, len(AllMetals))
	for _, metal := range AllMetals {
		path, ok := cfg.Paths[metal]
		if !ok {
			return Quote{}, fmt.Errorf("spot feed config is missing a path for %s", metal)
		}
		v, err := extractFloat(jobj, path)
		if err != nil {
			return Quote{}, fmt.Errorf("cannot extract %s price: %w", metal, err)
		}
		prices[metal] = M(v, cfg.Currency)
	}
	return Quote{On: Today(), Prices: prices}, nil
}

// extractFloat evaluates a JSONPath expression and coerces the answer to a
// float64.
func extractFloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("jsonpath %q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of one answer
	// or a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("jsonpath %q: %v is not a number", path, jval)
	}
	return val, nil
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(client *http.Client, addr string, data interface{}) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}
