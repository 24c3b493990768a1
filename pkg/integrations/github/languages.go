package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"

	ghferrors "github.com/ghfetch/ghfetch/pkg/errors"
)

// maxLanguages is the breakdown length; the last slot becomes Other when
// the repository has more languages than that.
const maxLanguages = 4

type byteCount struct {
	name  string
	bytes int64
}

// LanguagePercentages fetches a language → bytes object and turns it into a
// [Languages] breakdown. Server order is kept; nothing is re-sorted.
func (c *Client) LanguagePercentages(ctx context.Context, rawURL string) (Languages, error) {
	resp, err := c.Call(ctx, http.MethodGet, rawURL)
	if err != nil {
		return nil, err
	}
	counts, err := decodeByteCounts(resp.Body)
	if err != nil {
		return nil, ghferrors.Wrap(ghferrors.ErrCodeUnmapped, err, "decode languages from %s", rawURL)
	}
	return breakdown(counts), nil
}

// decodeByteCounts reads a JSON object of integers keeping key order.
func decodeByteCounts(body []byte) ([]byteCount, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("expected a JSON object")
	}

	var counts []byteCount
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, errors.New("expected a language name")
		}
		var n int64
		if err := dec.Decode(&n); err != nil {
			return nil, err
		}
		counts = append(counts, byteCount{name: name, bytes: n})
	}
	return counts, nil
}

func breakdown(counts []byteCount) Languages {
	if len(counts) > maxLanguages {
		var rest int64
		for _, c := range counts[maxLanguages-1:] {
			rest += c.bytes
		}
		counts = append(counts[:maxLanguages-1:maxLanguages-1], byteCount{name: OtherLanguage, bytes: rest})
	}

	var total int64
	for _, c := range counts {
		total += c.bytes
	}

	langs := make(Languages, 0, len(counts))
	for _, c := range counts {
		var pct float64
		if total > 0 {
			pct = math.Floor(float64(c.bytes)/float64(total)*1000) / 10
		}
		langs = append(langs, LanguageShare{Name: c.name, Percent: pct})
	}
	return langs
}
