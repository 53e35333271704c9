package wikipedia

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// minExtractLen is the shortest extract treated as a real article.
const minExtractLen = 50

var historyKeywords = []string{"founded", "established", "history", "developed"}

// titleOverrides maps lower-cased "city|country" pairs to exact article titles
// where the plain "City, Country" title is ambiguous.
var titleOverrides = map[string]string{
	"orkney|south africa": "Orkney, North West",
}

// HistoryTitle returns the article title to try first for a city.
func HistoryTitle(city, country string) string {
	key := strings.ToLower(city) + "|" + strings.ToLower(country)
	if t, ok := titleOverrides[key]; ok {
		return t
	}
	if country != "" {
		return city + ", " + country
	}
	return city
}

// History returns a short history blurb for a city. It tries the
// disambiguated title first and falls back to the bare city name.
func History(ctx context.Context, c Client, city, country string) (string, error) {
	title := HistoryTitle(city, country)
	extract, err := c.Extract(ctx, title)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return "", err
	}
	if err == nil && len(strings.TrimSpace(extract)) >= minExtractLen {
		return ConciseHistory(extract), nil
	}

	if title == city {
		return "", ErrNotFound
	}

	zap.L().Debug("wikipedia: primary title unusable, trying city",
		zap.String("title", title),
		zap.String("city", city),
	)
	extract, err = c.Extract(ctx, city)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			zap.L().Warn("wikipedia: fallback lookup failed", zap.String("city", city), zap.Error(err))
		}
		return "", ErrNotFound
	}
	if len(strings.TrimSpace(extract)) <= minExtractLen {
		return "", ErrNotFound
	}
	return ConciseHistory(extract), nil
}

// ConciseHistory picks the first sentence that talks about the city's
// origins, or the opening three sentences when none does.
func ConciseHistory(extract string) string {
	sentences := strings.Split(extract, ". ")
	for _, s := range sentences {
		lower := strings.ToLower(s)
		for _, kw := range historyKeywords {
			if strings.Contains(lower, kw) {
				return strings.TrimSpace(s)
			}
		}
	}

	var kept []string
	for _, s := range sentences {
		if strings.TrimSpace(s) != "" {
			kept = append(kept, s)
		}
		if len(kept) == 3 {
			break
		}
	}
	if len(kept) == 0 {
		return strings.TrimSpace(sentences[0] + ".")
	}
	return strings.TrimSpace(strings.Join(kept, ". "))
}
