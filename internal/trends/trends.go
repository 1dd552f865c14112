// Package trends serves the trend intelligence board. The data is a static
// seed shipped with the binary: the real cross-platform trend feeds cannot be
// scraped from here, so each entry links out to a search-engine query
// instead. Source is an interface so a real feed can be plugged in later.
package trends

import (
	_ "embed"
	"context"
	"fmt"
	"net/url"

	"gopkg.in/yaml.v3"

	"trendremix/internal/types"
)

//go:embed seed.yaml
var seedYAML []byte

// Source supplies trend board entries.
type Source interface {
	Trends(ctx context.Context) ([]types.TrendItem, error)
}

type seedEntry struct {
	Rank     int    `yaml:"rank"`
	Title    string `yaml:"title"`
	HotScore int    `yaml:"hotScore"`
	Platform string `yaml:"platform"`
	Summary  string `yaml:"summary"`
	Keyword  string `yaml:"keyword"`
}

// StaticSource serves the embedded seed list.
type StaticSource struct {
	items []types.TrendItem
}

// NewStaticSource parses the embedded seed.
func NewStaticSource() (*StaticSource, error) {
	var entries []seedEntry
	if err := yaml.Unmarshal(seedYAML, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse trend seed: %w", err)
	}

	items := make([]types.TrendItem, len(entries))
	for i, e := range entries {
		items[i] = types.TrendItem{
			ID:        fmt.Sprintf("%d", e.Rank),
			Rank:      e.Rank,
			Title:     e.Title,
			HotScore:  e.HotScore,
			Platform:  types.ParsePlatform(e.Platform),
			Summary:   e.Summary,
			SearchURL: searchURL(e.Keyword),
		}
	}
	return &StaticSource{items: items}, nil
}

// Trends returns the seed entries in rank order.
func (s *StaticSource) Trends(_ context.Context) ([]types.TrendItem, error) {
	return s.items, nil
}

func searchURL(keyword string) string {
	return "https://www.baidu.com/s?wd=" + url.QueryEscape(keyword)
}
