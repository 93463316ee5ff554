package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Granularity is a calendar partitioning scheme for buckets.
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
	Yearly  Granularity = "yearly"
)

// Granularities lists every granularity, finest first.
var Granularities = []Granularity{Daily, Weekly, Monthly, Yearly}

// ParseGranularity accepts "weekly", "week" or "w" style spellings.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day", "d":
		return Daily, nil
	case "weekly", "week", "w":
		return Weekly, nil
	case "monthly", "month", "m":
		return Monthly, nil
	case "yearly", "year", "y":
		return Yearly, nil
	}
	return "", fmt.Errorf("unknown granularity %q (want daily, weekly, monthly or yearly)", s)
}

// Label is the key name used when a bucket of this granularity is encoded.
func (g Granularity) Label() string {
	switch g {
	case Daily:
		return "day"
	case Weekly:
		return "week"
	case Monthly:
		return "month"
	case Yearly:
		return "year"
	}
	return "key"
}

// Bucket is one time window of a granularity with its spent/earned/net totals.
// Start and End are both inclusive.
type Bucket struct {
	Granularity Granularity
	Key         string
	Start       time.Time
	End         time.Time
	Spent       float64
	Earned      float64
	Net         float64
}

// Contains reports whether t falls inside the bucket.
func (b Bucket) Contains(t time.Time) bool {
	return !t.Before(b.Start) && !t.After(b.End)
}

// Totals returns the bucket's spent/earned pair.
func (b Bucket) Totals() PeriodTotals {
	return PeriodTotals{Spent: b.Spent, Earned: b.Earned}
}

// MarshalJSON encodes the key under the granularity label, e.g.
// {"month":"2024-01","spent":200,"earned":-100,"net":100}.
func (b Bucket) MarshalJSON() ([]byte, error) {
	key, err := json.Marshal(b.Key)
	if err != nil {
		return nil, err
	}
	values, err := json.Marshal(struct {
		Spent  float64 `json:"spent"`
		Earned float64 `json:"earned"`
		Net    float64 `json:"net"`
	}{b.Spent, b.Earned, b.Net})
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(key)+len(values)+16)
	out = append(out, '{', '"')
	out = append(out, b.Granularity.Label()...)
	out = append(out, '"', ':')
	out = append(out, key...)
	out = append(out, ',')
	out = append(out, values[1:]...)
	return out, nil
}

// MarshalYAML mirrors MarshalJSON, keeping the key first.
func (b Bucket) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	pairs := []struct {
		key   string
		value interface{}
	}{
		{b.Granularity.Label(), b.Key},
		{"spent", b.Spent},
		{"earned", b.Earned},
		{"net", b.Net},
	}
	for _, p := range pairs {
		var k, v yaml.Node
		k.SetString(p.key)
		if err := v.Encode(p.value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &k, &v)
	}
	return node, nil
}
