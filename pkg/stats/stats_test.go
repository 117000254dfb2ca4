package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/postwatch/pkg/domain"
)

func TestParseTimeAgo(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"5 minutes ago", 5},
		{"1 minute ago", 1},
		{"2 hours ago", 120},
		{"  3 Days ago ", 3 * 1440},
		{"1 week ago", 7 * 1440},
		{"2 months ago", 60 * 1440},
		{"1 year ago", Unknown},
		{"a minute ago", Unknown},
		{"just now", Unknown},
		{"yesterday", Unknown},
		{"", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTimeAgo(tt.in))
		})
	}
}

func TestCollect(t *testing.T) {
	ts := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	known := domain.KnownSet{
		"Old":     {Title: "Old", PostedTime: "2 weeks ago", Details: "x", FirstSeen: ts},
		"Fresh":   {Title: "Fresh", PostedTime: "5 minutes ago", Links: []domain.Link{{URL: "u1"}, {URL: "u2"}}, FirstSeen: ts},
		"Hour":    {Title: "Hour", PostedTime: "1 hour ago", Details: "привет", Links: []domain.Link{{URL: "u3"}}, FirstSeen: ts},
		"Unknown": {Title: "Unknown", FirstSeen: ts.Add(time.Hour)},
		"Day":     {Title: "Day", PostedTime: "1 day ago", FirstSeen: ts},
	}

	st := Collect(known, 3)
	assert.Equal(t, 5, st.Total)
	assert.Equal(t, 2, st.WithDetails)
	assert.Equal(t, 2, st.WithLinks)
	assert.Equal(t, 3, st.TotalLinks)
	require.Len(t, st.Recent, 3)
	assert.Equal(t, "Fresh", st.Recent[0].Title)
	assert.Equal(t, "Hour", st.Recent[1].Title)
	assert.Equal(t, "Day", st.Recent[2].Title)
	assert.Equal(t, 6, st.Recent[1].DetailsLength, "length in characters")
	assert.Equal(t, 1, st.Recent[1].LinksCount)

	all := Collect(known, 10)
	require.Len(t, all.Recent, 5)
	assert.Equal(t, "Unknown", all.Recent[4].Title, "unparsable time sorts last")

	empty := Collect(domain.KnownSet{}, 3)
	assert.Equal(t, 0, empty.Total)
	assert.NotNil(t, empty.Recent)
}

func TestRender(t *testing.T) {
	color.NoColor = true
	ts := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	Render(&buf, Stats{
		Total: 2, WithDetails: 1, WithLinks: 1, TotalLinks: 2,
		Recent: []RecentPost{
			{Title: strings.Repeat("t", 60), Author: "Jane", PostedTime: "2 hours ago", FirstSeen: ts, DetailsLength: 10, LinksCount: 2},
			{Title: "short"},
		},
	})
	out := buf.String()
	assert.Contains(t, out, "Post Statistics:")
	assert.Contains(t, out, "Total known posts: 2\n")
	assert.Contains(t, out, "Posts with details: 1\n")
	assert.Contains(t, out, "Total links found: 2\n")
	assert.Contains(t, out, "1. "+strings.Repeat("t", 50)+"...\n")
	assert.Contains(t, out, "By: Jane • 2 hours ago\n")
	assert.Contains(t, out, "First seen: 2025-05-01T09:00:00Z\n")
	assert.Contains(t, out, "Details: 10 characters\n")
	assert.Contains(t, out, "Links: 2 found\n")
	assert.Contains(t, out, "2. short\n")
	assert.Contains(t, out, "By: Unknown • Unknown\n")
	assert.Contains(t, out, "First seen: Unknown\n")

	buf.Reset()
	Render(&buf, Stats{})
	assert.Contains(t, buf.String(), "Total known posts: 0\n")
	assert.NotContains(t, buf.String(), "Most recent posts")
}
