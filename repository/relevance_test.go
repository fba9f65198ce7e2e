package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRelevant(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		text     string
		expected bool
	}{
		{
			name:     "two shared words",
			query:    "termination notice",
			text:     "The employer must give written notice before termination.",
			expected: true,
		},
		{
			name:     "single shared word",
			query:    "termination notice",
			text:     "Termination ends the contract.",
			expected: false,
		},
		{
			name:     "case insensitive",
			query:    "EMPLOYER Wages",
			text:     "employer pays wages monthly",
			expected: true,
		},
		{
			name:     "query word contains text word",
			query:    "wages? employers",
			text:     "wages are owed by the employer",
			expected: true,
		},
		{
			name:     "arabic overlap",
			query:    "ما هي حقوق العامل في نظام العمل؟",
			text:     "من حقوق العامل في نظام العمل أن يدفع أجره في موعده",
			expected: true,
		},
		{
			name:     "empty query",
			query:    "",
			text:     "anything at all",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsRelevant(tt.query, tt.text))
		})
	}
}

func TestRelevanceScore(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		text     string
		expected float64
	}{
		{"all words present", "employer wages", "The employer pays wages", 1},
		{"half present", "employer holiday", "The employer pays wages", 0.5},
		{"none present", "maritime salvage", "The employer pays wages", 0},
		{"empty query", "   ", "The employer pays wages", 0},
		{"repeated query word counts each time", "wages wages", "wages", 1},
		{"text word inside query word", "wages? employer's", "wages employer", 1},
		{"arabic punctuation attached", "متى يُدفع الأجر؟ وما حكم العمل؟", "يدفع صاحب العمل الأجر للعامل", 2.0 / 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := RelevanceScore(tt.query, tt.text)
			assert.InDelta(t, tt.expected, score, 1e-9)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		})
	}
}

func TestRelevanceScore_PositiveWheneverRelevant(t *testing.T) {
	cases := []struct {
		query string
		text  string
	}{
		{"متى يُدفع الأجر؟ وما حكم العمل؟", "يدفع صاحب العمل الأجر للعامل"},
		{"ما هي حقوق العامل في نظام العمل؟", "من حقوق العامل في نظام العمل أن يدفع أجره في موعده"},
		{"notice? termination!", "termination requires notice"},
	}

	for _, c := range cases {
		assert.True(t, IsRelevant(c.query, c.text), c.query)
		assert.Greater(t, RelevanceScore(c.query, c.text), 0.0, c.query)
	}
}
