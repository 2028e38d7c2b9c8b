package queue

import (
	"testing"

	"github.com/vigie-app/vigie/backend/pkg/common"
)

func TestArticlePrior(t *testing.T) {
	tests := []struct {
		name  string
		found []common.Relation
		want  float64
	}{
		{
			name:  "no relations falls back to neutral",
			found: nil,
			want:  neutralPrior,
		},
		{
			name: "single relation",
			found: []common.Relation{
				{Confidence: 0.2},
			},
			want: 0.2,
		},
		{
			name: "strongest relation wins",
			found: []common.Relation{
				{Confidence: 0.3},
				{Confidence: 0.9},
				{Confidence: 0.5},
			},
			want: 0.9,
		},
		{
			name: "weak relations stay below neutral",
			found: []common.Relation{
				{Confidence: 0.1},
			},
			want: 0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := articlePrior(tt.found); got != tt.want {
				t.Errorf("articlePrior() = %v, want %v", got, tt.want)
			}
		})
	}
}
