package alerts

import (
	"reflect"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vigie-app/vigie/backend/pkg/textmatch"
)

func TestMatchKeywords(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keywords []string
		want     []string
	}{
		{
			name:     "no match",
			text:     "Le marché reste stable ce matin.",
			keywords: []string{"guerre", "offensive"},
			want:     []string(nil),
		},
		{
			name:     "single keyword",
			text:     "Une offensive a été lancée dans la nuit.",
			keywords: []string{"guerre", "offensive"},
			want:     []string{"offensive"},
		},
		{
			name:     "phrase keyword",
			text:     "La crise diplomatique s'aggrave entre les deux pays.",
			keywords: []string{"crise diplomatique", "ultimatum"},
			want:     []string{"crise diplomatique"},
		},
		{
			name:     "accented keyword matches unaccented text",
			text:     "Retorsion annoncée par le ministère.",
			keywords: []string{"rétorsion"},
			want:     []string{"rétorsion"},
		},
		{
			name:     "substring does not fire",
			text:     "Les guerres de position continuent.",
			keywords: []string{"guerre"},
			want:     []string(nil),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchKeywords(textmatch.Fold(tt.text), tt.keywords)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MatchKeywords() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestCooldownExpired(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		last     pgtype.Timestamptz
		cooldown int32
		want     bool
	}{
		{
			name:     "never triggered",
			last:     pgtype.Timestamptz{},
			cooldown: 3600,
			want:     true,
		},
		{
			name:     "zero cooldown always fires",
			last:     pgtype.Timestamptz{Time: now.Add(-time.Second), Valid: true},
			cooldown: 0,
			want:     true,
		},
		{
			name:     "inside cooldown",
			last:     pgtype.Timestamptz{Time: now.Add(-30 * time.Minute), Valid: true},
			cooldown: 3600,
			want:     false,
		},
		{
			name:     "cooldown just elapsed",
			last:     pgtype.Timestamptz{Time: now.Add(-time.Hour), Valid: true},
			cooldown: 3600,
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CooldownExpired(tt.last, tt.cooldown, now); got != tt.want {
				t.Errorf("CooldownExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}
