package service

import (
	"math"
	"testing"

	"github.com/Harshitk-cp/dempster/internal/domain"
)

func TestResolveReliability(t *testing.T) {
	ptr := func(f float64) *float64 { return &f }

	tests := []struct {
		name     string
		kind     domain.EvidenceKind
		explicit *float64
		want     float64
	}{
		{"sensor default", domain.EvidenceSensor, nil, 0.975},
		{"explicit default", domain.EvidenceExplicit, nil, 0.90},
		{"unknown kind", domain.EvidenceKind("rumour"), nil, 0.5},
		{"explicit value", domain.EvidenceSensor, ptr(0.3), 0.3},
		{"clamped high", domain.EvidenceSensor, ptr(1.7), 1},
		{"clamped low", domain.EvidenceSensor, ptr(-0.2), 0},
		{"nan", domain.EvidenceSensor, ptr(math.NaN()), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveReliability(tt.kind, tt.explicit)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ResolveReliability() = %v, want %v", got, tt.want)
			}
		})
	}
}
