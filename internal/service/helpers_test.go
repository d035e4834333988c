package service

import (
	"context"
	"testing"

	"github.com/Harshitk-cp/dempster/internal/domain"
	"github.com/Harshitk-cp/dempster/internal/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	frames   *store.MemoryFrameStore
	evidence *store.MemoryEvidenceStore
	frameSvc *FrameService
	evSvc    *EvidenceService
	fusion   *FusionService
	frame    *domain.Frame
}

// newFixture wires the services over in-memory stores with a frame {A, B, C}.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	fx := &fixture{
		frames:   store.NewMemoryFrameStore(),
		evidence: store.NewMemoryEvidenceStore(),
	}
	logger := zap.NewNop()
	fx.frameSvc = NewFrameService(fx.frames, logger)
	fx.evSvc = NewEvidenceService(fx.evidence, fx.frames, logger)

	var err error
	fx.fusion, err = NewFusionService(fx.frames, fx.evidence, 8, logger)
	require.NoError(t, err)

	fx.frame = &domain.Frame{Name: "abc", Hypotheses: []string{"A", "B", "C"}}
	require.NoError(t, fx.frameSvc.Create(context.Background(), fx.frame))
	return fx
}

func (fx *fixture) add(t *testing.T, source string, assignments ...domain.Assignment) *domain.EvidenceRecord {
	t.Helper()
	rec := &domain.EvidenceRecord{
		FrameID:     fx.frame.ID,
		Source:      source,
		Kind:        domain.EvidenceSensor,
		Reliability: 1,
		Assignments: assignments,
		Complete:    true,
	}
	require.NoError(t, fx.evSvc.Create(context.Background(), rec))
	return rec
}

func mass(m float64, hs ...string) domain.Assignment {
	return domain.Assignment{Mass: m, Hypotheses: hs}
}
