package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Harshitk-cp/dempster/dst"
	"github.com/Harshitk-cp/dempster/internal/domain"
	"github.com/Harshitk-cp/dempster/internal/store"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

const DefaultFusionCacheSize = 256

// AssessOpts narrows an assessment. An empty EvidenceIDs fuses every live
// record of the frame.
type AssessOpts struct {
	EvidenceIDs []uuid.UUID
	Query       []string
	Merge       bool
}

// fusion is a combined result. Values in the cache are never mutated.
type fusion struct {
	universe *dst.Universe[string]
	combined *dst.Evidence[string]
	conflict float64
	steps    []float64
	ids      []uuid.UUID
}

type FusionService struct {
	frames   domain.FrameStore
	evidence domain.EvidenceStore
	cache    *lru.Cache[string, *fusion]
	logger   *zap.Logger
}

func NewFusionService(frames domain.FrameStore, evidence domain.EvidenceStore, cacheSize int, logger *zap.Logger) (*FusionService, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultFusionCacheSize
	}
	cache, err := lru.New[string, *fusion](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("fusion cache: %w", err)
	}
	return &FusionService{frames: frames, evidence: evidence, cache: cache, logger: logger}, nil
}

func (s *FusionService) frame(ctx context.Context, id uuid.UUID) (*domain.Frame, error) {
	f, err := s.frames.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrFrameNotFound
		}
		return nil, err
	}
	return f, nil
}

// selectRecords returns the frame's live records, restricted to ids when
// given. Order follows the store so equal selections fuse identically.
func (s *FusionService) selectRecords(ctx context.Context, frameID uuid.UUID, ids []uuid.UUID) ([]domain.EvidenceRecord, error) {
	records, err := s.evidence.ListByFrame(ctx, frameID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return records, nil
	}

	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	selected := make([]domain.EvidenceRecord, 0, len(ids))
	for _, r := range records {
		if wanted[r.ID] {
			selected = append(selected, r)
			delete(wanted, r.ID)
		}
	}
	for _, id := range ids {
		if wanted[id] {
			return nil, fmt.Errorf("%w: %s", ErrEvidenceNotFound, id)
		}
	}
	return selected, nil
}

func cacheKey(f *domain.Frame, records []domain.EvidenceRecord) string {
	var b strings.Builder
	b.WriteString(f.ID.String())
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(len(f.Hypotheses)))
	for _, r := range records {
		b.WriteByte('/')
		b.WriteString(r.ID.String())
	}
	return b.String()
}

// fuse folds the records left to right with Dempster's rule.
func (s *FusionService) fuse(f *domain.Frame, records []domain.EvidenceRecord) (*fusion, error) {
	key := cacheKey(f, records)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	u, err := UniverseOf(f)
	if err != nil {
		return nil, err
	}

	out := &fusion{universe: u, ids: make([]uuid.UUID, 0, len(records))}
	agreement := 1.0
	for i := range records {
		rec := &records[i]
		e, err := BuildEvidence(u, rec)
		if err != nil {
			return nil, fmt.Errorf("evidence %s: %w", rec.ID, err)
		}
		out.ids = append(out.ids, rec.ID)

		if out.combined == nil {
			out.combined = e
			continue
		}
		combined, k, err := out.combined.CombineWithConflict(e)
		if err != nil {
			return nil, fmt.Errorf("combining evidence %s: %w", rec.ID, err)
		}
		out.combined = combined
		out.steps = append(out.steps, k)
		agreement *= 1 - k
	}
	out.conflict = 1 - agreement

	s.cache.Add(key, out)
	return out, nil
}

// Assess fuses a frame's evidence and reports the combined assignment,
// per-hypothesis scores and the three decisions.
func (s *FusionService) Assess(ctx context.Context, frameID uuid.UUID, opts AssessOpts) (*domain.Assessment, error) {
	f, err := s.frame(ctx, frameID)
	if err != nil {
		return nil, err
	}
	records, err := s.selectRecords(ctx, frameID, opts.EvidenceIDs)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoEvidence
	}

	fz, err := s.fuse(f, records)
	if err != nil {
		if errors.Is(err, dst.ErrTotalConflict) {
			s.logger.Warn("total conflict while fusing",
				zap.String("frame_id", frameID.String()),
				zap.Int("records", len(records)))
		}
		return nil, err
	}

	a, err := assessment(f, fz, opts)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("frame assessed",
		zap.String("frame_id", frameID.String()),
		zap.Int("records", len(records)),
		zap.Float64("conflict", a.Conflict),
		zap.String("best_match", a.BestMatch))
	return a, nil
}

func assessment(f *domain.Frame, fz *fusion, opts AssessOpts) (*domain.Assessment, error) {
	e := fz.combined
	if opts.Merge {
		e = e.Merged()
	}

	a := &domain.Assessment{
		FrameID:       f.ID,
		EvidenceIDs:   fz.ids,
		Conflict:      fz.conflict,
		StepConflicts: append([]float64{}, fz.steps...),
	}
	for _, fs := range e.FocalSets() {
		a.FocalSets = append(a.FocalSets, domain.Assignment{
			Mass:       fs.Mass,
			Hypotheses: fz.universe.Members(fs.Subset),
		})
	}

	scores := e.Scores()
	a.Scores = make([]domain.HypothesisScore, len(scores))
	for i, sc := range scores {
		a.Scores[i] = domain.HypothesisScore{
			Hypothesis:   sc.ID,
			Position:     sc.Position,
			Belief:       sc.Belief,
			Plausibility: sc.Plausibility,
		}
	}

	var err error
	if a.MostBelievable, err = e.MostBelievable(); err != nil {
		return nil, err
	}
	if a.MostPlausible, err = e.MostPlausible(); err != nil {
		return nil, err
	}
	if a.BestMatch, err = e.BestMatch(); err != nil {
		return nil, err
	}
	pos, _ := fz.universe.Position(a.BestMatch)
	a.Verdict = domain.ComputeVerdict(scores[pos].Belief)
	a.VerdictReason = domain.VerdictReason(scores[pos].Belief)

	if len(opts.Query) > 0 {
		q := fz.universe.Resolve(opts.Query)
		a.Query = &domain.QueryResult{
			Hypotheses:   fz.universe.Members(q),
			Belief:       e.Belief(q),
			Plausibility: e.Plausibility(q),
		}
	}
	return a, nil
}

// Conflict returns the conflict mass between two records of the frame.
func (s *FusionService) Conflict(ctx context.Context, frameID, a, b uuid.UUID) (*domain.ConflictReport, error) {
	f, err := s.frame(ctx, frameID)
	if err != nil {
		return nil, err
	}
	records, err := s.selectRecords(ctx, frameID, []uuid.UUID{a, b})
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*domain.EvidenceRecord, len(records))
	for i := range records {
		byID[records[i].ID] = &records[i]
	}

	u, err := UniverseOf(f)
	if err != nil {
		return nil, err
	}
	ea, err := BuildEvidence(u, byID[a])
	if err != nil {
		return nil, fmt.Errorf("evidence %s: %w", a, err)
	}
	eb, err := BuildEvidence(u, byID[b])
	if err != nil {
		return nil, fmt.Errorf("evidence %s: %w", b, err)
	}
	k, err := ea.Conflict(eb)
	if err != nil {
		return nil, err
	}
	return &domain.ConflictReport{FrameID: frameID, A: a, B: b, Conflict: k}, nil
}
