package store

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/Harshitk-cp/dempster/internal/domain"
	"github.com/google/uuid"
)

// MemoryFrameStore keeps frames in process memory. It backs
// STORE_BACKEND=memory and tests.
type MemoryFrameStore struct {
	mu     sync.RWMutex
	frames map[uuid.UUID]*domain.Frame
	now    func() time.Time
}

func NewMemoryFrameStore() *MemoryFrameStore {
	return &MemoryFrameStore{frames: make(map[uuid.UUID]*domain.Frame), now: time.Now}
}

func cloneFrame(f *domain.Frame) *domain.Frame {
	c := *f
	c.Hypotheses = append([]string{}, f.Hypotheses...)
	return &c
}

func (s *MemoryFrameStore) Create(ctx context.Context, f *domain.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.frames {
		if existing.Name == f.Name {
			return ErrConflict
		}
	}
	if f.Hypotheses == nil {
		f.Hypotheses = []string{}
	}
	f.ID = uuid.New()
	f.CreatedAt = s.now()
	f.UpdatedAt = f.CreatedAt
	s.frames[f.ID] = cloneFrame(f)
	return nil
}

func (s *MemoryFrameStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Frame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.frames[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneFrame(f), nil
}

func (s *MemoryFrameStore) List(ctx context.Context, limit int) ([]domain.Frame, error) {
	if limit <= 0 {
		limit = 100
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	frames := make([]domain.Frame, 0, len(s.frames))
	for _, f := range s.frames {
		frames = append(frames, *cloneFrame(f))
	}
	sort.Slice(frames, func(i, j int) bool {
		if frames[i].CreatedAt.Equal(frames[j].CreatedAt) {
			return frames[i].Name < frames[j].Name
		}
		return frames[i].CreatedAt.Before(frames[j].CreatedAt)
	})
	if len(frames) > limit {
		frames = frames[:limit]
	}
	return frames, nil
}

func (s *MemoryFrameStore) UpdateHypotheses(ctx context.Context, id uuid.UUID, expectedCount int, hypotheses []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.frames[id]
	if !ok {
		return ErrNotFound
	}
	if len(f.Hypotheses) != expectedCount {
		return ErrConflict
	}
	f.Hypotheses = append([]string{}, hypotheses...)
	f.UpdatedAt = s.now()
	return nil
}

// MemoryEvidenceStore keeps evidence records in process memory.
type MemoryEvidenceStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*domain.EvidenceRecord
	order   []uuid.UUID
	now     func() time.Time
}

func NewMemoryEvidenceStore() *MemoryEvidenceStore {
	return &MemoryEvidenceStore{records: make(map[uuid.UUID]*domain.EvidenceRecord), now: time.Now}
}

func cloneEvidence(e *domain.EvidenceRecord) domain.EvidenceRecord {
	c := *e
	c.Assignments = make([]domain.Assignment, len(e.Assignments))
	for i, a := range e.Assignments {
		c.Assignments[i] = domain.Assignment{Mass: a.Mass, Hypotheses: append([]string{}, a.Hypotheses...)}
	}
	c.Profile = append([]float32(nil), e.Profile...)
	return c
}

func (s *MemoryEvidenceStore) live(e *domain.EvidenceRecord, now time.Time) bool {
	return e.ExpiresAt == nil || e.ExpiresAt.After(now)
}

func (s *MemoryEvidenceStore) Create(ctx context.Context, e *domain.EvidenceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = uuid.New()
	e.CreatedAt = s.now()
	c := cloneEvidence(e)
	s.records[e.ID] = &c
	s.order = append(s.order, e.ID)
	return nil
}

func (s *MemoryEvidenceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.EvidenceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := cloneEvidence(e)
	return &c, nil
}

func (s *MemoryEvidenceStore) ListByFrame(ctx context.Context, frameID uuid.UUID) ([]domain.EvidenceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	var out []domain.EvidenceRecord
	for _, id := range s.order {
		e := s.records[id]
		if e.FrameID == frameID && s.live(e, now) {
			out = append(out, cloneEvidence(e))
		}
	}
	return out, nil
}

func (s *MemoryEvidenceStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	s.remove(id)
	return nil
}

// remove must be called with mu held.
func (s *MemoryEvidenceStore) remove(id uuid.UUID) {
	delete(s.records, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *MemoryEvidenceStore) DeleteExpired(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var expired []uuid.UUID
	for _, id := range s.order {
		if !s.live(s.records[id], now) {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		s.remove(id)
	}
	return int64(len(expired)), nil
}

func (s *MemoryEvidenceStore) FindSimilar(ctx context.Context, frameID uuid.UUID, exclude uuid.UUID, profile []float32, limit int) ([]domain.EvidenceWithScore, error) {
	if limit <= 0 {
		limit = 10
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	var results []domain.EvidenceWithScore
	for _, id := range s.order {
		e := s.records[id]
		if id == exclude || e.FrameID != frameID || len(e.Profile) == 0 || !s.live(e, now) {
			continue
		}
		results = append(results, domain.EvidenceWithScore{
			EvidenceRecord: cloneEvidence(e),
			Score:          cosine(padProfile(profile), padProfile(e.Profile)),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// cosine returns the cosine similarity of a and b, or 0 if either is all zeros.
func cosine(a, b []float32) float32 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
