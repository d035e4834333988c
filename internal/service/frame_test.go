package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/Harshitk-cp/dempster/dst"
	"github.com/Harshitk-cp/dempster/internal/domain"
	"github.com/Harshitk-cp/dempster/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// mockFrameStore implements domain.FrameStore for testing.
type mockFrameStore struct {
	frames      map[uuid.UUID]*domain.Frame
	updateCalls int
	failUpdate  error
}

func newMockFrameStore() *mockFrameStore {
	return &mockFrameStore{frames: make(map[uuid.UUID]*domain.Frame)}
}

func (m *mockFrameStore) Create(ctx context.Context, f *domain.Frame) error {
	for _, existing := range m.frames {
		if existing.Name == f.Name {
			return store.ErrConflict
		}
	}
	f.ID = uuid.New()
	c := *f
	m.frames[f.ID] = &c
	return nil
}

func (m *mockFrameStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Frame, error) {
	f, ok := m.frames[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	c := *f
	return &c, nil
}

func (m *mockFrameStore) List(ctx context.Context, limit int) ([]domain.Frame, error) {
	var out []domain.Frame
	for _, f := range m.frames {
		out = append(out, *f)
	}
	return out, nil
}

func (m *mockFrameStore) UpdateHypotheses(ctx context.Context, id uuid.UUID, expectedCount int, hypotheses []string) error {
	m.updateCalls++
	if m.failUpdate != nil {
		return m.failUpdate
	}
	f, ok := m.frames[id]
	if !ok {
		return store.ErrNotFound
	}
	if len(f.Hypotheses) != expectedCount {
		return store.ErrConflict
	}
	f.Hypotheses = hypotheses
	return nil
}

func TestFrameService_Create(t *testing.T) {
	s := NewFrameService(newMockFrameStore(), zap.NewNop())
	ctx := context.Background()

	f := &domain.Frame{Name: "alarm", Hypotheses: []string{"burglar", "cat", "burglar", "wind"}}
	if err := s.Create(ctx, f); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if f.ID == uuid.Nil {
		t.Fatal("expected frame ID to be set")
	}
	if len(f.Hypotheses) != 3 || f.Hypotheses[2] != "wind" {
		t.Errorf("hypotheses = %v, want [burglar cat wind]", f.Hypotheses)
	}
}

func TestFrameService_CreateDuplicate(t *testing.T) {
	s := NewFrameService(newMockFrameStore(), zap.NewNop())
	ctx := context.Background()

	if err := s.Create(ctx, &domain.Frame{Name: "alarm"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	err := s.Create(ctx, &domain.Frame{Name: "alarm"})
	if err != ErrFrameConflict {
		t.Fatalf("expected ErrFrameConflict, got %v", err)
	}
}

func TestFrameService_CreateTooManyHypotheses(t *testing.T) {
	s := NewFrameService(newMockFrameStore(), zap.NewNop())

	hs := make([]string, dst.MaxHypotheses+1)
	for i := range hs {
		hs[i] = "h" + strconv.Itoa(i)
	}
	err := s.Create(context.Background(), &domain.Frame{Name: "big", Hypotheses: hs})
	if !errors.Is(err, dst.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
}

func TestFrameService_GetByIDNotFound(t *testing.T) {
	s := NewFrameService(newMockFrameStore(), zap.NewNop())
	_, err := s.GetByID(context.Background(), uuid.New())
	if err != ErrFrameNotFound {
		t.Fatalf("expected ErrFrameNotFound, got %v", err)
	}
}

func TestFrameService_AddHypotheses(t *testing.T) {
	mockStore := newMockFrameStore()
	s := NewFrameService(mockStore, zap.NewNop())
	ctx := context.Background()

	f := &domain.Frame{Name: "alarm", Hypotheses: []string{"burglar", "cat"}}
	_ = s.Create(ctx, f)

	updated, err := s.AddHypotheses(ctx, f.ID, []string{"cat", "wind"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []string{"burglar", "cat", "wind"}
	if len(updated.Hypotheses) != len(want) {
		t.Fatalf("hypotheses = %v, want %v", updated.Hypotheses, want)
	}
	for i := range want {
		if updated.Hypotheses[i] != want[i] {
			t.Errorf("hypotheses[%d] = %q, want %q", i, updated.Hypotheses[i], want[i])
		}
	}

	// nothing new, no write
	if _, err := s.AddHypotheses(ctx, f.ID, []string{"burglar"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mockStore.updateCalls != 1 {
		t.Errorf("update calls = %d, want 1", mockStore.updateCalls)
	}
}

func TestFrameService_AddHypothesesConcurrentChange(t *testing.T) {
	mockStore := newMockFrameStore()
	s := NewFrameService(mockStore, zap.NewNop())
	ctx := context.Background()

	f := &domain.Frame{Name: "alarm", Hypotheses: []string{"burglar"}}
	_ = s.Create(ctx, f)
	mockStore.failUpdate = store.ErrConflict

	_, err := s.AddHypotheses(ctx, f.ID, []string{"cat"})
	if err != ErrFrameChanged {
		t.Fatalf("expected ErrFrameChanged, got %v", err)
	}
}
