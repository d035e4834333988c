// Package fixtures loads YAML scenarios of frames and evidence and runs them
// through the fusion pipeline.
package fixtures

import (
	"context"
	"embed"
	"fmt"
	"math"
	"os"
	"path"
	"sort"

	"github.com/Harshitk-cp/dempster/internal/domain"
	"github.com/Harshitk-cp/dempster/internal/service"
	"github.com/Harshitk-cp/dempster/internal/store"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed scenarios/*.yaml
var builtin embed.FS

// Tolerance is the allowed difference between an expected and computed conflict.
const Tolerance = 1e-6

type Scenario struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Hypotheses  []string          `yaml:"hypotheses"`
	Evidence    []EvidenceFixture `yaml:"evidence"`
	Expect      *Expectation      `yaml:"expect,omitempty"`
}

type EvidenceFixture struct {
	Source      string              `yaml:"source"`
	Kind        string              `yaml:"kind,omitempty"`
	Reliability *float64            `yaml:"reliability,omitempty"`
	Complete    *bool               `yaml:"complete,omitempty"`
	Assignments []AssignmentFixture `yaml:"assignments"`
}

type AssignmentFixture struct {
	Mass       float64  `yaml:"mass"`
	Hypotheses []string `yaml:"hypotheses"`
}

// Expectation is checked against an assessment. Empty fields are not checked.
type Expectation struct {
	Conflict       *float64 `yaml:"conflict,omitempty"`
	MostBelievable string   `yaml:"most_believable,omitempty"`
	MostPlausible  string   `yaml:"most_plausible,omitempty"`
	BestMatch      string   `yaml:"best_match,omitempty"`
}

func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("error unmarshaling scenario: %w", err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario has no name")
	}
	if len(s.Hypotheses) == 0 {
		return nil, fmt.Errorf("scenario %s has no hypotheses", s.Name)
	}
	for i, e := range s.Evidence {
		if e.Kind != "" && !domain.ValidEvidenceKind(e.Kind) {
			return nil, fmt.Errorf("scenario %s evidence %d: unknown kind %q", s.Name, i, e.Kind)
		}
	}
	return &s, nil
}

func LoadFile(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading scenario: %w", err)
	}
	return Parse(data)
}

// Builtin returns the scenarios shipped with the binary, sorted by name.
func Builtin() ([]*Scenario, error) {
	entries, err := builtin.ReadDir("scenarios")
	if err != nil {
		return nil, err
	}
	out := make([]*Scenario, 0, len(entries))
	for _, e := range entries {
		data, err := builtin.ReadFile(path.Join("scenarios", e.Name()))
		if err != nil {
			return nil, err
		}
		s, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Record converts a fixture to an evidence record of frame. Reliability
// falls back to the kind default when the fixture leaves it out.
func (f EvidenceFixture) Record(frame *domain.Frame) *domain.EvidenceRecord {
	kind := domain.EvidenceKind(f.Kind)
	if kind == "" {
		kind = domain.EvidenceExplicit
	}
	rec := &domain.EvidenceRecord{
		FrameID:     frame.ID,
		Source:      f.Source,
		Kind:        kind,
		Reliability: service.ResolveReliability(kind, f.Reliability),
		Complete:    f.Complete == nil || *f.Complete,
	}
	for _, a := range f.Assignments {
		rec.Assignments = append(rec.Assignments, domain.Assignment{Mass: a.Mass, Hypotheses: a.Hypotheses})
	}
	return rec
}

// Seed creates the scenario's frame and evidence through the given services.
func Seed(ctx context.Context, frames *service.FrameService, evidence *service.EvidenceService, s *Scenario) (*domain.Frame, error) {
	frame := &domain.Frame{Name: s.Name, Description: s.Description, Hypotheses: s.Hypotheses}
	if err := frames.Create(ctx, frame); err != nil {
		return nil, fmt.Errorf("frame %s: %w", s.Name, err)
	}
	for i, ef := range s.Evidence {
		if err := evidence.Create(ctx, ef.Record(frame)); err != nil {
			return nil, fmt.Errorf("scenario %s evidence %d (%s): %w", s.Name, i, ef.Source, err)
		}
	}
	return frame, nil
}

// Evaluate runs the scenario against in-memory stores and returns the
// assessment of all its evidence.
func Evaluate(ctx context.Context, s *Scenario) (*domain.Assessment, error) {
	frameStore := store.NewMemoryFrameStore()
	evidenceStore := store.NewMemoryEvidenceStore()
	logger := zap.NewNop()

	fusion, err := service.NewFusionService(frameStore, evidenceStore, 1, logger)
	if err != nil {
		return nil, err
	}
	frame, err := Seed(ctx,
		service.NewFrameService(frameStore, logger),
		service.NewEvidenceService(evidenceStore, frameStore, logger),
		s)
	if err != nil {
		return nil, err
	}
	return fusion.Assess(ctx, frame.ID, service.AssessOpts{})
}

// Check compares an assessment with the scenario's expectation.
func (s *Scenario) Check(a *domain.Assessment) error {
	e := s.Expect
	if e == nil {
		return nil
	}
	if e.Conflict != nil && math.Abs(*e.Conflict-a.Conflict) > Tolerance {
		return fmt.Errorf("%s: conflict %.6f, expected %.6f", s.Name, a.Conflict, *e.Conflict)
	}
	checks := []struct{ field, want, got string }{
		{"most_believable", e.MostBelievable, a.MostBelievable},
		{"most_plausible", e.MostPlausible, a.MostPlausible},
		{"best_match", e.BestMatch, a.BestMatch},
	}
	for _, c := range checks {
		if c.want != "" && c.want != c.got {
			return fmt.Errorf("%s: %s is %q, expected %q", s.Name, c.field, c.got, c.want)
		}
	}
	return nil
}
