package domain

import "github.com/google/uuid"

type HypothesisScore struct {
	Hypothesis   string  `json:"hypothesis"`
	Position     int     `json:"position"`
	Belief       float64 `json:"belief"`
	Plausibility float64 `json:"plausibility"`
}

// QueryResult is belief and plausibility of an arbitrary set of hypotheses.
type QueryResult struct {
	Hypotheses   []string `json:"hypotheses"`
	Belief       float64  `json:"belief"`
	Plausibility float64  `json:"plausibility"`
}

// Assessment is the outcome of fusing a frame's evidence with Dempster's rule.
type Assessment struct {
	FrameID        uuid.UUID         `json:"frame_id"`
	EvidenceIDs    []uuid.UUID       `json:"evidence_ids"`
	Conflict       float64           `json:"conflict"`
	StepConflicts  []float64         `json:"step_conflicts"`
	FocalSets      []Assignment      `json:"focal_sets"`
	Scores         []HypothesisScore `json:"scores"`
	MostBelievable string            `json:"most_believable"`
	MostPlausible  string            `json:"most_plausible"`
	BestMatch      string            `json:"best_match"`
	Verdict        Verdict           `json:"verdict"`
	VerdictReason  string            `json:"verdict_reason"`
	Query          *QueryResult      `json:"query,omitempty"`
}

type ConflictReport struct {
	FrameID  uuid.UUID `json:"frame_id"`
	A        uuid.UUID `json:"a"`
	B        uuid.UUID `json:"b"`
	Conflict float64   `json:"conflict"`
}
