package domain

import "time"

// AnalysisResult is the output of one (simulated) image classification
type AnalysisResult struct {
	Detected   string   `json:"detected"`
	Category   Category `json:"category"`
	Style      Style    `json:"style"`
	Color      Color    `json:"color"`
	Confidence float64  `json:"confidence"` // 0-1
}

// Upload is a single image submitted for analysis
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// Stage is one fixed step of the analysis sequence
type Stage struct {
	Message  string
	Delay    time.Duration
	Progress int
}

// StageEvent reports that a stage has finished
type StageEvent struct {
	Index    int    `json:"index"`
	Message  string `json:"message"`
	Progress int    `json:"progress"`
}

// AnalysisEvent is one element of an analysis stream. Exactly one of
// Stage, Result or Err is set; Result and Err are terminal.
type AnalysisEvent struct {
	AnalysisID string          `json:"analysisId,omitempty"`
	Stage      *StageEvent     `json:"stage,omitempty"`
	Result     *AnalysisResult `json:"result,omitempty"`
	Err        error           `json:"-"`
}

// Terminal reports whether no further events follow e
func (e AnalysisEvent) Terminal() bool {
	return e.Result != nil || e.Err != nil
}
