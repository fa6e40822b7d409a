package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/furnifind/backend/internal/domain"
	"github.com/furnifind/backend/pkg/logger"
)

// MaxUploadBytes is the largest accepted image (10 MiB, inclusive)
const MaxUploadBytes int64 = 10 * 1024 * 1024

// User-facing validation messages
const (
	ReasonUnsupportedType = "Please upload a JPG, JPEG, or PNG image"
	ReasonTooLarge        = "File size must be less than 10MB"
	ReasonMissingFile     = "Please choose an image to upload"
)

// DefaultStages is the fixed progress sequence of an analysis
var DefaultStages = []domain.Stage{
	{Message: "Loading image...", Delay: 200 * time.Millisecond, Progress: 20},
	{Message: "Analyzing furniture...", Delay: 400 * time.Millisecond, Progress: 45},
	{Message: "Identifying style...", Delay: 600 * time.Millisecond, Progress: 70},
	{Message: "Finding matches...", Delay: 400 * time.Millisecond, Progress: 90},
	{Message: "Complete!", Delay: 200 * time.Millisecond, Progress: 100},
}

// DefaultResults is the table a result is drawn from, one per category
var DefaultResults = []domain.AnalysisResult{
	{Detected: "Modern Gray Sofa", Category: domain.CategorySofa, Style: domain.StyleModern, Color: domain.ColorGray, Confidence: 0.85},
	{Detected: "Mid-Century Leather Chair", Category: domain.CategoryChair, Style: domain.StyleMidCentury, Color: domain.ColorBrown, Confidence: 0.92},
	{Detected: "Scandinavian Oak Table", Category: domain.CategoryTable, Style: domain.StyleScandinavian, Color: domain.ColorBeige, Confidence: 0.88},
	{Detected: "Industrial Metal Desk", Category: domain.CategoryDesk, Style: domain.StyleIndustrial, Color: domain.ColorBlack, Confidence: 0.79},
	{Detected: "Rustic Wooden Bed", Category: domain.CategoryBed, Style: domain.StyleRustic, Color: domain.ColorBrown, Confidence: 0.91},
}

// acceptedTypes are the MIME types an upload may declare or be sniffed as
var acceptedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// AnalyzerConfig holds configuration for the mock analyzer
type AnalyzerConfig struct {
	Stages         []domain.Stage
	Results        []domain.AnalysisResult
	MaxUploadBytes int64
	DelayScale     float64 // multiplies every stage delay; 0 runs stages back to back
	Random         domain.RandomSource
}

// Analyzer simulates a staged image classification. It never looks at the
// pixels: the result is drawn at random from a fixed table.
type Analyzer struct {
	stages         []domain.Stage
	results        []domain.AnalysisResult
	maxUploadBytes int64
	delayScale     float64
	random         domain.RandomSource
}

// NewAnalyzer creates an analyzer, filling unset fields with the defaults
func NewAnalyzer(config AnalyzerConfig) *Analyzer {
	stages := config.Stages
	if stages == nil {
		stages = DefaultStages
	}

	results := config.Results
	if results == nil {
		results = DefaultResults
	}

	maxBytes := config.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = MaxUploadBytes
	}

	scale := config.DelayScale
	if scale < 0 {
		scale = 0
	}

	random := config.Random
	if random == nil {
		random = NewRandom()
	}

	return &Analyzer{
		stages:         stages,
		results:        results,
		maxUploadBytes: maxBytes,
		delayScale:     scale,
		random:         random,
	}
}

// Validate checks type and size. The declared content type wins; an empty or
// generic one is replaced by sniffing the bytes. An upload whose bytes were
// never read because it was already too large fails on size.
func (a *Analyzer) Validate(upload *domain.Upload) error {
	if upload == nil {
		return &domain.ValidationError{Reason: ReasonMissingFile}
	}

	size := upload.Size
	if size == 0 {
		size = int64(len(upload.Data))
	}
	tooLarge := size > a.maxUploadBytes

	contentType := normalizeContentType(upload.ContentType)
	if contentType == "" || contentType == "application/octet-stream" {
		if len(upload.Data) == 0 && tooLarge {
			return &domain.ValidationError{Reason: ReasonTooLarge}
		}
		contentType = normalizeContentType(mimetype.Detect(upload.Data).String())
	}
	if !acceptedTypes[contentType] {
		return &domain.ValidationError{Reason: ReasonUnsupportedType}
	}

	if tooLarge {
		return &domain.ValidationError{Reason: ReasonTooLarge}
	}

	return nil
}

// Analyze validates the upload synchronously and then starts the staged run.
// The channel carries one event per stage followed by exactly one terminal
// event, then closes. Once ctx is done nothing more is sent.
func (a *Analyzer) Analyze(ctx context.Context, upload *domain.Upload) (<-chan domain.AnalysisEvent, error) {
	if err := a.Validate(upload); err != nil {
		return nil, err
	}

	events := make(chan domain.AnalysisEvent)
	go a.run(ctx, events)
	return events, nil
}

// Run consumes an analysis synchronously, reporting each stage to onStage
func (a *Analyzer) Run(ctx context.Context, upload *domain.Upload, onStage func(domain.StageEvent)) (*domain.AnalysisResult, error) {
	events, err := a.Analyze(ctx, upload)
	if err != nil {
		return nil, err
	}

	for ev := range events {
		switch {
		case ev.Stage != nil:
			if onStage != nil {
				onStage(*ev.Stage)
			}
		case ev.Err != nil:
			return nil, ev.Err
		case ev.Result != nil:
			return ev.Result, nil
		}
	}

	// channel closed without a terminal event: the caller cancelled
	return nil, ctx.Err()
}

func (a *Analyzer) run(ctx context.Context, events chan<- domain.AnalysisEvent) {
	defer close(events)

	send := func(ev domain.AnalysisEvent) bool {
		select {
		case <-ctx.Done():
			return false
		case events <- ev:
			return true
		}
	}

	for i, stage := range a.stages {
		if err := a.wait(ctx, stage.Delay); err != nil {
			return
		}
		if !send(domain.AnalysisEvent{Stage: &domain.StageEvent{Index: i, Message: stage.Message, Progress: stage.Progress}}) {
			return
		}
	}

	result, err := a.pick()
	if err != nil {
		logger.Error(ctx).Err(err).Msg("analysis failed")
		send(domain.AnalysisEvent{Err: err})
		return
	}
	send(domain.AnalysisEvent{Result: result})
}

func (a *Analyzer) pick() (*domain.AnalysisResult, error) {
	if len(a.results) == 0 {
		return nil, &domain.ProcessingError{Reason: "no classification available"}
	}
	result := a.results[a.random.IntN(len(a.results))]
	return &result, nil
}

func (a *Analyzer) wait(ctx context.Context, delay time.Duration) error {
	d := time.Duration(float64(delay) * a.delayScale)
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// normalizeContentType lowercases and strips parameters such as charset
func normalizeContentType(ct string) string {
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
