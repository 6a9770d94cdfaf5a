// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package studyplan

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tombee/studyplan/pkg/errors"
)

const tracerName = "github.com/tombee/studyplan/pkg/studyplan"

// DocumentStore reads and writes documents by sandbox-relative path.
// Read degrades to a placeholder on I/O failure; Write propagates every error.
type DocumentStore interface {
	Read(ctx context.Context, path string) (string, error)
	Write(ctx context.Context, path, content string) error
}

// DocumentReader is the read half of DocumentStore.
type DocumentReader interface {
	Read(ctx context.Context, path string) (string, error)
}

// GeneratorConfig configures a Generator.
type GeneratorConfig struct {
	// Store persists plans and reads them back (required)
	Store DocumentStore

	// KnowledgeStore reads the knowledge base (default: Store)
	KnowledgeStore DocumentReader

	// Parser recognises topic lines (default: ParseKnowledgeBase's parser)
	Parser *Parser

	// KnowledgePath is the knowledge-base document location
	KnowledgePath string

	// PlanPath is where the rendered plan is written
	PlanPath string

	// Clock supplies the generation date (default: time.Now)
	Clock func() time.Time

	// Logger for pipeline activity (default: slog.Default())
	Logger *slog.Logger
}

// Generator runs the read, parse, match, schedule, render, write pipeline.
// It holds no state between calls.
type Generator struct {
	store         DocumentStore
	knowledge     DocumentReader
	parser        *Parser
	knowledgePath string
	planPath      string
	clock         func() time.Time
	logger        *slog.Logger
	tracer        trace.Tracer
}

// NewGenerator creates a Generator.
func NewGenerator(cfg GeneratorConfig) (*Generator, error) {
	if cfg.Store == nil {
		return nil, errors.New("document store is required")
	}
	if cfg.KnowledgePath == "" || cfg.PlanPath == "" {
		return nil, errors.New("knowledge and plan paths are required")
	}
	if cfg.KnowledgeStore == nil {
		cfg.KnowledgeStore = cfg.Store
	}
	if cfg.Parser == nil {
		cfg.Parser = defaultParser
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Generator{
		store:         cfg.Store,
		knowledge:     cfg.KnowledgeStore,
		parser:        cfg.Parser,
		knowledgePath: cfg.KnowledgePath,
		planPath:      cfg.PlanPath,
		clock:         cfg.Clock,
		logger:        cfg.Logger,
		tracer:        otel.Tracer(tracerName),
	}, nil
}

// KnowledgePath returns the configured knowledge-base location.
func (g *Generator) KnowledgePath() string { return g.knowledgePath }

// PlanPath returns the configured plan location.
func (g *Generator) PlanPath() string { return g.planPath }

// ReadKnowledge returns the knowledge-base document, or the store's placeholder.
func (g *Generator) ReadKnowledge(ctx context.Context) (string, error) {
	return g.knowledge.Read(ctx, g.knowledgePath)
}

// ReadPlan returns the persisted plan, or the store's placeholder.
func (g *Generator) ReadPlan(ctx context.Context) (string, error) {
	return g.store.Read(ctx, g.planPath)
}

// Topics reads and parses the knowledge base.
func (g *Generator) Topics(ctx context.Context) ([]Topic, error) {
	text, err := g.ReadKnowledge(ctx)
	if err != nil {
		return nil, err
	}
	return g.parser.Parse(text), nil
}

// Build runs the pipeline up to rendering without persisting anything.
func (g *Generator) Build(ctx context.Context, req Request) (*Plan, error) {
	ctx, span := g.tracer.Start(ctx, "studyplan.build")
	defer span.End()

	req = req.Normalize()
	span.SetAttributes(
		attribute.String("studyplan.role", string(req.Role)),
		attribute.Int("studyplan.weeks", req.WeeksDuration),
		attribute.StringSlice("studyplan.focus_areas", req.FocusAreas),
	)

	plan, err := g.build(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, errors.Type(err))
		return nil, err
	}
	return plan, nil
}

func (g *Generator) build(ctx context.Context, req Request) (*Plan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	topics, err := g.Topics(ctx)
	if err != nil {
		return nil, err
	}
	trace.SpanFromContext(ctx).AddEvent("parsed", trace.WithAttributes(attribute.Int("topics", len(topics))))

	matched, err := MatchFocus(topics, req.FocusAreas)
	if err != nil {
		return nil, err
	}
	matchedTopics.Observe(float64(len(matched)))

	schedule := Schedule(matched, req.WeeksDuration)
	date := g.clock()

	text, err := Render(PlanInput{
		Role:          req.Role,
		Date:          date,
		WeeksDuration: req.WeeksDuration,
		FocusAreas:    req.FocusAreas,
		Schedule:      schedule,
	})
	if err != nil {
		return nil, err
	}

	g.logger.DebugContext(ctx, "study plan rendered",
		slog.String("role", string(req.Role)),
		slog.Int("weeks", req.WeeksDuration),
		slog.Int("topics", len(topics)),
		slog.Int("matched", len(matched)),
	)

	return &Plan{
		Role:          req.Role,
		GeneratedDate: date,
		WeeksDuration: req.WeeksDuration,
		FocusAreas:    req.FocusAreas,
		Schedule:      schedule,
		Text:          text,
	}, nil
}

// Generate builds a plan and overwrites the stored plan document with it.
// Nothing is written when any earlier stage fails.
func (g *Generator) Generate(ctx context.Context, req Request) (*Plan, error) {
	start := time.Now()
	ctx, span := g.tracer.Start(ctx, "studyplan.generate")
	defer span.End()

	plan, err := g.Build(ctx, req)
	if err == nil {
		err = g.store.Write(ctx, g.planPath, plan.Text)
	}

	outcome := "success"
	if err != nil {
		outcome = errors.Type(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	recordGeneration(outcome, time.Since(start))

	if err != nil {
		g.logger.WarnContext(ctx, "study plan generation failed",
			slog.String("error_type", outcome),
			slog.Any("error", err),
		)
		return nil, err
	}

	g.logger.InfoContext(ctx, "study plan generated",
		slog.String("role", string(plan.Role)),
		slog.Int("weeks", plan.WeeksDuration),
		slog.String("path", g.planPath),
	)
	return plan, nil
}
