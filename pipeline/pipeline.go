// Package pipeline runs one daily generation: pick a topic, generate its page,
// store it and record the topic as covered.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"system_design_demos/artifact"
	"system_design_demos/generator"
	"system_design_demos/ledger"
)

// Agent is the part of generator.Agent the pipeline needs.
type Agent interface {
	Discover(ctx context.Context, l *ledger.Ledger) generator.Discovery
	Generate(ctx context.Context, topic string) generator.Content
}

// Step names a pipeline stage in progress events.
type Step string

const (
	StepLoad     Step = "load"
	StepDiscover Step = "discover"
	StepGenerate Step = "generate"
	StepWrite    Step = "write"
	StepRecord   Step = "record"
)

// Reporter receives human-facing progress. Begin is called before a stage,
// Done after it with a short outcome.
type Reporter interface {
	Begin(step Step)
	Done(step Step, detail string)
}

// Result summarizes one run.
type Result struct {
	Topic             string
	Path              string
	DiscoveryFallback bool
	ContentFallback   bool
	Attempts          int
	Covered           int
	Duration          time.Duration
}

// Pipeline wires the stages together. Provider failures never fail a run;
// ledger and filesystem errors do.
type Pipeline struct {
	store    ledger.Store
	agent    Agent
	writer   *artifact.Writer
	reporter Reporter
	logger   *slog.Logger
}

type Option func(*Pipeline)

func WithReporter(r Reporter) Option {
	return func(p *Pipeline) { p.reporter = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

func New(store ledger.Store, agent Agent, writer *artifact.Writer, opts ...Option) (*Pipeline, error) {
	if store == nil {
		return nil, errors.New("ledger store is required")
	}
	if agent == nil {
		return nil, errors.New("generator agent is required")
	}
	if writer == nil {
		return nil, errors.New("artifact writer is required")
	}
	p := &Pipeline{store: store, agent: agent, writer: writer}
	for _, opt := range opts {
		opt(p)
	}
	if p.reporter == nil {
		p.reporter = nopReporter{}
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p, nil
}

// ErrTopicCovered is returned when an explicit topic is already in the ledger.
var ErrTopicCovered = errors.New("topic already covered")

// Run performs discovery unless topic is non-empty, in which case the trimmed
// topic is used and must not be covered yet. A cancelled ctx aborts the run
// before anything is written.
func (p *Pipeline) Run(ctx context.Context, topic string) (Result, error) {
	start := time.Now()
	var res Result

	p.reporter.Begin(StepLoad)
	l, err := p.store.Load()
	if err != nil {
		return res, fmt.Errorf("loading ledger: %w", err)
	}
	p.reporter.Done(StepLoad, fmt.Sprintf("%d topics covered so far", l.Len()))

	topic = strings.TrimSpace(topic)
	if topic == "" {
		p.reporter.Begin(StepDiscover)
		d := p.agent.Discover(ctx, l)
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("generation interrupted: %w", err)
		}
		topic = d.Topic
		res.Attempts = d.Attempts
		res.DiscoveryFallback = d.Fallback
		p.reporter.Done(StepDiscover, topic)
	} else if l.Contains(topic) {
		return res, fmt.Errorf("%w: %q", ErrTopicCovered, topic)
	}
	res.Topic = topic

	p.reporter.Begin(StepGenerate)
	content := p.agent.Generate(ctx, topic)
	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("generation interrupted: %w", err)
	}
	res.ContentFallback = content.Fallback
	p.reporter.Done(StepGenerate, fmt.Sprintf("%d bytes", len(content.HTML)))

	p.reporter.Begin(StepWrite)
	path, err := p.writer.Write(topic, content.HTML)
	if err != nil {
		return res, err
	}
	res.Path = path
	p.reporter.Done(StepWrite, path)

	p.reporter.Begin(StepRecord)
	l.Append(topic)
	if err := p.store.Save(l); err != nil {
		return res, fmt.Errorf("saving ledger: %w", err)
	}
	res.Covered = l.Len()
	p.reporter.Done(StepRecord, fmt.Sprintf("topic %q added to covered list", topic))

	res.Duration = time.Since(start)
	p.logger.Info("generation finished",
		"topic", res.Topic,
		"path", res.Path,
		"discovery_fallback", res.DiscoveryFallback,
		"content_fallback", res.ContentFallback,
		"duration", res.Duration)
	return res, nil
}

type nopReporter struct{}

func (nopReporter) Begin(Step)        {}
func (nopReporter) Done(Step, string) {}
