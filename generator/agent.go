// Package generator asks an LLM for new system design topics and for the
// interactive HTML page explaining each of them.
package generator

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"time"

	"system_design_demos/ledger"
)

const fallbackTopicLabel = "System Design Topic"

// Options 配置 Agent，零值使用下面的默认值。
type Options struct {
	Discovery   DiscoveryOptions
	Content     ContentOptions
	CallTimeout time.Duration
	Logger      *slog.Logger
	Now         func() time.Time
}

// Agent 负责选题和生成演示页面。两个操作都不返回 error：
// 模型调用失败时记录日志并使用兜底结果。
type Agent struct {
	llm    LLMClient
	opts   Options
	logger *slog.Logger
	now    func() time.Time
}

func NewAgent(llm LLMClient, opts Options) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if opts.Discovery.MaxAttempts <= 0 {
		opts.Discovery.MaxAttempts = 5
	}
	if opts.Discovery.RecentWindow <= 0 {
		opts.Discovery.RecentWindow = 10
	}
	if opts.Discovery.MaxTokens <= 0 {
		opts.Discovery.MaxTokens = 100
	}
	if opts.Content.MaxTokens <= 0 {
		opts.Content.MaxTokens = 12000
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = 120 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Agent{llm: llm, opts: opts, logger: logger, now: now}, nil
}

// Discover asks for a topic not yet in l. Duplicate or empty answers are
// retried up to MaxAttempts times; a provider error or an exhausted budget
// yields the dated fallback topic.
func (a *Agent) Discover(ctx context.Context, l *ledger.Ledger) Discovery {
	prompt := BuildDiscoveryPrompt(l.Recent(a.opts.Discovery.RecentWindow), a.opts.Discovery)

	for attempt := 1; attempt <= a.opts.Discovery.MaxAttempts; attempt++ {
		raw, err := a.complete(ctx, prompt)
		if err != nil {
			a.logger.Warn("topic discovery failed", "attempt", attempt, "error", err)
			return Discovery{Topic: a.fallbackTopic(l), Attempts: attempt, Fallback: true}
		}

		topic := CleanTopic(raw)
		switch {
		case topic == "":
			a.logger.Info("empty topic, discovering another", "attempt", attempt)
		case l.Contains(topic):
			a.logger.Info("topic already covered, discovering another", "topic", topic, "attempt", attempt)
		default:
			return Discovery{Topic: topic, Attempts: attempt}
		}
	}

	a.logger.Warn("discovery attempts exhausted", "max_attempts", a.opts.Discovery.MaxAttempts)
	return Discovery{Topic: a.fallbackTopic(l), Attempts: a.opts.Discovery.MaxAttempts, Fallback: true}
}

// Generate 请求完整页面并从回复中提取 HTML。
func (a *Agent) Generate(ctx context.Context, topic string) Content {
	raw, err := a.complete(ctx, BuildDemoPrompt(topic, a.opts.Content))
	if err == nil {
		doc := ExtractHTML(raw)
		if doc != "" {
			if !hasBody(doc) {
				a.logger.Warn("generated page has an empty body", "topic", topic)
			}
			return Content{HTML: doc}
		}
		err = ErrEmptyResponse
	}
	a.logger.Warn("page generation failed", "topic", topic, "error", err)
	return Content{HTML: FallbackHTML(topic), Fallback: true}
}

func (a *Agent) complete(ctx context.Context, prompt Prompt) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.opts.CallTimeout)
	defer cancel()
	return a.llm.Complete(ctx, prompt)
}

// fallbackTopic is "System Design Topic - YYYY-MM-DD", with the time appended
// when that label is already in the ledger.
func (a *Agent) fallbackTopic(l *ledger.Ledger) string {
	now := a.now()
	topic := fmt.Sprintf("%s - %s", fallbackTopicLabel, now.Format("2006-01-02"))
	if l.Contains(topic) {
		topic = fmt.Sprintf("%s %s", topic, now.Format("15:04:05"))
	}
	return topic
}

// FallbackHTML is the minimal page stored when generation fails.
func FallbackHTML(topic string) string {
	t := html.EscapeString(topic)
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body><h1>%s</h1><p>Error generating content. Please try again.</p></body>
</html>`, t, t)
}
