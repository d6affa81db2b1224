package generator

import (
	"fmt"
	"strings"
)

// Purpose 标记 Prompt 属于哪个阶段（主要给 Mock 用）。
type Purpose string

const (
	PurposeDiscovery Purpose = "discovery"
	PurposeContent   Purpose = "content"
)

// Prompt 表示发送给 LLM 的消息集合及采样参数。
type Prompt struct {
	Purpose     Purpose
	System      string
	User        string
	History     []Message
	Temperature float64
	MaxTokens   int64
}

// Message 用于少量历史（可选）。
type Message struct {
	Role    string
	Content string
}

var topicExamples = []string{
	"Load Balancer - Round Robin Algorithm",
	"Database Sharding - Horizontal Partitioning",
	"Caching Strategy - Cache-Aside Pattern",
	"Message Queue - Pub/Sub Pattern",
	"Rate Limiting - Token Bucket Algorithm",
	"Consistent Hashing in Distributed Systems",
	"Circuit Breaker Pattern in Microservices",
	"Event Sourcing in Event-Driven Architecture",
}

// BuildDiscoveryPrompt 生成选题提示词，附上最近的主题以避免重复。
func BuildDiscoveryPrompt(recent []string, opts DiscoveryOptions) Prompt {
	covered := "none"
	if len(recent) > 0 {
		covered = strings.Join(recent, ", ")
	}

	var sb strings.Builder
	sb.WriteString("Generate a new, interesting, and granular system design topic that hasn't been covered yet.\n\n")
	sb.WriteString(fmt.Sprintf("Already covered topics (last %d): %s\n\n", opts.RecentWindow, covered))
	sb.WriteString("Generate a specific, granular system design topic. Examples of good granular topics:\n")
	for _, ex := range topicExamples {
		sb.WriteString(fmt.Sprintf("- %q\n", ex))
	}
	sb.WriteString("\nReturn ONLY the topic name (no quotes, no explanation, just the topic title). ")
	sb.WriteString("Make it specific and granular, not too broad.")

	return Prompt{
		Purpose:     PurposeDiscovery,
		User:        sb.String(),
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
}

// BuildDemoPrompt 生成演示页面提示词：完整、自包含的交互式 HTML。
func BuildDemoPrompt(topic string, opts ContentOptions) Prompt {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Create a COMPLETE, INTERACTIVE HTML GAME for explaining: %s\n\n", topic))
	sb.WriteString("Generate a FULL, WORKING HTML file with:\n")
	sb.WriteString("1. GAME-BASED INTERFACE - make it like an educational game\n")
	sb.WriteString("2. CARTOON CHARACTERS - create 2-4 personified components with names, emojis, and personalities\n")
	sb.WriteString("3. START WITH EXAMPLE - begin with a simple story/scenario (restaurant, library, game, etc.)\n")
	sb.WriteString("4. PROGRESSIVE FLOW - story -> explanation -> interactive diagram\n")
	sb.WriteString("5. INTERACTIVE ANIMATIONS - characters move, show emotions, explain concepts\n")
	sb.WriteString("6. CANVAS-BASED VISUALIZATIONS - animated diagrams showing the concept\n")
	sb.WriteString("7. GAME-LIKE PROGRESSION - levels, achievements, interactive elements\n\n")
	sb.WriteString("Requirements:\n")
	sb.WriteString("- Complete HTML file (from DOCTYPE html to closing html tag)\n")
	sb.WriteString("- Embedded CSS and JavaScript\n")
	sb.WriteString("- Canvas-based animations for diagrams\n")
	sb.WriteString("- Interactive elements (buttons, clickable characters, animated flows)\n")
	sb.WriteString("- Responsive design\n")
	sb.WriteString("- Start with a story example, then build to technical explanation\n")
	sb.WriteString("- Characters should speak through speech bubbles\n")
	sb.WriteString(fmt.Sprintf("- Animations should be topic-specific to %s\n\n", topic))
	sb.WriteString("Return ONLY the complete HTML code, starting with DOCTYPE html and ending with closing html tag.\n")
	sb.WriteString("Make sure all CSS and JavaScript are embedded within style and script tags.\n")

	return Prompt{
		Purpose:     PurposeContent,
		User:        sb.String(),
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
}
