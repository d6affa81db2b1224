package generator

import (
	"context"
	"html"
	"strings"
	"sync"
)

// MockReply 是一条预设回复，Err 优先于 Text。
type MockReply struct {
	Text string
	Err  error
}

// MockLLM 按顺序返回预设回复并记录每次的 Prompt。回复用完后返回固定的
// 主题或页面，便于本地调试，不调用外部模型。
type MockLLM struct {
	mu      sync.Mutex
	Replies []MockReply
	Prompts []Prompt
}

func (m *MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Prompts = append(m.Prompts, prompt)
	if len(m.Replies) > 0 {
		r := m.Replies[0]
		m.Replies = m.Replies[1:]
		return r.Text, r.Err
	}

	if prompt.Purpose == PurposeDiscovery {
		return "Caching Strategy - Cache-Aside Pattern", nil
	}
	var sb strings.Builder
	sb.WriteString("Here is your demo:\n\n```html\n")
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head><title>Mock demo</title></head>\n<body>\n<pre>")
	sb.WriteString(html.EscapeString(prompt.User))
	sb.WriteString("</pre>\n</body>\n</html>\n```\n")
	return sb.String(), nil
}

// Calls 返回收到的 Prompt 数量。
func (m *MockLLM) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}
