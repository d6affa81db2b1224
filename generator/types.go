package generator

import "errors"

// ErrEmptyResponse is returned when the model answers with nothing usable.
var ErrEmptyResponse = errors.New("model returned empty response")

// DiscoveryOptions 选题参数。
type DiscoveryOptions struct {
	// MaxAttempts caps duplicate/empty answers before falling back.
	MaxAttempts  int
	RecentWindow int
	Temperature  float64
	MaxTokens    int64
}

// ContentOptions 页面生成参数。
type ContentOptions struct {
	Temperature float64
	MaxTokens   int64
}

// Discovery is the outcome of one Discover call.
type Discovery struct {
	Topic    string
	Attempts int
	// Fallback is set when Topic is the dated placeholder rather than a model answer.
	Fallback bool
}

// Content is the outcome of one Generate call.
type Content struct {
	HTML     string
	Fallback bool
}
