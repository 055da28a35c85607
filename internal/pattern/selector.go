package pattern

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"backforge/internal/llm"
)

// Selector asks the model to pick the best pattern for a free-text request.
// Used in pattern mode when the caller has no planned step telling it which
// pattern applies.
type Selector struct {
	llm    llm.Client
	store  *Store
	logger *zap.Logger
}

// NewSelector creates a pattern selector.
func NewSelector(client llm.Client, store *Store, logger *zap.Logger) *Selector {
	return &Selector{llm: client, store: store, logger: logger}
}

const selectorSystemPrompt = `You select code patterns. Given a user request and a list of available pattern keys, respond in exactly this format:

ANALYSIS: <one sentence on what the request needs>
SUGGESTED_PATTERN: <one key copied verbatim from the list, or NONE>

Do not output anything else.`

// Select returns the pattern key best matching the request. ok=false means
// no usable pattern was found and the caller should generate without one.
func (s *Selector) Select(ctx context.Context, request string) (string, bool) {
	keys := s.store.List()
	if len(keys) == 0 {
		return "", false
	}

	prompt := fmt.Sprintf("Request: %s\n\nAvailable patterns:\n%s",
		request, strings.Join(keys, "\n"))

	response, err := s.llm.CompleteWithSystem(ctx, selectorSystemPrompt, prompt)
	if err != nil {
		s.logger.Warn("pattern selection call failed", zap.Error(err))
		return "", false
	}

	suggested := parseSuggestedPattern(response)
	if suggested == "" || strings.EqualFold(suggested, "NONE") {
		s.logger.Debug("model suggested no pattern", zap.String("request", request))
		return "", false
	}

	if _, ok := s.store.Load(suggested); ok {
		return suggested, true
	}

	// Model may hallucinate the leaf name; salvage a sibling from the same
	// category before giving up.
	if sibling := s.siblingFallback(suggested, keys); sibling != "" {
		s.logger.Info("suggested pattern missing, using category sibling",
			zap.String("suggested", suggested),
			zap.String("sibling", sibling))
		return sibling, true
	}

	s.logger.Warn("suggested pattern not in store", zap.String("suggested", suggested))
	return "", false
}

func parseSuggestedPattern(response string) string {
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "SUGGESTED_PATTERN:"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

func (s *Selector) siblingFallback(suggested string, keys []string) string {
	idx := strings.LastIndex(suggested, "/")
	if idx < 0 {
		return ""
	}
	category := suggested[:idx+1]
	for _, key := range keys {
		if strings.HasPrefix(key, category) {
			return key
		}
	}
	return ""
}
