package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/valyala/bytebufferpool"

	"github.com/clubstats/matchboard/internal/domain/match"
	"github.com/clubstats/matchboard/internal/platform/cache"
	"github.com/clubstats/matchboard/internal/platform/logging"
)

const chatContextKeyPrefix = "chatctx:"

type mergedListProvider interface {
	ListMerged(ctx context.Context, filter MergeFilter) ([]match.Record, error)
}

// ChatContextService renders a team's merged match history as a plain
// text block for LLM prompting, cached per team until invalidated or
// expired.
type ChatContextService struct {
	merged mergedListProvider
	store  *cache.Store
	logger *logging.Logger
}

// NewChatContextService builds the service. store may be nil to disable
// caching, which makes every call rebuild the context.
func NewChatContextService(merged mergedListProvider, store *cache.Store, logger *logging.Logger) *ChatContextService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ChatContextService{merged: merged, store: store, logger: logger}
}

// ContextForTeam returns the rendered context for one team, building it
// on a cache miss. Concurrent misses for the same team collapse into a
// single rebuild.
func (s *ChatContextService) ContextForTeam(ctx context.Context, teamID string) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChatContextService.ContextForTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return "", fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	if s.store == nil {
		return s.build(ctx, teamID)
	}

	value, err := s.store.GetOrLoad(ctx, chatContextKeyPrefix+teamID, func(ctx context.Context) (any, error) {
		return s.build(ctx, teamID)
	})
	if err != nil {
		return "", err
	}
	text, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("unexpected cached value type %T", value)
	}
	return text, nil
}

// Invalidate drops one team's cached context.
func (s *ChatContextService) Invalidate(ctx context.Context, teamID string) {
	if s.store == nil {
		return
	}
	s.store.Invalidate(ctx, chatContextKeyPrefix+strings.TrimSpace(teamID))
}

// InvalidateAll drops every cached chat context.
func (s *ChatContextService) InvalidateAll(ctx context.Context) {
	if s.store == nil {
		return
	}
	s.store.InvalidatePrefix(ctx, chatContextKeyPrefix)
}

func (s *ChatContextService) build(ctx context.Context, teamID string) (string, error) {
	records, err := s.merged.ListMerged(ctx, MergeFilter{TeamID: teamID})
	if err != nil {
		return "", fmt.Errorf("build chat context: %w", err)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if len(records) == 0 {
		_, _ = buf.WriteString("No recorded matches.\n")
		return buf.String(), nil
	}

	_, _ = buf.WriteString("Recent matches, newest first:\n")
	for _, rec := range records {
		_, _ = buf.WriteString("- ")
		_, _ = buf.WriteString(rec.Date)
		_, _ = buf.WriteString(" vs ")
		_, _ = buf.WriteString(rec.Opponent)
		if id := rec.ID.String(); id != "" {
			_, _ = buf.WriteString(" (match ")
			_, _ = buf.WriteString(id)
			_, _ = buf.WriteString(")")
		}
		for _, key := range sortedStatKeys(rec.Stats) {
			_, _ = buf.WriteString(" | ")
			_, _ = buf.WriteString(key)
			_, _ = buf.WriteString(": ")
			_, _ = buf.WriteString(fmt.Sprint(rec.Stats[key]))
		}
		_, _ = buf.WriteString("\n")
	}

	return buf.String(), nil
}

func sortedStatKeys(stats map[string]any) []string {
	if len(stats) == 0 {
		return nil
	}
	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
