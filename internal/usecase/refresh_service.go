package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/clubstats/matchboard/internal/platform/logging"
)

const (
	refreshStatusSuccess = "success"
	refreshStatusFailed  = "failed"

	defaultRefreshWorkers = 4
)

type chatContextRefresher interface {
	Invalidate(ctx context.Context, teamID string)
	ContextForTeam(ctx context.Context, teamID string) (string, error)
}

// RefreshTaskResult reports one team's rebuild.
type RefreshTaskResult struct {
	TeamID     string `json:"team_id"`
	Status     string `json:"status"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

// RefreshResult summarizes a bulk refresh run.
type RefreshResult struct {
	TeamCount    int                 `json:"team_count"`
	SuccessCount int                 `json:"success_count"`
	FailedCount  int                 `json:"failed_count"`
	WorkerCount  int                 `json:"worker_count"`
	Tasks        []RefreshTaskResult `json:"tasks"`
}

// RefreshService rebuilds chat contexts for many teams over a bounded
// worker pool. One team failing never aborts the run; failures land in
// the per-task results instead.
type RefreshService struct {
	contexts   chatContextRefresher
	maxWorkers int
	logger     *logging.Logger
}

func NewRefreshService(contexts chatContextRefresher, maxWorkers int, logger *logging.Logger) *RefreshService {
	if maxWorkers <= 0 {
		maxWorkers = defaultRefreshWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RefreshService{contexts: contexts, maxWorkers: maxWorkers, logger: logger}
}

// RefreshTeams invalidates and rebuilds each listed team's context.
// Duplicate and blank ids are dropped before scheduling.
func (s *RefreshService) RefreshTeams(ctx context.Context, teamIDs []string) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.RefreshTeams")
	defer span.End()

	teams := dedupeTeamIDs(teamIDs)
	if len(teams) == 0 {
		return RefreshResult{}, fmt.Errorf("%w: at least one team id is required", ErrInvalidInput)
	}

	workerCount := s.maxWorkers
	if workerCount > len(teams) {
		workerCount = len(teams)
	}

	workers, err := ants.NewPool(workerCount)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("create refresh pool: %w", err)
	}
	defer workers.Release()

	var mu sync.Mutex
	tasks := make([]RefreshTaskResult, 0, len(teams))
	record := func(task RefreshTaskResult) {
		mu.Lock()
		tasks = append(tasks, task)
		mu.Unlock()
	}

	var wg sync.WaitGroup
	for _, teamID := range teams {
		teamID := teamID
		wg.Add(1)
		submitErr := workers.Submit(func() {
			defer wg.Done()
			record(s.refreshOne(ctx, teamID))
		})
		if submitErr != nil {
			wg.Done()
			record(RefreshTaskResult{
				TeamID:  teamID,
				Status:  refreshStatusFailed,
				Message: submitErr.Error(),
			})
		}
	}
	wg.Wait()

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].TeamID < tasks[j].TeamID
	})

	result := RefreshResult{
		TeamCount:   len(teams),
		WorkerCount: workerCount,
		Tasks:       tasks,
	}
	for _, task := range tasks {
		if task.Status == refreshStatusSuccess {
			result.SuccessCount++
		} else {
			result.FailedCount++
		}
	}

	s.logger.InfoContext(ctx, "context refresh completed",
		"teams", result.TeamCount,
		"succeeded", result.SuccessCount,
		"failed", result.FailedCount,
		"workers", result.WorkerCount,
	)
	return result, nil
}

func (s *RefreshService) refreshOne(ctx context.Context, teamID string) RefreshTaskResult {
	started := time.Now()
	s.contexts.Invalidate(ctx, teamID)
	_, err := s.contexts.ContextForTeam(ctx, teamID)

	task := RefreshTaskResult{
		TeamID:     teamID,
		Status:     refreshStatusSuccess,
		DurationMs: time.Since(started).Milliseconds(),
	}
	if err != nil {
		task.Status = refreshStatusFailed
		task.Message = err.Error()
		s.logger.WarnContext(ctx, "context refresh failed", "team_id", teamID, "error", err)
	}
	return task
}

func dedupeTeamIDs(teamIDs []string) []string {
	seen := make(map[string]struct{}, len(teamIDs))
	out := make([]string, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		teamID = strings.TrimSpace(teamID)
		if teamID == "" {
			continue
		}
		if _, ok := seen[teamID]; ok {
			continue
		}
		seen[teamID] = struct{}{}
		out = append(out, teamID)
	}
	return out
}
