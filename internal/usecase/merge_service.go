package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/sourcegraph/conc/pool"

	"github.com/clubstats/matchboard/internal/domain/match"
	"github.com/clubstats/matchboard/internal/domain/sheet"
	"github.com/clubstats/matchboard/internal/platform/logging"
	"github.com/clubstats/matchboard/internal/platform/namematch"
)

// MergeFilter narrows the merged listing. Dates are inclusive YYYY-MM-DD
// bounds; an empty filter returns everything.
type MergeFilter struct {
	TeamID    string   `validate:"omitempty,max=64"`
	TeamIDs   []string `validate:"omitempty,dive,required,max=64"`
	StartDate string   `validate:"omitempty,datetime=2006-01-02"`
	EndDate   string   `validate:"omitempty,datetime=2006-01-02"`
}

func (f MergeFilter) toDomain() match.Filter {
	return match.Filter{
		TeamID:    f.TeamID,
		TeamIDs:   f.TeamIDs,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
	}
}

// MergedMatchService reconciles relational match rows with spreadsheet
// rows into one deduplicated, date-descending listing. Rows from the two
// sources describing the same fixture are paired by calendar date plus
// opponent-name similarity and collapsed into a single record.
type MergedMatchService struct {
	matches    match.Store
	sheets     sheet.Source
	sheetRange string
	threshold  float64
	validate   *validator.Validate
	logger     *logging.Logger
}

// NewMergedMatchService builds the service. sheets may be nil, in which
// case only relational rows are served. A threshold outside (0, 1]
// falls back to namematch.DefaultThreshold.
func NewMergedMatchService(
	matches match.Store,
	sheets sheet.Source,
	sheetRange string,
	threshold float64,
	logger *logging.Logger,
) *MergedMatchService {
	if threshold <= 0 || threshold > 1 {
		threshold = namematch.DefaultThreshold
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &MergedMatchService{
		matches:    matches,
		sheets:     sheets,
		sheetRange: sheetRange,
		threshold:  threshold,
		validate:   validator.New(),
		logger:     logger,
	}
}

// ListMerged fetches both sources concurrently and merges them. A
// relational fetch failure fails the call; a spreadsheet fetch failure
// degrades to relational rows only.
func (s *MergedMatchService) ListMerged(ctx context.Context, filter MergeFilter) ([]match.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MergedMatchService.ListMerged")
	defer span.End()

	if err := s.validate.Struct(filter); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if filter.StartDate != "" && filter.EndDate != "" && filter.EndDate < filter.StartDate {
		return nil, fmt.Errorf("%w: end date precedes start date", ErrInvalidInput)
	}

	domainFilter := filter.toDomain()

	var relational []match.Record
	var tabular []sheetCandidate

	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		rows, err := s.matches.ListByFilter(ctx, domainFilter)
		if err != nil {
			return fmt.Errorf("list relational matches: %w", err)
		}
		relational = rows
		return nil
	})
	p.Go(func(ctx context.Context) error {
		tabular = s.fetchSheetCandidates(ctx, domainFilter)
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return s.merge(relational, tabular), nil
}

// sheetCandidate is a spreadsheet record awaiting pairing. consumed
// flips once a relational row claims it, so no tabular row is merged
// into more than one relational row.
type sheetCandidate struct {
	record   match.Record
	consumed bool
}

func (s *MergedMatchService) fetchSheetCandidates(ctx context.Context, filter match.Filter) []sheetCandidate {
	if s.sheets == nil {
		return nil
	}

	rows, err := s.sheets.FetchRows(ctx, s.sheetRange)
	if err != nil {
		s.logger.WarnContext(ctx, "spreadsheet fetch failed, serving relational rows only",
			"range", s.sheetRange, "error", err)
		return nil
	}

	out := make([]sheetCandidate, 0, len(rows))
	for _, row := range rows {
		rec, ok := sheetRowToRecord(row)
		if !ok {
			continue
		}
		if !filter.InDateRange(rec.Date) {
			continue
		}
		out = append(out, sheetCandidate{record: rec})
	}
	return out
}

// sheetRowToRecord maps one spreadsheet row onto the domain record.
// Rows without a usable date or opponent are skipped.
func sheetRowToRecord(row sheet.Row) (match.Record, bool) {
	rawDate, ok := row.RawDate()
	if !ok {
		return match.Record{}, false
	}
	date := match.NormalizeDate(rawDate)
	if date == "" {
		return match.Record{}, false
	}
	opponent, ok := row.Opponent()
	if !ok {
		return match.Record{}, false
	}

	rec := match.Record{
		Date:     date,
		Opponent: opponent,
		Stats:    row.Stats(),
		Origin:   match.OriginSheet,
	}
	if code, ok := row.MatchID(); ok {
		rec.ID = match.CodeID(code)
	}
	return rec, true
}

// merge pairs each relational record with at most one tabular record
// sharing its date, preferring the highest opponent-name similarity at
// or above the threshold. Relational stats win key collisions and the
// relational identifier is kept. Unclaimed tabular records are appended
// as standalone rows.
func (s *MergedMatchService) merge(relational []match.Record, tabular []sheetCandidate) []match.Record {
	out := make([]match.Record, 0, len(relational)+len(tabular))

	for _, rel := range relational {
		merged := rel
		if idx := s.bestCounterpart(rel, tabular); idx >= 0 {
			tabular[idx].consumed = true
			merged.Stats = match.MergeStats(rel.Stats, tabular[idx].record.Stats)
			merged.Origin = match.OriginBoth
		}
		out = append(out, merged)
	}

	for _, candidate := range tabular {
		if candidate.consumed {
			continue
		}
		out = append(out, candidate.record)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// bestCounterpart scans unconsumed same-date candidates and returns the
// index of the most similar opponent at or above the threshold, or -1.
// Ties keep the earliest candidate.
func (s *MergedMatchService) bestCounterpart(rel match.Record, candidates []sheetCandidate) int {
	bestIdx := -1
	bestScore := 0.0
	for i := range candidates {
		if candidates[i].consumed || candidates[i].record.Date != rel.Date {
			continue
		}
		score := namematch.Similarity(rel.Opponent, candidates[i].record.Opponent)
		if score < s.threshold {
			continue
		}
		if score > bestScore {
			bestIdx = i
			bestScore = score
		}
	}
	return bestIdx
}
