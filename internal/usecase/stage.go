package usecase

import (
	"sort"
	"strings"
)

// Stage is the position of one record inside an enrichment run.
type Stage string

const (
	StagePending          Stage = "pending"
	StageIdentifiersKnown Stage = "identifiers_known"
	StageFixtureFound     Stage = "fixture_found"
	StageStatsExtracted   Stage = "stats_extracted"
	StageMerged           Stage = "merged"

	StageSkippedNoIdentifiers Stage = "skipped_no_identifiers"
	StageSkippedNoFixture     Stage = "skipped_no_fixture"

	// team id backfill
	StageSkippedNoClub       Stage = "skipped_no_club"
	StageSkippedAlreadyKnown Stage = "skipped_already_known"
	StageSkippedTeamNotFound Stage = "skipped_team_not_found"
)

func (s Stage) Terminal() bool {
	return s == StageMerged || s.Skipped()
}

func (s Stage) Skipped() bool {
	return strings.HasPrefix(string(s), "skipped_")
}

// RunSummary tallies where every record of a run ended up.
type RunSummary struct {
	Job     string
	Total   int
	ByStage map[Stage]int
}

func newRunSummary(job string) RunSummary {
	return RunSummary{Job: job, ByStage: make(map[Stage]int)}
}

func (s *RunSummary) record(stage Stage) {
	s.Total++
	s.ByStage[stage]++
}

func (s RunSummary) Count(stage Stage) int {
	return s.ByStage[stage]
}

func (s RunSummary) Skipped() int {
	total := 0
	for stage, n := range s.ByStage {
		if stage.Skipped() {
			total += n
		}
	}
	return total
}

// LogArgs flattens the summary into logger key/value pairs in a stable order.
func (s RunSummary) LogArgs() []any {
	stages := make([]string, 0, len(s.ByStage))
	for stage := range s.ByStage {
		stages = append(stages, string(stage))
	}
	sort.Strings(stages)

	args := []any{"job", s.Job, "total", s.Total}
	for _, stage := range stages {
		args = append(args, stage, s.ByStage[Stage(stage)])
	}
	return args
}
