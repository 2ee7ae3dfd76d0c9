package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/alexanderramin/coursepulse/internal/progress"
	"github.com/alexanderramin/coursepulse/internal/repository"
	"golang.org/x/sync/errgroup"
)

// SubmissionAggregator queries the five submission sources concurrently and
// merges them into one set.
type SubmissionAggregator struct {
	sources repository.SubmissionSourceRepo
}

func NewSubmissionAggregator(sources repository.SubmissionSourceRepo) *SubmissionAggregator {
	return &SubmissionAggregator{sources: sources}
}

type sourceQuery struct {
	source domain.SubmissionSource
	fetch  func(ctx context.Context, courseID, userID int64) ([]domain.SubmissionRow, error)
	reduce func(rows []domain.SubmissionRow) []domain.SubmissionRecord
}

func (a *SubmissionAggregator) queries() []sourceQuery {
	return []sourceQuery{
		{domain.SourceAssignIndividual, a.sources.AssignIndividualRows, progress.ReduceAssignIndividual},
		{domain.SourceAssignTeam, a.sources.AssignTeamRows, progress.ReduceAssignTeam},
		{domain.SourceWorkshop, a.sources.WorkshopRows, progress.ReduceWorkshop},
		{domain.SourceQuizSelectedAttempt, a.sources.QuizSelectedAttemptRows, progress.ReduceQuizSelectedAttempt},
		{domain.SourceQuizAllAttempts, a.sources.QuizAllAttemptRows, progress.ReduceQuizAllAttempts},
	}
}

// Aggregate returns the submitted/graded records of one course. userID 0
// covers every user. The first failing source cancels the others.
func (a *SubmissionAggregator) Aggregate(ctx context.Context, courseID, userID int64) (domain.SubmissionSet, error) {
	queries := a.queries()
	batches := make([]progress.SourceBatch, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		g.Go(func() error {
			rows, err := q.fetch(gctx, courseID, userID)
			if err != nil {
				return fmt.Errorf("querying %s submissions: %w", q.source, err)
			}
			batches[i] = progress.SourceBatch{Source: q.source, Records: q.reduce(rows)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return progress.MergeSubmissions(batches...), nil
}
