package progress

import (
	"sort"

	"github.com/alexanderramin/coursepulse/internal/domain"
)

// SourceBatch is the reduced output of one submission source.
type SourceBatch struct {
	Source  domain.SubmissionSource
	Records []domain.SubmissionRecord
}

// ReduceAssignIndividual collapses per-grade rows into one record per
// (user, activity); the record is graded if any grade row for the latest
// attempt was graded.
func ReduceAssignIndividual(rows []domain.SubmissionRow) []domain.SubmissionRecord {
	return reduceAny(rows, domain.SourceAssignIndividual)
}

// ReduceAssignTeam evaluates gradedness once per (group, activity) and then
// broadcasts the result to every member row of that group.
func ReduceAssignTeam(rows []domain.SubmissionRow) []domain.SubmissionRecord {
	type teamKey struct{ group, activity int64 }
	graded := make(map[teamKey]bool)
	for _, r := range rows {
		k := teamKey{r.GroupID, r.ActivityID}
		graded[k] = graded[k] || r.Graded
	}

	seen := make(map[domain.SubmissionKey]bool)
	var out []domain.SubmissionRecord
	for _, r := range rows {
		key := domain.SubmissionKey{UserID: r.UserID, ActivityID: r.ActivityID}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, domain.SubmissionRecord{
			UserID:     r.UserID,
			ActivityID: r.ActivityID,
			Graded:     graded[teamKey{r.GroupID, r.ActivityID}],
			Source:     domain.SourceAssignTeam,
		})
	}
	return out
}

// ReduceWorkshop marks every author with a submission as graded; workshop
// grading is tracked elsewhere.
func ReduceWorkshop(rows []domain.SubmissionRow) []domain.SubmissionRecord {
	seen := make(map[domain.SubmissionKey]bool)
	var out []domain.SubmissionRecord
	for _, r := range rows {
		key := domain.SubmissionKey{UserID: r.UserID, ActivityID: r.ActivityID}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, domain.SubmissionRecord{
			UserID:     r.UserID,
			ActivityID: r.ActivityID,
			Graded:     true,
			Source:     domain.SourceWorkshop,
		})
	}
	return out
}

// ReduceQuizSelectedAttempt handles quizzes graded on the first or last
// attempt: only the minimum or maximum finished attempt is considered.
// Rows for other grading methods are ignored.
func ReduceQuizSelectedAttempt(rows []domain.SubmissionRow) []domain.SubmissionRecord {
	selected := make(map[domain.SubmissionKey]domain.SubmissionRow)
	var order []domain.SubmissionKey
	for _, r := range rows {
		if r.GradeMethod != domain.GradeFirstAttempt && r.GradeMethod != domain.GradeLastAttempt {
			continue
		}
		key := domain.SubmissionKey{UserID: r.UserID, ActivityID: r.ActivityID}
		cur, ok := selected[key]
		if !ok {
			order = append(order, key)
			selected[key] = r
			continue
		}
		if r.GradeMethod == domain.GradeFirstAttempt && r.Attempt < cur.Attempt {
			selected[key] = r
		}
		if r.GradeMethod == domain.GradeLastAttempt && r.Attempt > cur.Attempt {
			selected[key] = r
		}
	}

	out := make([]domain.SubmissionRecord, 0, len(order))
	for _, key := range order {
		r := selected[key]
		out = append(out, domain.SubmissionRecord{
			UserID:     r.UserID,
			ActivityID: r.ActivityID,
			Graded:     r.Graded,
			AttemptID:  r.AttemptID,
			Source:     domain.SourceQuizSelectedAttempt,
		})
	}
	return out
}

// ReduceQuizAllAttempts handles quizzes graded on the highest or average
// attempt. The activity is graded only if every finished attempt is graded.
func ReduceQuizAllAttempts(rows []domain.SubmissionRow) []domain.SubmissionRecord {
	type acc struct {
		graded    bool
		attempt   int
		attemptID int64
	}
	accs := make(map[domain.SubmissionKey]*acc)
	var order []domain.SubmissionKey
	for _, r := range rows {
		if r.GradeMethod != domain.GradeHighest && r.GradeMethod != domain.GradeAverage {
			continue
		}
		key := domain.SubmissionKey{UserID: r.UserID, ActivityID: r.ActivityID}
		a, ok := accs[key]
		if !ok {
			a = &acc{graded: true}
			accs[key] = a
			order = append(order, key)
		}
		a.graded = a.graded && r.Graded
		if r.Attempt >= a.attempt {
			a.attempt = r.Attempt
			a.attemptID = r.AttemptID
		}
	}

	out := make([]domain.SubmissionRecord, 0, len(order))
	for _, key := range order {
		a := accs[key]
		out = append(out, domain.SubmissionRecord{
			UserID:     key.UserID,
			ActivityID: key.ActivityID,
			Graded:     a.graded,
			AttemptID:  a.attemptID,
			Source:     domain.SourceQuizAllAttempts,
		})
	}
	return out
}

// MergeSubmissions folds source batches into a single set. Batches are
// applied in source order regardless of the order they are passed in. When
// two records share a key the graded one wins; between equals the earlier
// source is kept.
func MergeSubmissions(batches ...SourceBatch) domain.SubmissionSet {
	ordered := make([]SourceBatch, len(batches))
	copy(ordered, batches)
	sortBatches(ordered)

	set := make(domain.SubmissionSet)
	for _, b := range ordered {
		for _, rec := range b.Records {
			key := rec.Key()
			existing, ok := set[key]
			if ok && (existing.Graded || !rec.Graded) {
				continue
			}
			set[key] = rec
		}
	}
	return set
}

func sortBatches(batches []SourceBatch) {
	sort.SliceStable(batches, func(i, j int) bool {
		return batches[i].Source < batches[j].Source
	})
}

func reduceAny(rows []domain.SubmissionRow, source domain.SubmissionSource) []domain.SubmissionRecord {
	idx := make(map[domain.SubmissionKey]int)
	var out []domain.SubmissionRecord
	for _, r := range rows {
		key := domain.SubmissionKey{UserID: r.UserID, ActivityID: r.ActivityID}
		if i, ok := idx[key]; ok {
			out[i].Graded = out[i].Graded || r.Graded
			continue
		}
		idx[key] = len(out)
		out = append(out, domain.SubmissionRecord{
			UserID:     r.UserID,
			ActivityID: r.ActivityID,
			Graded:     r.Graded,
			Source:     source,
		})
	}
	return out
}
