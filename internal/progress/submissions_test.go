package progress

import (
	"testing"

	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduceAssignIndividual_AnyGradedRowMarksGraded(t *testing.T) {
	rows := []domain.SubmissionRow{
		{UserID: 5, ActivityID: 10, Graded: false},
		{UserID: 5, ActivityID: 10, Graded: true},
		{UserID: 6, ActivityID: 10, Graded: false},
	}

	got := ReduceAssignIndividual(rows)

	require.Len(t, got, 2)
	assert.True(t, got[0].Graded)
	assert.False(t, got[1].Graded)
	assert.Equal(t, domain.SourceAssignIndividual, got[0].Source)
}

func TestReduceAssignTeam_BroadcastsToMembers(t *testing.T) {
	rows := []domain.SubmissionRow{
		{UserID: 1, ActivityID: 10, GroupID: 7, Graded: false},
		{UserID: 2, ActivityID: 10, GroupID: 7, Graded: true},
		{UserID: 3, ActivityID: 10, GroupID: 8, Graded: false},
	}

	got := ReduceAssignTeam(rows)

	require.Len(t, got, 3)
	assert.True(t, got[0].Graded, "member 1 shares the team's graded state")
	assert.True(t, got[1].Graded)
	assert.False(t, got[2].Graded, "other team is still ungraded")
}

func TestReduceWorkshop_AlwaysGraded(t *testing.T) {
	got := ReduceWorkshop([]domain.SubmissionRow{
		{UserID: 1, ActivityID: 30},
		{UserID: 1, ActivityID: 30},
	})

	require.Len(t, got, 1)
	assert.True(t, got[0].Graded)
}

func TestReduceQuizSelectedAttempt_FirstAttempt(t *testing.T) {
	rows := []domain.SubmissionRow{
		{UserID: 1, ActivityID: 40, AttemptID: 902, Attempt: 2, GradeMethod: domain.GradeFirstAttempt, Graded: true},
		{UserID: 1, ActivityID: 40, AttemptID: 901, Attempt: 1, GradeMethod: domain.GradeFirstAttempt, Graded: false},
	}

	got := ReduceQuizSelectedAttempt(rows)

	require.Len(t, got, 1)
	assert.False(t, got[0].Graded, "only the first attempt counts")
	assert.Equal(t, int64(901), got[0].AttemptID)
}

func TestReduceQuizSelectedAttempt_LastAttempt(t *testing.T) {
	rows := []domain.SubmissionRow{
		{UserID: 1, ActivityID: 40, AttemptID: 901, Attempt: 1, GradeMethod: domain.GradeLastAttempt, Graded: false},
		{UserID: 1, ActivityID: 40, AttemptID: 902, Attempt: 2, GradeMethod: domain.GradeLastAttempt, Graded: true},
	}

	got := ReduceQuizSelectedAttempt(rows)

	require.Len(t, got, 1)
	assert.True(t, got[0].Graded)
	assert.Equal(t, int64(902), got[0].AttemptID)
}

func TestReduceQuizSelectedAttempt_IgnoresOtherMethods(t *testing.T) {
	got := ReduceQuizSelectedAttempt([]domain.SubmissionRow{
		{UserID: 1, ActivityID: 40, Attempt: 1, GradeMethod: domain.GradeHighest, Graded: true},
	})

	assert.Empty(t, got)
}

func TestReduceQuizAllAttempts_Conjunctive(t *testing.T) {
	tests := []struct {
		name   string
		graded []bool
		want   bool
	}{
		{"graded then ungraded", []bool{true, false}, false},
		{"both graded", []bool{true, true}, true},
		{"single ungraded", []bool{false}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rows []domain.SubmissionRow
			for i, g := range tt.graded {
				rows = append(rows, domain.SubmissionRow{
					UserID: 1, ActivityID: 50, AttemptID: int64(100 + i), Attempt: i + 1,
					GradeMethod: domain.GradeHighest, Graded: g,
				})
			}

			got := ReduceQuizAllAttempts(rows)

			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Graded)
			assert.Equal(t, int64(100+len(tt.graded)-1), got[0].AttemptID, "latest attempt is reported")
		})
	}
}

func TestMergeSubmissions_GradedWinsCollision(t *testing.T) {
	individual := SourceBatch{Source: domain.SourceAssignIndividual, Records: []domain.SubmissionRecord{
		{UserID: 1, ActivityID: 10, Graded: false, Source: domain.SourceAssignIndividual},
	}}
	team := SourceBatch{Source: domain.SourceAssignTeam, Records: []domain.SubmissionRecord{
		{UserID: 1, ActivityID: 10, Graded: true, Source: domain.SourceAssignTeam},
	}}

	set := MergeSubmissions(individual, team)

	rec, ok := set.Lookup(1, 10)
	require.True(t, ok)
	assert.True(t, rec.Graded)
}

func TestMergeSubmissions_GradedNotOverwrittenByUngraded(t *testing.T) {
	individual := SourceBatch{Source: domain.SourceAssignIndividual, Records: []domain.SubmissionRecord{
		{UserID: 1, ActivityID: 10, Graded: true, Source: domain.SourceAssignIndividual},
	}}
	team := SourceBatch{Source: domain.SourceAssignTeam, Records: []domain.SubmissionRecord{
		{UserID: 1, ActivityID: 10, Graded: false, Source: domain.SourceAssignTeam},
	}}

	set := MergeSubmissions(team, individual)

	rec, _ := set.Lookup(1, 10)
	assert.True(t, rec.Graded)
	assert.Equal(t, domain.SourceAssignIndividual, rec.Source)
}

func TestMergeSubmissions_IndependentOfBatchOrder(t *testing.T) {
	a := SourceBatch{Source: domain.SourceAssignIndividual, Records: []domain.SubmissionRecord{
		{UserID: 2, ActivityID: 10, Source: domain.SourceAssignIndividual},
		{UserID: 1, ActivityID: 10, Source: domain.SourceAssignIndividual},
	}}
	b := SourceBatch{Source: domain.SourceAssignTeam, Records: []domain.SubmissionRecord{
		{UserID: 1, ActivityID: 10, Source: domain.SourceAssignTeam},
	}}
	c := SourceBatch{Source: domain.SourceWorkshop, Records: []domain.SubmissionRecord{
		{UserID: 1, ActivityID: 30, Graded: true, Source: domain.SourceWorkshop},
	}}

	first := MergeSubmissions(a, b, c)
	second := MergeSubmissions(c, b, a)

	assert.Equal(t, first, second)
	assert.Equal(t, domain.SourceAssignIndividual, first[domain.SubmissionKey{UserID: 1, ActivityID: 10}].Source)
	assert.Equal(t, []domain.SubmissionKey{
		{UserID: 1, ActivityID: 10},
		{UserID: 1, ActivityID: 30},
		{UserID: 2, ActivityID: 10},
	}, first.Keys())
}
