package reconcile

import (
	"fmt"
	"testing"

	"milestone-dashboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqIDs: предсказуемые id для проверок.
func seqIDs(prefix string) IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func tm(id, name string) models.Milestone {
	return models.Milestone{ID: id, Name: name}
}

func names(milestones []models.Milestone) []string {
	out := make([]string, 0, len(milestones))
	for _, m := range milestones {
		out = append(out, m.Name)
	}
	return out
}

func TestDiffTemplates(t *testing.T) {
	oldT := []models.Milestone{tm("1", "Plan"), tm("2", "Build"), tm("3", "Test")}
	newT := []models.Milestone{tm("1", "Planning"), tm("3", "Test"), tm("4", "Ship")}

	d := DiffTemplates(oldT, newT)
	assert.Equal(t, []Rename{{From: "Plan", To: "Planning"}}, d.Renamed)
	assert.Equal(t, []string{"Ship"}, names(d.Added))
	assert.Equal(t, []string{"Build"}, names(d.Removed))
	assert.False(t, d.Empty())
}

func TestDiffTemplates_ReorderIsEmpty(t *testing.T) {
	oldT := []models.Milestone{tm("1", "Plan"), tm("2", "Build")}
	newT := []models.Milestone{tm("2", "Build"), tm("1", "Plan")}

	assert.True(t, DiffTemplates(oldT, newT).Empty())
}

func TestDiffTemplates_WithoutIDsFallsBackToNames(t *testing.T) {
	oldT := []models.Milestone{{Name: "Plan"}}
	newT := []models.Milestone{{Name: "Planning"}}

	d := DiffTemplates(oldT, newT)
	assert.Empty(t, d.Renamed)
	assert.Equal(t, []string{"Planning"}, names(d.Added))
	assert.Equal(t, []string{"Plan"}, names(d.Removed))
}

func TestApplyTemplateDiff_RenamePreservesState(t *testing.T) {
	oldT := []models.Milestone{tm("1", "Plan"), tm("2", "Build")}
	newT := []models.Milestone{tm("1", "Planning"), tm("2", "Build")}
	a := models.UserProject{ID: "a", Milestones: []models.Milestone{{ID: "x", Name: "Plan", Completed: true}}}

	res := ApplyTemplateDiff(oldT, newT, []models.UserProject{a}, seqIDs("new"))
	require.Len(t, res.Projects, 1)
	assert.Equal(t, []string{"a"}, res.Changed)
	assert.Equal(t, []models.Milestone{{ID: "x", Name: "Planning", Completed: true}}, []models.Milestone(res.Projects[0].Milestones))

	// вход не изменился
	assert.Equal(t, "Plan", a.Milestones[0].Name)
}

func TestApplyTemplateDiff_RemoveDeletesRegardlessOfState(t *testing.T) {
	oldT := []models.Milestone{tm("1", "Plan"), tm("2", "Build")}
	newT := []models.Milestone{tm("1", "Plan")}
	projects := []models.UserProject{
		{ID: "a", Milestones: []models.Milestone{{ID: "p", Name: "Plan"}, {ID: "b", Name: "Build", Completed: true}}},
		{ID: "b", Milestones: []models.Milestone{{ID: "b1", Name: "Build"}, {ID: "b2", Name: "Build"}}},
		{ID: "c", Milestones: []models.Milestone{{ID: "p", Name: "Plan"}}},
	}

	res := ApplyTemplateDiff(oldT, newT, projects, seqIDs("new"))
	assert.Equal(t, []string{"Plan"}, names(res.Projects[0].Milestones))
	assert.Empty(t, res.Projects[1].Milestones)
	assert.Equal(t, []string{"Plan"}, names(res.Projects[2].Milestones))
	assert.Equal(t, []string{"a", "b"}, res.Changed)
}

func TestApplyTemplateDiff_AddAppendsIncomplete(t *testing.T) {
	oldT := []models.Milestone{tm("1", "Plan")}
	newT := []models.Milestone{tm("1", "Plan"), tm("2", "Build"), tm("3", "Ship")}
	projects := []models.UserProject{
		{ID: "a", Milestones: []models.Milestone{{ID: "p", Name: "Plan", Completed: true}}},
		{ID: "b", Milestones: []models.Milestone{{ID: "s", Name: "Ship", Completed: true}}},
	}

	res := ApplyTemplateDiff(oldT, newT, projects, seqIDs("new"))
	assert.Equal(t, []models.Milestone{
		{ID: "p", Name: "Plan", Completed: true},
		{ID: "new-1", Name: "Build"},
		{ID: "new-2", Name: "Ship"},
	}, []models.Milestone(res.Projects[0].Milestones))
	// у "Ship" выполнение сохраняется, дописывается только "Build"
	assert.Equal(t, []models.Milestone{
		{ID: "s", Name: "Ship", Completed: true},
		{ID: "new-3", Name: "Build"},
	}, []models.Milestone(res.Projects[1].Milestones))
}

func TestApplyTemplateDiff_Idempotent(t *testing.T) {
	oldT := []models.Milestone{tm("1", "Plan"), tm("2", "Build"), tm("3", "Test")}
	newT := []models.Milestone{tm("1", "Planning"), tm("3", "Test"), tm("4", "Ship"), tm("5", "Retro")}
	projects := []models.UserProject{
		{ID: "a", Milestones: []models.Milestone{{ID: "p", Name: "Plan", Completed: true}, {ID: "b", Name: "Build"}}},
		{ID: "b"},
		{ID: "c", Milestones: []models.Milestone{{ID: "r", Name: "Retro", Completed: true}}},
	}

	once := ApplyTemplateDiff(oldT, newT, projects, seqIDs("x"))
	twice := ApplyTemplateDiff(oldT, newT, once.Projects, seqIDs("y"))

	assert.Equal(t, once.Projects, twice.Projects)
	assert.Empty(t, twice.Changed)
}

func TestApplyToProject_SwapRenames(t *testing.T) {
	d := Diff{Renamed: []Rename{{From: "A", To: "B"}, {From: "B", To: "A"}}}
	p := models.UserProject{Milestones: []models.Milestone{{ID: "1", Name: "A", Completed: true}, {ID: "2", Name: "B"}}}

	got, changed := ApplyToProject(d, p, seqIDs("n"))
	assert.True(t, changed)
	assert.Equal(t, []models.Milestone{{ID: "1", Name: "B", Completed: true}, {ID: "2", Name: "A"}}, []models.Milestone(got.Milestones))
}

func TestToggleTemplateMilestone_Materializes(t *testing.T) {
	p := models.UserProject{ID: "a", Milestones: []models.Milestone{}}

	got, m := ToggleTemplateMilestone(p, tm("dm-1", "design review"), seqIDs("m"))
	require.Len(t, got.Milestones, 1)
	assert.Equal(t, models.Milestone{ID: "m-1", Name: "design review", Completed: true}, got.Milestones[0])
	assert.Equal(t, got.Milestones[0], m)
	assert.Empty(t, p.Milestones)
}

func TestToggleTemplateMilestone_FlipsExisting(t *testing.T) {
	p := models.UserProject{Milestones: []models.Milestone{{ID: "x", Name: "design review", Completed: true}}}

	got, m := ToggleTemplateMilestone(p, tm("dm-1", "design review"), seqIDs("m"))
	require.Len(t, got.Milestones, 1)
	assert.False(t, m.Completed)
	assert.Equal(t, "x", m.ID)

	again, m := ToggleTemplateMilestone(got, tm("dm-1", "design review"), seqIDs("m"))
	require.Len(t, again.Milestones, 1)
	assert.True(t, m.Completed)
}

func TestToggleMilestone(t *testing.T) {
	p := models.UserProject{Milestones: []models.Milestone{{ID: "x", Name: "Plan"}}}

	got, m, err := ToggleMilestone(p, "x", nil)
	require.NoError(t, err)
	assert.True(t, m.Completed)
	assert.True(t, got.Milestones[0].Completed)

	off := false
	got, m, err = ToggleMilestone(got, "x", &off)
	require.NoError(t, err)
	assert.False(t, m.Completed)

	_, _, err = ToggleMilestone(got, "missing", nil)
	assert.ErrorIs(t, err, ErrMilestoneNotFound)
}

func TestNormalizeTemplate(t *testing.T) {
	got, err := NormalizeTemplate([]models.Milestone{
		{ID: "1", Name: "  Plan ", Completed: true},
		{Name: "Build"},
	}, seqIDs("dm"))
	require.NoError(t, err)
	assert.Equal(t, []models.Milestone{{ID: "1", Name: "Plan"}, {ID: "dm-1", Name: "Build"}}, got)

	_, err = NormalizeTemplate([]models.Milestone{{Name: "Plan"}, {Name: "Plan "}}, seqIDs("dm"))
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = NormalizeTemplate([]models.Milestone{{Name: "   "}}, seqIDs("dm"))
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NormalizeTemplate([]models.Milestone{{ID: "1", Name: "A"}, {ID: "1", Name: "B"}}, seqIDs("dm"))
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestBackfill_TemplateOrder(t *testing.T) {
	template := []models.Milestone{tm("1", "Plan"), tm("2", "Build"), tm("3", "Ship")}
	p := models.UserProject{Milestones: []models.Milestone{{ID: "b", Name: "Build", Completed: true}}}

	got := Backfill(p, template, seqIDs("m"))
	assert.Equal(t, []string{"Build", "Plan", "Ship"}, names(got.Milestones))
	assert.True(t, got.Milestones[0].Completed)
	assert.False(t, got.Milestones[1].Completed)
}
