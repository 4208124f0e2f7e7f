package progress

import (
	"testing"

	"milestone-dashboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ms(pairs ...any) []models.Milestone {
	out := make([]models.Milestone, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		name := pairs[i].(string)
		out = append(out, models.Milestone{ID: "m-" + name, Name: name, Completed: pairs[i+1].(bool)})
	}
	return out
}

func project(id, owner, dept, team string, milestones []models.Milestone) models.UserProject {
	return models.UserProject{
		ID:         id,
		Name:       "project " + id,
		Owner:      owner,
		Department: dept,
		Team:       team,
		Milestones: milestones,
		Status:     models.StatusActive,
	}
}

func TestForProject_EmptyIsZero(t *testing.T) {
	p := project("a", "alice", "eng", "fe", nil)

	got := ForProject(p, nil)
	assert.Equal(t, 0, got.TotalMilestones)
	assert.Equal(t, 0, got.CompletedMilestones)
	assert.Equal(t, 0, got.ProgressPercentage)

	got = ForProject(p, []models.Milestone{})
	assert.Equal(t, 0, got.ProgressPercentage)
}

func TestForProject_OwnMilestonesWithoutTemplate(t *testing.T) {
	p := project("a", "alice", "eng", "fe", ms("Plan", true, "Build", false, "Ship", false))

	got := ForProject(p, nil)
	assert.Equal(t, 3, got.TotalMilestones)
	assert.Equal(t, 1, got.CompletedMilestones)
	assert.Equal(t, 33, got.ProgressPercentage)
}

func TestForProject_TemplateCountsMissingAsIncomplete(t *testing.T) {
	template := ms("Plan", false, "Build", false)
	a := project("a", "alice", "eng", "fe", ms("Plan", true))

	got := ForProject(a, template)
	assert.Equal(t, 2, got.TotalMilestones)
	assert.Equal(t, 1, got.CompletedMilestones)
	assert.Equal(t, 50, got.ProgressPercentage)
}

func TestForProject_TemplateIgnoresProjectOnlyMilestones(t *testing.T) {
	template := ms("Plan", false)
	a := project("a", "alice", "eng", "fe", ms("Plan", false, "Extra", true, "Other", true))

	got := ForProject(a, template)
	assert.Equal(t, 1, got.TotalMilestones)
	assert.Equal(t, 0, got.CompletedMilestones)
	assert.Equal(t, 0, got.ProgressPercentage)
}

func TestForProject_FirstNameMatchWins(t *testing.T) {
	template := ms("Plan", false)
	a := project("a", "alice", "eng", "fe", ms("Plan", false, "Plan", true))

	assert.Equal(t, 0, ForProject(a, template).CompletedMilestones)
}

func TestCounts_PercentageRoundsHalfUp(t *testing.T) {
	assert.Equal(t, 67, Counts{Completed: 2, Total: 3}.Percentage())
	assert.Equal(t, 13, Counts{Completed: 1, Total: 8}.Percentage())
	assert.Equal(t, 100, Counts{Completed: 4, Total: 4}.Percentage())
}

func TestForProject_Monotonic(t *testing.T) {
	templates := map[string][]models.Milestone{
		"no template": nil,
		"template":    ms("A", false, "B", false, "C", false, "Z", false),
	}

	for name, template := range templates {
		t.Run(name, func(t *testing.T) {
			base := ms("A", false, "B", false, "C", false, "D", false)
			for mask := 0; mask < 1<<len(base); mask++ {
				current := models.CloneMilestones(base)
				for i := range current {
					current[i].Completed = mask&(1<<i) != 0
				}
				before := ForProject(project("p", "o", "d", "t", current), template).ProgressPercentage

				for i := range current {
					flipped := models.CloneMilestones(current)
					flipped[i].Completed = !flipped[i].Completed
					after := ForProject(project("p", "o", "d", "t", flipped), template).ProgressPercentage
					if flipped[i].Completed {
						assert.GreaterOrEqual(t, after, before)
					} else {
						assert.LessOrEqual(t, after, before)
					}
				}
			}
		})
	}
}

func TestForGroups_SumsInsteadOfAveraging(t *testing.T) {
	projects := []models.UserProject{
		project("a", "alice", "eng", "fe", ms("A", true)),
		project("b", "bob", "eng", "be", ms("A", true, "B", false, "C", false)),
	}

	got := ForGroups([]Group{{ID: "eng", Name: "Engineering"}}, projects, ByDepartment, nil)
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].TotalMilestones)
	assert.Equal(t, 2, got[0].CompletedMilestones)
	assert.Equal(t, 50, got[0].ProgressPercentage)
}

func TestForGroups_SortedStableWithMembers(t *testing.T) {
	projects := []models.UserProject{
		project("a", "alice", "eng", "fe", ms("A", false)),
		project("b", "bob", "mkt", "content", ms("A", true)),
		project("c", "alice", "eng", "fe", ms("A", false)),
		project("d", "carol", "ops", "infra", ms("A", false)),
		project("e", "dave", "ghost", "x", ms("A", true)),
	}
	groups := []Group{
		{ID: "eng", Name: "Engineering"},
		{ID: "ops", Name: "Operations"},
		{ID: "mkt", Name: "Marketing"},
		{ID: "empty", Name: "Empty"},
	}

	got := ForGroups(groups, projects, ByDepartment, nil)
	require.Len(t, got, 4)

	ids := []string{got[0].ID, got[1].ID, got[2].ID, got[3].ID}
	assert.Equal(t, []string{"mkt", "eng", "ops", "empty"}, ids)
	assert.Equal(t, []string{"alice"}, got[1].Members)
	assert.Equal(t, []string{}, got[3].Members)
	assert.Equal(t, 0, got[3].ProgressPercentage)
}

func TestForGroups_DeterministicForIdenticalInput(t *testing.T) {
	projects := []models.UserProject{
		project("a", "alice", "eng", "fe", ms("A", true)),
		project("b", "bob", "eng", "be", ms("A", false)),
	}
	groups := []Group{{ID: "fe"}, {ID: "be"}, {ID: "qa"}}

	first := ForGroups(groups, projects, ByTeam, nil)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ForGroups(groups, projects, ByTeam, nil))
	}
}

func TestForCompany(t *testing.T) {
	template := ms("Plan", false, "Build", false)
	projects := []models.UserProject{
		project("a", "alice", "eng", "fe", ms("Plan", true, "Build", true)),
		project("b", "bob", "eng", "be", ms("Plan", true)),
	}

	got := ForCompany(projects, template)
	assert.Equal(t, Summary{TotalMilestones: 4, CompletedMilestones: 3, ProgressPercentage: 75}, got)
	assert.Equal(t, Summary{}, ForCompany(nil, template))
}

func TestRankProjects(t *testing.T) {
	projects := []models.UserProject{
		project("a", "alice", "eng", "fe", ms("A", false, "B", false)),
		project("b", "bob", "eng", "be", ms("A", true, "B", true)),
		project("c", "carol", "eng", "be", ms("A", false, "B", false)),
	}

	got := RankProjects(projects, nil)
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, "c", got[2].ID)
}

func TestCompute_SkipsDeletedRows(t *testing.T) {
	deleted := project("gone", "zed", "eng", "fe", ms("Plan", true))
	deleted.Status = models.StatusDeleted

	cfg := models.DefaultPageConfig()
	cfg.DefaultMilestones = ms("Plan", false, "Build", false)

	data := models.ProjectData{
		Departments: []models.Department{
			{ID: "eng", Name: "Engineering", Status: models.StatusActive},
			{ID: "old", Name: "Old", Status: models.StatusDeleted},
		},
		Teams: []models.Team{{ID: "fe", Name: "Frontend"}},
		UserProjects: []models.UserProject{
			project("a", "alice", "eng", "fe", ms("Plan", true)),
			deleted,
		},
		Config: &cfg,
	}

	got := Compute(data)
	assert.Equal(t, Summary{TotalMilestones: 2, CompletedMilestones: 1, ProgressPercentage: 50}, got.Company)
	require.Len(t, got.Departments, 1)
	assert.Equal(t, "eng", got.Departments[0].ID)
	require.Len(t, got.Teams, 1)
	assert.Equal(t, []string{"alice"}, got.Teams[0].Members)
	require.Len(t, got.Projects, 1)
	assert.Equal(t, "a", got.Projects[0].ID)
}
