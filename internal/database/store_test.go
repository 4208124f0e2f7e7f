package database_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"milestone-dashboard/internal/database"
	"milestone-dashboard/internal/models"
	"milestone-dashboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm/schema"
)

func TestStore_ProjectRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	p := testutil.NewTestProject("p1", "alice", "eng", "fe",
		models.Milestone{ID: "m1", Name: "Plan", Completed: true},
		models.Milestone{ID: "m2", Name: "Build"},
	)
	require.NoError(t, s.UpsertProject(ctx, p))

	got, err := s.GetProject(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Owner)
	assert.Equal(t, []models.Milestone(p.Milestones), []models.Milestone(got.Milestones))
	assert.Equal(t, models.StatusActive, got.Status)

	got.Milestones[1].Completed = true
	got.Name = "Renamed"
	require.NoError(t, s.UpsertProject(ctx, got))

	again, err := s.GetProject(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", again.Name)
	assert.True(t, again.Milestones[1].Completed)
	assert.False(t, again.CreatedAt.IsZero())
}

func TestStore_SoftDeleteFiltersProjects(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertProject(ctx, testutil.NewTestProject("a", "alice", "eng", "fe")))
	require.NoError(t, s.UpsertProject(ctx, testutil.NewTestProject("b", "bob", "eng", "be")))
	require.NoError(t, s.SoftDeleteProject(ctx, "b"))

	list, err := s.ListProjects(ctx, database.Filter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].ID)

	all, err := s.ListProjects(ctx, database.Filter{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = s.GetProject(ctx, "b")
	assert.ErrorIs(t, err, database.ErrNotFound)

	assert.ErrorIs(t, s.SoftDeleteProject(ctx, "b"), database.ErrNotFound)
	assert.ErrorIs(t, s.SoftDeleteProject(ctx, "missing"), database.ErrNotFound)
}

func TestStore_DepartmentsAndTeams(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	testutil.SeedGroups(t, s)

	require.NoError(t, s.SoftDeleteDepartment(ctx, "mkt"))
	require.NoError(t, s.SoftDeleteTeam(ctx, "be"))

	depts, err := s.ListDepartments(ctx, database.Filter{})
	require.NoError(t, err)
	require.Len(t, depts, 1)
	assert.Equal(t, "eng", depts[0].ID)

	teams, err := s.ListTeams(ctx, database.Filter{})
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "fe", teams[0].ID)

	require.NoError(t, s.UpsertDepartment(ctx, models.Department{ID: "eng", Name: "Engineering 2"}))
	depts, err = s.ListDepartments(ctx, database.Filter{})
	require.NoError(t, err)
	assert.Equal(t, "Engineering 2", depts[0].Name)
}

func TestStore_ConfigDefaultsWhenMissing(t *testing.T) {
	s := testutil.NewTestStore(t)

	cfg, err := s.GetConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPageConfig().ProjectName, cfg.ProjectName)
	assert.Empty(t, cfg.DefaultMilestones)
}

func TestStore_ConfigRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	cfg := models.DefaultPageConfig()
	cfg.ProjectName = "Hackathon"
	cfg.DefaultMilestones = []models.Milestone{{ID: "dm-1", Name: "Plan"}}
	require.NoError(t, s.SaveConfig(ctx, cfg))

	got, err := s.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hackathon", got.ProjectName)
	assert.Equal(t, []models.Milestone{{ID: "dm-1", Name: "Plan"}}, got.Template())
}

// В БД колонки snake_case, в API camelCase.
func TestPageConfig_ColumnAndJSONNames(t *testing.T) {
	sch, err := schema.Parse(&models.PageConfig{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	assert.Equal(t, "page_config", sch.Table)

	want := map[string]string{
		"ProjectName":             "project_name",
		"CompanyProgressTitle":    "company_progress_title",
		"DepartmentProgressTitle": "department_progress_title",
		"TeamProgressTitle":       "team_progress_title",
		"DefaultMilestones":       "default_milestones",
	}
	for field, column := range want {
		f := sch.LookUpField(field)
		require.NotNil(t, f, field)
		assert.Equal(t, column, f.DBName, field)
	}

	raw, err := json.Marshal(models.DefaultPageConfig())
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{"projectName", "companyProgressTitle", "departmentProgressTitle", "teamProgressTitle", "defaultMilestones"} {
		assert.Contains(t, decoded, key)
	}
	assert.NotContains(t, decoded, "project_name")
}

func TestStore_ReplaceAll(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	testutil.SeedGroups(t, s)
	require.NoError(t, s.UpsertProject(ctx, testutil.NewTestProject("old", "zed", "eng", "fe")))

	cfg := models.DefaultPageConfig()
	cfg.TeamProgressTitle = "Teams"
	data := models.ProjectData{
		Departments: []models.Department{{ID: "eng", Name: "Engineering"}},
		Teams:       []models.Team{{ID: "fe", Name: "Frontend"}, {ID: "qa", Name: "QA"}},
		UserProjects: []models.UserProject{
			testutil.NewTestProject("new", "alice", "eng", "qa", models.Milestone{ID: "m", Name: "Plan"}),
		},
		Config: &cfg,
	}
	require.NoError(t, s.ReplaceAll(ctx, data))

	projects, err := s.ListProjects(ctx, database.Filter{})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "new", projects[0].ID)

	depts, err := s.ListDepartments(ctx, database.Filter{})
	require.NoError(t, err)
	assert.Len(t, depts, 1)

	teams, err := s.ListTeams(ctx, database.Filter{})
	require.NoError(t, err)
	assert.Len(t, teams, 2)

	got, err := s.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Teams", got.TeamProgressTitle)
}

func TestStore_AuditLog(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateAuditLog(ctx, models.AuditLog{UserID: "u1", Entity: "project", EntityID: "p1", Action: "create"}))
	require.NoError(t, s.CreateAuditLog(ctx, models.AuditLog{UserID: "u1", Entity: "project", EntityID: "p1", Action: "delete"}))

	logs, err := s.ListAuditLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "delete", logs[0].Action)
}

func TestSeed_OnlyWhenEmpty(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, database.Seed(ctx, s, zap.NewNop()))
	depts, err := s.ListDepartments(ctx, database.Filter{})
	require.NoError(t, err)
	assert.Len(t, depts, 2)

	cfg, err := s.GetConfig(ctx)
	require.NoError(t, err)
	assert.Len(t, cfg.DefaultMilestones, 5)

	require.NoError(t, s.SoftDeleteDepartment(ctx, "marketing"))
	require.NoError(t, database.Seed(ctx, s, zap.NewNop()))
	depts, err = s.ListDepartments(ctx, database.Filter{})
	require.NoError(t, err)
	assert.Len(t, depts, 1)
}
