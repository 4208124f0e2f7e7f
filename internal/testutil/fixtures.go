package testutil

import (
	"context"
	"testing"

	"milestone-dashboard/internal/database"
	"milestone-dashboard/internal/models"
)

func NewTestProject(id, owner, department, team string, milestones ...models.Milestone) models.UserProject {
	if milestones == nil {
		milestones = []models.Milestone{}
	}
	return models.UserProject{
		ID:         id,
		Name:       "Project " + id,
		Owner:      owner,
		Department: department,
		Team:       team,
		Milestones: milestones,
		UserID:     "user-" + owner,
		Status:     models.StatusActive,
	}
}

// SeedGroups пишет два отдела ("eng", "mkt") и две команды ("fe", "be").
func SeedGroups(tb testing.TB, s *database.Store) {
	tb.Helper()
	ctx := context.Background()
	for _, d := range []models.Department{{ID: "eng", Name: "Engineering"}, {ID: "mkt", Name: "Marketing"}} {
		if err := s.UpsertDepartment(ctx, d); err != nil {
			tb.Fatalf("seed department: %v", err)
		}
	}
	for _, t := range []models.Team{{ID: "fe", Name: "Frontend"}, {ID: "be", Name: "Backend"}} {
		if err := s.UpsertTeam(ctx, t); err != nil {
			tb.Fatalf("seed team: %v", err)
		}
	}
}

func SetTemplate(tb testing.TB, s *database.Store, template ...models.Milestone) {
	tb.Helper()
	ctx := context.Background()
	cfg, err := s.GetConfig(ctx)
	if err != nil {
		tb.Fatalf("get config: %v", err)
	}
	cfg.DefaultMilestones = template
	if err := s.SaveConfig(ctx, cfg); err != nil {
		tb.Fatalf("save config: %v", err)
	}
}
