package progress

import (
	"sort"

	"milestone-dashboard/internal/models"
)

// Group: строка рейтинга, отдел или команда.
type Group struct {
	ID   string
	Name string
}

type GroupProgress struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	TotalMilestones     int      `json:"totalMilestones"`
	CompletedMilestones int      `json:"completedMilestones"`
	ProgressPercentage  int      `json:"progressPercentage"`
	Members             []string `json:"members"`
}

// KeyFunc: к какой группе относится проект.
type KeyFunc func(models.UserProject) string

func ByDepartment(p models.UserProject) string { return p.Department }

func ByTeam(p models.UserProject) string { return p.Team }

// ForGroups отдаёт по строке на группу. Вехи суммируются по всем проектам
// группы, процент считается от суммы, а не как среднее процентов проектов.
// Сортировка по убыванию процента, при равенстве порядок групп сохраняется.
func ForGroups(groups []Group, projects []models.UserProject, key KeyFunc, template []models.Milestone) []GroupProgress {
	type acc struct {
		counts  Counts
		members []string
		seen    map[string]struct{}
	}

	byID := make(map[string]*acc, len(groups))
	for _, g := range groups {
		byID[g.ID] = &acc{seen: map[string]struct{}{}}
	}

	for _, p := range projects {
		a, ok := byID[key(p)]
		if !ok {
			continue
		}
		a.counts = a.counts.Add(ProjectCounts(p, template))
		if _, dup := a.seen[p.Owner]; !dup {
			a.seen[p.Owner] = struct{}{}
			a.members = append(a.members, p.Owner)
		}
	}

	out := make([]GroupProgress, 0, len(groups))
	for _, g := range groups {
		a := byID[g.ID]
		members := a.members
		if members == nil {
			members = []string{}
		}
		out = append(out, GroupProgress{
			ID:                  g.ID,
			Name:                g.Name,
			TotalMilestones:     a.counts.Total,
			CompletedMilestones: a.counts.Completed,
			ProgressPercentage:  a.counts.Percentage(),
			Members:             members,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ProgressPercentage > out[j].ProgressPercentage
	})
	return out
}

func DepartmentGroups(departments []models.Department) []Group {
	out := make([]Group, 0, len(departments))
	for _, d := range departments {
		out = append(out, Group{ID: d.ID, Name: d.Name})
	}
	return out
}

func TeamGroups(teams []models.Team) []Group {
	out := make([]Group, 0, len(teams))
	for _, t := range teams {
		out = append(out, Group{ID: t.ID, Name: t.Name})
	}
	return out
}
