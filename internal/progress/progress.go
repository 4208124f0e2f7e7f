// Package progress сводит выполнение вех в проценты по проекту, группе
// и компании. Только вычисления, без ввода-вывода.
package progress

import (
	"math"
	"sort"

	"milestone-dashboard/internal/models"
)

// Counts: выполнено/всего вех.
type Counts struct {
	Completed int `json:"completedMilestones"`
	Total     int `json:"totalMilestones"`
}

func (c Counts) Add(o Counts) Counts {
	return Counts{Completed: c.Completed + o.Completed, Total: c.Total + o.Total}
}

// Percentage = round(100*completed/total); при total == 0 это 0%.
func (c Counts) Percentage() int {
	if c.Total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(c.Completed) / float64(c.Total)))
}

// ProjectCounts считает вехи проекта. Без шаблона берётся собственный
// список проекта. С шаблоном в total идёт каждая запись шаблона, отсутствующая
// у проекта веха считается невыполненной, вехи вне шаблона не учитываются.
func ProjectCounts(p models.UserProject, template []models.Milestone) Counts {
	if len(template) == 0 {
		var c Counts
		for _, m := range p.Milestones {
			c.Total++
			if m.Completed {
				c.Completed++
			}
		}
		return c
	}

	c := Counts{Total: len(template)}
	for _, tm := range template {
		if i := models.FindByName(p.Milestones, tm.Name); i >= 0 && p.Milestones[i].Completed {
			c.Completed++
		}
	}
	return c
}

type ProjectProgress struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Owner               string `json:"owner"`
	Department          string `json:"department"`
	Team                string `json:"team"`
	TotalMilestones     int    `json:"totalMilestones"`
	CompletedMilestones int    `json:"completedMilestones"`
	ProgressPercentage  int    `json:"progressPercentage"`
}

func ForProject(p models.UserProject, template []models.Milestone) ProjectProgress {
	c := ProjectCounts(p, template)
	return ProjectProgress{
		ID:                  p.ID,
		Name:                p.Name,
		Owner:               p.Owner,
		Department:          p.Department,
		Team:                p.Team,
		TotalMilestones:     c.Total,
		CompletedMilestones: c.Completed,
		ProgressPercentage:  c.Percentage(),
	}
}

// RankProjects: проекты по убыванию процента, при равенстве порядок входа.
func RankProjects(projects []models.UserProject, template []models.Milestone) []ProjectProgress {
	out := make([]ProjectProgress, 0, len(projects))
	for _, p := range projects {
		out = append(out, ForProject(p, template))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ProgressPercentage > out[j].ProgressPercentage
	})
	return out
}

type Summary struct {
	TotalMilestones     int `json:"totalMilestones"`
	CompletedMilestones int `json:"completedMilestones"`
	ProgressPercentage  int `json:"progressPercentage"`
}

// ForCompany: то же правило подсчёта по всем переданным проектам.
func ForCompany(projects []models.UserProject, template []models.Milestone) Summary {
	var c Counts
	for _, p := range projects {
		c = c.Add(ProjectCounts(p, template))
	}
	return Summary{
		TotalMilestones:     c.Total,
		CompletedMilestones: c.Completed,
		ProgressPercentage:  c.Percentage(),
	}
}
