package reconcile

import (
	"errors"

	"milestone-dashboard/internal/models"
)

var ErrMilestoneNotFound = errors.New("milestone not found")

// ToggleTemplateMilestone переключает веху проекта с именем записи шаблона.
// Если такой вехи нет, она добавляется сразу выполненной, одной записью.
func ToggleTemplateMilestone(p models.UserProject, tm models.Milestone, newID IDFunc) (models.UserProject, models.Milestone) {
	p = p.Clone()
	if i := models.FindByName(p.Milestones, tm.Name); i >= 0 {
		p.Milestones[i].Completed = !p.Milestones[i].Completed
		return p, p.Milestones[i]
	}
	m := models.Milestone{ID: newID(), Name: tm.Name, Completed: true}
	p.Milestones = append(p.Milestones, m)
	return p, m
}

// ToggleMilestone ставит completed вехе с данным id, а при nil переключает.
func ToggleMilestone(p models.UserProject, milestoneID string, completed *bool) (models.UserProject, models.Milestone, error) {
	i := models.FindByID(p.Milestones, milestoneID)
	if i < 0 {
		return p, models.Milestone{}, ErrMilestoneNotFound
	}
	p = p.Clone()
	if completed != nil {
		p.Milestones[i].Completed = *completed
	} else {
		p.Milestones[i].Completed = !p.Milestones[i].Completed
	}
	return p, p.Milestones[i], nil
}
