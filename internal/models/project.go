package models

import (
	"time"

	"gorm.io/datatypes"
)

// UserProject: проект сотрудника с собственным списком вех.
type UserProject struct {
	ID         string                         `gorm:"primaryKey;size:64" json:"id"`
	Name       string                         `gorm:"size:255;not null" json:"name"`
	Owner      string                         `gorm:"size:255;not null" json:"owner"`
	Department string                         `gorm:"column:department;size:64;index" json:"department"`
	Team       string                         `gorm:"column:team;size:64;index" json:"team"`
	Milestones datatypes.JSONSlice[Milestone] `gorm:"column:milestones;not null" json:"milestones"`
	UserID     string                         `gorm:"column:user_id;size:64" json:"userId"`
	Status     Status                         `gorm:"type:varchar(16);not null;default:active;index" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (UserProject) TableName() string { return "user_projects" }

func (p UserProject) Clone() UserProject {
	p.Milestones = CloneMilestones(p.Milestones)
	return p
}

// ActiveProjects: только не удалённые проекты.
func ActiveProjects(projects []UserProject) []UserProject {
	out := make([]UserProject, 0, len(projects))
	for _, p := range projects {
		if p.Status.Active() {
			out = append(out, p)
		}
	}
	return out
}
