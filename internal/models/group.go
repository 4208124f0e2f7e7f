package models

import "time"

type Department struct {
	ID     string `gorm:"primaryKey;size:64" json:"id"`
	Name   string `gorm:"size:255;not null" json:"name"`
	Status Status `gorm:"type:varchar(16);not null;default:active;index" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Department) TableName() string { return "departments" }

// Team не зависит от отдела. DepartmentID остался от старой схемы
// и в агрегации не участвует.
type Team struct {
	ID           string `gorm:"primaryKey;size:64" json:"id"`
	Name         string `gorm:"size:255;not null" json:"name"`
	DepartmentID string `gorm:"column:department_id;size:64" json:"departmentId,omitempty"`
	Status       Status `gorm:"type:varchar(16);not null;default:active;index" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Team) TableName() string { return "teams" }

func ActiveDepartments(in []Department) []Department {
	out := make([]Department, 0, len(in))
	for _, d := range in {
		if d.Status.Active() {
			out = append(out, d)
		}
	}
	return out
}

func ActiveTeams(in []Team) []Team {
	out := make([]Team, 0, len(in))
	for _, t := range in {
		if t.Status.Active() {
			out = append(out, t)
		}
	}
	return out
}
