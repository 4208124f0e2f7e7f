package models

import (
	"time"

	"gorm.io/datatypes"
)

const MainConfigID = "main"

// PageConfig: заголовки дашборда и шаблон вех по умолчанию.
// В БД колонки snake_case, в JSON camelCase, обе схемы заданы явно.
type PageConfig struct {
	ID                      string                         `gorm:"column:id;primaryKey;size:64" json:"id"`
	ProjectName             string                         `gorm:"column:project_name;not null" json:"projectName"`
	CompanyProgressTitle    string                         `gorm:"column:company_progress_title;not null" json:"companyProgressTitle"`
	DepartmentProgressTitle string                         `gorm:"column:department_progress_title;not null" json:"departmentProgressTitle"`
	TeamProgressTitle       string                         `gorm:"column:team_progress_title;not null" json:"teamProgressTitle"`
	DefaultMilestones       datatypes.JSONSlice[Milestone] `gorm:"column:default_milestones" json:"defaultMilestones"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (PageConfig) TableName() string { return "page_config" }

// конфиг по умолчанию, пока строки main в таблице нет
func DefaultPageConfig() PageConfig {
	return PageConfig{
		ID:                      MainConfigID,
		ProjectName:             "Web编码竞赛项目",
		CompanyProgressTitle:    "公司整体进度",
		DepartmentProgressTitle: "部门进度排行榜",
		TeamProgressTitle:       "小组进度排行榜",
		DefaultMilestones:       []Milestone{},
	}
}

func (c PageConfig) Template() []Milestone {
	return []Milestone(c.DefaultMilestones)
}

func (c PageConfig) Clone() PageConfig {
	c.DefaultMilestones = CloneMilestones(c.DefaultMilestones)
	return c
}
