package progress

import "milestone-dashboard/internal/models"

// Dashboard: всё, что показывают рейтинги.
type Dashboard struct {
	Company     Summary           `json:"company"`
	Departments []GroupProgress   `json:"departments"`
	Teams       []GroupProgress   `json:"teams"`
	Projects    []ProjectProgress `json:"projects"`
}

// Compute строит рейтинги по снимку, каждый проект меряется по шаблону
// из конфига. Удалённые записи пропускаются.
func Compute(data models.ProjectData) Dashboard {
	template := data.Template()
	projects := models.ActiveProjects(data.UserProjects)

	return Dashboard{
		Company:     ForCompany(projects, template),
		Departments: ForGroups(DepartmentGroups(models.ActiveDepartments(data.Departments)), projects, ByDepartment, template),
		Teams:       ForGroups(TeamGroups(models.ActiveTeams(data.Teams)), projects, ByTeam, template),
		Projects:    RankProjects(projects, template),
	}
}
