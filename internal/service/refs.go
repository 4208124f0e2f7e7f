package service

import (
	"strings"

	"milestone-dashboard/internal/models"

	"go.uber.org/zap"
)

func hasDepartment(data *models.ProjectData, id string) bool {
	for _, d := range data.Departments {
		if d.ID == id && d.Status.Active() {
			return true
		}
	}
	return false
}

func hasTeam(data *models.ProjectData, id string) bool {
	for _, t := range data.Teams {
		if t.ID == id && t.Status.Active() {
			return true
		}
	}
	return false
}

// resolveRefs проверяет отдел и команду проекта. Неизвестные ссылки либо
// заменяются запасными значениями, либо (StrictReferences) отклоняются.
func (s *Service) resolveRefs(data *models.ProjectData, p *models.UserProject) error {
	p.Department = strings.TrimSpace(p.Department)
	p.Team = strings.TrimSpace(p.Team)

	if !hasDepartment(data, p.Department) {
		if s.opts.StrictReferences {
			return validationf("project %q: unknown department %q", p.ID, p.Department)
		}
		s.log.Warn("unknown department, using fallback",
			zap.String("project_id", p.ID),
			zap.String("department", p.Department),
			zap.String("fallback", s.opts.FallbackDepartmentID),
		)
		p.Department = s.opts.FallbackDepartmentID
	}

	if !hasTeam(data, p.Team) {
		if s.opts.StrictReferences {
			return validationf("project %q: unknown team %q", p.ID, p.Team)
		}
		s.log.Warn("unknown team, using fallback",
			zap.String("project_id", p.ID),
			zap.String("team", p.Team),
			zap.String("fallback", s.opts.FallbackTeamID),
		)
		p.Team = s.opts.FallbackTeamID
	}
	return nil
}
