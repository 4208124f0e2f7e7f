package reconcile

import "milestone-dashboard/internal/models"

// ApplyToProject применяет diff к одному проекту: удаления, потом
// переименования, потом добавления. Переименования ищутся по списку до
// переименований, так что обмен двух имён работает. bool: было ли изменение.
func ApplyToProject(d Diff, p models.UserProject, newID IDFunc) (models.UserProject, bool) {
	if d.Empty() {
		return p, false
	}
	p = p.Clone()
	changed := false

	if len(d.Removed) > 0 {
		removed := make(map[string]struct{}, len(d.Removed))
		for _, m := range d.Removed {
			removed[m.Name] = struct{}{}
		}
		kept := make([]models.Milestone, 0, len(p.Milestones))
		for _, m := range p.Milestones {
			if _, drop := removed[m.Name]; drop {
				changed = true
				continue
			}
			kept = append(kept, m)
		}
		p.Milestones = kept
	}

	if len(d.Renamed) > 0 {
		targets := make(map[int]string, len(d.Renamed))
		for _, r := range d.Renamed {
			for i, m := range p.Milestones {
				if m.Name != r.From {
					continue
				}
				if _, claimed := targets[i]; claimed {
					continue
				}
				targets[i] = r.To
				break
			}
		}
		for i, name := range targets {
			p.Milestones[i].Name = name
			changed = true
		}
	}

	for _, m := range d.Added {
		if models.FindByName(p.Milestones, m.Name) >= 0 {
			continue
		}
		p.Milestones = append(p.Milestones, models.Milestone{ID: newID(), Name: m.Name})
		changed = true
	}

	return p, changed
}

// Result: итог сведения проектов с правкой шаблона.
type Result struct {
	Diff     Diff
	Projects []models.UserProject
	// Changed: id проектов, у которых переписан список вех, их и надо сохранить.
	Changed []string
}

// ApplyTemplateDiff сравнивает версии шаблона и применяет разницу ко всем
// проектам.
func ApplyTemplateDiff(oldT, newT []models.Milestone, projects []models.UserProject, newID IDFunc) Result {
	res := Result{
		Diff:     DiffTemplates(oldT, newT),
		Projects: make([]models.UserProject, 0, len(projects)),
		Changed:  []string{},
	}
	for _, p := range projects {
		updated, changed := ApplyToProject(res.Diff, p, newID)
		res.Projects = append(res.Projects, updated)
		if changed {
			res.Changed = append(res.Changed, p.ID)
		}
	}
	return res
}
