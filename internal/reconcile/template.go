package reconcile

import (
	"errors"
	"fmt"
	"strings"

	"milestone-dashboard/internal/models"
)

var (
	ErrEmptyName     = errors.New("milestone name is empty")
	ErrDuplicateName = errors.New("duplicate milestone name in template")
	ErrDuplicateID   = errors.New("duplicate milestone id in template")
)

// NormalizeTemplate обрезает имена, выдаёт id новым записям и сбрасывает
// completed. Имена уникальны: по ним шаблон сопоставляется с вехами проектов.
func NormalizeTemplate(template []models.Milestone, newID IDFunc) ([]models.Milestone, error) {
	out := make([]models.Milestone, 0, len(template))
	names := make(map[string]struct{}, len(template))
	ids := make(map[string]struct{}, len(template))

	for i, m := range template {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyName)
		}
		if _, dup := names[name]; dup {
			return nil, fmt.Errorf("%q: %w", name, ErrDuplicateName)
		}
		names[name] = struct{}{}

		id := strings.TrimSpace(m.ID)
		if id == "" {
			id = newID()
		}
		if _, dup := ids[id]; dup {
			return nil, fmt.Errorf("%q: %w", id, ErrDuplicateID)
		}
		ids[id] = struct{}{}

		out = append(out, models.Milestone{ID: id, Name: name})
	}
	return out, nil
}

// Backfill дописывает проекту недостающие вехи шаблона в порядке шаблона,
// невыполненными.
func Backfill(p models.UserProject, template []models.Milestone, newID IDFunc) models.UserProject {
	p = p.Clone()
	for _, tm := range template {
		if models.FindByName(p.Milestones, tm.Name) >= 0 {
			continue
		}
		p.Milestones = append(p.Milestones, models.Milestone{ID: newID(), Name: tm.Name})
	}
	return p
}
