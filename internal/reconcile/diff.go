// Package reconcile сводит списки вех проектов с шаблоном по умолчанию.
// Входные данные функции не меняют.
package reconcile

import "milestone-dashboard/internal/models"

// Rename: запись шаблона с тем же id и новым именем.
type Rename struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Diff: разница двух версий шаблона, сопоставление по имени.
type Diff struct {
	Added   []models.Milestone `json:"added"`
	Removed []models.Milestone `json:"removed"`
	Renamed []Rename           `json:"renamed"`
}

func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Renamed) == 0
}

// DiffTemplates сравнивает два шаблона. Переименование: id есть в обеих
// версиях, имя разное. Переименованные записи не попадают в Added и Removed,
// поэтому выполнение вехи сохраняется.
func DiffTemplates(oldT, newT []models.Milestone) Diff {
	d := Diff{
		Added:   []models.Milestone{},
		Removed: []models.Milestone{},
		Renamed: []Rename{},
	}

	oldByID := make(map[string]models.Milestone, len(oldT))
	oldNames := make(map[string]struct{}, len(oldT))
	for _, m := range oldT {
		if m.ID != "" {
			if _, seen := oldByID[m.ID]; !seen {
				oldByID[m.ID] = m
			}
		}
		oldNames[m.Name] = struct{}{}
	}
	newNames := make(map[string]struct{}, len(newT))
	for _, m := range newT {
		newNames[m.Name] = struct{}{}
	}

	renamedIDs := map[string]struct{}{}
	for _, m := range newT {
		if m.ID == "" {
			continue
		}
		prev, ok := oldByID[m.ID]
		if !ok || prev.Name == m.Name {
			continue
		}
		if _, done := renamedIDs[m.ID]; done {
			continue
		}
		renamedIDs[m.ID] = struct{}{}
		d.Renamed = append(d.Renamed, Rename{From: prev.Name, To: m.Name})
	}

	for _, m := range newT {
		if _, renamed := renamedIDs[m.ID]; renamed && m.ID != "" {
			continue
		}
		if _, existed := oldNames[m.Name]; !existed {
			d.Added = append(d.Added, m)
		}
	}
	for _, m := range oldT {
		if _, renamed := renamedIDs[m.ID]; renamed && m.ID != "" {
			continue
		}
		if _, kept := newNames[m.Name]; !kept {
			d.Removed = append(d.Removed, m)
		}
	}
	return d
}
