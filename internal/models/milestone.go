package models

// Milestone: веха. Между шаблоном и проектами вехи сопоставляются по Name,
// ID адресует запись только внутри одного списка.
type Milestone struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// FindByName: индекс первой вехи с таким именем или -1.
func FindByName(milestones []Milestone, name string) int {
	for i, m := range milestones {
		if m.Name == name {
			return i
		}
	}
	return -1
}

func FindByID(milestones []Milestone, id string) int {
	for i, m := range milestones {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func CloneMilestones(milestones []Milestone) []Milestone {
	out := make([]Milestone, len(milestones))
	copy(out, milestones)
	return out
}
