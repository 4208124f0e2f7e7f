package models

// ProjectData: весь дашборд в том виде, в котором его получает UI.
type ProjectData struct {
	Departments  []Department  `json:"departments"`
	Teams        []Team        `json:"teams"`
	UserProjects []UserProject `json:"userProjects"`
	Config       *PageConfig   `json:"config,omitempty"`
}

func (d ProjectData) Template() []Milestone {
	if d.Config == nil {
		return nil
	}
	return d.Config.Template()
}

func (d ProjectData) Clone() ProjectData {
	out := ProjectData{
		Departments:  make([]Department, len(d.Departments)),
		Teams:        make([]Team, len(d.Teams)),
		UserProjects: make([]UserProject, len(d.UserProjects)),
	}
	copy(out.Departments, d.Departments)
	copy(out.Teams, d.Teams)
	for i, p := range d.UserProjects {
		out.UserProjects[i] = p.Clone()
	}
	if d.Config != nil {
		cfg := d.Config.Clone()
		out.Config = &cfg
	}
	return out
}

func (d ProjectData) ProjectIndex(id string) int {
	for i, p := range d.UserProjects {
		if p.ID == id {
			return i
		}
	}
	return -1
}
