package reconcile

import "github.com/google/uuid"

// IDFunc выдаёт новый уникальный id вехи.
type IDFunc func() string

func NewMilestoneID() string {
	return "m-" + uuid.NewString()
}

func NewTemplateID() string {
	return "dm-" + uuid.NewString()
}
