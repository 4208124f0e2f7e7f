package models

// Status: статус записи вместо флага deleted (мягкое удаление).
type Status string

const (
	StatusActive  Status = "active"
	StatusDeleted Status = "deleted"
)

// пустой статус считаем активным: старые строки без колонки status
func (s Status) Active() bool {
	return s != StatusDeleted
}
