package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound: запись отсутствует или помечена удалённой. Не ретраится.
	ErrNotFound = errors.New("not found")
	// ErrValidation: входные данные отклонены до записи в хранилище.
	ErrValidation = errors.New("validation failed")
	// ErrPersistence: хранилище не приняло запись даже после повтора.
	ErrPersistence = errors.New("persistence failed")
)

// PersistenceError: ошибка хранилища с названием операции.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// ReconcileError: часть проектов после правки шаблона записать не удалось.
// Шаблон в этом случае не сохраняется, повторная правка пересчитает diff.
type ReconcileError struct {
	Persisted []string
	Failed    []string
	Err       error
}

func (e *ReconcileError) Error() string {
	return fmt.Sprintf("reconcile: %d of %d projects not persisted (%s): %v",
		len(e.Failed), len(e.Failed)+len(e.Persisted), strings.Join(e.Failed, ", "), e.Err)
}

func (e *ReconcileError) Unwrap() error { return e.Err }

func (e *ReconcileError) Is(target error) bool { return target == ErrPersistence }

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
