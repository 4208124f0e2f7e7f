// Package state хранит последний снимок дашборда и применяет к нему
// оптимистичные изменения.
//
// Изменение делается на копии, сразу публикуется и потом пишется в хранилище.
// Если запись не удалась, опубликованный снимок выбрасывается и читается
// заново. Изменения вручную не откатываются.
package state

import (
	"context"
	"sync"
	"time"

	"milestone-dashboard/internal/models"

	"go.uber.org/zap"
)

// Loader читает снимок из хранилища.
type Loader func(ctx context.Context) (models.ProjectData, error)

// Commit пишет в хранилище уже опубликованное изменение.
type Commit func(ctx context.Context) error

// Delta меняет снимок на месте и возвращает Commit для записи.
// При ошибке снимок не меняется.
type Delta func(data *models.ProjectData) (Commit, error)

type Container struct {
	mu       sync.RWMutex
	data     *models.ProjectData
	loadedAt time.Time

	// pending: коммиты, которые сейчас пишут в хранилище. stale: пока они
	// шли, был откат, и перезагруженный снимок мог их не увидеть.
	pending int
	stale   bool

	load   Loader
	maxAge time.Duration
	now    func() time.Time
	log    *zap.Logger
}

// New: при maxAge <= 0 снимок живёт до неудачной записи или Refresh.
func New(load Loader, maxAge time.Duration, log *zap.Logger) *Container {
	return &Container{
		load:   load,
		maxAge: maxAge,
		now:    time.Now,
		log:    log,
	}
}

// Snapshot отдаёт копию снимка, при необходимости загружая его.
func (c *Container) Snapshot(ctx context.Context) (models.ProjectData, error) {
	c.mu.RLock()
	if c.fresh() {
		out := c.data.Clone()
		c.mu.RUnlock()
		return out, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureLocked(ctx); err != nil {
		return models.ProjectData{}, err
	}
	return c.data.Clone(), nil
}

// Refresh сбрасывает снимок и загружает его заново.
func (c *Container) Refresh(ctx context.Context) (models.ProjectData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = nil
	if err := c.ensureLocked(ctx); err != nil {
		return models.ProjectData{}, err
	}
	return c.data.Clone(), nil
}

// Invalidate: следующий Snapshot перечитает хранилище.
func (c *Container) Invalidate() {
	c.mu.Lock()
	c.data = nil
	c.mu.Unlock()
}

// Apply публикует изменение и пишет его. При ошибке записи снимок
// перечитывается, а ошибка возвращается. Если откат случился, пока шли
// другие записи, снимок перечитывается ещё раз после последней из них.
func (c *Container) Apply(ctx context.Context, delta Delta) error {
	c.mu.Lock()
	if err := c.ensureLocked(ctx); err != nil {
		c.mu.Unlock()
		return err
	}
	next := c.data.Clone()
	commit, err := delta(&next)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.data = &next
	if commit == nil {
		c.mu.Unlock()
		return nil
	}
	c.pending++
	c.mu.Unlock()

	err = commit(ctx)

	c.mu.Lock()
	c.pending--
	if err != nil {
		c.stale = true
	}
	if c.stale && c.pending == 0 {
		c.stale = false
		c.data = nil
	}
	c.mu.Unlock()

	if err != nil {
		c.rollback(ctx, err)
		return err
	}
	return nil
}

func (c *Container) rollback(ctx context.Context, cause error) {
	c.log.Warn("commit failed, reloading snapshot", zap.Error(cause))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = nil
	if err := c.ensureLocked(ctx); err != nil {
		c.log.Error("reload after failed commit failed, snapshot invalidated", zap.Error(err))
	}
}

func (c *Container) fresh() bool {
	if c.data == nil {
		return false
	}
	return c.maxAge <= 0 || c.now().Sub(c.loadedAt) < c.maxAge
}

func (c *Container) ensureLocked(ctx context.Context) error {
	if c.fresh() {
		return nil
	}
	data, err := c.load(ctx)
	if err != nil {
		c.data = nil
		return err
	}
	c.data = &data
	c.loadedAt = c.now()
	return nil
}
