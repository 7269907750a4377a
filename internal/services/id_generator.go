package services

import (
	"strconv"
	"sync"
	"time"
)

// IDGenerator выдаёт строго возрастающие миллисекунды для id заявок.
// Две заявки в одну миллисекунду получают соседние значения.
type IDGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// Next возвращает момент создания заявки с уникальной миллисекундой
func (g *IDGenerator) Next() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms

	return time.UnixMilli(ms).UTC()
}

// Observe учитывает уже сохранённый id (base36), чтобы после рестарта
// не выдать его повторно
func (g *IDGenerator) Observe(id string) {
	ms, err := strconv.ParseInt(id, 36, 64)
	if err != nil {
		return
	}

	g.mu.Lock()
	if ms > g.last {
		g.last = ms
	}
	g.mu.Unlock()
}
