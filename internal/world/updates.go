package world

import (
	"sync"
	"time"

	"github.com/annel0/voxel-engine/internal/metrics"
	"github.com/annel0/voxel-engine/internal/vec"
)

// UpdateFlags описывает, какая работа нужна чанку
type UpdateFlags struct {
	NeedsLightUpdate bool // Требуется пересчёт света
	ForceRebuild     bool // Принудительная пересборка меша
	NewlyVisible     bool // Чанк впервые попал в окно видимости
}

// Merge объединяет флаги повторной постановки в очередь (логическое ИЛИ)
func (f UpdateFlags) Merge(other UpdateFlags) UpdateFlags {
	return UpdateFlags{
		NeedsLightUpdate: f.NeedsLightUpdate || other.NeedsLightUpdate,
		ForceRebuild:     f.ForceRebuild || other.ForceRebuild,
		NewlyVisible:     f.NewlyVisible || other.NewlyVisible,
	}
}

// UpdateRequest — заявка на обновление чанка
type UpdateRequest struct {
	Chunk *Chunk
	Flags UpdateFlags
}

// ChunkUpdateManager ведёт дедуплицированную FIFO-очередь заявок на
// обновление чанков. Заявка проходит две стадии: pending (ждёт фоновой
// обработки света) и ready (готова к пересборке меша потребителем).
// Для каждого чанка в каждой стадии находится не более одной заявки;
// флаги повторной постановки объединяются.
type ChunkUpdateManager struct {
	mu sync.Mutex

	pendingOrder []vec.Vec2
	pending      map[vec.Vec2]*UpdateRequest

	readyOrder []vec.Vec2
	ready      map[vec.Vec2]*UpdateRequest

	totalDuration time.Duration
	samples       int64
}

// NewChunkUpdateManager создаёт пустой менеджер обновлений
func NewChunkUpdateManager() *ChunkUpdateManager {
	return &ChunkUpdateManager{
		pending: make(map[vec.Vec2]*UpdateRequest),
		ready:   make(map[vec.Vec2]*UpdateRequest),
	}
}

// Queue ставит чанк в очередь обновления. Если заявка для чанка уже
// есть, её флаги объединяются с новыми, позиция в очереди сохраняется.
func (um *ChunkUpdateManager) Queue(c *Chunk, flags UpdateFlags) {
	if c == nil {
		return
	}

	um.mu.Lock()
	defer um.mu.Unlock()

	if req, exists := um.pending[c.Coords]; exists {
		req.Flags = req.Flags.Merge(flags)
		return
	}

	um.pending[c.Coords] = &UpdateRequest{Chunk: c, Flags: flags}
	um.pendingOrder = append(um.pendingOrder, c.Coords)
	metrics.World().PendingUpdates.Set(float64(len(um.pending) + len(um.ready)))
}

// takePending забирает до max заявок на фоновую обработку (порядок FIFO)
func (um *ChunkUpdateManager) takePending(max int) []*UpdateRequest {
	um.mu.Lock()
	defer um.mu.Unlock()

	if max <= 0 || len(um.pendingOrder) == 0 {
		return nil
	}
	if max > len(um.pendingOrder) {
		max = len(um.pendingOrder)
	}

	taken := make([]*UpdateRequest, 0, max)
	for _, coords := range um.pendingOrder[:max] {
		taken = append(taken, um.pending[coords])
		delete(um.pending, coords)
	}
	um.pendingOrder = um.pendingOrder[max:]

	return taken
}

// publishReady переводит обработанную заявку в очередь потребителя
func (um *ChunkUpdateManager) publishReady(req *UpdateRequest) {
	um.mu.Lock()
	defer um.mu.Unlock()

	if existing, exists := um.ready[req.Chunk.Coords]; exists {
		existing.Flags = existing.Flags.Merge(req.Flags)
		return
	}

	um.ready[req.Chunk.Coords] = req
	um.readyOrder = append(um.readyOrder, req.Chunk.Coords)
	metrics.World().PendingUpdates.Set(float64(len(um.pending) + len(um.ready)))
}

// Drain возвращает до max готовых заявок в порядке FIFO.
// Это единственный путь, которым заявки покидают менеджер; потребитель
// рендера вызывает Drain с ограничением, чтобы не тормозить кадр.
func (um *ChunkUpdateManager) Drain(max int) []*UpdateRequest {
	um.mu.Lock()
	defer um.mu.Unlock()

	if max <= 0 || len(um.readyOrder) == 0 {
		return nil
	}
	if max > len(um.readyOrder) {
		max = len(um.readyOrder)
	}

	drained := make([]*UpdateRequest, 0, max)
	for _, coords := range um.readyOrder[:max] {
		drained = append(drained, um.ready[coords])
		delete(um.ready, coords)
	}
	um.readyOrder = um.readyOrder[max:]
	metrics.World().PendingUpdates.Set(float64(len(um.pending) + len(um.ready)))

	return drained
}

// PendingCount возвращает общее число заявок в обеих стадиях
func (um *ChunkUpdateManager) PendingCount() int {
	um.mu.Lock()
	defer um.mu.Unlock()
	return len(um.pending) + len(um.ready)
}

// RecordServiceDuration учитывает длительность обработки одной заявки
func (um *ChunkUpdateManager) RecordServiceDuration(d time.Duration) {
	metrics.World().UpdateDuration.Observe(d.Seconds())

	um.mu.Lock()
	defer um.mu.Unlock()
	um.totalDuration += d
	um.samples++
}

// MeanServiceDuration возвращает среднюю длительность обработки заявки
func (um *ChunkUpdateManager) MeanServiceDuration() time.Duration {
	um.mu.Lock()
	defer um.mu.Unlock()

	if um.samples == 0 {
		return 0
	}
	return um.totalDuration / time.Duration(um.samples)
}
