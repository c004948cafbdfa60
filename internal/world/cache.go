package world

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/metrics"
	"github.com/annel0/voxel-engine/internal/vec"
)

// ChunkStore описывает долговременное хранилище чанков.
// Отсутствие записи — не ошибка: в этом случае возвращается (nil, false, nil).
type ChunkStore interface {
	SaveChunk(c *Chunk) error
	LoadChunk(coords vec.Vec2) (*Chunk, bool, error)
}

// ChunkGenerator — одна стадия конвейера генерации чанка.
// Стадии мутируют сетку блоков на месте и считаются тотальными:
// генерация не может завершиться ошибкой.
type ChunkGenerator interface {
	Name() string
	Generate(c *Chunk)
}

// ChunkCache хранит живые чанки и является их единственным владельцем.
// Промах сначала уходит в хранилище, затем в конвейер генерации.
type ChunkCache struct {
	mu       sync.RWMutex
	chunks   map[vec.Vec2]*Chunk
	flight   singleflight.Group
	store    ChunkStore
	pipeline []ChunkGenerator
	log      *logging.Logger
}

// NewChunkCache создаёт кеш чанков поверх хранилища и конвейера генерации.
// store может быть nil — тогда кеш работает только в памяти.
func NewChunkCache(store ChunkStore, pipeline []ChunkGenerator) *ChunkCache {
	return &ChunkCache{
		chunks:   make(map[vec.Vec2]*Chunk),
		store:    store,
		pipeline: pipeline,
		log:      logging.GetWorldLogger(),
	}
}

// Load возвращает чанк из кеша или хранилища, никогда не запуская генерацию.
// Отсутствие чанка — не ошибка: возвращается (nil, false).
func (cc *ChunkCache) Load(coords vec.Vec2) (*Chunk, bool) {
	cc.mu.RLock()
	c, exists := cc.chunks[coords]
	cc.mu.RUnlock()

	if exists {
		return c, true
	}

	loaded := cc.loadFromStore(coords)
	if loaded == nil {
		return nil, false
	}

	return cc.insert(loaded), true
}

// LoadOrCreate возвращает чанк из кеша, хранилища или конвейера генерации.
// Конкурентные вызовы для одной пары координат получают один и тот же
// экземпляр, конвейер выполняется не более одного раза (single-flight).
func (cc *ChunkCache) LoadOrCreate(coords vec.Vec2) *Chunk {
	cc.mu.RLock()
	c, exists := cc.chunks[coords]
	cc.mu.RUnlock()

	if exists {
		return c
	}

	key := fmt.Sprintf("%d:%d", coords.X, coords.Z)
	result, _, _ := cc.flight.Do(key, func() (interface{}, error) {
		// Проверяем еще раз: чанк мог появиться, пока мы ждали очередь
		cc.mu.RLock()
		if c, exists := cc.chunks[coords]; exists {
			cc.mu.RUnlock()
			return c, nil
		}
		cc.mu.RUnlock()

		if loaded := cc.loadFromStore(coords); loaded != nil {
			return cc.insert(loaded), nil
		}

		created := NewChunk(coords)
		for _, gen := range cc.pipeline {
			gen.Generate(created)
		}
		metrics.World().GeneratedChunks.Inc()

		return cc.insert(created), nil
	})

	return result.(*Chunk)
}

// loadFromStore пытается десериализовать чанк из хранилища.
// Любая ошибка логируется и трактуется как отсутствие записи.
func (cc *ChunkCache) loadFromStore(coords vec.Vec2) *Chunk {
	if cc.store == nil {
		return nil
	}

	c, found, err := cc.store.LoadChunk(coords)
	if err != nil {
		cc.log.Warn("Ошибка загрузки чанка %v из хранилища: %v", coords, err)
		return nil
	}
	if !found {
		return nil
	}
	return c
}

// insert добавляет чанк в кеш; при гонке возвращает уже существующий экземпляр
func (cc *ChunkCache) insert(c *Chunk) *Chunk {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if existing, exists := cc.chunks[c.Coords]; exists {
		return existing
	}

	cc.chunks[c.Coords] = c
	metrics.World().CacheSize.Set(float64(len(cc.chunks)))
	return c
}

// Flush сохраняет в хранилище все чанки с несохранёнными изменениями.
// Ошибка записи одного чанка логируется и не прерывает обход: следующий
// Flush повторит попытку. Возвращается последняя ошибка.
func (cc *ChunkCache) Flush() error {
	if cc.store == nil {
		return nil
	}

	cc.mu.RLock()
	snapshot := make([]*Chunk, 0, len(cc.chunks))
	for _, c := range cc.chunks {
		snapshot = append(snapshot, c)
	}
	cc.mu.RUnlock()

	var lastErr error
	saved := 0
	for _, c := range snapshot {
		if !c.HasUnsavedChanges() {
			continue
		}
		if err := cc.store.SaveChunk(c); err != nil {
			cc.log.Error("Ошибка сохранения чанка %v: %v", c.Coords, err)
			metrics.World().FlushErrors.Inc()
			lastErr = err
			continue
		}
		c.MarkSaved()
		saved++
	}

	if saved > 0 {
		cc.log.Info("Сохранено чанков: %d", saved)
	}
	return lastErr
}

// Size возвращает количество чанков в кеше
func (cc *ChunkCache) Size() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.chunks)
}
