package storage

import (
	"sync"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
)

// MemoryStore — хранилище чанков и метаданных в памяти. Используется в
// тестах и в режиме без персистентности. Хранит сериализованные копии,
// а не живые указатели: загрузка всегда возвращает независимый чанк.
type MemoryStore struct {
	mu     sync.RWMutex
	chunks map[vec.Vec2]chunkRecord
	meta   *world.WorldMeta
}

// NewMemoryStore создаёт пустое хранилище в памяти
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		chunks: make(map[vec.Vec2]chunkRecord),
	}
}

// SaveChunk сохраняет копию сеток чанка
func (s *MemoryStore) SaveChunk(c *world.Chunk) error {
	blocks, sun, light := c.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks[c.Coords] = chunkRecord{
		X:      c.Coords.X,
		Z:      c.Coords.Z,
		Blocks: blocks,
		Sun:    sun,
		Light:  light,
	}
	return nil
}

// LoadChunk восстанавливает чанк из сохранённой копии
func (s *MemoryStore) LoadChunk(coords vec.Vec2) (*world.Chunk, bool, error) {
	s.mu.RLock()
	record, exists := s.chunks[coords]
	s.mu.RUnlock()

	if !exists {
		return nil, false, nil
	}

	c := world.NewChunk(coords)
	if err := c.Restore(record.Blocks, record.Sun, record.Light); err != nil {
		return nil, false, err
	}
	return c, true, nil
}

// SaveMeta сохраняет метаданные мира
func (s *MemoryStore) SaveMeta(meta world.WorldMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta = &meta
	return nil
}

// LoadMeta возвращает сохранённые метаданные мира
func (s *MemoryStore) LoadMeta() (world.WorldMeta, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.meta == nil {
		return world.WorldMeta{}, false, nil
	}
	return *s.meta, true, nil
}

// Len возвращает число сохранённых чанков
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}
