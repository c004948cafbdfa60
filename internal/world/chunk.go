package world

import (
	"fmt"
	"sync"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// LightChannel выбирает один из двух каналов освещения чанка
type LightChannel int

const (
	// ChannelSun — солнечный свет, входит сверху мира
	ChannelSun LightChannel = iota
	// ChannelBlock — свет от светящихся блоков
	ChannelBlock
)

// Chunk представляет участок мира размером 16x128x16 блоков.
// Единственный живой экземпляр на пару координат держит ChunkCache;
// остальные компоненты хранят невладеющие ссылки.
type Chunk struct {
	Coords vec.Vec2 // Координаты чанка в мире (X, Z)

	blocks     [ChunkSizeX][ChunkSizeY][ChunkSizeZ]block.BlockID
	sunLight   [ChunkSizeX][ChunkSizeY][ChunkSizeZ]uint8
	blockLight [ChunkSizeX][ChunkSizeY][ChunkSizeZ]uint8

	fresh      bool // Свет ещё ни разу не генерировался
	dirty      bool // Блоки изменились с последней сборки меша
	lightDirty bool // Свет изменился с последней сборки меша
	modified   bool // Есть несохранённые изменения (для Flush)

	Mu sync.RWMutex // Мьютекс для безопасного доступа
}

// NewChunk создаёт новый пустой чанк с указанными координатами
func NewChunk(coords vec.Vec2) *Chunk {
	return &Chunk{
		Coords: coords,
		fresh:  true,
		dirty:  true,
	}
}

// InBounds проверяет, лежит ли локальная позиция внутри чанка
func InBounds(local vec.Vec3) bool {
	return local.X >= 0 && local.X < ChunkSizeX &&
		local.Y >= 0 && local.Y < ChunkSizeY &&
		local.Z >= 0 && local.Z < ChunkSizeZ
}

// Block возвращает ID блока по локальным координатам.
// Вне границ чанка возвращается воздух.
func (c *Chunk) Block(local vec.Vec3) block.BlockID {
	if !InBounds(local) {
		return block.AirBlockID
	}

	c.Mu.RLock()
	defer c.Mu.RUnlock()

	return c.blocks[local.X][local.Y][local.Z]
}

// SetBlock устанавливает блок по локальным координатам и помечает чанк изменённым
func (c *Chunk) SetBlock(local vec.Vec3, id block.BlockID) {
	if !InBounds(local) {
		return
	}

	c.Mu.Lock()
	defer c.Mu.Unlock()

	c.blocks[local.X][local.Y][local.Z] = id
	c.dirty = true
	c.modified = true
}

// Light возвращает интенсивность света в указанном канале.
// Выше мира солнечный канал полностью освещён, ниже — темнота.
func (c *Chunk) Light(local vec.Vec3, channel LightChannel) uint8 {
	if !InBounds(local) {
		if channel == ChannelSun && local.Y >= ChunkSizeY &&
			local.X >= 0 && local.X < ChunkSizeX && local.Z >= 0 && local.Z < ChunkSizeZ {
			return block.MaxLightValue
		}
		return 0
	}

	c.Mu.RLock()
	defer c.Mu.RUnlock()

	if channel == ChannelSun {
		return c.sunLight[local.X][local.Y][local.Z]
	}
	return c.blockLight[local.X][local.Y][local.Z]
}

// SetLight устанавливает интенсивность света в указанном канале
func (c *Chunk) SetLight(local vec.Vec3, value uint8, channel LightChannel) {
	if !InBounds(local) {
		return
	}
	if value > block.MaxLightValue {
		value = block.MaxLightValue
	}

	c.Mu.Lock()
	defer c.Mu.Unlock()

	if channel == ChannelSun {
		c.sunLight[local.X][local.Y][local.Z] = value
	} else {
		c.blockLight[local.X][local.Y][local.Z] = value
	}
	c.lightDirty = true
	c.modified = true
}

// InitSunlight выполняет вертикальный проход по всем колоннам чанка:
// от верха мира до первого непрозрачного блока ячейки получают полный
// солнечный свет, ниже — ноль (дальше свет разносит движок).
func (c *Chunk) InitSunlight() {
	c.Mu.Lock()
	defer c.Mu.Unlock()

	for x := 0; x < ChunkSizeX; x++ {
		for z := 0; z < ChunkSizeZ; z++ {
			c.initSunColumnLocked(x, z)
		}
	}
	c.lightDirty = true
}

// InitSunColumn переинициализирует одну колонну солнечного света
func (c *Chunk) InitSunColumn(x, z int) {
	if x < 0 || x >= ChunkSizeX || z < 0 || z >= ChunkSizeZ {
		return
	}

	c.Mu.Lock()
	defer c.Mu.Unlock()

	c.initSunColumnLocked(x, z)
	c.lightDirty = true
}

func (c *Chunk) initSunColumnLocked(x, z int) {
	covered := false
	for y := ChunkSizeY - 1; y >= 0; y-- {
		if !covered && block.IsOpaque(c.blocks[x][y][z]) {
			covered = true
		}

		if covered {
			c.sunLight[x][y][z] = 0
		} else {
			c.sunLight[x][y][z] = block.MaxLightValue
		}
	}
}

// SunObstructed возвращает true, если выше локальной позиции в этой колонне
// есть непрозрачный блок
func (c *Chunk) SunObstructed(local vec.Vec3) bool {
	if !InBounds(local) {
		return false
	}

	c.Mu.RLock()
	defer c.Mu.RUnlock()

	for y := local.Y + 1; y < ChunkSizeY; y++ {
		if block.IsOpaque(c.blocks[local.X][y][local.Z]) {
			return true
		}
	}
	return false
}

// IsFresh возвращает true, если для чанка ещё не генерировался свет
func (c *Chunk) IsFresh() bool {
	c.Mu.RLock()
	defer c.Mu.RUnlock()
	return c.fresh
}

// SetFresh устанавливает флаг свежести чанка
func (c *Chunk) SetFresh(fresh bool) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.fresh = fresh
}

// IsDirty возвращает true, если блоки изменились с последней сборки меша
func (c *Chunk) IsDirty() bool {
	c.Mu.RLock()
	defer c.Mu.RUnlock()
	return c.dirty
}

// SetDirty устанавливает флаг изменённых блоков
func (c *Chunk) SetDirty(dirty bool) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.dirty = dirty
}

// IsLightDirty возвращает true, если свет изменился с последней сборки меша
func (c *Chunk) IsLightDirty() bool {
	c.Mu.RLock()
	defer c.Mu.RUnlock()
	return c.lightDirty
}

// SetLightDirty устанавливает флаг изменённого света
func (c *Chunk) SetLightDirty(dirty bool) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.lightDirty = dirty
}

// HasUnsavedChanges возвращает true, если чанк изменялся после последнего сохранения
func (c *Chunk) HasUnsavedChanges() bool {
	c.Mu.RLock()
	defer c.Mu.RUnlock()
	return c.modified
}

// MarkSaved сбрасывает флаг несохранённых изменений
func (c *Chunk) MarkSaved() {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.modified = false
}

// Snapshot возвращает копии сеток блоков и света в плоском виде
// (порядок обхода x, y, z) для сериализации
func (c *Chunk) Snapshot() (blocks, sun, light []byte) {
	c.Mu.RLock()
	defer c.Mu.RUnlock()

	n := ChunkSizeX * ChunkSizeY * ChunkSizeZ
	blocks = make([]byte, 0, n)
	sun = make([]byte, 0, n)
	light = make([]byte, 0, n)

	for x := 0; x < ChunkSizeX; x++ {
		for y := 0; y < ChunkSizeY; y++ {
			for z := 0; z < ChunkSizeZ; z++ {
				blocks = append(blocks, byte(c.blocks[x][y][z]))
				sun = append(sun, c.sunLight[x][y][z])
				light = append(light, c.blockLight[x][y][z])
			}
		}
	}
	return blocks, sun, light
}

// Restore заполняет сетки чанка из плоских копий, полученных Snapshot.
// Восстановленный чанк не считается свежим: свет уже посчитан.
func (c *Chunk) Restore(blocks, sun, light []byte) error {
	n := ChunkSizeX * ChunkSizeY * ChunkSizeZ
	if len(blocks) != n || len(sun) != n || len(light) != n {
		return fmt.Errorf("некорректный размер данных чанка: %d/%d/%d, ожидалось %d",
			len(blocks), len(sun), len(light), n)
	}

	c.Mu.Lock()
	defer c.Mu.Unlock()

	i := 0
	for x := 0; x < ChunkSizeX; x++ {
		for y := 0; y < ChunkSizeY; y++ {
			for z := 0; z < ChunkSizeZ; z++ {
				c.blocks[x][y][z] = block.BlockID(blocks[i])
				c.sunLight[x][y][z] = sun[i]
				c.blockLight[x][y][z] = light[i]
				i++
			}
		}
	}

	c.fresh = false
	c.dirty = true
	c.modified = false
	return nil
}
