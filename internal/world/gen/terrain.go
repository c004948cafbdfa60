// Package gen содержит конвейер генерации чанков: ландшафт, руды,
// деревья и растительность. Стадии детерминированы по строковому сиду
// мира и координатам чанка.
package gen

import (
	"hash/fnv"

	"github.com/aquilax/go-perlin"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/annel0/voxel-engine/internal/world/block"
)

const (
	// Уровень воды
	waterLevel = 40
	// Базовая высота ландшафта
	baseHeight = 64
	// Амплитуда колебаний высоты
	heightAmplitude = 32
	// Горизонтальный масштаб шума высот
	heightNoiseScale = 0.01
	// Толщина слоя земли под травой
	soilDepth = 4
)

// SeedFromString преобразует строковый сид мира в числовой
func SeedFromString(seed string) int64 {
	h := fnv.New64a()
	h.Write([]byte(seed))
	return int64(h.Sum64())
}

// TerrainGenerator — первая стадия конвейера: форма ландшафта и
// базовые слои (камень, земля, трава, песок, вода). Также служит
// источником плотности для поиска точки спауна.
type TerrainGenerator struct {
	noise *perlin.Perlin
}

// NewTerrainGenerator создаёт генератор ландшафта для указанного сида
func NewTerrainGenerator(seed string) *TerrainGenerator {
	return &TerrainGenerator{
		noise: perlin.NewPerlin(2, 2, 3, SeedFromString(seed)),
	}
}

// Name возвращает имя стадии конвейера
func (g *TerrainGenerator) Name() string {
	return "terrain"
}

// HeightAt возвращает высоту поверхности в глобальной колонне (x, z)
func (g *TerrainGenerator) HeightAt(x, z int) int {
	n := g.noise.Noise2D(float64(x)*heightNoiseScale, float64(z)*heightNoiseScale)
	h := baseHeight + int(n*heightAmplitude)

	if h < 1 {
		h = 1
	}
	if h >= world.ChunkSizeY {
		h = world.ChunkSizeY - 1
	}
	return h
}

// Density возвращает плотность ландшафта в глобальной точке:
// положительна под поверхностью, отрицательна в воздухе
func (g *TerrainGenerator) Density(x, y, z int) float64 {
	return float64(g.HeightAt(x, z)-y) / float64(world.ChunkSizeY)
}

// Generate заполняет чанк слоями ландшафта
func (g *TerrainGenerator) Generate(c *world.Chunk) {
	for x := 0; x < world.ChunkSizeX; x++ {
		for z := 0; z < world.ChunkSizeZ; z++ {
			global := world.JoinPos(c.Coords, vec.Vec3{X: x, Z: z})
			height := g.HeightAt(global.X, global.Z)

			for y := 0; y < world.ChunkSizeY; y++ {
				c.SetBlock(vec.Vec3{X: x, Y: y, Z: z}, blockForLayer(y, height))
			}
		}
	}
}

// blockForLayer выбирает тип блока по глубине относительно поверхности
func blockForLayer(y, height int) block.BlockID {
	switch {
	case y == 0:
		return block.StoneBlockID
	case y > height:
		if y <= waterLevel {
			return block.WaterBlockID
		}
		return block.AirBlockID
	case y == height:
		// Берега и дно водоёмов песчаные
		if y <= waterLevel+1 {
			return block.SandBlockID
		}
		return block.GrassBlockID
	case y > height-soilDepth:
		return block.DirtBlockID
	default:
		return block.StoneBlockID
	}
}
