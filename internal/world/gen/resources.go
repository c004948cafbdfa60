package gen

import (
	"github.com/ojrac/opensimplex-go"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/annel0/voxel-engine/internal/world/block"
)

const (
	// Масштаб шума рудных жил
	veinNoiseScale = 0.1
	// Порог появления угля
	coalThreshold = 0.82
	// Порог появления золота (жилы реже угольных)
	goldThreshold = 0.90
)

// ResourceGenerator — стадия конвейера, прорезающая рудные жилы в камне
type ResourceGenerator struct {
	noise opensimplex.Noise
}

// NewResourceGenerator создаёт генератор ресурсов для указанного сида
func NewResourceGenerator(seed string) *ResourceGenerator {
	return &ResourceGenerator{
		noise: opensimplex.New(SeedFromString(seed)),
	}
}

// Name возвращает имя стадии конвейера
func (g *ResourceGenerator) Name() string {
	return "resources"
}

// Generate заменяет часть каменных блоков рудами по трёхмерному шуму
func (g *ResourceGenerator) Generate(c *world.Chunk) {
	for x := 0; x < world.ChunkSizeX; x++ {
		for y := 0; y < world.ChunkSizeY; y++ {
			for z := 0; z < world.ChunkSizeZ; z++ {
				local := vec.Vec3{X: x, Y: y, Z: z}
				if c.Block(local) != block.StoneBlockID {
					continue
				}

				global := world.JoinPos(c.Coords, local)
				n := g.noise.Eval3(
					float64(global.X)*veinNoiseScale,
					float64(global.Y)*veinNoiseScale,
					float64(global.Z)*veinNoiseScale,
				)

				switch {
				case n > goldThreshold:
					c.SetBlock(local, block.GoldBlockID)
				case n > coalThreshold:
					c.SetBlock(local, block.CoalBlockID)
				}
			}
		}
	}
}
