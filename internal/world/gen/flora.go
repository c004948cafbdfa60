package gen

import (
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// Шанс появления растительности на травяном блоке (из 1000)
const (
	tallGrassChance = 60
	flowerChance    = 8
)

// FloraGenerator — стадия озеленения: высокая трава и цветы на травяных
// блоках. Используется и в конвейере генерации, и фоновым циклом
// для периодического озеленения спящих чанков.
type FloraGenerator struct {
	seed int64
}

// NewFloraGenerator создаёт генератор растительности для указанного сида
func NewFloraGenerator(seed string) *FloraGenerator {
	return &FloraGenerator{seed: SeedFromString(seed)}
}

// Name возвращает имя стадии конвейера
func (g *FloraGenerator) Name() string {
	return "flora"
}

// Generate подсаживает растительность на свободные травяные блоки
func (g *FloraGenerator) Generate(c *world.Chunk) {
	rng := chunkRand(g.seed, c.Coords)

	for x := 0; x < world.ChunkSizeX; x++ {
		for z := 0; z < world.ChunkSizeZ; z++ {
			y := surfaceY(c, x, z)
			if y < 0 || y+1 >= world.ChunkSizeY {
				continue
			}

			roll := rng.Intn(1000)

			if c.Block(vec.Vec3{X: x, Y: y, Z: z}) != block.GrassBlockID {
				continue
			}

			above := vec.Vec3{X: x, Y: y + 1, Z: z}
			if c.Block(above) != block.AirBlockID {
				continue
			}

			switch {
			case roll < flowerChance:
				c.SetBlock(above, block.RedFlowerBlockID)
			case roll < flowerChance+tallGrassChance:
				c.SetBlock(above, block.TallGrassBlockID)
			}
		}
	}
}
