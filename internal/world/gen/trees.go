package gen

import (
	"math/rand"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// Число попыток посадки дерева на чанк
const treeAttemptsPerChunk = 6

// ForestGenerator — стадия конвейера, высаживающая деревья на траве.
// Детерминирован: повторная генерация того же чанка даёт тот же лес.
type ForestGenerator struct {
	seed int64
}

// NewForestGenerator создаёт генератор леса для указанного сида
func NewForestGenerator(seed string) *ForestGenerator {
	return &ForestGenerator{seed: SeedFromString(seed)}
}

// Name возвращает имя стадии конвейера
func (g *ForestGenerator) Name() string {
	return "forest"
}

// chunkRand возвращает ГПСЧ, детерминированный по сиду мира и координатам чанка
func chunkRand(seed int64, coords vec.Vec2) *rand.Rand {
	return rand.New(rand.NewSource(seed + int64(coords.X)*31 + int64(coords.Z)*17))
}

// Generate высаживает деревья в чанке
func (g *ForestGenerator) Generate(c *world.Chunk) {
	rng := chunkRand(g.seed, c.Coords)

	for i := 0; i < treeAttemptsPerChunk; i++ {
		// Отступ от краёв, чтобы крона не вылезала за чанк
		x := 2 + rng.Intn(world.ChunkSizeX-4)
		z := 2 + rng.Intn(world.ChunkSizeZ-4)

		y := surfaceY(c, x, z)
		if y < 0 || c.Block(vec.Vec3{X: x, Y: y, Z: z}) != block.GrassBlockID {
			continue
		}

		switch rng.Intn(3) {
		case 0:
			plantOak(c, rng, x, y+1, z)
		case 1:
			plantPine(c, rng, x, y+1, z)
		default:
			plantFir(c, rng, x, y+1, z)
		}
	}
}

// surfaceY возвращает высоту первого сверху непрозрачного блока в колонне
func surfaceY(c *world.Chunk, x, z int) int {
	for y := world.ChunkSizeY - 1; y >= 0; y-- {
		if block.IsOpaque(c.Block(vec.Vec3{X: x, Y: y, Z: z})) {
			return y
		}
	}
	return -1
}

// plantOak ставит дуб: короткий ствол и сферическая крона
func plantOak(c *world.Chunk, rng *rand.Rand, x, y, z int) {
	height := 4 + rng.Intn(2)

	for dy := 0; dy < height; dy++ {
		setTreeBlock(c, x, y+dy, z, block.WoodBlockID)
	}

	top := y + height
	for dx := -2; dx <= 2; dx++ {
		for dy := -2; dy <= 2; dy++ {
			for dz := -2; dz <= 2; dz++ {
				if dx*dx+dy*dy+dz*dz > 5 {
					continue
				}
				setTreeBlock(c, x+dx, top+dy, z+dz, block.LeavesBlockID)
			}
		}
	}
}

// plantPine ставит сосну: высокий ствол и плоская крона наверху
func plantPine(c *world.Chunk, rng *rand.Rand, x, y, z int) {
	height := 6 + rng.Intn(3)

	for dy := 0; dy < height; dy++ {
		setTreeBlock(c, x, y+dy, z, block.WoodBlockID)
	}

	top := y + height
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			setTreeBlock(c, x+dx, top, z+dz, block.LeavesBlockID)
			setTreeBlock(c, x+dx, top-1, z+dz, block.LeavesBlockID)
		}
	}
	setTreeBlock(c, x, top+1, z, block.LeavesBlockID)
}

// plantFir ставит ель: конус из сужающихся ярусов кроны
func plantFir(c *world.Chunk, rng *rand.Rand, x, y, z int) {
	height := 5 + rng.Intn(3)

	for dy := 0; dy < height; dy++ {
		setTreeBlock(c, x, y+dy, z, block.WoodBlockID)
	}

	radius := 2
	for dy := height - 4; dy <= height; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				if dx == 0 && dz == 0 && dy < height {
					continue
				}
				if dx*dx+dz*dz > radius*radius {
					continue
				}
				setTreeBlock(c, x+dx, y+dy, z+dz, block.LeavesBlockID)
			}
		}
		if radius > 0 {
			radius--
		}
	}
}

// setTreeBlock ставит блок дерева, не выходя за чанк и не затирая ландшафт
func setTreeBlock(c *world.Chunk, x, y, z int, id block.BlockID) {
	local := vec.Vec3{X: x, Y: y, Z: z}
	if !world.InBounds(local) {
		return
	}
	existing := c.Block(local)
	if existing != block.AirBlockID && id == block.LeavesBlockID {
		return
	}
	c.SetBlock(local, id)
}
