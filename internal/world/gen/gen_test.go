package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/annel0/voxel-engine/internal/world/block"
	_ "github.com/annel0/voxel-engine/internal/world/block/implementations"
)

// generate прогоняет чанк через стадии конвейера
func generate(coords vec.Vec2, stages ...world.ChunkGenerator) *world.Chunk {
	c := world.NewChunk(coords)
	for _, stage := range stages {
		stage.Generate(c)
	}
	return c
}

func TestTerrainDeterministic(t *testing.T) {
	coords := vec.Vec2{X: 3, Z: -5}

	first := generate(coords, NewTerrainGenerator("abc"))
	second := generate(coords, NewTerrainGenerator("abc"))

	wantBlocks, _, _ := first.Snapshot()
	gotBlocks, _, _ := second.Snapshot()
	assert.Equal(t, wantBlocks, gotBlocks, "Одинаковый сид должен давать одинаковый ландшафт")
}

func TestTerrainSeedChangesLandscape(t *testing.T) {
	coords := vec.Vec2{X: 3, Z: -5}

	first := generate(coords, NewTerrainGenerator("abc"))
	second := generate(coords, NewTerrainGenerator("xyz"))

	wantBlocks, _, _ := first.Snapshot()
	gotBlocks, _, _ := second.Snapshot()
	assert.NotEqual(t, wantBlocks, gotBlocks, "Разные сиды должны давать разный ландшафт")
}

func TestTerrainLayers(t *testing.T) {
	g := NewTerrainGenerator("abc")
	c := generate(vec.Vec2{}, g)

	for x := 0; x < world.ChunkSizeX; x++ {
		for z := 0; z < world.ChunkSizeZ; z++ {
			global := world.JoinPos(c.Coords, vec.Vec3{X: x, Z: z})
			height := g.HeightAt(global.X, global.Z)

			require.Greater(t, height, 0)
			require.Less(t, height, world.ChunkSizeY)

			assert.Equal(t, block.StoneBlockID, c.Block(vec.Vec3{X: x, Y: 0, Z: z}),
				"Нижний слой всегда каменный")

			surface := c.Block(vec.Vec3{X: x, Y: height, Z: z})
			assert.Contains(t, []block.BlockID{block.GrassBlockID, block.SandBlockID}, surface,
				"Поверхность — трава или песок")

			above := c.Block(vec.Vec3{X: x, Y: height + 1, Z: z})
			assert.Contains(t, []block.BlockID{block.AirBlockID, block.WaterBlockID}, above,
				"Над поверхностью воздух или вода")
		}
	}
}

func TestTerrainDensitySign(t *testing.T) {
	g := NewTerrainGenerator("abc")

	h := g.HeightAt(100, 100)
	assert.Positive(t, g.Density(100, h-5, 100), "Под поверхностью плотность положительна")
	assert.Negative(t, g.Density(100, h+5, 100), "Над поверхностью плотность отрицательна")
}

func TestResourcesOnlyReplaceStone(t *testing.T) {
	terrain := NewTerrainGenerator("abc")
	resources := NewResourceGenerator("abc")

	plain := generate(vec.Vec2{X: 1, Z: 1}, terrain)
	mined := generate(vec.Vec2{X: 1, Z: 1}, terrain, resources)

	plainBlocks, _, _ := plain.Snapshot()
	minedBlocks, _, _ := mined.Snapshot()

	for i := range plainBlocks {
		if plainBlocks[i] == minedBlocks[i] {
			continue
		}
		assert.Equal(t, byte(block.StoneBlockID), plainBlocks[i],
			"Руды должны замещать только камень")
		assert.Contains(t, []byte{byte(block.CoalBlockID), byte(block.GoldBlockID)}, minedBlocks[i])
	}
}

func TestForestDeterministic(t *testing.T) {
	coords := vec.Vec2{X: 2, Z: 2}
	terrain := NewTerrainGenerator("abc")
	forest := NewForestGenerator("abc")

	first := generate(coords, terrain, forest)
	second := generate(coords, terrain, forest)

	wantBlocks, _, _ := first.Snapshot()
	gotBlocks, _, _ := second.Snapshot()
	assert.Equal(t, wantBlocks, gotBlocks, "Лес должен быть детерминирован по сиду и координатам")
}

func TestFloraGrowsOnGrassOnly(t *testing.T) {
	terrain := NewTerrainGenerator("abc")
	flora := NewFloraGenerator("abc")

	c := generate(vec.Vec2{}, terrain, flora)

	for x := 0; x < world.ChunkSizeX; x++ {
		for z := 0; z < world.ChunkSizeZ; z++ {
			for y := 1; y < world.ChunkSizeY; y++ {
				id := c.Block(vec.Vec3{X: x, Y: y, Z: z})
				if id != block.TallGrassBlockID && id != block.RedFlowerBlockID {
					continue
				}
				below := c.Block(vec.Vec3{X: x, Y: y - 1, Z: z})
				assert.Equal(t, block.GrassBlockID, below,
					"Растительность растёт только на траве")
			}
		}
	}
}

func TestSeedFromStringStable(t *testing.T) {
	assert.Equal(t, SeedFromString("abc"), SeedFromString("abc"))
	assert.NotEqual(t, SeedFromString("abc"), SeedFromString("abd"))
}

func BenchmarkTerrainGenerate(b *testing.B) {
	g := NewTerrainGenerator("abc")
	for i := 0; i < b.N; i++ {
		c := world.NewChunk(vec.Vec2{X: i, Z: -i})
		g.Generate(c)
	}
}
