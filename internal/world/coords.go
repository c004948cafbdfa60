package world

import (
	"github.com/annel0/voxel-engine/internal/vec"
)

// Размеры чанка в блоках
const (
	ChunkSizeX = 16
	ChunkSizeY = 128
	ChunkSizeZ = 16
)

// ChunkCoord возвращает координату чанка для глобальной координаты блока.
// Деление с округлением вниз: корректно для отрицательных координат,
// в отличие от усечения к нулю.
func ChunkCoord(global, dim int) int {
	c := global / dim
	if global%dim != 0 && (global < 0) != (dim < 0) {
		c--
	}
	return c
}

// LocalCoord возвращает локальную координату блока внутри чанка.
// Результат всегда лежит в [0, dim) при корректном chunkCoord.
func LocalCoord(global, chunkCoord, dim int) int {
	return global - chunkCoord*dim
}

// SplitPos разбивает глобальную позицию блока на координаты чанка
// и локальную позицию внутри него
func SplitPos(pos vec.Vec3) (vec.Vec2, vec.Vec3) {
	cx := ChunkCoord(pos.X, ChunkSizeX)
	cz := ChunkCoord(pos.Z, ChunkSizeZ)

	local := vec.Vec3{
		X: LocalCoord(pos.X, cx, ChunkSizeX),
		Y: pos.Y,
		Z: LocalCoord(pos.Z, cz, ChunkSizeZ),
	}

	return vec.Vec2{X: cx, Z: cz}, local
}

// JoinPos восстанавливает глобальную позицию блока из координат чанка
// и локальной позиции
func JoinPos(chunkCoords vec.Vec2, local vec.Vec3) vec.Vec3 {
	return vec.Vec3{
		X: chunkCoords.X*ChunkSizeX + local.X,
		Y: local.Y,
		Z: chunkCoords.Z*ChunkSizeZ + local.Z,
	}
}

// PlayerChunkCoords возвращает координаты чанка, в котором находится позиция
func PlayerChunkCoords(pos vec.Vec3F) vec.Vec2 {
	p := pos.ToVec3()
	return vec.Vec2{
		X: ChunkCoord(p.X, ChunkSizeX),
		Z: ChunkCoord(p.Z, ChunkSizeZ),
	}
}
