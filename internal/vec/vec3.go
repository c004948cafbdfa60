package vec

import "math"

// Vec3 представляет позицию блока в мире (целочисленные координаты)
type Vec3 struct {
	X int
	Y int
	Z int
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// DistanceTo возвращает расстояние до другого вектора
func (v Vec3) DistanceTo(other Vec3) float64 {
	dx := float64(v.X - other.X)
	dy := float64(v.Y - other.Y)
	dz := float64(v.Z - other.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Vec3F представляет позицию с плавающей точкой (игрок, точка спауна)
type Vec3F struct {
	X float64
	Y float64
	Z float64
}

// Add складывает два вектора
func (v Vec3F) Add(other Vec3F) Vec3F {
	return Vec3F{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// ToVec3 преобразует в целочисленные координаты блока (округление к ближайшему)
func (v Vec3F) ToVec3() Vec3 {
	return Vec3{
		X: int(math.Floor(v.X + 0.5)),
		Y: int(math.Floor(v.Y + 0.5)),
		Z: int(math.Floor(v.Z + 0.5)),
	}
}

// FromVec3 создает Vec3F из Vec3
func FromVec3(v Vec3) Vec3F {
	return Vec3F{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}
