package vec

import "math"

// Vec2 представляет целочисленные координаты чанка в горизонтальной плоскости
type Vec2 struct {
	X, Z int
}

// Add складывает два вектора
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Z: v.Z + other.Z}
}

// DistanceTo вычисляет расстояние до другой точки
func (v Vec2) DistanceTo(other Vec2) float64 {
	dx := float64(v.X - other.X)
	dz := float64(v.Z - other.Z)
	return math.Sqrt(dx*dx + dz*dz)
}

// Vec2F представляет 2D вектор с плавающей точкой (ветер, смещение облаков)
type Vec2F struct {
	X, Z float64
}

// Add складывает два вектора
func (v Vec2F) Add(other Vec2F) Vec2F {
	return Vec2F{X: v.X + other.X, Z: v.Z + other.Z}
}

// Mul умножает вектор на скаляр
func (v Vec2F) Mul(scalar float64) Vec2F {
	return Vec2F{X: v.X * scalar, Z: v.Z * scalar}
}

// Length возвращает длину вектора
func (v Vec2F) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Z*v.Z)
}
