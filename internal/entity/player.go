// Package entity содержит сущности, живущие в мире.
package entity

import (
	"sync"

	"github.com/annel0/voxel-engine/internal/vec"
)

// Player — позиция игрока, вокруг которой строится окно видимых чанков.
// Позицию читает фоновый цикл мира, пишет внешний код, поэтому доступ
// защищён мьютексом.
type Player struct {
	mu       sync.RWMutex
	position vec.Vec3F
}

// NewPlayer создаёт игрока в указанной позиции
func NewPlayer(pos vec.Vec3F) *Player {
	return &Player{position: pos}
}

// Position возвращает текущую позицию игрока
func (p *Player) Position() vec.Vec3F {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.position
}

// SetPosition перемещает игрока
func (p *Player) SetPosition(pos vec.Vec3F) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.position = pos
}

// Move сдвигает игрока на указанный вектор
func (p *Player) Move(delta vec.Vec3F) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.position = p.position.Add(delta)
}
