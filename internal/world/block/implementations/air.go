package implementations

import (
	"github.com/annel0/voxel-engine/internal/world/block"
)

// AirBehavior реализует поведение пустого блока
type AirBehavior struct{}

// ID возвращает идентификатор блока
func (b *AirBehavior) ID() block.BlockID {
	return block.AirBlockID
}

// Name возвращает имя блока
func (b *AirBehavior) Name() string {
	return "Air"
}

// IsOpaque возвращает false — воздух пропускает свет
func (b *AirBehavior) IsOpaque() bool {
	return false
}

// IsTranslucent возвращает false — воздух не отрисовывается
func (b *AirBehavior) IsTranslucent() bool {
	return false
}

// Luminance возвращает 0 — воздух не светится
func (b *AirBehavior) Luminance() uint8 {
	return 0
}

// IsRemovable возвращает true — воздух всегда можно заменить
func (b *AirBehavior) IsRemovable() bool {
	return true
}
