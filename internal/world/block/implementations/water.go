package implementations

import (
	"github.com/annel0/voxel-engine/internal/world/block"
)

// WaterBehavior реализует поведение блока воды
type WaterBehavior struct{}

func (b *WaterBehavior) ID() block.BlockID {
	return block.WaterBlockID
}

func (b *WaterBehavior) Name() string {
	return "Water"
}

// IsOpaque возвращает false — вода пропускает свет
func (b *WaterBehavior) IsOpaque() bool {
	return false
}

// IsTranslucent возвращает true — вода рисуется в прозрачном проходе
func (b *WaterBehavior) IsTranslucent() bool {
	return true
}

func (b *WaterBehavior) Luminance() uint8 {
	return 0
}

// IsRemovable возвращает false — воду нельзя заменить установкой блока
func (b *WaterBehavior) IsRemovable() bool {
	return false
}
