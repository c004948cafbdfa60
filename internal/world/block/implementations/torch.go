package implementations

import (
	"github.com/annel0/voxel-engine/internal/world/block"
)

// TorchBehavior реализует поведение факела — источника блочного света
type TorchBehavior struct{}

func (b *TorchBehavior) ID() block.BlockID {
	return block.TorchBlockID
}

func (b *TorchBehavior) Name() string {
	return "Torch"
}

func (b *TorchBehavior) IsOpaque() bool {
	return false
}

func (b *TorchBehavior) IsTranslucent() bool {
	return true
}

// Luminance возвращает максимальную интенсивность — факел светится
func (b *TorchBehavior) Luminance() uint8 {
	return 15
}

func (b *TorchBehavior) IsRemovable() bool {
	return true
}
