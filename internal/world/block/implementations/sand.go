package implementations

import (
	"github.com/annel0/voxel-engine/internal/world/block"
)

// SandBehavior реализует поведение блока песка
type SandBehavior struct{}

func (b *SandBehavior) ID() block.BlockID {
	return block.SandBlockID
}

func (b *SandBehavior) Name() string {
	return "Sand"
}

func (b *SandBehavior) IsOpaque() bool {
	return true
}

func (b *SandBehavior) IsTranslucent() bool {
	return false
}

func (b *SandBehavior) Luminance() uint8 {
	return 0
}

func (b *SandBehavior) IsRemovable() bool {
	return true
}
