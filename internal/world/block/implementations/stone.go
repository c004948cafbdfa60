package implementations

import (
	"github.com/annel0/voxel-engine/internal/world/block"
)

// StoneBehavior реализует поведение каменного блока
type StoneBehavior struct{}

func (b *StoneBehavior) ID() block.BlockID {
	return block.StoneBlockID
}

func (b *StoneBehavior) Name() string {
	return "Stone"
}

func (b *StoneBehavior) IsOpaque() bool {
	return true
}

func (b *StoneBehavior) IsTranslucent() bool {
	return false
}

func (b *StoneBehavior) Luminance() uint8 {
	return 0
}

func (b *StoneBehavior) IsRemovable() bool {
	return true
}
