package implementations

import (
	"github.com/annel0/voxel-engine/internal/world/block"
)

// DirtBehavior реализует поведение блока земли
type DirtBehavior struct{}

func (b *DirtBehavior) ID() block.BlockID {
	return block.DirtBlockID
}

func (b *DirtBehavior) Name() string {
	return "Dirt"
}

func (b *DirtBehavior) IsOpaque() bool {
	return true
}

func (b *DirtBehavior) IsTranslucent() bool {
	return false
}

func (b *DirtBehavior) Luminance() uint8 {
	return 0
}

func (b *DirtBehavior) IsRemovable() bool {
	return true
}
