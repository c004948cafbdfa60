package implementations

import (
	"github.com/annel0/voxel-engine/internal/world/block"
)

// WoodBehavior реализует поведение блока древесины (ствол дерева)
type WoodBehavior struct{}

func (b *WoodBehavior) ID() block.BlockID {
	return block.WoodBlockID
}

func (b *WoodBehavior) Name() string {
	return "Wood"
}

func (b *WoodBehavior) IsOpaque() bool {
	return true
}

func (b *WoodBehavior) IsTranslucent() bool {
	return false
}

func (b *WoodBehavior) Luminance() uint8 {
	return 0
}

func (b *WoodBehavior) IsRemovable() bool {
	return true
}
