package implementations

import (
	"github.com/annel0/voxel-engine/internal/world/block"
)

// GrassBehavior реализует поведение блока травяного покрова
type GrassBehavior struct{}

func (b *GrassBehavior) ID() block.BlockID {
	return block.GrassBlockID
}

func (b *GrassBehavior) Name() string {
	return "Grass"
}

func (b *GrassBehavior) IsOpaque() bool {
	return true
}

func (b *GrassBehavior) IsTranslucent() bool {
	return false
}

func (b *GrassBehavior) Luminance() uint8 {
	return 0
}

func (b *GrassBehavior) IsRemovable() bool {
	return true
}
