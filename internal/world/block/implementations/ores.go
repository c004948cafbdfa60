package implementations

import (
	"github.com/annel0/voxel-engine/internal/world/block"
)

// CoalBehavior реализует поведение блока угольной руды
type CoalBehavior struct{}

func (b *CoalBehavior) ID() block.BlockID {
	return block.CoalBlockID
}

func (b *CoalBehavior) Name() string {
	return "Coal"
}

func (b *CoalBehavior) IsOpaque() bool {
	return true
}

func (b *CoalBehavior) IsTranslucent() bool {
	return false
}

func (b *CoalBehavior) Luminance() uint8 {
	return 0
}

func (b *CoalBehavior) IsRemovable() bool {
	return true
}

// GoldBehavior реализует поведение блока золотой руды
type GoldBehavior struct{}

func (b *GoldBehavior) ID() block.BlockID {
	return block.GoldBlockID
}

func (b *GoldBehavior) Name() string {
	return "Gold"
}

func (b *GoldBehavior) IsOpaque() bool {
	return true
}

func (b *GoldBehavior) IsTranslucent() bool {
	return false
}

func (b *GoldBehavior) Luminance() uint8 {
	return 0
}

func (b *GoldBehavior) IsRemovable() bool {
	return true
}
