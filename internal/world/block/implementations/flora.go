package implementations

import (
	"github.com/annel0/voxel-engine/internal/world/block"
)

// TallGrassBehavior реализует поведение высокой травы
type TallGrassBehavior struct{}

func (b *TallGrassBehavior) ID() block.BlockID {
	return block.TallGrassBlockID
}

func (b *TallGrassBehavior) Name() string {
	return "TallGrass"
}

func (b *TallGrassBehavior) IsOpaque() bool {
	return false
}

func (b *TallGrassBehavior) IsTranslucent() bool {
	return true
}

func (b *TallGrassBehavior) Luminance() uint8 {
	return 0
}

func (b *TallGrassBehavior) IsRemovable() bool {
	return true
}

// RedFlowerBehavior реализует поведение цветка
type RedFlowerBehavior struct{}

func (b *RedFlowerBehavior) ID() block.BlockID {
	return block.RedFlowerBlockID
}

func (b *RedFlowerBehavior) Name() string {
	return "RedFlower"
}

func (b *RedFlowerBehavior) IsOpaque() bool {
	return false
}

func (b *RedFlowerBehavior) IsTranslucent() bool {
	return true
}

func (b *RedFlowerBehavior) Luminance() uint8 {
	return 0
}

func (b *RedFlowerBehavior) IsRemovable() bool {
	return true
}
