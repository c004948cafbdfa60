package implementations

import (
	"github.com/annel0/voxel-engine/internal/world/block"
)

// RegisterAllBlocks регистрирует все стандартные типы блоков в регистре
func RegisterAllBlocks() {
	block.Register(block.AirBlockID, &AirBehavior{})
	block.Register(block.StoneBlockID, &StoneBehavior{})
	block.Register(block.GrassBlockID, &GrassBehavior{})
	block.Register(block.DirtBlockID, &DirtBehavior{})
	block.Register(block.SandBlockID, &SandBehavior{})
	block.Register(block.WaterBlockID, &WaterBehavior{})
	block.Register(block.WoodBlockID, &WoodBehavior{})
	block.Register(block.LeavesBlockID, &LeavesBehavior{})
	block.Register(block.CoalBlockID, &CoalBehavior{})
	block.Register(block.GoldBlockID, &GoldBehavior{})
	block.Register(block.TorchBlockID, &TorchBehavior{})
	block.Register(block.TallGrassBlockID, &TallGrassBehavior{})
	block.Register(block.RedFlowerBlockID, &RedFlowerBehavior{})
}

func init() {
	RegisterAllBlocks()
}
