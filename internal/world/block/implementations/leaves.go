package implementations

import (
	"github.com/annel0/voxel-engine/internal/world/block"
)

// LeavesBehavior реализует поведение блока листвы
type LeavesBehavior struct{}

func (b *LeavesBehavior) ID() block.BlockID {
	return block.LeavesBlockID
}

func (b *LeavesBehavior) Name() string {
	return "Leaves"
}

// IsOpaque возвращает false — листва пропускает свет
func (b *LeavesBehavior) IsOpaque() bool {
	return false
}

// IsTranslucent возвращает true — листва рисуется в прозрачном проходе
func (b *LeavesBehavior) IsTranslucent() bool {
	return true
}

func (b *LeavesBehavior) Luminance() uint8 {
	return 0
}

func (b *LeavesBehavior) IsRemovable() bool {
	return true
}
