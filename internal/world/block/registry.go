package block

var registry = make(map[BlockID]BlockBehavior)

// Register добавляет поведение блока в регистр
func Register(id BlockID, behavior BlockBehavior) {
	registry[id] = behavior
}

// Get возвращает поведение для указанного ID
func Get(id BlockID) (BlockBehavior, bool) {
	behavior, exists := registry[id]
	return behavior, exists
}

// IsValidBlockID проверяет, является ли ID допустимым идентификатором блока
func IsValidBlockID(id BlockID) bool {
	_, exists := registry[id]
	return exists
}

// IsOpaque возвращает true, если блок преграждает свет.
// Незарегистрированные типы считаются непрозрачными.
func IsOpaque(id BlockID) bool {
	if behavior, exists := registry[id]; exists {
		return behavior.IsOpaque()
	}
	return id != AirBlockID
}

// Luminance возвращает собственное свечение блока (0 для незарегистрированных)
func Luminance(id BlockID) uint8 {
	if behavior, exists := registry[id]; exists {
		return behavior.Luminance()
	}
	return 0
}

// IsRemovable возвращает true, если блок можно заменить
func IsRemovable(id BlockID) bool {
	if behavior, exists := registry[id]; exists {
		return behavior.IsRemovable()
	}
	return id == AirBlockID
}

// BlockID представляет идентификатор типа блока (0 = воздух)
type BlockID uint8

// Константы ID блоков
const (
	AirBlockID    BlockID = iota // 0
	StoneBlockID                 // 1
	GrassBlockID                 // 2
	DirtBlockID                  // 3
	SandBlockID                  // 4
	WaterBlockID                 // 5
	WoodBlockID                  // 6
	LeavesBlockID                // 7

	// Руды (генератор ресурсов)
	CoalBlockID // 8
	GoldBlockID // 9

	// Светящиеся блоки
	TorchBlockID // 10

	// Растительность (генератор флоры)
	TallGrassBlockID // 11
	RedFlowerBlockID // 12
)

// MaxLightValue максимальная интенсивность света в канале
const MaxLightValue uint8 = 15
