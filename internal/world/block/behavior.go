package block

// BlockBehavior определяет свойства типа блока, от которых зависит
// распространение света и порядок отрисовки.
type BlockBehavior interface {
	ID() BlockID
	Name() string

	// IsOpaque возвращает true, если блок преграждает распространение света
	IsOpaque() bool

	// IsTranslucent возвращает true, если блок рисуется в прозрачном проходе
	IsTranslucent() bool

	// Luminance возвращает собственное свечение блока (0..15)
	Luminance() uint8

	// IsRemovable возвращает true, если блок можно заменить при установке нового
	IsRemovable() bool
}
