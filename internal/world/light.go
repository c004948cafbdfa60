package world

import (
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// Смещения 6-соседства (4 горизонтальных + 2 вертикальных)
var neighborOffsets = [6]vec.Vec3{
	{X: 1}, {X: -1},
	{Y: 1}, {Y: -1},
	{Z: 1}, {Z: -1},
}

// LightAt возвращает интенсивность света в глобальной позиции.
// Незагруженный чанк считается полностью освещённым солнцем (15)
// и неосвещённым блочным светом (0): несгенерированное пространство
// не отбрасывает тень.
func (w *World) LightAt(pos vec.Vec3, channel LightChannel) uint8 {
	chunkCoords, local := SplitPos(pos)

	c, ok := w.cache.Load(chunkCoords)
	if !ok {
		if channel == ChannelSun {
			return block.MaxLightValue
		}
		return 0
	}

	return c.Light(local, channel)
}

// SetLightAt устанавливает интенсивность света в глобальной позиции,
// создавая чанк при необходимости
func (w *World) SetLightAt(pos vec.Vec3, value uint8, channel LightChannel) {
	chunkCoords, local := SplitPos(pos)
	c := w.cache.LoadOrCreate(chunkCoords)
	c.SetLight(local, value, channel)
}

// SpreadLight разносит свет от позиции с уже записанным значением value.
// Ограниченный обход в ширину по явному рабочему списку: сосед получает
// value-1, если он прозрачен и его текущее значение строго меньше.
// Обход пересекает границы чанков, но не создаёт новые чанки —
// незагруженный сосед пропускается (краевая политика).
func (w *World) SpreadLight(pos vec.Vec3, value uint8, channel LightChannel) {
	if value <= 1 {
		return
	}

	type workItem struct {
		pos vec.Vec3
		val uint8
	}

	queue := make([]workItem, 0, 64)
	queue = append(queue, workItem{pos: pos, val: value})

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		next := item.val - 1
		if next == 0 {
			continue
		}

		for _, off := range neighborOffsets {
			npos := item.pos.Add(off)
			chunkCoords, local := SplitPos(npos)

			c, ok := w.cache.Load(chunkCoords)
			if !ok || !InBounds(local) {
				continue
			}
			if block.IsOpaque(c.Block(local)) {
				continue
			}

			if c.Light(local, channel) < next {
				c.SetLight(local, next, channel)
				queue = append(queue, workItem{pos: npos, val: next})
			}
		}
	}
}

// RefreshLightAt пересчитывает свет в позиции как максимум собственного
// источника и значений соседей минус затухание. Понижение значения
// каскадно пересчитывает соседей (ретракция по рабочему списку);
// повышение передаётся SpreadLight. Монотонный флуд-фил сам по себе
// не умеет корректно гасить свет при исчезновении источника — нужна
// именно эта двунаправленная схема.
func (w *World) RefreshLightAt(pos vec.Vec3, channel LightChannel) {
	queue := make([]vec.Vec3, 0, 64)
	queue = append(queue, pos)

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		chunkCoords, local := SplitPos(p)
		c, ok := w.cache.Load(chunkCoords)
		if !ok || !InBounds(local) {
			continue
		}

		current := c.Light(local, channel)

		var computed uint8
		if block.IsOpaque(c.Block(local)) {
			computed = 0
		} else {
			computed = w.lightSourceAt(c, local, channel)
			for _, off := range neighborOffsets {
				nv := w.LightAt(p.Add(off), channel)
				if nv > 0 && nv-1 > computed {
					computed = nv - 1
				}
			}
		}

		if computed < current {
			c.SetLight(local, computed, channel)
			for _, off := range neighborOffsets {
				queue = append(queue, p.Add(off))
			}
		} else if computed > current {
			c.SetLight(local, computed, channel)
			w.SpreadLight(p, computed, channel)
		}
	}
}

// lightSourceAt возвращает собственное значение источника в ячейке:
// для солнечного канала — 15, если колонна выше не перекрыта;
// для блочного — светимость типа блока.
func (w *World) lightSourceAt(c *Chunk, local vec.Vec3, channel LightChannel) uint8 {
	if channel == ChannelSun {
		if !c.SunObstructed(local) {
			return block.MaxLightValue
		}
		return 0
	}
	return block.Luminance(c.Block(local))
}

// RefreshSunlightColumn перезапускает вертикальный проход солнечного света
// в колонне (x, z): сверху вниз до первого непрозрачного блока — полный
// свет, ниже — ноль, затем опциональные распространение и ретракция.
func (w *World) RefreshSunlightColumn(x, z int, spread, refresh bool) {
	chunkCoords, base := SplitPos(vec.Vec3{X: x, Y: 0, Z: z})
	c := w.cache.LoadOrCreate(chunkCoords)

	c.InitSunColumn(base.X, base.Z)

	for y := ChunkSizeY - 1; y >= 0; y-- {
		local := vec.Vec3{X: base.X, Y: y, Z: base.Z}
		global := vec.Vec3{X: x, Y: y, Z: z}

		value := c.Light(local, ChannelSun)
		if spread && value > 1 {
			w.SpreadLight(global, value, ChannelSun)
		}
		if refresh && value == 0 && !block.IsOpaque(c.Block(local)) {
			w.RefreshLightAt(global, ChannelSun)
		}
	}
}

// generateChunkLight выполняет первичную генерацию света свежего чанка:
// вертикальная инициализация солнечного канала, посев светящихся блоков,
// затем распространение через границы ячеек и чанков.
func (w *World) generateChunkLight(c *Chunk) {
	if c.IsFresh() {
		c.InitSunlight()
	}

	for x := 0; x < ChunkSizeX; x++ {
		for y := 0; y < ChunkSizeY; y++ {
			for z := 0; z < ChunkSizeZ; z++ {
				local := vec.Vec3{X: x, Y: y, Z: z}
				global := JoinPos(c.Coords, local)

				if v := c.Light(local, ChannelSun); v > 1 {
					w.SpreadLight(global, v, ChannelSun)
				}

				if lum := block.Luminance(c.Block(local)); lum > 0 {
					c.SetLight(local, lum, ChannelBlock)
					w.SpreadLight(global, lum, ChannelBlock)
				}
			}
		}
	}

	w.pullBoundaryLight(c)

	c.SetFresh(false)
}

// pullBoundaryLight втягивает в чанк свет уже загруженных соседей.
// Вертикальная инициализация солнечного канала стирает вклад, который
// соседи успели распространить через границу, пока чанк был свежим;
// без обратного втягивания смежные ячейки по разные стороны границы
// расходились бы больше чем на единицу.
func (w *World) pullBoundaryLight(c *Chunk) {
	channels := [2]LightChannel{ChannelSun, ChannelBlock}

	for x := 0; x < ChunkSizeX; x++ {
		for z := 0; z < ChunkSizeZ; z++ {
			if x != 0 && x != ChunkSizeX-1 && z != 0 && z != ChunkSizeZ-1 {
				continue
			}

			for y := 0; y < ChunkSizeY; y++ {
				local := vec.Vec3{X: x, Y: y, Z: z}
				if block.IsOpaque(c.Block(local)) {
					continue
				}
				global := JoinPos(c.Coords, local)

				for _, off := range neighborOffsets {
					if off.Y != 0 {
						continue
					}

					nChunkCoords, nLocal := SplitPos(global.Add(off))
					if nChunkCoords == c.Coords {
						continue
					}
					nc, ok := w.cache.Load(nChunkCoords)
					if !ok {
						continue
					}

					for _, channel := range channels {
						nv := nc.Light(nLocal, channel)
						if nv > 1 && nv-1 > c.Light(local, channel) {
							c.SetLight(local, nv-1, channel)
							w.SpreadLight(global, nv-1, channel)
						}
					}
				}
			}
		}
	}
}
