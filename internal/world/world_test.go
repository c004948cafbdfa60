package world

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
	_ "github.com/annel0/voxel-engine/internal/world/block/implementations"
)

// stubPlayer — игрок с фиксируемой позицией для тестов
type stubPlayer struct {
	mu  sync.Mutex
	pos vec.Vec3F
}

func (p *stubPlayer) Position() vec.Vec3F {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos
}

func (p *stubPlayer) SetPosition(pos vec.Vec3F) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos = pos
}

// fakeMetaStore — хранилище метаданных в памяти
type fakeMetaStore struct {
	mu    sync.Mutex
	meta  *WorldMeta
	saves int
}

func (s *fakeMetaStore) SaveMeta(meta WorldMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta = &meta
	s.saves++
	return nil
}

func (s *fakeMetaStore) LoadMeta() (WorldMeta, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.meta == nil {
		return WorldMeta{}, false, nil
	}
	return *s.meta, true, nil
}

// newTestWorld создаёт мир с маленьким окном видимости для тестов
func newTestWorld(t *testing.T, params Params) *World {
	t.Helper()

	if params.Title == "" {
		params.Title = "test"
	}
	if params.Seed == "" {
		params.Seed = "abc"
	}
	if params.Player == nil {
		params.Player = &stubPlayer{}
	}
	if params.ViewDistanceX == 0 {
		params.ViewDistanceX = 2
	}
	if params.ViewDistanceZ == 0 {
		params.ViewDistanceZ = 2
	}
	if params.TickInterval == 0 {
		params.TickInterval = time.Millisecond
	}

	w, err := NewWorld(params)
	require.NoError(t, err, "Создание тестового мира не должно падать")
	return w
}

func TestNewWorldValidation(t *testing.T) {
	_, err := NewWorld(Params{Seed: "abc", Player: &stubPlayer{}})
	assert.Error(t, err, "Пустой заголовок должен отклоняться")

	_, err = NewWorld(Params{Title: "test", Player: &stubPlayer{}})
	assert.Error(t, err, "Пустой сид должен отклоняться")

	_, err = NewWorld(Params{Title: "test", Seed: "abc"})
	assert.Error(t, err, "Отсутствующий игрок должен отклоняться")
}

func TestSetTimeClamps(t *testing.T) {
	w := newTestWorld(t, Params{})

	w.SetTime(0.42)
	assert.InDelta(t, 0.42, w.TimeOfDay(), 1e-9)

	w.SetTime(1.5)
	assert.InDelta(t, 0.0, w.TimeOfDay(), 1e-9, "Время больше единицы сворачивается в 0")

	w.SetTime(-0.3)
	assert.InDelta(t, 1.0, w.TimeOfDay(), 1e-9, "Отрицательное время сворачивается в 1")
}

func TestDaylightCurve(t *testing.T) {
	cases := []struct {
		time     float64
		daylight float64
	}{
		{0.00, 0.0},
		{0.05, 0.5},
		{0.10, 1.0},
		{0.30, 1.0},
		{0.50, 1.0},
		{0.55, 0.5},
		{0.60, 0.0},
		{0.80, 0.0},
		{1.00, 0.0},
	}

	for _, c := range cases {
		assert.InDelta(t, c.daylight, daylightFor(c.time), 1e-9,
			"Неверная интенсивность света для времени %.2f", c.time)
	}
}

func TestIsDaytime(t *testing.T) {
	w := newTestWorld(t, Params{})

	w.SetTime(0.3)
	assert.True(t, w.IsDaytime())
	assert.False(t, w.IsNighttime())

	w.SetTime(0.05)
	assert.False(t, w.IsDaytime(), "Раннее утро ещё не день")

	w.SetTime(0.8)
	assert.True(t, w.IsNighttime())
}

func TestFirstTickPublishesWindow(t *testing.T) {
	w := newTestWorld(t, Params{MaxUpdatesPerTick: 16})

	assert.Empty(t, w.VisibleChunks(), "До первого тика окно пустое")

	w.tick()

	visible := w.VisibleChunks()
	assert.Len(t, visible, w.viewDistanceX*w.viewDistanceZ,
		"После первого тика окно должно быть полным")

	center := PlayerChunkCoords(w.player.Position())
	assert.True(t, w.IsChunkVisible(center), "Чанк игрока должен быть в окне")

	// Все чанки окна поставлены в очередь как впервые видимые
	assert.Equal(t, len(visible), w.updates.PendingCount())
}

func TestTickProcessesUpdates(t *testing.T) {
	w := newTestWorld(t, Params{MaxUpdatesPerTick: 16})

	w.tick() // создаёт окно и ставит чанки в очередь
	w.tick() // обрабатывает свет и публикует заявки потребителю

	drained := w.updates.Drain(16)
	require.Len(t, drained, w.viewDistanceX*w.viewDistanceZ)

	for _, req := range drained {
		assert.True(t, req.Flags.NewlyVisible, "Заявка должна нести флаг первой видимости")
		assert.False(t, req.Chunk.IsFresh(), "После обработки чанк не свежий")
		assert.False(t, req.Chunk.IsDirty(), "После обработки чанк не ждёт сборки меша")
		assert.False(t, req.Chunk.IsLightDirty())
	}

	assert.Equal(t, 0, w.updates.PendingCount())
}

func TestWindowFollowsPlayer(t *testing.T) {
	player := &stubPlayer{}
	w := newTestWorld(t, Params{Player: player, MaxUpdatesPerTick: 64})

	w.tick()
	require.True(t, w.IsChunkVisible(PlayerChunkCoords(player.Position())))

	// Сдвигаем игрока на несколько чанков и тикаем ещё раз
	player.SetPosition(vec.Vec3F{X: 64, Y: 70, Z: 64})
	w.tick()

	newCenter := PlayerChunkCoords(player.Position())
	assert.True(t, w.IsChunkVisible(newCenter), "Окно должно следовать за игроком")
	assert.Len(t, w.VisibleChunks(), w.viewDistanceX*w.viewDistanceZ,
		"Размер окна не меняется при перемещении")
}

func TestMaxUpdatesPerTickBoundsWork(t *testing.T) {
	w := newTestWorld(t, Params{ViewDistanceX: 3, ViewDistanceZ: 3, MaxUpdatesPerTick: 2})

	w.tick() // в очереди 9 чанков
	require.Equal(t, 9, w.updates.PendingCount())

	w.tick() // обработаны только 2
	assert.Len(t, w.updates.Drain(100), 2, "За тик обрабатывается не больше лимита")
}

func TestStateMachine(t *testing.T) {
	w := newTestWorld(t, Params{})

	assert.Equal(t, StateStopped, w.State())

	require.NoError(t, w.Start())
	assert.Equal(t, StateRunning, w.State())
	assert.Error(t, w.Start(), "Повторный запуск должен отклоняться")

	w.Pause()
	assert.Equal(t, StatePaused, w.State())

	// Resume из паузы будит цикл
	w.Resume()
	assert.Equal(t, StateRunning, w.State())

	w.Stop()
	assert.Equal(t, StateStopped, w.State())

	// Остановленный мир можно запустить заново
	require.NoError(t, w.Start())
	w.Stop()
	assert.Equal(t, StateStopped, w.State())

	// Повторный Stop безопасен
	w.Stop()
}

func TestStopFromPause(t *testing.T) {
	w := newTestWorld(t, Params{})

	require.NoError(t, w.Start())
	w.Pause()

	// Stop должен разбудить приостановленный цикл и дождаться выхода
	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop завис на приостановленном цикле")
	}
}

func TestReplantOnlyDaytime(t *testing.T) {
	flora := &countingGenerator{}
	w := newTestWorld(t, Params{Flora: flora, ViewDistanceX: 1, ViewDistanceZ: 1, MaxUpdatesPerTick: 16})

	w.tick() // окно
	w.tick() // обработка света, сброс флагов
	w.updates.Drain(16)

	baseline := flora.runs

	// Ночью озеленение не выполняется
	w.SetTime(0.8)
	w.lastReplantTime = time.Now().Add(-2 * time.Second)
	w.replantGrass()
	assert.Equal(t, baseline, flora.runs, "Ночью ничего не растёт")

	// Днём спящий чанк озеленяется и ставится в очередь
	w.SetTime(0.3)
	w.lastReplantTime = time.Now().Add(-2 * time.Second)
	w.replantGrass()
	assert.Equal(t, baseline+1, flora.runs)
	assert.Equal(t, 1, w.updates.PendingCount(), "Озеленённый чанк должен получить заявку на свет")
}

func TestReplantSkipsBusyChunks(t *testing.T) {
	flora := &countingGenerator{}
	w := newTestWorld(t, Params{Flora: flora, ViewDistanceX: 1, ViewDistanceZ: 1, MaxUpdatesPerTick: 16})

	w.tick() // чанк в окне, но ещё свежий

	w.SetTime(0.3)
	w.lastReplantTime = time.Now().Add(-2 * time.Second)
	w.replantGrass()

	assert.Equal(t, int64(0), flora.runs, "Свежий чанк не озеленяется")
}

func TestReplantIntervalEnforced(t *testing.T) {
	flora := &countingGenerator{}
	w := newTestWorld(t, Params{Flora: flora, ViewDistanceX: 1, ViewDistanceZ: 1, MaxUpdatesPerTick: 16})

	w.tick()
	w.tick()
	w.updates.Drain(16)

	w.SetTime(0.3)
	w.replantGrass() // интервал ещё не прошёл
	assert.Equal(t, int64(0), flora.runs, "Озеленение не чаще раза в секунду")
}

func TestMetadataRestore(t *testing.T) {
	meta := &fakeMetaStore{}
	require.NoError(t, meta.SaveMeta(WorldMeta{
		ID:    "w-1",
		Seed:  "restored-seed",
		Title: "restored",
		Time:  0.42,
		Spawn: vec.Vec3F{X: 5, Y: 30, Z: 5},
	}))
	meta.saves = 0

	player := &stubPlayer{}
	w := newTestWorld(t, Params{Player: player, Meta: meta})

	assert.Equal(t, "w-1", w.ID())
	assert.Equal(t, "restored-seed", w.Seed(), "Сид должен переопределяться метаданными")
	assert.Equal(t, "restored", w.Title())
	assert.InDelta(t, 0.42, w.TimeOfDay(), 1e-9)
	assert.Equal(t, vec.Vec3F{X: 5, Y: 30, Z: 5}, w.SpawnPoint())
	assert.Equal(t, w.SpawnPoint(), player.Position(), "Игрок появляется в точке спауна")
}

func TestMetadataSavedOnStop(t *testing.T) {
	meta := &fakeMetaStore{}
	w := newTestWorld(t, Params{Meta: meta})

	w.SetTime(0.25)
	require.NoError(t, w.Start())
	w.Stop()

	require.NotNil(t, meta.meta, "Stop должен сохранить метаданные")
	assert.Equal(t, "abc", meta.meta.Seed)
	assert.Equal(t, "test", meta.meta.Title)
	assert.InDelta(t, 0.25, meta.meta.Time, 0.05)
}

func TestBlockAtUnloaded(t *testing.T) {
	w := newTestWorld(t, Params{})

	id, loaded := w.BlockAt(vec.Vec3{X: 500, Y: 50, Z: 500})
	assert.Equal(t, block.AirBlockID, id)
	assert.False(t, loaded, "Незагруженный чанк не должен создаваться при чтении")
	assert.Equal(t, 0, w.cache.Size())
}

func TestSetBlockAtOverwrite(t *testing.T) {
	w := newTestWorld(t, Params{})
	pos := vec.Vec3{X: 3, Y: 40, Z: 3}

	w.SetBlockAt(pos, block.StoneBlockID, false, true)

	id, loaded := w.BlockAt(pos)
	require.True(t, loaded)
	assert.Equal(t, block.StoneBlockID, id)

	// Без перезаписи занятая ячейка не меняется
	w.SetBlockAt(pos, block.GrassBlockID, false, false)
	id, _ = w.BlockAt(pos)
	assert.Equal(t, block.StoneBlockID, id, "Занятая ячейка без overwrite не перезаписывается")

	w.SetBlockAt(pos, block.GrassBlockID, false, true)
	id, _ = w.BlockAt(pos)
	assert.Equal(t, block.GrassBlockID, id)
}

func TestSpawnSearch(t *testing.T) {
	// Источник плотности: твёрдое тело начинается с xz = 2000
	terrain := densityFunc(func(x, y, z int) float64 {
		if x >= 2000 {
			return 0.5
		}
		return -0.5
	})

	w := newTestWorld(t, Params{Terrain: terrain})

	spawn := w.SpawnPoint()
	assert.Equal(t, 2000.0, spawn.X, "Спаун должен найтись в первой плотной точке")
	assert.Equal(t, float64(spawnSearchHeight), spawn.Y)
}

// densityFunc адаптирует функцию к интерфейсу DensitySource
type densityFunc func(x, y, z int) float64

func (f densityFunc) Density(x, y, z int) float64 { return f(x, y, z) }

func TestSpawnPointConcurrentAccess(t *testing.T) {
	player := &stubPlayer{}
	w := newTestWorld(t, Params{Player: player})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			player.SetPosition(vec.Vec3F{X: float64(idx), Y: 70, Z: float64(idx)})
			w.SetSpawnPoint()
			_ = w.SpawnPoint()
			w.ResetPlayer()
		}(i)
	}
	wg.Wait()

	w.ResetPlayer()
	assert.Equal(t, w.SpawnPoint(), player.Position(), "После ResetPlayer игрок стоит в точке спауна")
}

func TestWindUpdatesCloudOffset(t *testing.T) {
	w := newTestWorld(t, Params{})

	before := w.CloudOffset()
	w.updateWind()
	after := w.CloudOffset()

	assert.NotEqual(t, before, after, "Смещение облаков должно продвигаться ветром")
}

func TestInfo(t *testing.T) {
	w := newTestWorld(t, Params{})

	info := w.Info()
	assert.Contains(t, info, `"test"`)
	assert.Contains(t, info, `"abc"`)
}
