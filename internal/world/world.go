package world

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// Player поставляет текущую позицию игрока и принимает точку спауна
type Player interface {
	Position() vec.Vec3F
	SetPosition(pos vec.Vec3F)
}

// DensitySource отдаёт плотность ландшафта в точке; используется
// для поиска точки спауна
type DensitySource interface {
	Density(x, y, z int) float64
}

// WorldMeta — запись метаданных мира в хранилище
type WorldMeta struct {
	ID    string    `json:"id"`
	Seed  string    `json:"seed"`
	Title string    `json:"title"`
	Time  float64   `json:"time"`
	Spawn vec.Vec3F `json:"spawn"`
}

// MetaStore описывает долговременное хранилище метаданных мира.
// Отсутствие записи — не ошибка: возвращается (zero, false, nil).
type MetaStore interface {
	SaveMeta(meta WorldMeta) error
	LoadMeta() (WorldMeta, bool, error)
}

// Состояния фонового цикла
type LoopState int32

const (
	StateStopped LoopState = iota
	StateRunning
	StatePaused
)

// String возвращает строковое представление состояния цикла
func (s LoopState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

const (
	// Интервал измерения игрового времени
	daytimeSampleInterval = 100 * time.Millisecond
	// Минимальный интервал между проходами озеленения
	replantInterval = 1000 * time.Millisecond
	// Граница отражения смещения облаков
	cloudOffsetBound = 256.0
	// Высота, на которой ищется точка спауна
	spawnSearchHeight = 30
)

// Params — параметры создания мира
type Params struct {
	Title  string
	Seed   string
	Player Player

	Store     ChunkStore       // Хранилище чанков (может быть nil)
	Meta      MetaStore        // Хранилище метаданных (может быть nil)
	Pipeline  []ChunkGenerator // Конвейер генерации: ландшафт, ресурсы, лес
	Flora     ChunkGenerator   // Отдельная стадия озеленения
	Terrain   DensitySource    // Источник плотности для поиска спауна (может быть nil)

	ViewDistanceX     int
	ViewDistanceZ     int
	DayLengthSeconds  int
	TickInterval      time.Duration
	MaxUpdatesPerTick int
}

// World владеет кешем чанков, менеджером обновлений и фоновым циклом
// симуляции. Видимое окно чанков публикуется атомарно: потребитель
// рендера никогда не видит наполовину обновлённое множество.
type World struct {
	id    string
	title string
	seed  string

	player  Player
	cache   *ChunkCache
	updates *ChunkUpdateManager
	meta    MetaStore
	flora   ChunkGenerator
	terrain DensitySource

	viewDistanceX     int
	viewDistanceZ     int
	dayLengthSeconds  float64
	tickInterval      time.Duration
	maxUpdatesPerTick int

	stateMu   sync.Mutex
	stateCond *sync.Cond
	state     LoopState
	done      chan struct{}

	window atomic.Value // map[vec.Vec2]*Chunk

	timeMu          sync.RWMutex
	timeOfDay       float64
	daylight        float64
	lastTimeSample  time.Time
	lastReplantTime time.Time

	windMu         sync.Mutex
	windDirection  vec.Vec2F
	cloudOffset    vec.Vec2F
	nextWindUpdate time.Duration
	lastWindUpdate time.Time

	rng *rand.Rand
	log *logging.Logger

	spawnMu sync.RWMutex
	spawn   vec.Vec3F
}

// NewWorld создаёт мир. Пустой заголовок или сид, а также отсутствующий
// игрок делают мир неадресуемым и отклоняются сразу.
func NewWorld(params Params) (*World, error) {
	if params.Title == "" {
		return nil, fmt.Errorf("не задан заголовок мира")
	}
	if params.Seed == "" {
		return nil, fmt.Errorf("не задан сид мира")
	}
	if params.Player == nil {
		return nil, fmt.Errorf("не задан игрок")
	}

	w := &World{
		id:                uuid.NewString(),
		title:             params.Title,
		seed:              params.Seed,
		player:            params.Player,
		updates:           NewChunkUpdateManager(),
		meta:              params.Meta,
		flora:             params.Flora,
		terrain:           params.Terrain,
		viewDistanceX:     params.ViewDistanceX,
		viewDistanceZ:     params.ViewDistanceZ,
		dayLengthSeconds:  float64(params.DayLengthSeconds),
		tickInterval:      params.TickInterval,
		maxUpdatesPerTick: params.MaxUpdatesPerTick,
		state:             StateStopped,
		lastTimeSample:    time.Now(),
		lastReplantTime:   time.Now(),
		windDirection:     vec.Vec2F{X: 0.25},
		nextWindUpdate:    32 * time.Second,
		lastWindUpdate:    time.Now(),
		log:               logging.GetWorldLogger(),
	}
	w.stateCond = sync.NewCond(&w.stateMu)
	w.cache = NewChunkCache(params.Store, params.Pipeline)
	w.window.Store(make(map[vec.Vec2]*Chunk))

	if w.viewDistanceX <= 0 {
		w.viewDistanceX = 16
	}
	if w.viewDistanceZ <= 0 {
		w.viewDistanceZ = 16
	}
	if w.dayLengthSeconds <= 0 {
		w.dayLengthSeconds = 720
	}
	if w.tickInterval <= 0 {
		w.tickInterval = 50 * time.Millisecond
	}
	if w.maxUpdatesPerTick <= 0 {
		w.maxUpdatesPerTick = 8
	}

	w.rng = rand.New(rand.NewSource(seedHash(params.Seed)))

	// Метаданные переопределяют сид/заголовок/время/спаун;
	// отсутствующая или повреждённая запись — не ошибка
	restored := w.loadMetadata()
	if !restored {
		// Новый мир начинается утром, сразу после рассвета
		w.SetTime(0.1)
		w.setSpawn(w.findSpawnPoint())
	}
	w.player.SetPosition(w.SpawnPoint())

	return w, nil
}

// seedHash преобразует строковый сид в источник для ГПСЧ
func seedHash(seed string) int64 {
	h := fnv.New64a()
	h.Write([]byte(seed))
	return int64(h.Sum64())
}

// Start переводит мир из Stopped в Running и запускает фоновый цикл
func (w *World) Start() error {
	w.stateMu.Lock()
	defer w.stateMu.Unlock()

	if w.state != StateStopped {
		return fmt.Errorf("мир уже запущен (состояние %s)", w.state)
	}

	w.state = StateRunning
	w.done = make(chan struct{})
	go w.loop()

	w.log.Info("Мир %q запущен (сид %q)", w.title, w.seed)
	return nil
}

// Pause приостанавливает фоновый цикл, не завершая его.
// Пауза — подсказка планировщику: ресурсы не освобождаются.
func (w *World) Pause() {
	w.stateMu.Lock()
	defer w.stateMu.Unlock()

	if w.state == StateRunning {
		w.state = StatePaused
	}
}

// Resume возобновляет приостановленный цикл
func (w *World) Resume() {
	w.stateMu.Lock()
	defer w.stateMu.Unlock()

	if w.state == StatePaused {
		w.state = StateRunning
		w.stateCond.Broadcast()
	}
}

// Stop завершает фоновый цикл после текущей итерации, дожидается выхода,
// затем сохраняет все изменённые чанки и метаданные мира
func (w *World) Stop() {
	w.stateMu.Lock()
	if w.state == StateStopped {
		w.stateMu.Unlock()
		return
	}
	w.state = StateStopped
	w.stateCond.Broadcast()
	done := w.done
	w.stateMu.Unlock()

	if done != nil {
		<-done
	}

	w.log.Info("Остановка мира %q, сохранение чанков...", w.title)
	if err := w.cache.Flush(); err != nil {
		w.log.Error("Ошибка сохранения чанков при остановке: %v", err)
	}
	w.saveMetadata()
}

// State возвращает текущее состояние фонового цикла
func (w *World) State() LoopState {
	w.stateMu.Lock()
	defer w.stateMu.Unlock()
	return w.state
}

// loop — фоновый цикл симуляции. Во время паузы блокируется на
// условной переменной, не потребляя CPU.
func (w *World) loop() {
	defer close(w.done)

	for {
		w.stateMu.Lock()
		for w.state == StatePaused {
			w.stateCond.Wait()
		}
		if w.state == StateStopped {
			w.stateMu.Unlock()
			return
		}
		w.stateMu.Unlock()

		w.tick()
		time.Sleep(w.tickInterval)
	}
}

// tick выполняет одну итерацию фонового цикла
func (w *World) tick() {
	w.processChunkUpdates()
	w.refreshVisibleChunks()
	w.updateDaytime()
	w.updateWind()
	w.replantGrass()
}

// processChunkUpdates забирает ограниченную пачку заявок, выполняет
// световую работу и публикует заявки потребителю рендера
func (w *World) processChunkUpdates() {
	for _, req := range w.updates.takePending(w.maxUpdatesPerTick) {
		start := time.Now()

		if req.Flags.NeedsLightUpdate || req.Chunk.IsFresh() {
			w.generateChunkLight(req.Chunk)
		}

		// Световая работа закончена; сборка меша — дело потребителя
		req.Chunk.SetLightDirty(false)
		req.Chunk.SetDirty(false)

		w.updates.RecordServiceDuration(time.Since(start))
		w.updates.publishReady(req)
	}
}

// refreshVisibleChunks пересобирает окно видимых чанков вокруг игрока
// и публикует его атомарной заменой. Окно ключуется реальными
// координатами чанков: никакой кольцевой адресации по модулю.
func (w *World) refreshVisibleChunks() {
	center := PlayerChunkCoords(w.player.Position())
	prev := w.visibleSet()
	next := make(map[vec.Vec2]*Chunk, w.viewDistanceX*w.viewDistanceZ)

	for dx := -w.viewDistanceX / 2; dx < w.viewDistanceX-w.viewDistanceX/2; dx++ {
		for dz := -w.viewDistanceZ / 2; dz < w.viewDistanceZ-w.viewDistanceZ/2; dz++ {
			coords := vec.Vec2{X: center.X + dx, Z: center.Z + dz}
			c := w.cache.LoadOrCreate(coords)

			if _, wasVisible := prev[coords]; !wasVisible {
				w.updates.Queue(c, UpdateFlags{
					NeedsLightUpdate: c.IsFresh(),
					NewlyVisible:     true,
				})
			}

			next[coords] = c
		}
	}

	w.window.Store(next)
}

// visibleSet возвращает опубликованное окно видимых чанков
func (w *World) visibleSet() map[vec.Vec2]*Chunk {
	if m, ok := w.window.Load().(map[vec.Vec2]*Chunk); ok {
		return m
	}
	return nil
}

// VisibleChunks возвращает срез видимых чанков для потребителя рендера
func (w *World) VisibleChunks() []*Chunk {
	set := w.visibleSet()
	chunks := make([]*Chunk, 0, len(set))
	for _, c := range set {
		chunks = append(chunks, c)
	}
	return chunks
}

// IsChunkVisible возвращает true, если чанк входит в окно видимости
func (w *World) IsChunkVisible(coords vec.Vec2) bool {
	_, visible := w.visibleSet()[coords]
	return visible
}

// UpdateAllChunks ставит все видимые чанки в очередь с принудительной
// пересборкой меша
func (w *World) UpdateAllChunks() {
	for _, c := range w.visibleSet() {
		w.updates.Queue(c, UpdateFlags{ForceRebuild: true})
	}
}

// updateDaytime продвигает игровое время: раз в интервал измерения
// время суток увеличивается на долю, соответствующую длине суток
func (w *World) updateDaytime() {
	w.timeMu.Lock()
	sample := time.Since(w.lastTimeSample) >= daytimeSampleInterval
	if sample {
		w.lastTimeSample = time.Now()
	}
	w.timeMu.Unlock()

	if sample {
		w.SetTime(w.TimeOfDay() + daytimeSampleInterval.Seconds()/w.dayLengthSeconds)
	}
}

// SetTime устанавливает время суток. Значения за пределами [0, 1]
// сворачиваются: > 1 — в 0.0, < 0 — в 1.0.
func (w *World) SetTime(t float64) {
	if t > 1.0 {
		t = 0.0
	} else if t < 0.0 {
		t = 1.0
	}

	w.timeMu.Lock()
	defer w.timeMu.Unlock()

	w.timeOfDay = t
	w.daylight = daylightFor(t)
}

// daylightFor вычисляет интенсивность дневного света по времени суток:
// рассвет 0.0–0.1, день 0.1–0.5, закат 0.5–0.6, ночь 0.6–1.0
func daylightFor(t float64) float64 {
	switch {
	case t < 0.1:
		return t / 0.1
	case t <= 0.5:
		return 1.0
	case t < 0.6:
		return 1.0 - (t-0.5)/0.1
	default:
		return 0.0
	}
}

// TimeOfDay возвращает текущее время суток в [0, 1)
func (w *World) TimeOfDay() float64 {
	w.timeMu.RLock()
	defer w.timeMu.RUnlock()
	return w.timeOfDay
}

// Daylight возвращает текущую интенсивность дневного света
func (w *World) Daylight() float64 {
	w.timeMu.RLock()
	defer w.timeMu.RUnlock()
	return w.daylight
}

// IsDaytime возвращает true в дневной фазе суток
func (w *World) IsDaytime() bool {
	t := w.TimeOfDay()
	return t > 0.075 && t < 0.575
}

// IsNighttime возвращает true в ночной фазе суток
func (w *World) IsNighttime() bool {
	return !w.IsDaytime()
}

// updateWind продвигает смещение облаков и периодически меняет ветер.
// Смещение отражается на границах, новое направление выбирается
// раз в 32–48 секунд.
func (w *World) updateWind() {
	w.windMu.Lock()
	defer w.windMu.Unlock()

	w.cloudOffset = w.cloudOffset.Add(w.windDirection)

	if w.cloudOffset.X >= cloudOffsetBound || w.cloudOffset.X <= -cloudOffsetBound {
		w.windDirection.X = -w.windDirection.X
	} else if w.cloudOffset.Z >= cloudOffsetBound || w.cloudOffset.Z <= -cloudOffsetBound {
		w.windDirection.Z = -w.windDirection.Z
	}

	if time.Since(w.lastWindUpdate) > w.nextWindUpdate {
		w.windDirection = vec.Vec2F{
			X: (w.rng.Float64() - 0.5) / 2,
			Z: (w.rng.Float64() - 0.5) / 2,
		}
		w.nextWindUpdate = time.Duration(32+w.rng.Intn(16)) * time.Second
		w.lastWindUpdate = time.Now()
	}
}

// WindDirection возвращает текущее направление ветра
func (w *World) WindDirection() vec.Vec2F {
	w.windMu.Lock()
	defer w.windMu.Unlock()
	return w.windDirection
}

// CloudOffset возвращает текущее смещение облаков
func (w *World) CloudOffset() vec.Vec2F {
	w.windMu.Lock()
	defer w.windMu.Unlock()
	return w.cloudOffset
}

// replantGrass запускает стадию озеленения не чаще раза в секунду и
// только днём: спящие чанки окна видимости получают новую растительность
// и заявку на пересчёт света
func (w *World) replantGrass() {
	w.timeMu.Lock()
	due := time.Since(w.lastReplantTime) > replantInterval
	if due {
		w.lastReplantTime = time.Now()
	}
	w.timeMu.Unlock()

	if !due || w.flora == nil {
		return
	}

	// Ночью ничего не растёт
	if w.IsNighttime() {
		return
	}

	for _, c := range w.visibleSet() {
		if c.IsFresh() || c.IsDirty() || c.IsLightDirty() {
			continue
		}
		w.flora.Generate(c)
		w.updates.Queue(c, UpdateFlags{NeedsLightUpdate: true})
	}
}

// BlockAt возвращает тип блока в глобальной позиции без генерации:
// незагруженный чанк даёт (воздух, false)
func (w *World) BlockAt(pos vec.Vec3) (block.BlockID, bool) {
	chunkCoords, local := SplitPos(pos)

	c, ok := w.cache.Load(chunkCoords)
	if !ok {
		return block.AirBlockID, false
	}
	return c.Block(local), true
}

// SetBlockAt устанавливает блок в глобальной позиции и, если update
// задан, пересчитывает оба канала света вокруг позиции
func (w *World) SetBlockAt(pos vec.Vec3, id block.BlockID, update, overwrite bool) {
	chunkCoords, local := SplitPos(pos)
	if !InBounds(local) {
		return
	}

	c := w.cache.LoadOrCreate(chunkCoords)

	existing := c.Block(local)
	if !overwrite && existing != block.AirBlockID {
		return
	}

	previousSun := w.LightAt(pos, ChannelSun)

	if block.IsRemovable(existing) {
		c.SetBlock(local, id)
	}

	if !update {
		return
	}

	// Солнечный канал: переинициализация колонны и точечная ретракция
	w.RefreshSunlightColumn(pos.X, pos.Z, true, true)
	w.RefreshLightAt(pos, ChannelSun)

	if newSun := w.LightAt(pos, ChannelSun); newSun > previousSun {
		w.SpreadLight(pos, newSun, ChannelSun)
	}

	// Блочный канал: посев светимости нового блока
	if lum := block.Luminance(id); lum > 0 {
		previous := w.LightAt(pos, ChannelBlock)
		c.SetLight(local, lum, ChannelBlock)
		if lum > previous {
			w.SpreadLight(pos, lum, ChannelBlock)
		}
	}
	w.RefreshLightAt(pos, ChannelBlock)

	w.updates.Queue(c, UpdateFlags{NeedsLightUpdate: true})
}

// findSpawnPoint ищет точку спауна сканированием плотности ландшафта
func (w *World) findSpawnPoint() vec.Vec3F {
	if w.terrain == nil {
		return vec.Vec3F{X: 8, Y: spawnSearchHeight, Z: 8}
	}

	for xz := 1024; xz < 1024+65536; xz++ {
		if w.terrain.Density(xz, spawnSearchHeight, xz) > 0.01 {
			return vec.Vec3F{X: float64(xz), Y: spawnSearchHeight, Z: float64(xz)}
		}
	}

	w.log.Warn("Точка спауна не найдена сканированием, используется позиция по умолчанию")
	return vec.Vec3F{X: 8, Y: spawnSearchHeight, Z: 8}
}

// setSpawn устанавливает точку спауна
func (w *World) setSpawn(spawn vec.Vec3F) {
	w.spawnMu.Lock()
	defer w.spawnMu.Unlock()
	w.spawn = spawn
}

// SpawnPoint возвращает текущую точку спауна
func (w *World) SpawnPoint() vec.Vec3F {
	w.spawnMu.RLock()
	defer w.spawnMu.RUnlock()
	return w.spawn
}

// SetSpawnPoint переносит точку спауна в текущую позицию игрока
func (w *World) SetSpawnPoint() {
	w.spawnMu.Lock()
	defer w.spawnMu.Unlock()
	w.spawn = w.player.Position()
}

// ResetPlayer возвращает игрока в точку спауна
func (w *World) ResetPlayer() {
	w.player.SetPosition(w.SpawnPoint())
}

// loadMetadata восстанавливает мир из записи метаданных.
// Отсутствующая или повреждённая запись — не ошибка: остаются
// переданные сид/заголовок и выполняется новый поиск спауна.
func (w *World) loadMetadata() bool {
	if w.meta == nil {
		return false
	}

	meta, found, err := w.meta.LoadMeta()
	if err != nil {
		w.log.Warn("Ошибка чтения метаданных мира: %v", err)
		return false
	}
	if !found {
		return false
	}

	if meta.ID != "" {
		w.id = meta.ID
	}
	if meta.Seed != "" {
		w.seed = meta.Seed
	}
	if meta.Title != "" {
		w.title = meta.Title
	}
	w.setSpawn(meta.Spawn)
	w.SetTime(meta.Time)

	w.log.Info("Метаданные мира %q восстановлены (время %.3f)", w.title, meta.Time)
	return true
}

// saveMetadata записывает метаданные мира; ошибка логируется и не
// прерывает остановку
func (w *World) saveMetadata() {
	if w.meta == nil {
		return
	}

	meta := WorldMeta{
		ID:    w.id,
		Seed:  w.seed,
		Title: w.title,
		Time:  w.TimeOfDay(),
		Spawn: w.SpawnPoint(),
	}

	if err := w.meta.SaveMeta(meta); err != nil {
		w.log.Error("Ошибка сохранения метаданных мира: %v", err)
	}
}

// Cache возвращает кеш чанков
func (w *World) Cache() *ChunkCache {
	return w.cache
}

// Updates возвращает менеджер обновлений (потребитель рендера вызывает Drain)
func (w *World) Updates() *ChunkUpdateManager {
	return w.updates
}

// ID возвращает идентификатор мира
func (w *World) ID() string {
	return w.id
}

// Title возвращает заголовок мира
func (w *World) Title() string {
	return w.title
}

// Seed возвращает сид мира
func (w *World) Seed() string {
	return w.seed
}

// Info возвращает строку с краткой сводкой состояния мира
func (w *World) Info() string {
	return fmt.Sprintf("world (cache: %d, pending: %d, mean: %s, time: %.3f, seed: %q, title: %q)",
		w.cache.Size(), w.updates.PendingCount(), w.updates.MeanServiceDuration(),
		w.TimeOfDay(), w.seed, w.title)
}
