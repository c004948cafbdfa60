// Package storage реализует долговременное хранение чанков и метаданных
// мира поверх встраиваемой БД BadgerDB. Записи сериализуются в JSON и
// сжимаются zstd: сетки чанков состоят из длинных повторяющихся серий
// и сжимаются на порядок.
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/zstd"

	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
)

// Ключ записи метаданных мира
const metaKey = "meta"

// chunkRecord — сериализованное представление чанка
type chunkRecord struct {
	X      int    `json:"x"`
	Z      int    `json:"z"`
	Blocks []byte `json:"blocks"`
	Sun    []byte `json:"sun"`
	Light  []byte `json:"light"`
}

// BadgerStore реализует world.ChunkStore и world.MetaStore поверх BadgerDB
type BadgerStore struct {
	db  *badger.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
	log *logging.Logger
}

// NewBadgerStore открывает (или создаёт) хранилище мира в каталоге path
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия BadgerDB: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка инициализации zstd-компрессора: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, fmt.Errorf("ошибка инициализации zstd-декомпрессора: %w", err)
	}

	return &BadgerStore{
		db:  db,
		enc: enc,
		dec: dec,
		log: logging.GetStorageLogger(),
	}, nil
}

// chunkKey строит ключ записи чанка
func chunkKey(coords vec.Vec2) []byte {
	return []byte(fmt.Sprintf("chunk:%d:%d", coords.X, coords.Z))
}

// SaveChunk сериализует и записывает чанк
func (s *BadgerStore) SaveChunk(c *world.Chunk) error {
	blocks, sun, light := c.Snapshot()
	record := chunkRecord{
		X:      c.Coords.X,
		Z:      c.Coords.Z,
		Blocks: blocks,
		Sun:    sun,
		Light:  light,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("ошибка сериализации чанка %v: %w", c.Coords, err)
	}
	compressed := s.enc.EncodeAll(data, nil)

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(chunkKey(c.Coords), compressed)
	})
	if err != nil {
		return fmt.Errorf("ошибка записи чанка %v: %w", c.Coords, err)
	}
	return nil
}

// LoadChunk читает и десериализует чанк. Отсутствие записи — не ошибка:
// возвращается (nil, false, nil). Повреждённая запись логируется и тоже
// трактуется как отсутствующая: чанк будет сгенерирован заново.
func (s *BadgerStore) LoadChunk(coords vec.Vec2) (*world.Chunk, bool, error) {
	var compressed []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(chunkKey(coords))
		if err != nil {
			return err
		}
		compressed, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("ошибка чтения чанка %v: %w", coords, err)
	}

	data, err := s.dec.DecodeAll(compressed, nil)
	if err != nil {
		s.log.Warn("Повреждённая запись чанка %v (zstd): %v", coords, err)
		return nil, false, nil
	}

	var record chunkRecord
	if err := json.Unmarshal(data, &record); err != nil {
		s.log.Warn("Повреждённая запись чанка %v (json): %v", coords, err)
		return nil, false, nil
	}

	c := world.NewChunk(vec.Vec2{X: record.X, Z: record.Z})
	if err := c.Restore(record.Blocks, record.Sun, record.Light); err != nil {
		s.log.Warn("Повреждённая запись чанка %v: %v", coords, err)
		return nil, false, nil
	}

	return c, true, nil
}

// SaveMeta записывает метаданные мира
func (s *BadgerStore) SaveMeta(meta world.WorldMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("ошибка сериализации метаданных мира: %w", err)
	}
	compressed := s.enc.EncodeAll(data, nil)

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(metaKey), compressed)
	})
	if err != nil {
		return fmt.Errorf("ошибка записи метаданных мира: %w", err)
	}
	return nil
}

// LoadMeta читает метаданные мира; отсутствие и повреждение записи — не ошибка
func (s *BadgerStore) LoadMeta() (world.WorldMeta, bool, error) {
	var compressed []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(metaKey))
		if err != nil {
			return err
		}
		compressed, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return world.WorldMeta{}, false, nil
	}
	if err != nil {
		return world.WorldMeta{}, false, fmt.Errorf("ошибка чтения метаданных мира: %w", err)
	}

	data, err := s.dec.DecodeAll(compressed, nil)
	if err != nil {
		s.log.Warn("Повреждённая запись метаданных (zstd): %v", err)
		return world.WorldMeta{}, false, nil
	}

	var meta world.WorldMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		s.log.Warn("Повреждённая запись метаданных (json): %v", err)
		return world.WorldMeta{}, false, nil
	}

	return meta, true, nil
}

// Close закрывает БД и освобождает компрессоры
func (s *BadgerStore) Close() error {
	s.enc.Close()
	s.dec.Close()
	return s.db.Close()
}
