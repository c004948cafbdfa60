package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// WorldMetrics содержит Prometheus-метрики движка мира.
//
// Метрики:
// * world_chunk_updates_duration_seconds — histogram длительности обработки обновления чанка
// * world_chunk_updates_pending — gauge глубины очереди обновлений
// * world_chunks_generated_total — counter запусков конвейера генерации
// * world_chunk_cache_size — gauge количества чанков в кеше
// * world_chunk_flush_errors_total — counter ошибок записи в хранилище
type WorldMetrics struct {
	UpdateDuration  prometheus.Histogram
	PendingUpdates  prometheus.Gauge
	GeneratedChunks prometheus.Counter
	CacheSize       prometheus.Gauge
	FlushErrors     prometheus.Counter
}

var (
	worldMetrics *WorldMetrics
	worldOnce    sync.Once
)

// World возвращает глобальный набор метрик движка, регистрируя его
// в дефолтном регистре при первом обращении.
func World() *WorldMetrics {
	worldOnce.Do(func() {
		worldMetrics = &WorldMetrics{
			UpdateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
				Namespace: "world",
				Name:      "chunk_updates_duration_seconds",
				Help:      "Длительность обработки одного обновления чанка.",
				Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			}),
			PendingUpdates: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "world",
				Name:      "chunk_updates_pending",
				Help:      "Текущая глубина очереди обновлений чанков.",
			}),
			GeneratedChunks: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "world",
				Name:      "chunks_generated_total",
				Help:      "Общее число чанков, созданных конвейером генерации.",
			}),
			CacheSize: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "world",
				Name:      "chunk_cache_size",
				Help:      "Количество чанков, находящихся в кеше.",
			}),
			FlushErrors: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "world",
				Name:      "chunk_flush_errors_total",
				Help:      "Общее число ошибок записи чанков в хранилище.",
			}),
		}

		prometheus.MustRegister(
			worldMetrics.UpdateDuration,
			worldMetrics.PendingUpdates,
			worldMetrics.GeneratedChunks,
			worldMetrics.CacheSize,
			worldMetrics.FlushErrors,
		)
	})
	return worldMetrics
}
