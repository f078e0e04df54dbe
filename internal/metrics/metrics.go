// Package metrics 把统计集合导出为 Prometheus 文本格式，供 node_exporter textfile collector 采集。
package metrics

import (
	"fmt"

	"locplot/internal/model"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "locplot"

// Registry 构造一个包含当前集合全部指标的独立 registry。
func Registry(repository string, collection *model.StatsCollection) (*prometheus.Registry, error) {
	registry := prometheus.NewRegistry()

	lines := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "lines",
		Help:        "Lines per language (or comments) at a release tag.",
		ConstLabels: prometheus.Labels{"repository": repository},
	}, []string{"label", "tag"})

	releases := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "releases_total",
		Help:        "Number of release tags traversed.",
		ConstLabels: prometheus.Labels{"repository": repository},
	})

	for _, collector := range []prometheus.Collector{lines, releases} {
		if err := registry.Register(collector); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}

	for _, series := range collection.Series() {
		for _, point := range series.Points {
			lines.WithLabelValues(series.Label, string(point.Tag)).Add(float64(point.Value))
		}
	}
	releases.Set(float64(len(collection.Tags())))

	return registry, nil
}

// WriteTextfile 原子地把指标写入 path。
func WriteTextfile(path string, repository string, collection *model.StatsCollection) error {
	registry, err := Registry(repository, collection)
	if err != nil {
		return err
	}

	if err := prometheus.WriteToTextfile(path, registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
