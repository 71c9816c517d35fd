package prometheus

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"sharding/meta"
)

type MiddlewareBuilder struct {
	Namespace string
	Subsystem string
	Name      string
	Help      string
	// Registerer 为空时注册到默认的 registry
	Registerer prometheus.Registerer
}

func (m MiddlewareBuilder) Build() meta.Middleware {
	vector := prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name:      m.Name,
		Subsystem: m.Subsystem,
		Namespace: m.Namespace,
		Help:      m.Help,
		Objectives: map[float64]float64{
			0.5:   0.01,
			0.75:  0.01,
			0.90:  0.01,
			0.99:  0.001,
			0.999: 0.0001,
		},
	}, []string{"dialect", "table", "status"})
	reg := m.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(vector)
	return func(next meta.Handler) meta.Handler {
		return func(ctx context.Context, rc *meta.ResolveContext) *meta.ResolveResult {
			startTime := time.Now()
			res := next(ctx, rc)
			status := "ok"
			if res.Err != nil {
				status = "error"
			}
			// 执行时间，单位毫秒
			vector.WithLabelValues(rc.Dialect, rc.Table, status).
				Observe(float64(time.Since(startTime).Milliseconds()))
			return res
		}
	}
}
