package authgate

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics 授权证明指标
//
// 按结果维度统计证明生成和验证次数，供运行面板观察
// 拒绝率的异常波动。
type Metrics struct {
	proofsGenerated *prometheus.CounterVec
	verifications   *prometheus.CounterVec
}

// NewMetrics 创建并注册授权证明指标
//
// registerer 为 nil 时指标仍然可用，只是不对外暴露。
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		proofsGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "authgate",
				Name:      "proofs_generated_total",
				Help:      "授权证明生成次数，按结果分类",
			},
			[]string{"result"},
		),
		verifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "authgate",
				Name:      "verifications_total",
				Help:      "证明验证次数，按结果分类",
			},
			[]string{"result"},
		),
	}

	if registerer != nil {
		registerer.MustRegister(m.proofsGenerated, m.verifications)
	}

	return m
}

// RecordProofGenerated 记录一次证明生成
func (m *Metrics) RecordProofGenerated(success bool) {
	if m == nil {
		return
	}
	m.proofsGenerated.WithLabelValues(resultLabel(success)).Inc()
}

// RecordVerification 记录一次证明验证
func (m *Metrics) RecordVerification(valid bool) {
	if m == nil {
		return
	}
	m.verifications.WithLabelValues(resultLabel(valid)).Inc()
}

func resultLabel(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
