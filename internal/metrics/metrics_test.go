package metrics

import (
	"testing"

	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

func counterValue(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := stdprometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue next
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestObserve_EmptyKindIsNone(t *testing.T) {
	labels := map[string]string{"operation": "metricsTest", "kind": "none"}
	before := counterValue(t, "eats_operation_results_total", labels)

	Observe("metricsTest", "")
	Observe("metricsTest", "")

	if got := counterValue(t, "eats_operation_results_total", labels) - before; got != 2 {
		t.Errorf("expected 2 observations, got %v", got)
	}
}

func TestObserve_KeepsKind(t *testing.T) {
	labels := map[string]string{"operation": "metricsTest", "kind": "not_found"}
	before := counterValue(t, "eats_operation_results_total", labels)

	Observe("metricsTest", "not_found")

	if got := counterValue(t, "eats_operation_results_total", labels) - before; got != 1 {
		t.Errorf("expected 1 observation, got %v", got)
	}
}
