// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"code.hybscloud.com/tinyframe"
)

func counterValue(t *testing.T, c prometheus.Collector) float64 {
	t.Helper()
	ch := make(chan prometheus.Metric, 1)
	c.Collect(ch)
	m := <-ch
	var d dto.Metric
	if err := m.Write(&d); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return d.GetCounter().GetValue()
}

func TestObserveSendIncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg, "test")

	r.ObserveSend(5)
	r.ObserveSend(5)

	if got := counterValue(t, r.framesSent.WithLabelValues("5")); got != 2 {
		t.Fatalf("frames_sent = %v, want 2", got)
	}
}

func TestWrapListenerCountsAndForwards(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg, "test")

	called := false
	wrapped := r.WrapListener(func(msg *tinyframe.Message) tinyframe.Result {
		called = true
		return tinyframe.ResultStay
	})

	result := wrapped(&tinyframe.Message{Type: 9})
	if !called {
		t.Fatal("underlying listener was never called")
	}
	if result != tinyframe.ResultStay {
		t.Fatalf("result = %v, want ResultStay", result)
	}
	if got := counterValue(t, r.framesReceived.WithLabelValues("9")); got != 1 {
		t.Fatalf("frames_received = %v, want 1", got)
	}
}

func TestErrorReporterClassifiesChecksumFailures(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg, "test")

	var forwarded string
	reporter := r.ErrorReporter(func(format string, args ...any) { forwarded = format })
	reporter("tinyframe: header checksum mismatch")

	if got := counterValue(t, r.checksumFailures); got != 1 {
		t.Fatalf("checksum_failures = %v, want 1", got)
	}
	if forwarded == "" {
		t.Fatal("wrapped reporter should still forward to the next reporter")
	}
}
