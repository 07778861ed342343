package metrics

import (
	"time"

	obserrors "github.com/jobdeck/careers-api/internal/observability/errors"
	"github.com/jobdeck/careers-api/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultNoop    = "noop"
)

// DispatchMetric captures details about one notifier tick for metric emission.
type DispatchMetric struct {
	Processed int
	Result    string
	Duration  time.Duration
	Err       error
}

// EmitDispatchTick emits standardised notifier tick metrics.
func EmitDispatchTick(sink statsd.Sink, in DispatchMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"result": in.Result,
	}

	if in.Err != nil && in.Result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("notifier.tick", 1, tags)

	if in.Processed > 0 {
		sink.Count("notifier.notifications_processed", int64(in.Processed), tags)
	}

	if in.Duration > 0 {
		sink.Timing("notifier.tick_duration", in.Duration, CloneTags(tags))
	}

	if in.Err == nil {
		sink.Gauge("notifier.last_success_epoch", float64(time.Now().Unix()), nil)
	}
}

// CloneTags creates a shallow copy of a tag map, filtering out empty keys.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
