package observer

import (
	"context"
	"fmt"
	"time"

	"github.com/dcshock/gbopcodes/pipeline"
	"github.com/go-logr/logr"
)

// LogObserver logs pipeline and stage execution. Stage indices are reported
// together with the stage names given to NewLogObserver.
type LogObserver struct {
	log   logr.Logger
	names []string
}

// NewLogObserver returns an Observer that writes to log. names[i] labels stage i.
func NewLogObserver(log logr.Logger, names ...string) *LogObserver {
	return &LogObserver{log: log, names: names}
}

func (o *LogObserver) stageName(i int) string {
	if i >= 0 && i < len(o.names) {
		return o.names[i]
	}
	return fmt.Sprintf("stage-%d", i)
}

// BeforePipeline implements pipeline.Observer.
func (o *LogObserver) BeforePipeline(ctx context.Context, runID, name string, payload interface{}) error {
	o.log.V(1).Info("pipeline started", "run_id", runID, "pipeline", name)
	return nil
}

// AfterPipeline implements pipeline.Observer.
func (o *LogObserver) AfterPipeline(ctx context.Context, runID string, result interface{}, err error) error {
	if err != nil {
		o.log.V(1).Info("pipeline failed", "run_id", runID, "error", err.Error())
		return nil
	}
	o.log.V(1).Info("pipeline finished", "run_id", runID, "output_bytes", sizeOf(result))
	return nil
}

// BeforeStage implements pipeline.Observer.
func (o *LogObserver) BeforeStage(ctx context.Context, runID string, stageIndex int, input interface{}) error {
	o.log.V(2).Info("stage started", "run_id", runID, "stage", stageIndex, "name", o.stageName(stageIndex))
	return nil
}

// AfterStage implements pipeline.Observer.
func (o *LogObserver) AfterStage(ctx context.Context, runID string, stageIndex int, input, output interface{}, stageErr error, duration time.Duration) error {
	kv := []interface{}{"run_id", runID, "stage", stageIndex, "name", o.stageName(stageIndex), "duration", duration}
	if stageErr != nil {
		o.log.V(1).Info("stage failed", append(kv, "error", stageErr.Error())...)
		return nil
	}
	o.log.V(1).Info("stage done", kv...)
	return nil
}

func sizeOf(v interface{}) int {
	switch b := v.(type) {
	case []byte:
		return len(b)
	case string:
		return len(b)
	}
	return -1
}

var _ pipeline.Observer = (*LogObserver)(nil)
