package runner

import (
	"fmt"
	"time"

	"github.com/lintang-b-s/osm-disjoint-paths/pkg/concurrent"
	da "github.com/lintang-b-s/osm-disjoint-paths/pkg/datastructure"
	"github.com/lintang-b-s/osm-disjoint-paths/pkg/mincostflow"
	"github.com/lintang-b-s/osm-disjoint-paths/pkg/problemio"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Task one instance to solve, Load is called on a worker goroutine.
type Task struct {
	Name string
	Load func() (*da.Instance, error)
}

func FileTask(filename string, directed bool) Task {
	return Task{
		Name: filename,
		Load: func() (*da.Instance, error) {
			return problemio.ReadInstanceFile(filename, directed)
		},
	}
}

func InstanceTask(name string, in *da.Instance) Task {
	return Task{
		Name: name,
		Load: func() (*da.Instance, error) { return in, nil },
	}
}

type Outcome struct {
	Name     string
	Instance *da.Instance
	Result   *mincostflow.Result
	Err      error
	Took     time.Duration
}

type BatchRunner struct {
	solver  *mincostflow.Solver
	workers int
	logger  *zap.Logger
}

func NewBatchRunner(solver *mincostflow.Solver, workers int, logger *zap.Logger) *BatchRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchRunner{solver: solver, workers: workers, logger: logger}
}

// Run solves every task and returns the outcomes in task order. The error combines the
// failures of all tasks; outcomes of the tasks that succeeded are valid either way.
func (br *BatchRunner) Run(tasks []Task) ([]Outcome, error) {
	start := time.Now()
	outcomes := concurrent.Map(br.workers, tasks, br.runTask)

	var err error
	feasible := 0
	for _, o := range outcomes {
		if o.Err != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", o.Name, o.Err))
			continue
		}
		if o.Result.Feasible {
			feasible++
		}
	}

	br.logger.Info("batch done",
		zap.Int("instances", len(tasks)),
		zap.Int("feasible", feasible),
		zap.Int("failed", len(multierr.Errors(err))),
		zap.Int("workers", br.workers),
		zap.Duration("took", time.Since(start)))
	return outcomes, err
}

func (br *BatchRunner) runTask(task Task) Outcome {
	start := time.Now()
	outcome := Outcome{Name: task.Name}

	in, err := task.Load()
	if err != nil {
		outcome.Err = err
		br.logger.Error("loading instance failed", zap.String("instance", task.Name), zap.Error(err))
		return outcome
	}
	outcome.Instance = in

	res, err := br.solver.Solve(in)
	outcome.Took = time.Since(start)
	if err != nil {
		outcome.Err = err
		br.logger.Error("solving instance failed", zap.String("instance", task.Name), zap.Error(err))
		return outcome
	}
	outcome.Result = res

	br.logger.Sugar().Debugf("%s: feasible=%v flow=%d cost=%d in %v",
		task.Name, res.Feasible, res.Flow, res.TotalCost, outcome.Took)
	return outcome
}
