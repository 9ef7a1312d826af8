package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/jessevdk/go-flags"
	"github.com/lintang-b-s/osm-disjoint-paths/pkg/geo"
	"github.com/lintang-b-s/osm-disjoint-paths/pkg/logger"
	"github.com/lintang-b-s/osm-disjoint-paths/pkg/mincostflow"
	"github.com/lintang-b-s/osm-disjoint-paths/pkg/osmparser"
	"github.com/lintang-b-s/osm-disjoint-paths/pkg/problemio"
	"github.com/lintang-b-s/osm-disjoint-paths/pkg/runner"
	"github.com/paulmach/osm"
	"go.uber.org/zap"
)

type OutputConfig struct {
	Format string `long:"format" env:"FORMAT" default:"text" choice:"text" choice:"json" description:"Output format"`
	Output string `long:"output" short:"o" env:"OUTPUT" description:"Write results to this file instead of stdout"`
	Debug  bool   `long:"debug" env:"DEBUG" description:"Validate flow invariants after every augmentation"`
}

func (c OutputConfig) open() (io.Writer, func() error, error) {
	if c.Output == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(c.Output)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

type solveCmd struct {
	OutputConfig
	Directed bool `long:"directed" env:"DIRECTED" description:"Treat edges as directed arcs, negative costs allowed"`
	Workers  int  `long:"workers" short:"w" env:"WORKERS" default:"4" description:"Instances solved concurrently"`
}

func (cmd *solveCmd) Execute(args []string) error {
	log, err := logger.New()
	if err != nil {
		return err
	}
	defer log.Sync()

	solver := mincostflow.NewSolver(cmd.Debug, log)
	tasks := make([]runner.Task, 0, len(args))
	if len(args) == 0 {
		in, err := problemio.ReadInstance(os.Stdin, cmd.Directed)
		if err != nil {
			return err
		}
		tasks = append(tasks, runner.InstanceTask("stdin", in))
	}
	for _, filename := range args {
		tasks = append(tasks, runner.FileTask(filename, cmd.Directed))
	}

	outcomes, runErr := runner.NewBatchRunner(solver, cmd.Workers, log).Run(tasks)

	w, closeOutput, err := cmd.open()
	if err != nil {
		return err
	}
	defer closeOutput()

	if cmd.Format == "json" {
		docs := make([]problemio.ResultJSON, 0, len(outcomes))
		for _, o := range outcomes {
			if o.Err == nil {
				docs = append(docs, problemio.NewResultJSON(o.Name, o.Result, nil))
			}
		}
		if err := problemio.WriteJSON(w, docs...); err != nil {
			return err
		}
		return runErr
	}

	for _, o := range outcomes {
		if o.Err != nil {
			continue
		}
		if len(outcomes) > 1 {
			fmt.Fprintf(w, "# %s\n", o.Name)
		}
		if err := problemio.WriteText(w, o.Result); err != nil {
			return err
		}
	}
	return runErr
}

type osmCmd struct {
	OutputConfig
	Map     string `long:"map" short:"m" env:"MAP" required:"true" description:"OpenStreetMap PBF extract"`
	Source  int64  `long:"source" required:"true" description:"OSM node id where every route starts"`
	Sink    int64  `long:"sink" required:"true" description:"OSM node id where every route ends"`
	K       int    `long:"k" short:"k" default:"2" description:"Number of edge disjoint routes"`
	OneWay  bool   `long:"oneway" env:"ONEWAY" description:"Respect one way streets, the instance becomes directed"`
	Metric  string `long:"metric" env:"METRIC" default:"distance" choice:"distance" choice:"duration" description:"Edge cost"`
	Export  string `long:"export" description:"Also write the built instance in the text input format (.bz2 compresses)"`
}

func (cmd *osmCmd) Execute(args []string) error {
	log, err := logger.New()
	if err != nil {
		return err
	}
	defer log.Sync()

	metric, _ := osmparser.ParseMetric(cmd.Metric)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	osmParser := osmparser.NewOSMParser(metric, log)
	if err := osmParser.Parse(ctx, cmd.Map); err != nil {
		return err
	}
	network, err := osmParser.BuildRoadNetwork(osm.NodeID(cmd.Source), osm.NodeID(cmd.Sink), cmd.K, cmd.OneWay)
	if err != nil {
		return err
	}
	if cmd.Export != "" {
		if err := problemio.WriteInstanceFile(cmd.Export, network.GetInstance()); err != nil {
			return err
		}
		log.Info("instance exported", zap.String("file", cmd.Export))
	}

	res, err := mincostflow.NewSolver(cmd.Debug, log).Solve(network.GetInstance())
	if err != nil {
		return err
	}

	w, closeOutput, err := cmd.open()
	if err != nil {
		return err
	}
	defer closeOutput()

	if cmd.Format == "json" {
		doc := problemio.NewResultJSON(cmd.Map, res, func(p mincostflow.Path) string {
			return geo.PolylineFromCoords(network.PathGeometry(p))
		})
		return problemio.WriteJSON(w, doc)
	}
	return problemio.WriteText(w, res)
}

func main() {
	parser := flags.NewParser(nil, flags.Default)

	parser.AddCommand("solve", "Solve k disjoint paths instances", `
Read instances in the text format ("n m k" then m lines "a b cost") from the given files,
or from stdin when no file is given, and print the minimum average cost of k edge disjoint
paths from vertex 1 to vertex n with the paths, or -1 when fewer than k exist.
Files ending in .bz2 are decompressed.`, &solveCmd{})

	parser.AddCommand("osm", "Find k disjoint routes on an OpenStreetMap extract", `
Build a road graph from an OSM PBF extract and find k edge disjoint routes of minimum
average length (or travel time) between two OSM nodes. The JSON output carries an
encoded polyline per route.`, &osmCmd{})

	if _, err := parser.Parse(); err != nil {
		os.Exit(1)
	}
}
