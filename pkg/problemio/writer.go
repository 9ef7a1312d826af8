package problemio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/osm-disjoint-paths/pkg"
	da "github.com/lintang-b-s/osm-disjoint-paths/pkg/datastructure"
	"github.com/lintang-b-s/osm-disjoint-paths/pkg/mincostflow"
)

// FormatAverage average cost with six decimals.
func FormatAverage(res *mincostflow.Result) string {
	return strconv.FormatFloat(res.AverageCost(), 'f', pkg.AVERAGE_PRECISION, 64)
}

// WriteText writes "-1" for an infeasible result, otherwise the average cost followed by one
// line per path: its length and its 1-based edge ids.
func WriteText(w io.Writer, res *mincostflow.Result) error {
	bw := bufio.NewWriter(w)
	if !res.Feasible {
		fmt.Fprintln(bw, pkg.INFEASIBLE_OUTPUT)
		return bw.Flush()
	}

	fmt.Fprintln(bw, FormatAverage(res))
	for _, p := range res.Paths {
		fields := make([]string, 0, p.Len()+1)
		fields = append(fields, strconv.Itoa(p.Len()))
		for _, id := range p.GetEdgeIDs() {
			fields = append(fields, strconv.Itoa(id+1))
		}
		fmt.Fprintln(bw, strings.Join(fields, " "))
	}
	return bw.Flush()
}

type PathJSON struct {
	Cost     int64    `json:"cost"`
	EdgeIDs  []int    `json:"edges"`
	Vertices []uint32 `json:"vertices"`
	Polyline string   `json:"polyline,omitempty"`
}

type ResultJSON struct {
	Name          string     `json:"name,omitempty"`
	Feasible      bool       `json:"feasible"`
	K             int        `json:"k"`
	Flow          int64      `json:"flow"`
	TotalCost     int64      `json:"total_cost"`
	AverageCost   string     `json:"average_cost,omitempty"`
	Augmentations int        `json:"augmentations"`
	Paths         []PathJSON `json:"paths"`
	Cut           []int      `json:"cut,omitempty"`
}

// NewResultJSON converts a result to its JSON document with 1-based edge and vertex ids.
// polyline, when not nil, encodes the geometry of each path.
func NewResultJSON(name string, res *mincostflow.Result, polyline func(mincostflow.Path) string) ResultJSON {
	doc := ResultJSON{
		Name:          name,
		Feasible:      res.Feasible,
		K:             res.K,
		Flow:          res.Flow,
		TotalCost:     res.TotalCost,
		Augmentations: res.Augmentations,
		Paths:         make([]PathJSON, 0, len(res.Paths)),
	}
	if res.Feasible {
		doc.AverageCost = FormatAverage(res)
	}
	for _, id := range res.CutEdgeIDs {
		doc.Cut = append(doc.Cut, id+1)
	}

	for _, p := range res.Paths {
		pj := PathJSON{
			Cost:     p.GetCost(),
			EdgeIDs:  make([]int, 0, p.Len()),
			Vertices: make([]uint32, 0, p.Len()+1),
		}
		for _, id := range p.GetEdgeIDs() {
			pj.EdgeIDs = append(pj.EdgeIDs, id+1)
		}
		for _, v := range p.GetVertices() {
			pj.Vertices = append(pj.Vertices, uint32(v)+1)
		}
		if polyline != nil {
			pj.Polyline = polyline(p)
		}
		doc.Paths = append(doc.Paths, pj)
	}
	return doc
}

func WriteJSON(w io.Writer, docs ...ResultJSON) error {
	var (
		buf []byte
		err error
	)
	if len(docs) == 1 {
		buf, err = json.MarshalIndent(docs[0], "", "  ")
	} else {
		buf, err = json.MarshalIndent(docs, "", "  ")
	}
	if err != nil {
		return err
	}
	buf = append(buf, '\n')
	_, err = w.Write(buf)
	return err
}

// WriteInstance writes in in the text input format.
func WriteInstance(w io.Writer, in *da.Instance) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d %d\n", in.NumVertices, in.NumEdges(), in.K)
	for _, e := range in.Edges {
		fmt.Fprintf(bw, "%d %d %d\n", e.From+1, e.To+1, e.Cost)
	}
	return bw.Flush()
}

// WriteInstanceFile writes in to filename, bzip2 compressed when filename ends in .bz2.
func WriteInstanceFile(filename string, in *da.Instance) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if !strings.HasSuffix(filename, ".bz2") {
		return WriteInstance(f, in)
	}

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	if err := WriteInstance(bz, in); err != nil {
		bz.Close()
		return err
	}
	return bz.Close()
}
