package problemio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	da "github.com/lintang-b-s/osm-disjoint-paths/pkg/datastructure"
)

var ErrMalformedInput = errors.New("malformed instance")

const maxTokenSize = 1 << 20

type tokenReader struct {
	scanner *bufio.Scanner
	read    int
}

func newTokenReader(r io.Reader) *tokenReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxTokenSize)
	scanner.Split(bufio.ScanWords)
	return &tokenReader{scanner: scanner}
}

func (tr *tokenReader) nextInt(what string) (int64, error) {
	if !tr.scanner.Scan() {
		if err := tr.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("%w: unexpected end of input reading %s", ErrMalformedInput, what)
	}
	tr.read++
	v, err := strconv.ParseInt(tr.scanner.Text(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: token %d (%s): %v", ErrMalformedInput, tr.read, what, err)
	}
	return v, nil
}

// ReadInstance parses "n m k" followed by m triples "a b cost" with 1-based endpoints. Tokens
// may be split over lines in any way.
func ReadInstance(r io.Reader, directed bool) (*da.Instance, error) {
	tr := newTokenReader(r)

	header := [3]int64{}
	for i, what := range []string{"vertex count", "edge count", "path count"} {
		v, err := tr.nextInt(what)
		if err != nil {
			return nil, err
		}
		header[i] = v
	}
	n, m, k := header[0], header[1], header[2]
	if n < 0 || n > int64(^uint32(0)) {
		return nil, fmt.Errorf("%w: vertex count %d", ErrMalformedInput, n)
	}
	if m < 0 {
		return nil, fmt.Errorf("%w: edge count %d", ErrMalformedInput, m)
	}

	edges := make([]da.InputEdge, 0, min(m, 1<<20))
	for i := int64(0); i < m; i++ {
		what := fmt.Sprintf("edge %d", i+1)
		a, err := tr.nextInt(what)
		if err != nil {
			return nil, err
		}
		b, err := tr.nextInt(what)
		if err != nil {
			return nil, err
		}
		cost, err := tr.nextInt(what)
		if err != nil {
			return nil, err
		}
		if a < 1 || a > n || b < 1 || b > n {
			return nil, fmt.Errorf("%w: edge %d endpoints %d %d outside [1, %d]", ErrMalformedInput, i+1, a, b, n)
		}
		edges = append(edges, da.NewInputEdge(da.Index(a-1), da.Index(b-1), cost))
	}

	in := da.NewInstance(int(n), int(k), edges)
	in.Directed = directed
	return in, nil
}

// ReadInstanceFile reads an instance file, files ending in .bz2 are decompressed.
func ReadInstanceFile(filename string, directed bool) (*da.Instance, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(filename, ".bz2") {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return nil, err
		}
		defer bz.Close()
		r = bz
	}

	in, err := ReadInstance(bufio.NewReader(r), directed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return in, nil
}
