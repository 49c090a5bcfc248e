package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/yaml.v3"

	"github.com/osuushi/cdt/dbg"
	"github.com/osuushi/cdt/geometry"
	"github.com/osuushi/cdt/triangulation"
)

// Demo of constrained triangulation. Input on stdin should be newline
// separated points in the form "x y", with each chain separated by an extra
// newline. Every chain of two or more points is inserted as a sequence of
// constraint segments; a chain of a single point is just a point.
//
// Chains may touch and overlap, but must not cross each other.

type Config struct {
	// Nil means the default for float64
	Epsilon *float64 `yaml:"epsilon"`
	Closed  bool     `yaml:"closed"`
	Render  struct {
		Width int     `yaml:"width"`
		Scale float64 `yaml:"scale"`
	} `yaml:"render"`
}

type options struct {
	Config
	svgPath string
	pngPath string
	show    bool
}

func defaultConfig() Config {
	var cfg Config
	cfg.Render.Width = 800
	cfg.Render.Scale = 4
	return cfg
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}

func parseArgs(args []string) (*options, error) {
	app := kingpin.New("cdt", "Constrained Delaunay triangulation of point chains read from stdin.")
	configPath := app.Flag("config", "YAML config file.").ExistingFile()
	svgPath := app.Flag("svg", "Write the triangulation as SVG to this file.").String()
	pngPath := app.Flag("png", "Write the triangulation as PNG to this file.").String()
	show := app.Flag("show", "Print the triangulation to the terminal (iTerm only).").Bool()
	closed := app.Flag("closed", "Close every chain of three or more points.").Bool()
	eps := app.Flag("eps", "Predicate epsilon, 0 for exact arithmetic.").String()
	width := app.Flag("width", "SVG width in pixels.").Int()
	scale := app.Flag("scale", "PNG pixels per unit.").Float64()

	if _, err := app.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return nil, err
	}

	// Flags win over the config file
	if *eps != "" {
		value, err := strconv.ParseFloat(*eps, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid epsilon %q", *eps)
		}
		cfg.Epsilon = &value
	}
	if *closed {
		cfg.Closed = true
	}
	if *width > 0 {
		cfg.Render.Width = *width
	}
	if *scale > 0 {
		cfg.Render.Scale = *scale
	}

	return &options{
		Config:  cfg,
		svgPath: *svgPath,
		pngPath: *pngPath,
		show:    *show,
	}, nil
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(opts, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts *options, in io.Reader, out io.Writer) (err error) {
	chains, err := readChains(in)
	if err != nil {
		return err
	}

	defer func() {
		recoveredErr := triangulation.HandlePanicRecover(recover())
		if recoveredErr != nil {
			err = recoveredErr
		}
	}()

	t := build(opts.Config, chains)
	if err := t.Check(); err != nil {
		return errors.Wrap(err, "triangulation is invalid")
	}
	fmt.Fprintf(out, "Read %d chains: %d points, %d triangles, %d constrained edges\n",
		len(chains), t.FiniteVertexCount(), len(t.Triangles()), len(t.ConstrainedEdges()))

	if opts.svgPath != "" {
		file, err := os.Create(opts.svgPath)
		if err != nil {
			return errors.Wrap(err, "creating svg")
		}
		dbg.WriteSVG(file, t, opts.Render.Width)
		if err := file.Close(); err != nil {
			return errors.Wrap(err, "writing svg")
		}
	}
	if opts.pngPath != "" {
		if err := dbg.DrawPNG(t, opts.pngPath, opts.Render.Scale); err != nil {
			return errors.Wrap(err, "writing png")
		}
	}
	if opts.show {
		return dbg.Show(t, opts.Render.Scale)
	}
	return nil
}

func build(cfg Config, chains [][]geometry.Position[float64]) *triangulation.Triangulation[float64, triangulation.Flags] {
	var topts []triangulation.Option
	if cfg.Epsilon != nil {
		topts = append(topts, triangulation.WithEpsilon(*cfg.Epsilon))
	}
	t := triangulation.New[float64, triangulation.Flags](topts...)

	for _, chain := range chains {
		vertices := make([]triangulation.VertexIndex, len(chain))
		hint := triangulation.InvalidFace
		for i, p := range chain {
			vertices[i] = t.AddVertex(p, hint)
			hint = t.VertexFace(vertices[i])
		}
		for i := 1; i < len(vertices); i++ {
			t.AddConstraintEdge(vertices[i-1], vertices[i], 1)
		}
		if cfg.Closed && len(vertices) > 2 {
			t.AddConstraintEdge(vertices[len(vertices)-1], vertices[0], 1)
		}
	}
	return t
}

func readChains(in io.Reader) ([][]geometry.Position[float64], error) {
	var chains [][]geometry.Position[float64]
	// Scan lines
	scanner := bufio.NewScanner(in)
	var points []geometry.Position[float64]
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())

		// If it's empty, and we collected any points, this is the end of the chain
		if line == "" {
			if len(points) > 0 {
				chains = append(chains, points)
				points = nil
			}
			continue
		}

		point, err := parsePoint(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNumber)
		}
		points = append(points, point)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading input")
	}

	// Handle trailing chain if any
	if len(points) > 0 {
		chains = append(chains, points)
	}
	return chains, nil
}

func parsePoint(line string) (geometry.Position[float64], error) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return geometry.Position[float64]{}, errors.Errorf("want \"x y\", got %q", line)
	}
	var v mgl64.Vec2
	for i, name := range []string{"x", "y"} {
		value, err := strconv.ParseFloat(parts[i], 64)
		if err != nil {
			return geometry.Position[float64]{}, errors.Wrap(err, name)
		}
		v[i] = value
	}
	return geometry.FromVec2(v), nil
}
