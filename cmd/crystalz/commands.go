package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/crystalz/internal/config"
	"github.com/Faultbox/crystalz/internal/logger"
	"github.com/Faultbox/crystalz/internal/preview"
	"github.com/Faultbox/crystalz/pkg/crystal"
	"github.com/Faultbox/crystalz/pkg/formats"
	"github.com/Faultbox/crystalz/pkg/voxel"
)

var (
	errUsage          = errors.New("usage")
	errUnknownCommand = errors.New("unknown command")
)

type app struct {
	cfg *config.Config
	out io.Writer
}

func (a *app) run(command string, args []string) error {
	switch command {
	case "list", "ls":
		return a.cmdList(args)
	case "info":
		return a.cmdInfo(args)
	case "voxelize", "vox":
		return a.cmdVoxelize(args)
	case "methods":
		return a.cmdMethods()
	case "config":
		return a.cmdConfig(args)
	case "help", "-h", "--help":
		printUsage(a.out)
		return nil
	default:
		return fmt.Errorf("%w: %s", errUnknownCommand, command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `crystalz - crystal structure voxelizer

Usage:
  crystalz [global flags] <command> [options]

Commands:
  list [dir]                         List .xyz files with atom counts
  info <file.xyz>                    Show lattice, cell volume and composition
  voxelize <file.xyz> [options]      Sample the occupancy grid
      -o dir      output directory
      -name base  output base name (default: input file name)
      -png        write slice and projection previews
      -html       write an HTML histogram of the grid values
      -slice k    z index of the slice preview (default: middle)
  methods                            List voxel methods
  config [-save [path]]              Print or save the effective config
                                     (default path: user config dir)

Global flags:
  -config -debug -method -resolution -max -workers -legacy-offsets -out -log-file

Examples:
  crystalz list data/
  crystalz info data/In2O3.xyz
  crystalz -resolution 64 -max 12 voxelize data/In2O3.xyz -o grids`)
}

func (a *app) cmdList(args []string) error {
	dir := a.cfg.Data.XYZDir
	if len(args) > 0 {
		dir = args[0]
	}

	names, err := formats.ListXYZ(dir)
	if err != nil {
		return err
	}

	for _, name := range names {
		s, err := formats.ParseXYZFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("skipping unreadable structure", zap.String("file", name), zap.Error(err))
			fmt.Fprintf(a.out, "%-32s %s\n", name, "error")
			continue
		}
		fmt.Fprintf(a.out, "%-32s %d atoms\n", name, s.NumAtoms())
	}

	logger.Debug("listed structures", zap.String("dir", dir), zap.Int("count", len(names)))
	return nil
}

func (a *app) cmdInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: crystalz info <file.xyz>", errUsage)
	}

	s, err := formats.ParseXYZFile(args[0])
	if err != nil {
		return err
	}

	v1, v2, v3 := s.Vectors()
	fmt.Fprintf(a.out, "Structure: %s\n", args[0])
	fmt.Fprintf(a.out, "Atoms:     %d\n", s.NumAtoms())
	fmt.Fprintf(a.out, "Volume:    %.4f\n", s.Volume())
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Lattice:")
	for i, v := range []r3.Vec{v1, v2, v3} {
		fmt.Fprintf(a.out, "  v%d %10.4f %10.4f %10.4f\n", i+1, v.X, v.Y, v.Z)
	}

	counts := s.KindCounts()
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Composition:")
	for _, kind := range s.Kinds() {
		r, _ := crystal.Radius(kind)
		fmt.Fprintf(a.out, "  %-3s %5d  r=%.2f\n", kind, counts[kind], r)
	}
	return nil
}

func (a *app) cmdVoxelize(args []string) error {
	fs := flag.NewFlagSet("voxelize", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	outDir := fs.String("o", a.cfg.Output.Dir, "Output directory")
	name := fs.String("name", "", "Output base name")
	png := fs.Bool("png", a.cfg.Output.PNG, "Write PNG previews")
	html := fs.Bool("html", a.cfg.Output.HTML, "Write an HTML value histogram")
	slice := fs.Int("slice", -1, "z index of the slice preview")

	// Allow the input path before the flags.
	var input string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		input, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if input == "" && fs.NArg() > 0 {
		input = fs.Arg(0)
	}
	if input == "" {
		return fmt.Errorf("%w: crystalz voxelize <file.xyz> [-o dir] [-name base] [-png]", errUsage)
	}
	if *name == "" {
		*name = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}

	s, err := formats.ParseXYZFile(input)
	if err != nil {
		return err
	}

	method, err := a.cfg.Method()
	if err != nil {
		return err
	}
	spec := a.cfg.Spec()

	done := logger.Timed("voxelized")
	g, err := method.Compute(s, spec)
	if err != nil {
		return err
	}
	st := g.Stats()
	done(
		zap.String("file", input),
		zap.String("method", method.Name()),
		zap.Int("atoms", s.NumAtoms()),
		zap.Int("images", s.NumAtoms()*crystal.ImagesPerAtom),
		zap.Int("resolution", spec.Resolution),
		zap.Float64("min", st.Min),
		zap.Float64("max", st.Max),
		zap.Float64("mean", st.Mean),
		zap.Float64("filled", st.Filled),
	)

	hdr, err := formats.WriteVolume(*outDir, *name, g)
	if err != nil {
		return err
	}
	logger.Debug("volume written", zap.String("id", hdr.ID), zap.String("data", hdr.DataFile))
	fmt.Fprintln(a.out, filepath.Join(*outDir, *name+".yaml"))

	if *html {
		histPath := filepath.Join(*outDir, *name+"_hist.html")
		if err := preview.HistogramHTML(g, histPath); err != nil {
			return err
		}
		fmt.Fprintln(a.out, histPath)
	}

	if !*png {
		return nil
	}

	k := *slice
	if k < 0 {
		k = g.N / 2
	}
	slicePath := filepath.Join(*outDir, fmt.Sprintf("%s_z%03d.png", *name, k))
	if err := preview.SlicePNG(g, k, slicePath); err != nil {
		return err
	}
	projPath := filepath.Join(*outDir, *name+"_proj.png")
	if err := preview.ProjectionPNG(g, projPath); err != nil {
		return err
	}
	fmt.Fprintln(a.out, slicePath)
	fmt.Fprintln(a.out, projPath)
	return nil
}

func (a *app) cmdMethods() error {
	for _, name := range voxel.Methods() {
		marker := " "
		if name == a.cfg.Voxels.Method {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s %s\n", marker, name)
	}
	return nil
}

func (a *app) cmdConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	save := fs.Bool("save", false, "Write the effective config instead of printing it")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	if *save {
		path := fs.Arg(0)
		var err error
		if path == "" {
			path = config.DefaultPath()
			err = a.cfg.Save()
		} else {
			err = a.cfg.SaveTo(path)
		}
		if err != nil {
			return err
		}
		logger.Info("config saved", zap.String("path", path))
		fmt.Fprintln(a.out, path)
		return nil
	}

	data, err := a.cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = a.out.Write(data)
	return err
}
