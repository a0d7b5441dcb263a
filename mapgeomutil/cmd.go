/*
Copyright © 2018 the MapGeom authors.
This file is part of MapGeom.

MapGeom is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

MapGeom is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with MapGeom.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package mapgeomutil holds the configuration and command plumbing for
// the mapgeom command-line tool.
package mapgeomutil

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/mapgeom"
	"github.com/spatialmodel/mapgeom/encoding/geojson"
	"github.com/spatialmodel/mapgeom/index"
	"github.com/spatialmodel/mapgeom/op"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to the mapgeom
	// commands.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "verbose",
			usage: `
              verbose turns on the printing of progress information
              while a command runs.`,
			shorthand:  "v",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "input",
			usage: `
              input is the geometry file a command reads. The file format
              is chosen by the file name extension: .geojson or .json for
              GeoJSON and .shp for an ESRI shapefile.`,
			shorthand:  "i",
			defaultVal: "",
			flagsets: []*pflag.FlagSet{infoCmd.Flags(), bufferCmd.Flags(),
				cropCmd.Flags(), unionCmd.Flags(), differenceCmd.Flags(),
				intersectsCmd.Flags()},
		},
		{
			name: "output",
			usage: `
              output is the geometry file a command writes its result to.
              The file format is chosen by the file name extension, as
              for input.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets: []*pflag.FlagSet{bufferCmd.Flags(), cropCmd.Flags(),
				unionCmd.Flags(), differenceCmd.Flags()},
		},
		{
			name: "operand",
			usage: `
              operand is the geometry file holding the second operand of
              a command that combines two files.`,
			defaultVal: "",
			flagsets: []*pflag.FlagSet{unionCmd.Flags(), differenceCmd.Flags(),
				intersectsCmd.Flags()},
		},
		{
			name: "window",
			usage: `
              window is the rectangle to crop the input geometries to,
              given as "xmin,ymin,xmax,ymax".`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cropCmd.Flags()},
		},
		{
			name: "distance",
			usage: `
              distance is how far the buffer region extends from the
              input geometry, in the coordinate units of the input file.
              A negative distance shrinks area geometries.`,
			shorthand:  "d",
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{bufferCmd.Flags()},
		},
		{
			name: "segments",
			usage: `
              segments is the number of line segments used to approximate
              a quarter circle in round buffer caps and joins.`,
			defaultVal: 8,
			flagsets:   []*pflag.FlagSet{bufferCmd.Flags()},
		},
		{
			name: "cap",
			usage: `
              cap is the end cap style for buffered lines: round, square,
              or flat.`,
			defaultVal: "round",
			flagsets:   []*pflag.FlagSet{bufferCmd.Flags()},
		},
		{
			name: "join",
			usage: `
              join is the corner style for the buffer outline: round,
              mitre, or bevel.`,
			defaultVal: "round",
			flagsets:   []*pflag.FlagSet{bufferCmd.Flags()},
		},
		{
			name: "side",
			usage: `
              side restricts the buffer of a line to one of its sides:
              both, left, or right. Left and right are relative to the
              direction of the line.`,
			defaultVal: "both",
			flagsets:   []*pflag.FlagSet{bufferCmd.Flags()},
		},
		{
			name: "presets",
			usage: `
              presets is the location of a TOML file holding named buffer
              settings. When a preset is selected it replaces the
              distance, segments, cap, join, and side options.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{bufferCmd.Flags()},
		},
		{
			name: "preset",
			usage: `
              preset is the name of the entry to use from the presets
              file.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{bufferCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("MAPGEOM")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(infoCmd)
	Root.AddCommand(bufferCmd)
	Root.AddCommand(cropCmd)
	Root.AddCommand(unionCmd)
	Root.AddCommand(differenceCmd)
	Root.AddCommand(intersectsCmd)
}

// logger carries progress detail when the verbose option is set.
// Command results go to standard output, not to the logger.
var logger *logrus.Logger

func init() {
	logger = logrus.StandardLogger()
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})
}

// setLogging matches the log level to the verbose option.
func setLogging() {
	if Cfg.GetBool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("mapgeom: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "mapgeom",
	Short: "A tool for working with vector map geometry.",
	Long: `mapgeom reads, inspects, and transforms the vector geometry files
used by the spatialmodel mapping tools. Geometry files are read and
written as GeoJSON (.geojson or .json) or ESRI shapefiles (.shp),
chosen by the file name extension. Use the subcommands specified below
to choose an operation.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		setLogging()
		return setConfig()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of MapGeom.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("MapGeom v%s\n", mapgeom.Version)
	},
	DisableAutoGenTag: true,
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Summarize the contents of a geometry file.",
	Long: `info reads the file given by --input and prints the number of
features it holds, a tally of their geometry variants, the total vertex
count, the combined bounds, and the combined path length.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		features, err := inputFeatures()
		if err != nil {
			return err
		}
		tally := make(map[mapgeom.Type]int)
		var withoutGeometry, points int
		var length float64
		bounds := mapgeom.NewBounds()
		for _, f := range features {
			if f.Geometry == nil {
				withoutGeometry++
				continue
			}
			tally[f.Geometry.Type()]++
			points += f.Geometry.NumPoints()
			length += f.Geometry.Length()
			bounds.Extend(f.Geometry.Bounds())
		}
		fmt.Printf("%s: %d features\n", Cfg.GetString("input"), len(features))
		for _, t := range []mapgeom.Type{mapgeom.PointSetType, mapgeom.LineStringType,
			mapgeom.RingType, mapgeom.PolygonType, mapgeom.MultiType} {
			if tally[t] > 0 {
				fmt.Printf("  %v: %d\n", t, tally[t])
			}
		}
		if withoutGeometry > 0 {
			fmt.Printf("  without geometry: %d\n", withoutGeometry)
		}
		fmt.Printf("  vertices: %d\n", points)
		if !bounds.Empty() {
			fmt.Printf("  bounds: (%g, %g) to (%g, %g)\n",
				bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
		}
		fmt.Printf("  length: %g\n", length)
		return nil
	},
	DisableAutoGenTag: true,
}

var bufferCmd = &cobra.Command{
	Use:   "buffer",
	Short: "Build regions within a distance of the input geometries.",
	Long: `buffer reads the file given by --input, builds the region within
--distance of each feature's geometry, and writes the resulting
features to --output. Feature properties are carried over unchanged.
Features whose buffer comes out empty, as can happen with a negative
distance, are dropped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		features, err := inputFeatures()
		if err != nil {
			return err
		}
		distance, params, err := bufferSettings()
		if err != nil {
			return err
		}
		out := make([]*geojson.Feature, 0, len(features))
		for i, f := range features {
			if f.Geometry == nil {
				continue
			}
			g, err := op.Buffer(f.Geometry, distance, params)
			if err != nil {
				return fmt.Errorf("mapgeom: buffering feature %d: %v", i, err)
			}
			if emptyGeometry(g) {
				logger.Debugf("feature %d buffered to nothing", i)
				continue
			}
			out = append(out, &geojson.Feature{Geometry: g, Properties: f.Properties})
		}
		return writeOutput(out)
	},
	DisableAutoGenTag: true,
}

var cropCmd = &cobra.Command{
	Use:   "crop",
	Short: "Cut the input geometries to a rectangular window.",
	Long: `crop reads the file given by --input, cuts each feature's geometry
to the rectangle given by --window, and writes the features that remain
to --output. Lines and areas are cut at the window boundary; points are
kept or dropped whole. Feature properties are carried over unchanged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		features, err := inputFeatures()
		if err != nil {
			return err
		}
		window, err := parseWindow(Cfg.Get("window"))
		if err != nil {
			return err
		}
		out := make([]*geojson.Feature, 0, len(features))
		for i, f := range features {
			if f.Geometry == nil {
				continue
			}
			g, err := op.CropBounds(f.Geometry, window)
			if err != nil {
				return fmt.Errorf("mapgeom: cropping feature %d: %v", i, err)
			}
			if emptyGeometry(g) {
				logger.Debugf("feature %d lies outside the window", i)
				continue
			}
			out = append(out, &geojson.Feature{Geometry: g, Properties: f.Properties})
		}
		return writeOutput(out)
	},
	DisableAutoGenTag: true,
}

var unionCmd = &cobra.Command{
	Use:   "union",
	Short: "Combine geometries into one.",
	Long: `union reads the file given by --input, plus the file given by
--operand if there is one, combines all of the features' geometries
into a single geometry, and writes it to --output as one feature.
Feature properties do not survive the combination. Point geometries
cannot be combined.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		features, err := inputFeatures()
		if err != nil {
			return err
		}
		if Cfg.GetString("operand") != "" {
			operands, err := operandFeatures()
			if err != nil {
				return err
			}
			features = append(features, operands...)
		}
		combined, err := unionAll(features)
		if err != nil {
			return err
		}
		return writeOutput([]*geojson.Feature{{Geometry: combined}})
	},
	DisableAutoGenTag: true,
}

var differenceCmd = &cobra.Command{
	Use:   "difference",
	Short: "Subtract one set of geometries from another.",
	Long: `difference reads the files given by --input and --operand,
subtracts the combined operand geometries from each input feature's
geometry, and writes the features that have anything left to --output.
Feature properties are carried over unchanged. Point geometries cannot
be subtracted from or subtracted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		features, err := inputFeatures()
		if err != nil {
			return err
		}
		operands, err := operandFeatures()
		if err != nil {
			return err
		}
		subtrahend, err := unionAll(operands)
		if err != nil {
			return err
		}
		out := make([]*geojson.Feature, 0, len(features))
		for i, f := range features {
			if f.Geometry == nil {
				continue
			}
			g, err := op.Difference(f.Geometry, subtrahend)
			if err != nil {
				return fmt.Errorf("mapgeom: subtracting from feature %d: %v", i, err)
			}
			if emptyGeometry(g) {
				logger.Debugf("feature %d is fully covered by the operand", i)
				continue
			}
			out = append(out, &geojson.Feature{Geometry: g, Properties: f.Properties})
		}
		return writeOutput(out)
	},
	DisableAutoGenTag: true,
}

var intersectsCmd = &cobra.Command{
	Use:   "intersects",
	Short: "Report which geometries of two files intersect.",
	Long: `intersects reads the files given by --input and --operand and
prints a line for each pair of features, one from each file, whose
geometries share a region of the plane. Operand features are indexed by
their bounds, so only features whose bounds overlap are tested.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		features, err := inputFeatures()
		if err != nil {
			return err
		}
		operands, err := operandFeatures()
		if err != nil {
			return err
		}
		idx := index.New()
		for i, f := range operands {
			if f.Geometry == nil {
				continue
			}
			if err := idx.Insert(f.Geometry, i); err != nil {
				return fmt.Errorf("mapgeom: indexing operand feature %d: %v", i, err)
			}
		}
		var pairs int
		for i, f := range features {
			if f.Geometry == nil {
				continue
			}
			for _, candidate := range idx.SearchBounds(f.Geometry.Bounds()) {
				hit, err := op.Intersects(f.Geometry, candidate.Geometry)
				if err != nil {
					return fmt.Errorf("mapgeom: testing feature %d: %v", i, err)
				}
				if hit {
					fmt.Printf("feature %d intersects operand feature %d\n",
						i, candidate.Data.(int))
					pairs++
				}
			}
		}
		fmt.Printf("%d intersecting pairs\n", pairs)
		return nil
	},
	DisableAutoGenTag: true,
}

// inputFeatures reads the file named by the input option.
func inputFeatures() ([]*geojson.Feature, error) {
	path := Cfg.GetString("input")
	if path == "" {
		return nil, fmt.Errorf("mapgeom: an input file must be specified with --input")
	}
	features, err := ReadFeatures(path)
	if err != nil {
		return nil, err
	}
	logger.Debugf("read %d features from %s", len(features), path)
	return features, nil
}

// operandFeatures reads the file named by the operand option.
func operandFeatures() ([]*geojson.Feature, error) {
	path := Cfg.GetString("operand")
	if path == "" {
		return nil, fmt.Errorf("mapgeom: an operand file must be specified with --operand")
	}
	features, err := ReadFeatures(path)
	if err != nil {
		return nil, err
	}
	logger.Debugf("read %d features from %s", len(features), path)
	return features, nil
}

// writeOutput writes features to the file named by the output option.
func writeOutput(features []*geojson.Feature) error {
	path := Cfg.GetString("output")
	if path == "" {
		return fmt.Errorf("mapgeom: an output file must be specified with --output")
	}
	if err := WriteFeatures(path, features); err != nil {
		return err
	}
	logger.Debugf("wrote %d features to %s", len(features), path)
	return nil
}

// unionAll combines the geometries of features into one.
func unionAll(features []*geojson.Feature) (mapgeom.Geometry, error) {
	var combined mapgeom.Geometry
	for i, f := range features {
		if f.Geometry == nil {
			continue
		}
		if combined == nil {
			combined = f.Geometry
			continue
		}
		var err error
		combined, err = op.Union(combined, f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("mapgeom: combining feature %d: %v", i, err)
		}
	}
	if combined == nil {
		return nil, fmt.Errorf("mapgeom: there are no geometries to combine")
	}
	return combined, nil
}

// bufferPreset is one named entry in a buffer preset file, and also
// carries the buffer options while they are converted to operation
// parameters.
type bufferPreset struct {
	Distance float64
	Segments int
	Cap      string
	Join     string
	Side     string
}

// bufferSettings assembles the buffer distance and parameters from the
// configuration, reading them from the selected entry of the presets
// file when one is named.
func bufferSettings() (float64, op.BufferParams, error) {
	if presetFile := Cfg.GetString("presets"); presetFile != "" {
		presets := make(map[string]bufferPreset)
		if _, err := toml.DecodeFile(presetFile, &presets); err != nil {
			return 0, op.BufferParams{}, fmt.Errorf("mapgeom: problem reading preset file: %v", err)
		}
		name := Cfg.GetString("preset")
		preset, ok := presets[name]
		if !ok {
			return 0, op.BufferParams{}, fmt.Errorf("mapgeom: preset file %s has no preset %q", presetFile, name)
		}
		return preset.settings()
	}
	preset := bufferPreset{
		Distance: Cfg.GetFloat64("distance"),
		Segments: Cfg.GetInt("segments"),
		Cap:      Cfg.GetString("cap"),
		Join:     Cfg.GetString("join"),
		Side:     Cfg.GetString("side"),
	}
	return preset.settings()
}

func (p bufferPreset) settings() (float64, op.BufferParams, error) {
	params := op.BufferParams{CornerSegs: p.Segments}
	switch p.Cap {
	case "", "default":
		params.Cap = op.CapDefault
	case "round":
		params.Cap = op.CapRound
	case "square":
		params.Cap = op.CapSquare
	case "flat":
		params.Cap = op.CapFlat
	default:
		return 0, params, fmt.Errorf("mapgeom: unknown cap style %q", p.Cap)
	}
	switch p.Join {
	case "", "round":
		params.Join = op.JoinRound
	case "mitre":
		params.Join = op.JoinMitre
	case "bevel":
		params.Join = op.JoinBevel
	default:
		return 0, params, fmt.Errorf("mapgeom: unknown join style %q", p.Join)
	}
	switch p.Side {
	case "", "both":
	case "left":
		params.SingleSided, params.LeftSide = true, true
	case "right":
		params.SingleSided = true
	default:
		return 0, params, fmt.Errorf("mapgeom: unknown buffer side %q", p.Side)
	}
	return p.Distance, params, nil
}

// parseWindow converts the window option, either the string form
// "xmin,ymin,xmax,ymax" given on the command line or an array of four
// numbers from a configuration file, into bounds.
func parseWindow(v interface{}) (*mapgeom.Bounds, error) {
	var vals []float64
	switch w := v.(type) {
	case string:
		if w == "" {
			return nil, fmt.Errorf("mapgeom: a crop window must be specified with --window")
		}
		for _, part := range strings.Split(w, ",") {
			f, err := cast.ToFloat64E(strings.TrimSpace(part))
			if err != nil {
				return nil, fmt.Errorf("mapgeom: invalid crop window %q: %v", w, err)
			}
			vals = append(vals, f)
		}
	case []interface{}:
		for _, e := range w {
			f, err := cast.ToFloat64E(e)
			if err != nil {
				return nil, fmt.Errorf("mapgeom: invalid crop window %v: %v", w, err)
			}
			vals = append(vals, f)
		}
	default:
		return nil, fmt.Errorf("mapgeom: invalid type for crop window: %#v", v)
	}
	if len(vals) != 4 {
		return nil, fmt.Errorf("mapgeom: a crop window needs 4 values, not %d", len(vals))
	}
	return &mapgeom.Bounds{
		Min: mapgeom.Point{X: math.Min(vals[0], vals[2]), Y: math.Min(vals[1], vals[3])},
		Max: mapgeom.Point{X: math.Max(vals[0], vals[2]), Y: math.Max(vals[1], vals[3])},
	}, nil
}

// emptyGeometry reports whether g is nil or an operation result with
// nothing in it.
func emptyGeometry(g mapgeom.Geometry) bool {
	if g == nil {
		return true
	}
	if m, ok := g.(*mapgeom.MultiGeometry); ok {
		return len(m.Parts) == 0
	}
	return false
}
