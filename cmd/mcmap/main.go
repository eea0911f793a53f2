package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/bodgit/mcmap"
	"github.com/bodgit/mcmap/mapitem"
	"github.com/bodgit/mcmap/versions"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultInput  = "data"
	defaultOutput = "images"
	defaultDB     = "mcmap.db"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) logrus.FieldLogger {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	if c.Bool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	}
	if file := c.String("log-file"); file != "" {
		logger.SetOutput(&lumberjack.Logger{
			Filename:   file,
			MaxSize:    10,
			MaxBackups: 3,
		})
	}
	return logger
}

func inputDir(c *cli.Context) string {
	if c.NArg() > 0 {
		return c.Args().First()
	}
	return c.String("input")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func locate(c *cli.Context, m *mcmap.Mapper, order mcmap.SortOrder) (*mcmap.Maps, error) {
	maps, err := m.Locate(inputDir(c), c.Bool("recursive"))
	if err != nil {
		return nil, err
	}
	maps.Sort(order)
	return maps, nil
}

func sortOrder(c *cli.Context) (mcmap.SortOrder, error) {
	return mcmap.ParseSortOrder(c.String("sort"))
}

func zoom(c *cli.Context) (int8, error) {
	z := c.Int("zoom")
	if z < 0 || z > mapitem.MaxScale {
		return 0, fmt.Errorf("zoom must be between 0 and %d", mapitem.MaxScale)
	}
	return int8(z), nil
}

var (
	recursiveFlag = &cli.BoolFlag{
		Name:    "recursive",
		Aliases: []string{"r"},
		Usage:   "search subdirectories for map files",
	}
	dimensionFlag = &cli.StringFlag{
		Name:    "dimension",
		Aliases: []string{"d"},
		Usage:   "only use maps of this dimension, empty for all",
	}
	zoomFlag = &cli.IntFlag{
		Name:    "zoom",
		Aliases: []string{"z"},
		Usage:   "only use maps with this zoom level",
	}
)

func listMaps(c *cli.Context) error {
	logger := newLogger(c)
	m := mcmap.New(logger)

	order, err := sortOrder(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	maps, err := locate(c, m, order)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if maps.IsEmpty() {
		return cli.Exit("Nothing to list", 1)
	}

	base, _ := mcmap.CommonBasePath(maps.Paths())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "File\tZoom\tDimension\tLocked\tCenter\tLeft\tTop\tRight\tBottom")
	for it, err := range maps.All() {
		if err != nil {
			logger.WithError(err).Warn("Skipping map")
			continue
		}
		file := it.Path
		if rel, err := filepath.Rel(base, it.Path); err == nil && base != "" {
			file = rel
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%d, %d\t%d\t%d\t%d\t%d\n", file, it.Scale, it.PrettyDimension(), yesNo(it.Locked), it.XCenter, it.ZCenter, it.Left(), it.Top(), it.Right(), it.Bottom())
	}

	return w.Flush()
}

func showInfo(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	it, err := mapitem.ReadFile(c.Args().First())
	if err != nil {
		return cli.Exit(fmt.Errorf("could not read map item: %w", err), 1)
	}

	dimension := it.PrettyDimension()
	if c.Bool("dimension-from-path") {
		dimension = mapitem.DimensionFromPath(it.Path)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, filepath.Base(it.Path))
	fmt.Fprintf(w, "  Scale\t%d\t%s\n", it.Scale, it.ScaleDescription())
	fmt.Fprintf(w, "  Version\t%d\t%s\n", it.DataVersion, versions.Describe(it.DataVersion))
	fmt.Fprintf(w, "  Dimension\t%s\t\n", dimension)
	fmt.Fprintf(w, "  Locked\t%s\t\n", yesNo(it.Locked))
	fmt.Fprintln(w, "Tracking")
	fmt.Fprintf(w, "  Tracking position\t%s\t\n", yesNo(it.TrackingPosition))
	fmt.Fprintf(w, "  Unlimited tracking\t%s\t\n", yesNo(it.UnlimitedTracking))
	fmt.Fprintln(w, "Coordinates (X, Z)")
	fmt.Fprintf(w, "  Upper left\t%d\t%d\n", it.Left(), it.Top())
	fmt.Fprintf(w, "  Center\t%d\t%d\n", it.XCenter, it.ZCenter)
	fmt.Fprintf(w, "  Lower right\t%d\t%d\n", it.Right(), it.Bottom())
	if len(it.Banners) > 0 {
		fmt.Fprintln(w, "Banners")
		for _, b := range it.Banners {
			fmt.Fprintf(w, "  %s\t%s\t%d, %d, %d\n", b.ExtractName(), b.Color, b.Pos.X, b.Pos.Y, b.Pos.Z)
		}
	}
	if len(it.Frames) > 0 {
		fmt.Fprintln(w, "Frames")
		for _, f := range it.Frames {
			fmt.Fprintf(w, "  Entity %d\t%d°\t%d, %d, %d\n", f.EntityID, f.Rotation, f.Pos.X, f.Pos.Y, f.Pos.Z)
		}
	}

	return w.Flush()
}

func makeImage(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	m := mcmap.New(newLogger(c))

	it, err := mapitem.ReadFile(c.Args().First())
	if err != nil {
		return cli.Exit(fmt.Errorf("could not read map item: %w", err), 1)
	}

	img, err := m.Image(it)
	if err != nil {
		return cli.Exit(fmt.Errorf("could not create image: %w", err), 1)
	}

	file := c.String("output-file")
	if file == "" {
		file = filepath.Join(c.String("output"), strings.TrimSuffix(filepath.Base(it.Path), mapitem.FileExt)+".png")
	}

	if err := mcmap.Save(file, img); err != nil {
		return cli.Exit(fmt.Errorf("could not write image: %w", err), 1)
	}
	fmt.Println("Image written to:", file)

	return nil
}

func makeImages(c *cli.Context) error {
	logger := newLogger(c)
	m := mcmap.New(logger)

	maps, err := locate(c, m, mcmap.SortNone)
	if err != nil {
		return cli.Exit(fmt.Errorf("could not get maps: %w", err), 1)
	}
	if maps.IsEmpty() {
		return cli.Exit("Could not find any maps!", 1)
	}

	for it, err := range maps.All() {
		if err != nil {
			logger.WithError(err).Warn("Skipping map")
			continue
		}

		dir := c.String("output")
		if c.Bool("recursive") {
			dir = filepath.Join(dir, it.PrettyDimension())
		}
		file := filepath.Join(dir, strings.TrimSuffix(filepath.Base(it.Path), mapitem.FileExt)+".png")

		img, err := m.Image(it)
		if err != nil {
			return cli.Exit(fmt.Errorf("could not create image: %w", err), 1)
		}
		if err := mcmap.Save(file, img); err != nil {
			return cli.Exit(fmt.Errorf("could not write image: %w", err), 1)
		}
		fmt.Println("Image written to:", file)
	}

	return nil
}

func printArea(title string, r mapitem.Rect) {
	fmt.Println(title)
	fmt.Printf("  Upper Left  : %d %d\n", r.Left, r.Top)
	fmt.Printf("  Lower Right : %d %d\n", r.Right, r.Bottom)
	fmt.Printf("  Size        : %d×%d\n", r.Width(), r.Height())
}

func coordinate(name string, v int) (int32, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%s coordinate %d is out of range", name, v)
	}
	return int32(v), nil
}

func stitch(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	m := mcmap.New(newLogger(c))

	scale, err := zoom(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	order, err := sortOrder(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	maps, err := locate(c, m, order)
	if err != nil {
		return cli.Exit(fmt.Errorf("could not get maps: %w", err), 1)
	}
	fmt.Printf("Found %d map files.\n", maps.Len())

	p, err := m.NewProject(maps.All(), mcmap.Filter{Scale: scale, Dimension: c.String("dimension")})
	if err != nil {
		return cli.Exit(err, 1)
	}
	fmt.Printf("After filtering we have %d map files.\n", p.Maps.Len())
	printArea("Map area", p.Rect)

	var edges mcmap.Edges
	for _, edge := range []struct {
		name string
		dst  **int32
	}{
		{"left", &edges.Left},
		{"top", &edges.Top},
		{"right", &edges.Right},
		{"bottom", &edges.Bottom},
	} {
		if c.IsSet(edge.name) {
			v, err := coordinate(edge.name, c.Int(edge.name))
			if err != nil {
				return cli.Exit(err, 1)
			}
			*edge.dst = &v
		}
	}
	if err := p.Restrict(edges); err != nil {
		return cli.Exit(err, 1)
	}
	printArea("Map area for image", p.Rect)

	w, h := p.Size()
	fmt.Printf("Making image with size: %d×%d\n", w, h)

	bar := progressbar.Default(int64(p.Maps.Len()), "Drawing maps")
	img, err := p.Render(func() {
		bar.Add(1)
	})
	if err != nil {
		return cli.Exit(err, 1)
	}
	bar.Finish()

	file := c.Args().Get(1)
	if err := mcmap.Save(file, img); err != nil {
		return cli.Exit(fmt.Errorf("could not write image: %w", err), 1)
	}
	fmt.Println("Image written to:", file)

	return nil
}

func catalogIndex(c *cli.Context) error {
	m := mcmap.New(newLogger(c))

	maps, err := locate(c, m, mcmap.SortByName)
	if err != nil {
		return cli.Exit(err, 1)
	}

	db, err := mcmap.NewCatalog(c.String("db"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer db.Close()

	n, err := m.Index(db, maps)
	if err != nil {
		return cli.Exit(err, 1)
	}
	fmt.Printf("Added %d of %d map files.\n", n, maps.Len())

	return nil
}

func catalogFind(c *cli.Context) error {
	scale, err := zoom(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	db, err := mcmap.NewCatalog(c.String("db"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer db.Close()

	entries, err := db.Find(mcmap.Filter{Scale: scale, Dimension: c.String("dimension")})
	if err != nil {
		return cli.Exit(err, 1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFile\tVersion\tDimension\tLocked\tBounds\tImage")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%d\n", e.ID, e.Path, versions.Describe(e.DataVersion), mapitem.PrettyDimension(e.Dimension), yesNo(e.Locked), e.Bounds, e.ImageID)
	}

	return w.Flush()
}

func catalogImage(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	var id int64
	if _, err := fmt.Sscan(c.Args().First(), &id); err != nil {
		return cli.Exit(fmt.Errorf("bad image id: %w", err), 1)
	}

	db, err := mcmap.NewCatalog(c.String("db"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer db.Close()

	img, err := db.Image(id)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if err := mcmap.Save(c.Args().Get(1), img); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func testMap(c *cli.Context) error {
	file := "map_0.dat"
	if c.NArg() > 0 {
		file = c.Args().First()
	}

	it := mapitem.TestPattern(int32(c.Int("data-version")))
	if err := it.WriteFile(file); err != nil {
		return cli.Exit(fmt.Errorf("could not write test map: %w", err), 1)
	}
	fmt.Println("Test map written to:", file)

	return nil
}

func dumpNBT(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer f.Close()

	if err := dump(os.Stdout, filepath.Base(f.Name()), f); err != nil {
		return cli.Exit(fmt.Errorf("could not dump NBT file: %w", err), 1)
	}

	return nil
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal(err)
	}

	app := cli.NewApp()

	app.Name = "mcmap"
	app.Usage = "Map item image tool"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			EnvVars: []string{"MCMAP_INPUT"},
			Value:   defaultInput,
			Usage:   "directory of map files",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			EnvVars: []string{"MCMAP_OUTPUT"},
			Value:   defaultOutput,
			Usage:   "directory images are written to",
		},
		&cli.StringFlag{
			Name:    "log-file",
			EnvVars: []string{"MCMAP_LOG_FILE"},
			Usage:   "write log messages to this file",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	dbFlag := &cli.StringFlag{
		Name:    "db",
		EnvVars: []string{"MCMAP_DB"},
		Value:   defaultDB,
		Usage:   "path to database",
	}

	app.Commands = []*cli.Command{
		{
			Name:      "list",
			Usage:     "List maps and their information",
			ArgsUsage: "[DIRECTORY]",
			Flags: []cli.Flag{
				recursiveFlag,
				&cli.StringFlag{
					Name:    "sort",
					Aliases: []string{"s"},
					Value:   mcmap.SortByName.String(),
					Usage:   "sort order, one of none, name or time",
				},
			},
			Action: listMaps,
		},
		{
			Name:      "info",
			Usage:     "Show information about a map file",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "dimension-from-path",
					Aliases: []string{"d"},
					Usage:   "detect the dimension from the file path",
				},
			},
			Action: showInfo,
		},
		{
			Name:      "image",
			Usage:     "Create an image from a map file",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "output-file",
					Usage: "image file, the format is chosen by extension",
				},
			},
			Action: makeImage,
		},
		{
			Name:      "images",
			Usage:     "Create an image from each map file",
			ArgsUsage: "[DIRECTORY]",
			Flags: []cli.Flag{
				recursiveFlag,
			},
			Action: makeImages,
		},
		{
			Name:      "stitch",
			Usage:     "Create one image from many map files",
			ArgsUsage: "DIRECTORY FILE",
			Flags: []cli.Flag{
				recursiveFlag,
				zoomFlag,
				&cli.StringFlag{
					Name:    "dimension",
					Aliases: []string{"d"},
					Value:   "Overworld",
					Usage:   "only draw maps of this dimension, empty for all",
				},
				&cli.StringFlag{
					Name:    "sort",
					Aliases: []string{"s"},
					Value:   mcmap.SortByTime.String(),
					Usage:   "drawing order, one of none, name or time",
				},
				&cli.IntFlag{
					Name:  "left",
					Usage: "left coordinate (smaller X)",
				},
				&cli.IntFlag{
					Name:  "top",
					Usage: "top coordinate (smaller Z)",
				},
				&cli.IntFlag{
					Name:  "right",
					Usage: "right coordinate (larger X)",
				},
				&cli.IntFlag{
					Name:  "bottom",
					Usage: "bottom coordinate (larger Z)",
				},
			},
			Action: stitch,
		},
		{
			Name:  "catalog",
			Usage: "Keep a database of map files",
			Subcommands: []*cli.Command{
				{
					Name:      "index",
					Usage:     "Add map files to the database",
					ArgsUsage: "[DIRECTORY]",
					Flags: []cli.Flag{
						dbFlag,
						recursiveFlag,
					},
					Action: catalogIndex,
				},
				{
					Name:  "find",
					Usage: "List map files in the database",
					Flags: []cli.Flag{
						dbFlag,
						zoomFlag,
						dimensionFlag,
					},
					Action: catalogFind,
				},
				{
					Name:      "image",
					Usage:     "Write an image stored in the database",
					ArgsUsage: "ID FILE",
					Flags: []cli.Flag{
						dbFlag,
					},
					Action: catalogImage,
				},
			},
		},
		{
			Name:      "test-map",
			Usage:     "Write a map file showing every color",
			ArgsUsage: "[FILE]",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "data-version",
					Value: int(versions.Latest()),
					Usage: "data version to record in the map",
				},
			},
			Action: testMap,
		},
		{
			Name:      "dump",
			Usage:     "Print the tags of an NBT file",
			ArgsUsage: "FILE",
			Action:    dumpNBT,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
