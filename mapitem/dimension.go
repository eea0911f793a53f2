package mapitem

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Identifiers of the built-in dimensions
const (
	Overworld = "minecraft:overworld"
	TheNether = "minecraft:the_nether"
	TheEnd    = "minecraft:the_end"
)

// PrettyDimension returns a readable form of a dimension identifier, such
// as "The Nether" for "minecraft:the_nether". Identifiers without a
// namespace are treated as legacy numeric codes.
func PrettyDimension(dimension string) string {
	i := strings.IndexByte(dimension, ':')
	if i < 0 {
		switch dimension {
		case "-1":
			return PrettyDimension(TheNether)
		case "1":
			return PrettyDimension(TheEnd)
		default:
			return PrettyDimension(Overworld)
		}
	}
	return cases.Title(language.Und).String(strings.ReplaceAll(dimension[i+1:], "_", " "))
}

// PrettyDimension returns the readable form of the item's dimension.
func (it *Item) PrettyDimension() string {
	return PrettyDimension(it.Dimension)
}

// DimensionFromPath guesses the readable dimension from the directory
// layout of a save, for example world_nether/data/map_0.dat or
// world/DIM-1/data/map_0.dat.
func DimensionFromPath(path string) string {
	for _, dir := range strings.Split(filepath.ToSlash(filepath.Dir(path)), "/") {
		switch {
		case dir == "DIM-1", strings.HasSuffix(dir, "_nether"):
			return PrettyDimension(TheNether)
		case dir == "DIM1", strings.HasSuffix(dir, "_the_end"):
			return PrettyDimension(TheEnd)
		}
	}
	return PrettyDimension(Overworld)
}
