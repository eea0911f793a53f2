package mapitem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractName(t *testing.T) {
	tables := []struct {
		name *string
		want string
	}{
		{strptr(`{"text":"Hello"}`), "Hello"},
		{strptr(`{"color":"gold","text":"Base"}`), "Base"},
		{strptr(`"World"`), "World"},
		{strptr(`plain text`), "plain text"},
		{strptr(`{"text":`), `{"text":`},
		{strptr(`{"translate":"block.minecraft.banner"}`), `{"translate":"block.minecraft.banner"}`},
		{strptr(``), ``},
		{nil, Nameless},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, Banner{Name: table.name}.ExtractName())
	}
}

func TestPrettyDimension(t *testing.T) {
	tables := []struct {
		dimension string
		want      string
	}{
		{"minecraft:overworld", "Overworld"},
		{"minecraft:the_nether", "The Nether"},
		{"minecraft:the_end", "The End"},
		{"mymod:deep_dark_caves", "Deep Dark Caves"},
		{"-1", "The Nether"},
		{"1", "The End"},
		{"0", "Overworld"},
		{"7", "Overworld"},
		{"", "Overworld"},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, PrettyDimension(table.dimension), table.dimension)
	}
}

func TestDimensionFromPath(t *testing.T) {
	tables := []struct {
		path string
		want string
	}{
		{"world/data/map_0.dat", "Overworld"},
		{"server/world_nether/data/map_1.dat", "The Nether"},
		{"server/world_the_end/data/map_2.dat", "The End"},
		{"world/DIM-1/data/map_3.dat", "The Nether"},
		{"world/DIM1/data/map_4.dat", "The End"},
		{"map_5.dat", "Overworld"},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, DimensionFromPath(table.path), table.path)
	}
}

func TestBannerColor(t *testing.T) {
	for c := Black; c <= Yellow; c++ {
		parsed, err := ParseBannerColor(c.ID())
		assert.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	c, err := ParseBannerColor("light_gray")
	assert.NoError(t, err)
	assert.Equal(t, LightGray, c)
	assert.Equal(t, "Light Gray", c.String())

	_, err = ParseBannerColor("LightGray")
	assert.Error(t, err)

	assert.Equal(t, "BannerColor(99)", BannerColor(99).String())
	assert.Equal(t, "", BannerColor(-1).ID())
}
