package mapitem

import "fmt"

// BannerColor is one of the sixteen dye colors.
type BannerColor int

const (
	Black BannerColor = iota
	Blue
	Brown
	Cyan
	Gray
	Green
	LightBlue
	LightGray
	Lime
	Magenta
	Orange
	Pink
	Purple
	Red
	White
	Yellow
)

var bannerColors = [...]struct {
	id   string
	name string
}{
	Black:     {"black", "Black"},
	Blue:      {"blue", "Blue"},
	Brown:     {"brown", "Brown"},
	Cyan:      {"cyan", "Cyan"},
	Gray:      {"gray", "Gray"},
	Green:     {"green", "Green"},
	LightBlue: {"light_blue", "Light Blue"},
	LightGray: {"light_gray", "Light Gray"},
	Lime:      {"lime", "Lime"},
	Magenta:   {"magenta", "Magenta"},
	Orange:    {"orange", "Orange"},
	Pink:      {"pink", "Pink"},
	Purple:    {"purple", "Purple"},
	Red:       {"red", "Red"},
	White:     {"white", "White"},
	Yellow:    {"yellow", "Yellow"},
}

// ParseBannerColor returns the color with the stored identifier id, such as
// "light_blue".
func ParseBannerColor(id string) (BannerColor, error) {
	for i, c := range bannerColors {
		if c.id == id {
			return BannerColor(i), nil
		}
	}
	return 0, fmt.Errorf("unknown banner color %q", id)
}

// ID returns the identifier used in the stored record.
func (c BannerColor) ID() string {
	if c < 0 || int(c) >= len(bannerColors) {
		return ""
	}
	return bannerColors[c].id
}

func (c BannerColor) String() string {
	if c < 0 || int(c) >= len(bannerColors) {
		return fmt.Sprintf("BannerColor(%d)", int(c))
	}
	return bannerColors[c].name
}
