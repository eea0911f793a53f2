package mapitem

const patternBlock = 8

// TestPattern returns a scale 0 overworld map centered on the origin showing
// every palette entry as an 8 by 8 block, in index order from the top left.
func TestPattern(dataVersion int32) *Item {
	colors := make([]byte, NumPixels)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			colors[y*Width+x] = byte(y/patternBlock*(Width/patternBlock) + x/patternBlock)
		}
	}

	return &Item{
		DataVersion:      dataVersion,
		Scale:            0,
		Dimension:        Overworld,
		TrackingPosition: true,
		Locked:           true,
		Colors:           colors,
	}
}
