package renderer

import "testing"

func TestNewTileGrid(t *testing.T) {
	// Test tile grid generation for a 400x225 image with 64x64 tiles
	width, height, tileSize := 400, 225, 64
	tiles := NewTileGrid(width, height, tileSize)

	expectedTilesX := (width + tileSize - 1) / tileSize   // 7 tiles
	expectedTilesY := (height + tileSize - 1) / tileSize  // 4 tiles
	expectedTotalTiles := expectedTilesX * expectedTilesY // 28 tiles

	if len(tiles) != expectedTotalTiles {
		t.Fatalf("Expected %d tiles, got %d", expectedTotalTiles, len(tiles))
	}

	// Tiles must cover the entire image without gaps or overlaps
	covered := make([][]int, height)
	for y := range covered {
		covered[y] = make([]int, width)
	}
	for i, tile := range tiles {
		if tile.ID != i {
			t.Errorf("Expected tile %d to have ID %d, got %d", i, i, tile.ID)
		}
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				covered[y][x]++
			}
		}
	}
	for y := range covered {
		for x := range covered[y] {
			if covered[y][x] != 1 {
				t.Fatalf("Pixel (%d,%d) covered %d times", x, y, covered[y][x])
			}
		}
	}

	// Edge tiles are clipped to the image
	last := tiles[len(tiles)-1]
	if last.Bounds.Max.X != width || last.Bounds.Max.Y != height {
		t.Errorf("Expected last tile to end at (%d,%d), got %v", width, height, last.Bounds.Max)
	}
}

func TestNewTileGrid_Degenerate(t *testing.T) {
	tests := []struct {
		name                    string
		width, height, tileSize int
		expected                int
	}{
		{"Empty image", 0, 10, 16, 0},
		{"Single pixel", 1, 1, 16, 1},
		{"Non-positive tile size covers image once", 10, 5, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(NewTileGrid(tt.width, tt.height, tt.tileSize)); got != tt.expected {
				t.Errorf("Expected %d tiles, got %d", tt.expected, got)
			}
		})
	}
}
