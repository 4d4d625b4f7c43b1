package curator

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/nguyentantai21042004/slide-flow/internal/config"
	"github.com/nguyentantai21042004/slide-flow/internal/logger"
	"github.com/nguyentantai21042004/slide-flow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCurator(minGap float64, max int) Curator {
	return New(config.SlidesConfig{MinSlideDuration: &minGap, MaxSlides: max}, logger.NewNop())
}

func writePNG(t *testing.T, dir, name string, w, h int, luma func(x, y int) uint8) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: luma(x, y)})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func verticalSplit(x, y int) uint8 {
	if x < 320 {
		return 10
	}
	return 240
}

func horizontalSplit(x, y int) uint8 {
	if y < 180 {
		return 10
	}
	return 240
}

func TestFilterSpacing(t *testing.T) {
	tests := []struct {
		name   string
		input  []float64
		minGap float64
		want   []float64
	}{
		{"empty", nil, 2, nil},
		{"single", []float64{4}, 2, []float64{4}},
		{"drops close neighbours", []float64{0, 1, 2.5, 3, 10}, 2, []float64{0, 2.5, 10}},
		{"exact gap kept", []float64{0, 2, 4}, 2, []float64{0, 2, 4}},
		{"unsorted input", []float64{10, 0, 1}, 2, []float64{0, 10}},
		{"duplicates collapse", []float64{5, 5, 5}, 2, []float64{5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterSpacing(tt.input, tt.minGap))
		})
	}
}

func TestFilterSpacingInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for run := 0; run < 200; run++ {
		n := rng.Intn(50) + 1
		input := make([]float64, n)
		for i := range input {
			input[i] = rng.Float64() * 600
		}
		gap := rng.Float64() * 10

		got := FilterSpacing(input, gap)

		sorted := append([]float64(nil), input...)
		sort.Float64s(sorted)
		require.Equal(t, sorted[0], got[0], "earliest timestamp must be kept")
		for i := 1; i < len(got); i++ {
			require.GreaterOrEqual(t, got[i]-got[i-1], gap)
		}
	}
}

func TestCurateCapsToEarliest(t *testing.T) {
	c := newTestCurator(2, 3)
	got := c.Curate(context.Background(), []float64{0, 3, 6, 9, 12})
	assert.Equal(t, []float64{0, 3, 6}, got)

	assert.Equal(t, []float64{1, 2}, Cap([]float64{1, 2}, 5))
}

func TestDedupe(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", 640, 360, verticalSplit)
	aCopy := writePNG(t, dir, "a_copy.png", 640, 360, func(x, y int) uint8 {
		// same layout with slight brightness noise
		return verticalSplit(x, y) + uint8((x+y)%3)
	})
	b := writePNG(t, dir, "b.png", 640, 360, horizontalSplit)

	slides := []models.Slide{
		{Timestamp: 0, ImagePath: a},
		{Timestamp: 5, ImagePath: aCopy},
		{Timestamp: 10, ImagePath: b},
		{Timestamp: 15, ImagePath: filepath.Join(dir, "missing.png")},
	}

	c := newTestCurator(2, 100)
	unique := c.Dedupe(context.Background(), slides)

	require.Len(t, unique, 2)
	assert.Equal(t, a, unique[0].ImagePath)
	assert.Equal(t, b, unique[1].ImagePath)
	assert.NotEmpty(t, unique[0].ImageHash)
	assert.NoFileExists(t, aCopy)
	assert.FileExists(t, a)

	again := c.Dedupe(context.Background(), unique)
	assert.Equal(t, unique, again)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := writePNG(t, dir, "good.png", 640, 360, verticalSplit)
	grey := writePNG(t, dir, "grey.png", 320, 240, func(x, y int) uint8 { return 128 })
	black := writePNG(t, dir, "black.png", 640, 360, func(x, y int) uint8 { return 5 })
	white := writePNG(t, dir, "white.png", 640, 360, func(x, y int) uint8 { return 250 })
	small := writePNG(t, dir, "small.png", 200, 100, verticalSplit)

	slides := []models.Slide{
		{Timestamp: 0, ImagePath: good},
		{Timestamp: 1, ImagePath: black},
		{Timestamp: 2, ImagePath: white},
		{Timestamp: 3, ImagePath: small},
		{Timestamp: 4, ImagePath: grey},
	}

	valid := newTestCurator(2, 100).Validate(context.Background(), slides)
	require.Len(t, valid, 2)
	assert.Equal(t, good, valid[0].ImagePath)
	assert.Equal(t, grey, valid[1].ImagePath)
	assert.NoFileExists(t, black)
	assert.NoFileExists(t, white)
	assert.NoFileExists(t, small)
}

func TestInvalidReason(t *testing.T) {
	mostlyDark := image.NewGray(image.Rect(0, 0, 400, 300))
	// 95% black, 5% mid grey
	for y := 0; y < 300; y++ {
		for x := 0; x < 400; x++ {
			if x < 20 {
				mostlyDark.SetGray(x, y, color.Gray{Y: 128})
			}
		}
	}
	assert.Equal(t, "mostly_black", invalidReason(mostlyDark))

	half := image.NewGray(image.Rect(0, 0, 400, 300))
	for y := 0; y < 300; y++ {
		for x := 200; x < 400; x++ {
			half.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	assert.Equal(t, "", invalidReason(half))
}
