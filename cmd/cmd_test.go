package cmd

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLogo(t *testing.T, pathname string, fill color.NRGBA) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 2; y < 6; y++ {
		for x := 2; x < 6; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}

	f, err := os.Create(pathname)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "Data")
	assetsDir := filepath.Join(dir, "Assets")
	require.NoError(t, os.MkdirAll(dataDir, 0700))
	require.NoError(t, os.MkdirAll(assetsDir, 0700))

	csv := "Brand,Value\nCoca Cola,10\nIKEA,9\nStarbucks,8\n"
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "brandirectory-ranking-data-global-2021.csv"), []byte(csv), 0600))
	csv2020 := "Brand,Value\nCoca Cola,10\nIKEA,9\nStarbucks,8\nNokia,7\n"
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "brandirectory-ranking-data-global-2020.csv"), []byte(csv2020), 0600))
	writeLogo(t, filepath.Join(assetsDir, "Coca Cola.png"), color.NRGBA{244, 0, 9, 255})
	writeLogo(t, filepath.Join(assetsDir, "IKEA.png"), color.NRGBA{0, 81, 186, 255})
	writeLogo(t, filepath.Join(assetsDir, "Starbucks.png"), color.NRGBA{0, 140, 40, 255})

	chartPath := filepath.Join(dir, "chart-{year}.png")
	common := []string{
		"--config", filepath.Join(dir, "missing"),
		"--log-dst", "stderr",
		"--nice", "0",
		"--cache", "",
		"--data-dir", dataDir,
		"--assets-dir", assetsDir,
		"--chart", chartPath,
	}

	out, err := execute(t, append(common, "analyze", "2021")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Out of the 3 most valuable brands in 2021,")
	assert.Contains(t, out, "Blue          1  33.3%")
	assert.Contains(t, out, "Pie chart written to")
	_, err = os.Stat(filepath.Join(dir, "chart-2021.png"))
	assert.NoError(t, err)

	out, err = execute(t, append(common, "classify", filepath.Join(assetsDir, "IKEA.png"))...)
	require.NoError(t, err)
	assert.Contains(t, out, "IKEA.png = blue\n")

	out, err = execute(t, append(common, "lookup", "name", "2021", "coca", "cola")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Coca Cola is ranked 1 of 3 in 2021\n")
	assert.Contains(t, out, "Dominant color: red\n")

	out, err = execute(t, append(common, "lookup", "rank", "2021", "3")...)
	require.NoError(t, err)
	assert.Contains(t, out, "The number 3 most valuable brand in 2021 is: Starbucks\n")
	assert.Contains(t, out, "Dominant color: green\n")

	_, err = execute(t, append(common, "lookup", "rank", "2021", "4")...)
	assert.Error(t, err)

	_, err = execute(t, append(common, "analyze", "1999")...)
	assert.Error(t, err)

	out, err = execute(t, append(common, "dump", "categories")...)
	require.NoError(t, err)
	assert.Contains(t, out, "blue = trust\n")

	out, err = execute(t, append(common, "analyze", "--skip-missing", "--list", "2020")...)
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("%4d  %-30s  %s\n", 1, "Coca Cola", "red"))
	assert.Contains(t, out, fmt.Sprintf("%4d  %-30s  not analysed:", 4, "Nokia"))
	assert.Contains(t, out, "Out of the 4 most valuable brands in 2020, 3 logos could be analysed.")
	assert.Contains(t, out, "1 logos could not be analysed and are not counted\n")

	out, err = execute(t, append(common, "classify", "--pixel", "28,36,33", "--pixel", "255,0,0")...)
	require.NoError(t, err)
	assert.Contains(t, out, "28,36,33 = monochrome\n")
	assert.Contains(t, out, "255,0,0 = red\n")

	_, err = execute(t, append(common, "classify", "--pixel", "300,0,0")...)
	assert.Error(t, err)
}
