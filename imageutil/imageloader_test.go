package imageutil

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

// newTestImage は単色で塗りつぶしたテスト用画像を生成する
func newTestImage(width, height int, fill color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fill)
		}
	}
	return img
}

// createTestImageFile はテスト用の画像ファイルを作成する
func createTestImageFile(t *testing.T, path string) {
	t.Helper()

	img := newTestImage(16, 16, color.RGBA{0, 128, 255, 255})
	if err := SaveImage(img, path, 90); err != nil {
		t.Fatalf("failed to create test image file %s: %v", path, err)
	}
}

// createTextFile はテスト用の画像ではないファイルを作成する
func createTextFile(t *testing.T, path string) {
	t.Helper()

	if err := os.WriteFile(path, []byte("this is not an image"), 0644); err != nil {
		t.Fatalf("failed to create text file %s: %v", path, err)
	}
}

func TestLoadImage(t *testing.T) {
	tempDir := t.TempDir()

	pngPath := filepath.Join(tempDir, "test.png")
	createTestImageFile(t, pngPath)

	jpegPath := filepath.Join(tempDir, "test.jpg")
	createTestImageFile(t, jpegPath)

	bmpPath := filepath.Join(tempDir, "test.bmp")
	createTestImageFile(t, bmpPath)

	tiffPath := filepath.Join(tempDir, "test.tif")
	createTestImageFile(t, tiffPath)

	gifPath := filepath.Join(tempDir, "test.gif")
	createTestImageFile(t, gifPath)

	textPath := filepath.Join(tempDir, "test.txt")
	createTextFile(t, textPath)

	tests := []struct {
		name     string
		filePath string
		wantErr  bool
	}{
		{
			name:     "正常系: PNG画像を読み込む",
			filePath: pngPath,
			wantErr:  false,
		},
		{
			name:     "正常系: JPEG画像を読み込む",
			filePath: jpegPath,
			wantErr:  false,
		},
		{
			name:     "正常系: BMP画像を読み込む",
			filePath: bmpPath,
			wantErr:  false,
		},
		{
			name:     "正常系: TIFF画像を読み込む",
			filePath: tiffPath,
			wantErr:  false,
		},
		{
			name:     "正常系: GIF画像を読み込む",
			filePath: gifPath,
			wantErr:  false,
		},
		{
			name:     "異常系: 存在しないファイル",
			filePath: filepath.Join(tempDir, "non_existent.png"),
			wantErr:  true,
		},
		{
			name:     "異常系: 画像としてデコードできないファイル",
			filePath: textPath,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadImage(tt.filePath)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadImage() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, ErrLoad) {
					t.Errorf("LoadImage() error should wrap ErrLoad, but got %v", err)
				}
				return
			}
			if got == nil {
				t.Errorf("LoadImage() got = nil, want image")
				return
			}
			if got.Bounds().Dx() != 16 || got.Bounds().Dy() != 16 {
				t.Errorf("LoadImage() dimensions = %dx%d, want 16x16",
					got.Bounds().Dx(), got.Bounds().Dy())
			}
		})
	}
}

func TestSaveImage(t *testing.T) {
	tempDir := t.TempDir()
	img := newTestImage(16, 16, color.RGBA{200, 30, 30, 255})

	tests := []struct {
		name       string
		outputPath string
		wantErr    bool
	}{
		{
			name:       "正常系: PNG画像を保存",
			outputPath: filepath.Join(tempDir, "output.png"),
			wantErr:    false,
		},
		{
			name:       "正常系: JPEG画像を保存",
			outputPath: filepath.Join(tempDir, "output.jpg"),
			wantErr:    false,
		},
		{
			name:       "正常系: BMP画像を保存",
			outputPath: filepath.Join(tempDir, "output.bmp"),
			wantErr:    false,
		},
		{
			name:       "正常系: TIFF画像を保存",
			outputPath: filepath.Join(tempDir, "output.tiff"),
			wantErr:    false,
		},
		{
			name:       "異常系: サポートされていないフォーマット(WebPは書き込み不可)",
			outputPath: filepath.Join(tempDir, "output.webp"),
			wantErr:    true,
		},
		{
			name:       "異常系: 存在しないディレクトリへの書き込み",
			outputPath: filepath.Join(tempDir, "missing/dir/output.png"),
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SaveImage(img, tt.outputPath, 90)
			if (err != nil) != tt.wantErr {
				t.Errorf("SaveImage() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr {
				if !errors.Is(err, ErrWrite) {
					t.Errorf("SaveImage() error should wrap ErrWrite, but got %v", err)
				}
				return
			}

			// ファイルが実際に作成されたか確認
			if _, err := os.Stat(tt.outputPath); os.IsNotExist(err) {
				t.Errorf("SaveImage() did not create file at %s", tt.outputPath)
			}
		})
	}
}

func TestSaveImageRoundTripPNG(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "roundtrip.png")

	original := newTestImage(8, 8, color.RGBA{10, 20, 30, 255})
	original.Set(3, 4, color.RGBA{250, 240, 230, 255})

	if err := SaveImage(original, path, 90); err != nil {
		t.Fatalf("SaveImage() error = %v", err)
	}

	loaded, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage() error = %v", err)
	}

	// PNGは可逆圧縮のため、全ピクセルが一致する
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			or, og, ob, oa := original.At(x, y).RGBA()
			lr, lg, lb, la := loaded.At(x, y).RGBA()
			if or != lr || og != lg || ob != lb || oa != la {
				t.Fatalf("pixel (%d,%d) changed after round trip", x, y)
			}
		}
	}
}
