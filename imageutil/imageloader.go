package imageutil

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // WebPはデコードのみ対応
)

// 画像入出力の失敗を表すエラー
var (
	ErrLoad  = errors.New("failed to load image")
	ErrWrite = errors.New("failed to write image")
)

// LoadImage 指定されたパスから画像を読み込む
// 対応フォーマット: PNG, JPEG, GIF, BMP, TIFF, WebP(読み込みのみ)
func LoadImage(filePath string) (image.Image, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open %s: %v", ErrLoad, filePath, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot decode %s: %v", ErrLoad, filePath, err)
	}

	return img, nil
}

// SaveImage 画像を拡張子に応じたフォーマットでファイルに保存する
// 対応フォーマット: PNG, JPEG, GIF, BMP, TIFF
func SaveImage(img image.Image, outputPath string, jpegQuality int) error {
	ext := strings.ToLower(filepath.Ext(outputPath))

	var encode func(file *os.File) error
	switch ext {
	case ".png":
		encode = func(file *os.File) error { return png.Encode(file, img) }
	case ".jpg", ".jpeg":
		encode = func(file *os.File) error {
			return jpeg.Encode(file, img, &jpeg.Options{Quality: jpegQuality})
		}
	case ".gif":
		encode = func(file *os.File) error { return gif.Encode(file, img, nil) }
	case ".bmp":
		encode = func(file *os.File) error { return bmp.Encode(file, img) }
	case ".tif", ".tiff":
		encode = func(file *os.File) error { return tiff.Encode(file, img, nil) }
	default:
		return fmt.Errorf("%w: unsupported output format: %s", ErrWrite, ext)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("%w: cannot create %s: %v", ErrWrite, outputPath, err)
	}
	defer file.Close()

	if err := encode(file); err != nil {
		return fmt.Errorf("%w: cannot encode %s: %v", ErrWrite, outputPath, err)
	}

	return nil
}
