package imageutil

import (
	"fmt"
	"image"

	"github.com/imgtools/idiff/utils"
)

// Overlap は2枚の画像に共通する原点基準の比較領域を計算する
// 領域は(0,0)を起点とし、幅・高さともに小さい方の値を採用する
func Overlap(src, tgt image.Image) (image.Rectangle, error) {
	width := utils.Min(src.Bounds().Dx(), tgt.Bounds().Dx())
	height := utils.Min(src.Bounds().Dy(), tgt.Bounds().Dy())

	if width == 0 || height == 0 {
		return image.Rectangle{}, fmt.Errorf("%w: comparable width / height cannot be zero", ErrLoad)
	}

	return image.Rect(0, 0, width, height), nil
}

// Partition は領域をブロックサイズで格子状に分割する
// すべてのピクセルはちょうど1つのブロックに属し、端のブロックは領域内に収まるよう切り詰められる
func Partition(region image.Rectangle, blockSize int) []image.Rectangle {
	var blocks []image.Rectangle

	for y := region.Min.Y; y < region.Max.Y; y += blockSize {
		for x := region.Min.X; x < region.Max.X; x += blockSize {
			maxX := utils.Min(x+blockSize, region.Max.X)
			maxY := utils.Min(y+blockSize, region.Max.Y)
			blocks = append(blocks, image.Rect(x, y, maxX, maxY))
		}
	}

	return blocks
}
