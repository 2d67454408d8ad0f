package imageutil

import (
	"image"
	"image/color"
	"image/draw"
)

// HighlightBlocks は比較先画像のコピーに差分ブロックの枠を描画して返す
// 出力画像のサイズは比較先画像と同じで、差分のないピクセルはそのままコピーされる
func HighlightBlocks(tgt image.Image, blocks []image.Rectangle, borderColor color.RGBA) *image.RGBA {
	tgtBounds := tgt.Bounds()

	// 比較先画像を原点基準のキャンバスに複製する
	result := image.NewRGBA(image.Rect(0, 0, tgtBounds.Dx(), tgtBounds.Dy()))
	draw.Draw(result, result.Bounds(), tgt, tgtBounds.Min, draw.Src)

	for _, block := range blocks {
		// 上辺と下辺を描画
		for x := block.Min.X; x < block.Max.X; x++ {
			result.Set(x, block.Min.Y, borderColor)
			result.Set(x, block.Max.Y-1, borderColor)
		}

		// 左辺と右辺を描画
		for y := block.Min.Y; y < block.Max.Y; y++ {
			result.Set(block.Min.X, y, borderColor)
			result.Set(block.Max.X-1, y, borderColor)
		}
	}

	return result
}
