package imageutil

import (
	"errors"
	"fmt"
	"image"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/imgtools/idiff/config"
	"github.com/imgtools/idiff/utils"
)

// ErrDimensionMismatch は厳格モードで画像サイズが一致しなかったことを表すエラー
var ErrDimensionMismatch = errors.New("dimension mismatch")

// Result は画像比較の結果を保持する構造体
type Result struct {
	EqualDimensions bool              // 2枚の画像サイズが一致していたか
	DiffPixels      int               // 比較領域内の不一致ピクセル数
	TotalPixels     int               // 比較領域の総ピクセル数
	DiffBlocks      []image.Rectangle // 不一致ピクセルを含むブロックの一覧
}

// Identical は2枚の画像が完全に一致したかどうかを返す
// サイズが異なる場合は重なり領域がすべて一致していても不一致として扱う
func (r *Result) Identical() bool {
	return r.EqualDimensions && r.DiffPixels == 0
}

// DiffPercentage は比較領域に対する不一致ピクセルの割合(%)を返す
func (r *Result) DiffPercentage() float64 {
	if r.TotalPixels == 0 {
		return 0
	}
	return float64(r.DiffPixels) / float64(r.TotalPixels) * 100.0
}

// Comparator は2枚の画像をブロック単位で比較する構造体
type Comparator struct {
	cfg *config.AppConfig
}

// NewComparator 設定をもとに新しいComparatorインスタンスを作成
func NewComparator(cfg *config.AppConfig) *Comparator {
	return &Comparator{
		cfg: cfg,
	}
}

// Compare は2枚の画像をブロック単位で走査して比較結果を返す
// 厳格モードでサイズが一致しない場合はErrDimensionMismatchをラップしたエラーを返す
func (c *Comparator) Compare(src, tgt image.Image) (*Result, error) {
	startTime := time.Now()

	srcBounds := src.Bounds()
	tgtBounds := tgt.Bounds()
	equalDimensions := srcBounds.Dx() == tgtBounds.Dx() && srcBounds.Dy() == tgtBounds.Dy()

	if c.cfg.Strict && !equalDimensions {
		return nil, fmt.Errorf("%w: 'src' (%dx%d) & 'tgt' (%dx%d) do not have the same dimensions",
			ErrDimensionMismatch, srcBounds.Dx(), srcBounds.Dy(), tgtBounds.Dx(), tgtBounds.Dy())
	}

	region, err := Overlap(src, tgt)
	if err != nil {
		return nil, err
	}

	blocks := Partition(region, c.cfg.BlockSize)
	log.Debug().
		Int("width", region.Dx()).
		Int("height", region.Dy()).
		Int("blockSize", c.cfg.BlockSize).
		Int("blocks", len(blocks)).
		Msg("comparing region")

	// ブロック単位の比較結果
	type blockDiff struct {
		block image.Rectangle
		diff  int
	}

	// 並列処理用のワーカープールを作成
	numWorkers := utils.Max(1, utils.Min(c.cfg.NumCPU, len(blocks)))
	blockCh := make(chan image.Rectangle, len(blocks))
	results := make(chan blockDiff, len(blocks))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for block := range blockCh {
				results <- blockDiff{block, countDiffPixels(src, tgt, block)}
			}
		}()
	}

	for _, block := range blocks {
		blockCh <- block
	}
	close(blockCh)

	// すべてのワーカーが完了するまで待機
	go func() {
		wg.Wait()
		close(results)
	}()

	result := &Result{
		EqualDimensions: equalDimensions,
		TotalPixels:     region.Dx() * region.Dy(),
	}

	for br := range results {
		if br.diff > 0 {
			result.DiffPixels += br.diff
			result.DiffBlocks = append(result.DiffBlocks, br.block)
		}
	}

	// ワーカーの完了順に依存しないよう、ブロックを走査順に整列する
	sort.Slice(result.DiffBlocks, func(i, j int) bool {
		if result.DiffBlocks[i].Min.Y != result.DiffBlocks[j].Min.Y {
			return result.DiffBlocks[i].Min.Y < result.DiffBlocks[j].Min.Y
		}
		return result.DiffBlocks[i].Min.X < result.DiffBlocks[j].Min.X
	})

	log.Debug().
		Int("diffPixels", result.DiffPixels).
		Int("diffBlocks", len(result.DiffBlocks)).
		Dur("elapsed", time.Since(startTime)).
		Msg("comparison completed")

	return result, nil
}

// countDiffPixels はブロック内の不一致ピクセル数を数える
// 比較領域は原点基準のため、各画像のBounds().Minを加えて実座標に変換する
func countDiffPixels(src, tgt image.Image, block image.Rectangle) int {
	srcMin := src.Bounds().Min
	tgtMin := tgt.Bounds().Min

	diff := 0
	for y := block.Min.Y; y < block.Max.Y; y++ {
		for x := block.Min.X; x < block.Max.X; x++ {
			sr, sg, sb, sa := src.At(srcMin.X+x, srcMin.Y+y).RGBA()
			tr, tg, tb, ta := tgt.At(tgtMin.X+x, tgtMin.Y+y).RGBA()

			// 全チャンネルが厳密に一致する場合のみ同一ピクセルとみなす
			if sr != tr || sg != tg || sb != tb || sa != ta {
				diff++
			}
		}
	}

	return diff
}
