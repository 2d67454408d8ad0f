package config

import (
	"errors"
	"fmt"
	"image/color"
	"runtime"
	"strconv"
	"strings"
)

// ErrInvalidConfig は設定値の検証に失敗したことを表すエラー
var ErrInvalidConfig = errors.New("invalid configuration")

// AppConfig は画像比較のための設定を保持する構造体
type AppConfig struct {
	// 入出力に関する設定
	Src        string // 比較元画像のパス
	Tgt        string // 比較先画像のパス
	OutputStem string // 出力ファイル名(拡張子なし)。空の場合は比較先ファイル名から生成

	// 比較方法に関する設定
	Strict    bool // サイズ不一致を即時エラーとするか
	Highlight bool // 差分ブロックを強調表示した画像を出力するか
	BlockSize int  // 強調表示に使うブロックの一辺(ピクセル)

	// 出力画像に関する設定
	HighlightColor color.RGBA // 強調表示の枠の色
	JPEGQuality    int        // JPEG出力時の品質(1-100)

	// 並列処理のための設定
	NumCPU int // ブロック走査に使うワーカー数
}

// NewDefaultConfig はデフォルト設定を持つ新しいAppConfigを返す
func NewDefaultConfig() *AppConfig {
	return &AppConfig{
		Strict:         false,
		Highlight:      false,
		BlockSize:      10,
		HighlightColor: color.RGBA{255, 0, 0, 255}, // 赤色の枠
		JPEGQuality:    90,
		NumCPU:         runtime.NumCPU(),
	}
}

// Validate は設定値の整合性を検証する
// 不正な値が含まれる場合はErrInvalidConfigをラップしたエラーを返す
func (c *AppConfig) Validate() error {
	if c.Src == "" {
		return fmt.Errorf("%w: source file name is required", ErrInvalidConfig)
	}
	if c.Tgt == "" {
		return fmt.Errorf("%w: target file name is required", ErrInvalidConfig)
	}
	if c.BlockSize < 1 {
		return fmt.Errorf("%w: block size must be a positive integer, got %d", ErrInvalidConfig, c.BlockSize)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("%w: jpeg quality must be in range 1-100, got %d", ErrInvalidConfig, c.JPEGQuality)
	}
	if c.NumCPU < 1 {
		return fmt.Errorf("%w: cpu count must be a positive integer, got %d", ErrInvalidConfig, c.NumCPU)
	}
	return nil
}

// ParseHighlightColor は "#RRGGBB" 形式の文字列を不透明な色に変換する
// 先頭の '#' は省略可能
func ParseHighlightColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: highlight color must be in #RRGGBB format, got %q", ErrInvalidConfig, s)
	}

	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: highlight color must be in #RRGGBB format, got %q", ErrInvalidConfig, s)
	}

	return color.RGBA{
		R: uint8(value >> 16),
		G: uint8(value >> 8),
		B: uint8(value),
		A: 255,
	}, nil
}
