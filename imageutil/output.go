package imageutil

import (
	"path/filepath"
	"strings"
)

// OutputFileName は差分画像の出力ファイル名を生成する
// stemが空の場合は比較先ファイル名に"_diff"を付けた名前を使用し、
// 出力先ディレクトリと拡張子は比較先ファイルのものを引き継ぐ
func OutputFileName(stem, tgtPath string) string {
	ext := filepath.Ext(tgtPath)

	name := stem
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(tgtPath), ext) + "_diff"
	}

	return filepath.Join(filepath.Dir(tgtPath), name+ext)
}
