// imageutil パッケージは画像比較のためのユーティリティを提供します
package imageutil

// このファイルは、imageutil パッケージのエントリーポイントとして機能し、
// 各ファイルに分割された機能へのアクセスポイントを提供します。
//
// 機能は以下のファイルに分割されています：
// - comparator.go: ブロック単位のピクセル比較
// - blocks.go: 比較領域の計算とブロック分割
// - imageloader.go: 画像の読み込み・保存
// - renderer.go: 差分ブロックの強調表示
// - output.go: 出力ファイル名の生成
