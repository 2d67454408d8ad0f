package imageutil

import (
	"path/filepath"
	"testing"
)

func TestOutputFileName(t *testing.T) {
	tests := []struct {
		name    string
		stem    string
		tgtPath string
		want    string
	}{
		{
			name:    "stemが空の場合は比較先ファイル名から生成",
			stem:    "",
			tgtPath: filepath.Join("/", "target_test.png"),
			want:    filepath.Join("/", "target_test_diff.png"),
		},
		{
			name:    "stemが指定されている場合はそれを使用",
			stem:    "custom_output_file",
			tgtPath: filepath.Join("/", "target_test.png"),
			want:    filepath.Join("/", "custom_output_file.png"),
		},
		{
			name:    "相対パスの場合はディレクトリを引き継ぐ",
			stem:    "",
			tgtPath: filepath.Join("images", "a.jpg"),
			want:    filepath.Join("images", "a_diff.jpg"),
		},
		{
			name:    "拡張子がない場合",
			stem:    "",
			tgtPath: "plain",
			want:    "plain_diff",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputFileName(tt.stem, tt.tgtPath); got != tt.want {
				t.Errorf("OutputFileName(%q, %q) = %q, want %q", tt.stem, tt.tgtPath, got, tt.want)
			}
		})
	}
}
