package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig は設定ファイル(YAML)で上書き可能な項目を保持する構造体
// ポインタ型にすることで「未指定」と「ゼロ値の指定」を区別する
type FileConfig struct {
	BlockSize      *int    `yaml:"block"`
	HighlightColor *string `yaml:"color"`
	JPEGQuality    *int    `yaml:"quality"`
	NumCPU         *int    `yaml:"cpu"`
}

// LoadFile は指定されたYAMLファイルから設定を読み込む
// 未知のキーが含まれる場合はエラーを返す
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config file %s: %v", ErrInvalidConfig, path, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var fc FileConfig
	if err := decoder.Decode(&fc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config file %s: %v", ErrInvalidConfig, path, err)
	}

	return &fc, nil
}

// ApplyTo は設定ファイルの値をAppConfigに反映する
// ファイルで指定されていない項目は変更しない
func (fc *FileConfig) ApplyTo(cfg *AppConfig) error {
	if fc.BlockSize != nil {
		cfg.BlockSize = *fc.BlockSize
	}
	if fc.HighlightColor != nil {
		c, err := ParseHighlightColor(*fc.HighlightColor)
		if err != nil {
			return err
		}
		cfg.HighlightColor = c
	}
	if fc.JPEGQuality != nil {
		cfg.JPEGQuality = *fc.JPEGQuality
	}
	if fc.NumCPU != nil {
		cfg.NumCPU = *fc.NumCPU
	}
	return nil
}
