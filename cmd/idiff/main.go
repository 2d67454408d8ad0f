package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/imgtools/idiff/config"
	"github.com/imgtools/idiff/imageutil"
)

// 終了コード
const (
	exitIdentical = 0 // 2枚の画像が完全に一致
	exitDifferent = 1 // 差分あり(サイズ不一致を含む)
	exitFailure   = 2 // 読み込み・設定・書き込みの失敗
)

// コマンドラインオプション
var flags struct {
	src        string
	tgt        string
	strict     bool
	highlight  bool
	block      int
	output     string
	configFile string
	colorHex   string
	quality    int
	cpu        int
	verbose    bool
}

var rootCmd = &cobra.Command{
	Use:           "idiff --src SOURCE_FILE_NAME --tgt TARGET_FILE_NAME",
	Short:         "diff - for images (compares images pixel by pixel)",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCompare,
}

func init() {
	rootCmd.Flags().StringVar(&flags.src, "src", "", "source file name")
	rootCmd.Flags().StringVar(&flags.tgt, "tgt", "", "target file name")
	rootCmd.MarkFlagRequired("src")
	rootCmd.MarkFlagRequired("tgt")

	rootCmd.Flags().BoolVar(&flags.strict, "strict", false, "strict comparison (exits if dimensions are different)")
	rootCmd.Flags().BoolVar(&flags.highlight, "highlight", false, "highlight differences in a new file")
	rootCmd.Flags().IntVar(&flags.block, "block", 10, "pixel block size for highlighting difference")
	rootCmd.Flags().StringVarP(&flags.output, "output", "o", "", "optional output file name (without extension)")

	rootCmd.Flags().StringVar(&flags.configFile, "config", "", "optional YAML file with default settings")
	rootCmd.Flags().StringVar(&flags.colorHex, "color", "#FF0000", "highlight color in #RRGGBB format")
	rootCmd.Flags().IntVar(&flags.quality, "quality", 90, "JPEG quality for the output image (1-100)")
	rootCmd.Flags().IntVar(&flags.cpu, "cpu", runtime.NumCPU(), "number of workers for the block scan")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("%v", err))
		os.Exit(exitFailure)
	}
}

// runCompare は比較処理のメインフロー
func runCompare(cmd *cobra.Command, args []string) error {
	if flags.verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	src, err := imageutil.LoadImage(cfg.Src)
	if err != nil {
		return err
	}
	tgt, err := imageutil.LoadImage(cfg.Tgt)
	if err != nil {
		return err
	}

	log.Debug().
		Str("src", cfg.Src).Int("srcWidth", src.Bounds().Dx()).Int("srcHeight", src.Bounds().Dy()).
		Str("tgt", cfg.Tgt).Int("tgtWidth", tgt.Bounds().Dx()).Int("tgtHeight", tgt.Bounds().Dy()).
		Msg("images loaded")

	comparator := imageutil.NewComparator(cfg)
	result, err := comparator.Compare(src, tgt)
	if err != nil {
		if errors.Is(err, imageutil.ErrDimensionMismatch) {
			return fmt.Errorf("%w (Try without 'strict' flag to check the differences)", err)
		}
		return err
	}

	if result.Identical() {
		color.Green("Comparison Completed. No difference observed between the images!")
		return nil
	}

	reportDifference(result)

	if !cfg.Highlight {
		color.Yellow("(Difference highlighting is currently disabled. Try with 'highlight' flag to highlight the differences)")
		os.Exit(exitDifferent)
	}

	highlighted := imageutil.HighlightBlocks(tgt, result.DiffBlocks, cfg.HighlightColor)
	outputPath := imageutil.OutputFileName(cfg.OutputStem, cfg.Tgt)

	if err := imageutil.SaveImage(highlighted, outputPath, cfg.JPEGQuality); err != nil {
		return err
	}

	color.Green("Output written into %s", outputPath)
	os.Exit(exitDifferent)
	return nil
}

// reportDifference は不一致の内容を標準出力に表示する
func reportDifference(result *imageutil.Result) {
	if !result.EqualDimensions {
		color.Yellow("'src' & 'tgt' do not have the same dimensions. Only the overlapping region was compared.")
	}
	fmt.Printf("A difference of '%s' is observed between images.\n",
		color.RedString("%.5f%%", result.DiffPercentage()))
}

// buildConfig はデフォルト値、設定ファイル、コマンドラインオプションの順に
// 優先度を付けてAppConfigを組み立てる
func buildConfig(cmd *cobra.Command) (*config.AppConfig, error) {
	cfg := config.NewDefaultConfig()

	if flags.configFile != "" {
		fc, err := config.LoadFile(flags.configFile)
		if err != nil {
			return nil, err
		}
		if err := fc.ApplyTo(cfg); err != nil {
			return nil, err
		}
		log.Debug().Str("path", flags.configFile).Msg("config file applied")
	}

	cfg.Src = flags.src
	cfg.Tgt = flags.tgt
	cfg.Strict = flags.strict
	cfg.Highlight = flags.highlight
	cfg.OutputStem = flags.output

	// 明示的に指定されたオプションだけが設定ファイルの値を上書きする
	if cmd.Flags().Changed("block") {
		cfg.BlockSize = flags.block
	}
	if cmd.Flags().Changed("quality") {
		cfg.JPEGQuality = flags.quality
	}
	if cmd.Flags().Changed("cpu") {
		cfg.NumCPU = flags.cpu
	}
	if cmd.Flags().Changed("color") {
		c, err := config.ParseHighlightColor(flags.colorHex)
		if err != nil {
			return nil, err
		}
		cfg.HighlightColor = c
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
