// Package main provides localization for the delogo CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Detect, remove, and add static watermarks in videos.": "動画内の静的なウォーターマークを検出・除去・追加します。",

		// Mask command
		"Detect a static watermark and write its binary mask.": "静的なウォーターマークを検出し、二値マスクを書き出します。",

		// Remove command
		"Detect and remove a static watermark from a video.": "動画から静的なウォーターマークを検出して除去します。",

		// Addlogo command
		"Composite a logo image onto a video.": "動画にロゴ画像を合成します。",

		// Upscale command
		"Upscale a video with an AI model.": "AIモデルで動画をアップスケールします。",

		// Version command
		"Show version information.":  "バージョン情報を表示します。",
		"delogo (Go) version %s":     "delogo (Go版) バージョン %s",

		// Shared flags
		"Path to a YAML configuration file.":                   "YAML設定ファイルのパス。",
		"Number of frames to sample (default: 50).":            "サンプリングするフレーム数（デフォルト: 50）。",
		"Seed for deterministic frame selection (default: 42).": "決定的なフレーム選択のためのシード（デフォルト: 42）。",
		"Gradient threshold on the 0-255 scale (default: 10).": "0-255スケールでの勾配しきい値（デフォルト: 10）。",
		"Gaussian smoothing sigma (default: 3).":               "ガウス平滑化のシグマ（デフォルト: 3）。",
		"Binarization cutoff on the normalized field (default: 0.2).": "正規化後の二値化カットオフ（デフォルト: 0.2）。",
		"Concurrent frame decodes (default: number of CPUs).":  "並行フレームデコード数（デフォルト: CPU数）。",
		"Enable debug output.":                                 "デバッグ出力を有効化します。",
		"Directory for debug output.":                          "デバッグ出力のディレクトリ。",
		"Log level (debug, info, warn, error).":                "ログレベル（debug, info, warn, error）。",
		"Emit structured JSON logs.":                           "構造化JSONログを出力します。",
		"Suppress all log output.":                             "全てのログ出力を抑制します。",

		// Input/output flags
		"Input video file path.":                          "入力動画ファイルのパス。",
		"Logo image file path.":                           "ロゴ画像ファイルのパス。",
		"Output mask PNG path (default: <video>_mask.png).": "出力マスクPNGのパス（デフォルト: <video>_mask.png）。",
		"Output video path (default: <video>_cleaned.mp4).": "出力動画のパス（デフォルト: <video>_cleaned.mp4）。",
		"Output video path (default: <video>_logo.mp4).":    "出力動画のパス（デフォルト: <video>_logo.mp4）。",
		"Output video path (default: <video>_upscaled.mp4).": "出力動画のパス（デフォルト: <video>_upscaled.mp4）。",
		"Mask PNG path (default: <video>_mask.png).":        "マスクPNGのパス（デフォルト: <video>_mask.png）。",

		// Addlogo flags
		"Logo position.":                             "ロゴの位置。",
		"Logo size relative to its own width.":       "ロゴ自身の幅に対するサイズ比。",
		"Logo opacity (0-1).":                        "ロゴの不透明度（0-1）。",
		"Distance from the frame edges in pixels.":   "フレーム端からの距離（ピクセル）。",
		"Render a single-frame preview PNG instead of re-encoding.": "再エンコードの代わりに1フレームのプレビューPNGを描画します。",

		// Upscale flags
		"Upscaling factor.":                                  "アップスケール倍率。",
		"Upscaling model name (default: upscayl-standard-4x).": "アップスケールモデル名（デフォルト: upscayl-standard-4x）。",
		"Concurrent frame upscales (default: number of CPUs).": "並行フレームアップスケール数（デフォルト: CPU数）。",

		// Tool path flags
		"Path to ffmpeg executable (falls back to FFMPEG_PATH env, then PATH).":   "ffmpeg実行ファイルのパス（FFMPEG_PATH環境変数、PATHの順にフォールバック）。",
		"Path to ffprobe executable (falls back to FFPROBE_PATH env, then PATH).": "ffprobe実行ファイルのパス（FFPROBE_PATH環境変数、PATHの順にフォールバック）。",

		// Runtime messages
		"Mask saved to %s":                 "マスクを %s に保存しました",
		"Preview saved to %s":              "プレビューを %s に保存しました",
		"Compositing %s onto %s":           "%s を %s に合成中",
		"Upscaled %d frames to %dx%d":      "%d フレームを %dx%d にアップスケールしました",
		"upscayl not found, falling back to resampling": "upscaylが見つからないため、リサンプリングにフォールバックします",
		"Analyzed %d of %d sampled frames": "サンプリングした %d/%d フレームを解析しました",
		"Detected watermark covering %.2f%% of the frame": "フレームの %.2f%% を覆うウォーターマークを検出しました",
	})
}
