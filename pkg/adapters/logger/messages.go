package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Analyzing %s":                  "%s を解析中",
		"Output saved to %s":            "出力を %s に保存しました",
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",

		// Probe
		"Found %d keyframes":                        "%d 個のキーフレームを検出しました",
		"No keyframe index, sampling %.1f s uniformly": "キーフレーム情報がないため %.1f 秒を均等にサンプリングします",
		"Keyframe probe failed, falling back to uniform sampling: %s": "キーフレームの取得に失敗したため、均等サンプリングにフォールバックします: %s",

		// Sample stage
		"Selected %d sample timestamps": "%d 個のサンプル時刻を選択しました",

		// Accumulate stage
		"Accumulated %d of %d frames at %dx%d": "%d/%d フレームを %dx%d で集計しました",
		"Skipping frame at %.4f s: %s":         "%.4f 秒のフレームをスキップします: %s",

		// Mask stage
		"Mask written to %s (%.2f%% coverage)":        "マスクを %s に書き込みました（被覆率 %.2f%%）",
		"No static watermark detected, mask is empty": "静的なウォーターマークは検出されませんでした。マスクは空です",

		// Remove
		"Removing watermark into %s":          "ウォーターマークを除去して %s に出力中",
		"Nothing to remove, skipping re-encode": "除去対象がないため再エンコードをスキップします",
		"Removal completed":                   "除去が完了しました",

		// Upscale
		"Upscaling %dx%d video by %dx to %dx%d": "%dx%d の動画を %d 倍の %dx%d にアップスケール中",
		"Exploding video into frames":           "動画をフレームに分解中",
		"Upscaling %d frames":                   "%d フレームをアップスケール中",
		"%d frames fell back to resampling":     "%d フレームはリサンプリングにフォールバックしました",
		"Assembling %s":                         "%s を組み立て中",
		"Upscaler failed on %s: %s":             "%s のアップスケールに失敗しました: %s",

		// Errors
		"Failed to probe duration: %s":       "再生時間の取得に失敗しました: %s",
		"Failed to select samples: %s":       "サンプル選択に失敗しました: %s",
		"Failed to accumulate gradients: %s": "勾配の集計に失敗しました: %s",
		"Failed to build mask: %s":           "マスクの生成に失敗しました: %s",
		"Failed to write mask: %s":           "マスクの書き込みに失敗しました: %s",
		"Failed to remove watermark: %s":     "ウォーターマークの除去に失敗しました: %s",
	})
}
