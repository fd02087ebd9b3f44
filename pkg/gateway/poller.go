package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/shouni/nano-banana-kit/pkg/apperr"
	"github.com/shouni/nano-banana-kit/pkg/domain"
)

// pollVideo はジョブ完了まで一定間隔で状態を確認します。
// 状態確認そのものの失敗は即座に致命扱いです（ジョブ自体は API 側で進行し続けますが、
// このフローからは追跡できなくなるため）。キャンセルはポーリングを止めるだけで、
// 投入済みジョブの取り消しは行いません。
func (g *Gateway) pollVideo(ctx context.Context, op *genai.GenerateVideosOperation, progress ProgressFunc) (domain.VideoAsset, error) {
	ticker := time.NewTicker(g.pollInterval)
	defer ticker.Stop()

	for !op.Done {
		select {
		case <-ctx.Done():
			return domain.VideoAsset{}, ctx.Err()
		case <-ticker.C:
		}

		var err error
		op, err = g.client.GetVideosOperation(ctx, op)
		if err != nil {
			return domain.VideoAsset{}, apperr.Classify(fmt.Errorf("動画ジョブの状態確認に失敗しました: %w", err))
		}
		notify(progress, StageProcessing, "動画を生成しています...")
	}

	if op.Error != nil {
		return domain.VideoAsset{}, classifyJobError(op.Error)
	}

	return g.downloadVideo(ctx, op, progress)
}

// classifyJobError は完了したジョブが載せてきたエラーを種別へ写像します。
func classifyJobError(opErr map[string]any) error {
	msg := fmt.Sprintf("%v", opErr["message"])
	if msg == "" || msg == "<nil>" {
		msg = fmt.Sprintf("%v", opErr)
	}

	switch {
	case strings.Contains(msg, "SAFETY"):
		return apperr.New(apperr.KindSafetyRejected, "プロンプトが安全性ポリシーにより拒否されました。表現を変えてお試しください", nil)
	case strings.Contains(msg, "billing enabled") || strings.Contains(msg, "GCP billing"):
		return apperr.New(apperr.KindBillingRequired, "動画生成には課金が有効なプロジェクトが必要です", nil)
	default:
		return apperr.Newf(apperr.KindUnknown, nil, "動画ジョブが失敗しました: %s", msg)
	}
}

// downloadVideo は完了ジョブから動画バイナリを取り出します。
// 応答にバイト列が同梱されていればそれを使い、URI のみの場合はダウンロードします。
func (g *Gateway) downloadVideo(ctx context.Context, op *genai.GenerateVideosOperation, progress ProgressFunc) (domain.VideoAsset, error) {
	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 || op.Response.GeneratedVideos[0].Video == nil {
		return domain.VideoAsset{}, apperr.New(apperr.KindMissingResult, "ジョブは完了しましたが動画が含まれていません", nil)
	}

	video := op.Response.GeneratedVideos[0].Video
	mime := video.MIMEType
	if mime == "" {
		mime = domain.MIMEMP4
	}

	if len(video.VideoBytes) > 0 {
		return domain.VideoAsset{MIMEType: mime, Data: video.VideoBytes}, nil
	}
	if video.URI == "" {
		return domain.VideoAsset{}, apperr.New(apperr.KindMissingResult, "ジョブは完了しましたが動画が含まれていません", nil)
	}

	notify(progress, StageDownloading, "動画をダウンロードしています...")

	data, err := g.fetcher.FetchBytes(ctx, g.signedVideoURL(video.URI))
	if err != nil {
		return domain.VideoAsset{}, apperr.New(apperr.KindDownloadFailed, "動画のダウンロードに失敗しました", err)
	}
	return domain.VideoAsset{MIMEType: mime, Data: data}, nil
}

// signedVideoURL はダウンロード URL に API キーを付与します。
// ファイル配信エンドポイントはヘッダではなくクエリパラメータで認証します。
func (g *Gateway) signedVideoURL(uri string) string {
	sep := "?"
	if strings.Contains(uri, "?") {
		sep = "&"
	}
	return uri + sep + "key=" + g.credential
}
