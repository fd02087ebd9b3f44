package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// 動画ファイルは大きいため長めに取ります。
const defaultFetchTimeout = 5 * time.Minute

// HTTPFetcher は URL からバイト列を取得する ByteFetcher の実装です。
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher は既定のタイムアウトを持つ HTTPFetcher を返します。
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: defaultFetchTimeout}}
}

// FetchBytes は URL の内容を全量読み込んで返します。
func (f *HTTPFetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗しました: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ダウンロードに失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("ダウンロードに失敗しました: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("応答の読み取りに失敗しました: %w", err)
	}
	return data, nil
}
