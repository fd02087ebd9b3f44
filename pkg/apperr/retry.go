package apperr

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// DefaultMaxAttempts は再試行を含めた最大試行回数です。
	DefaultMaxAttempts = 3
	// DefaultBaseDelay は指数バックオフの初期待機時間です。
	DefaultBaseDelay = time.Second
)

// RetryOnQuota は fn を最大 maxAttempts 回まで実行します。
// 再試行するのはレート・割り当て系エラーのみで、それ以外は即座に打ち切ります。
// 待機時間は baseDelay から指数的に伸びます。全試行を使い切った場合は最後の
// エラーをそのまま返します。
func RetryOnQuota(ctx context.Context, maxAttempts int, baseDelay time.Duration, fn func() error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = baseDelay
	bo.Multiplier = 2
	bo.RandomizationFactor = 0

	attempt := 0
	operation := func() error {
		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			// 上限系以外の失敗は再試行しても結果が変わらない
			return backoff.Permanent(err)
		}
		slog.WarnContext(ctx, "上限エラーのため再試行します",
			"attempt", attempt, "max_attempts", maxAttempts, "error", err)
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(bo, uint64(maxAttempts-1)), ctx)
	return backoff.Retry(operation, policy)
}
