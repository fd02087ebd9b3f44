// Package credential は API キーの単一スロット永続化を提供します。
// 保存先はユーザー設定ディレクトリ配下の 1 ファイルのみで、これ以外の
// 状態は永続化しません。キーは秘匿情報としてログには Masked 経由でのみ
// 出力します。
package credential

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvKey が設定されている場合、保存済みファイルより優先されます。
const EnvKey = "GEMINI_API_KEY"

const (
	appDirName = "nano-banana-kit"
	fileName   = "credential"
)

// Store は単一の資格情報スロットです。
type Store struct {
	path string
}

// NewStore は既定の保存先（ユーザー設定ディレクトリ配下）を持つ Store を返します。
func NewStore() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("設定ディレクトリを特定できませんでした: %w", err)
	}
	return &Store{path: filepath.Join(dir, appDirName, fileName)}, nil
}

// NewStoreAt は保存先を明示した Store を返します（テスト・検証用）。
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Load は起動時に一度だけ呼ばれる想定の読み出しです。
// 環境変数 → 保存ファイルの順で解決し、どちらにもなければ空文字列を返します。
// 未設定はエラーではありません（操作時に MissingCredential として扱います）。
func (s *Store) Load() (string, error) {
	if key := strings.TrimSpace(os.Getenv(EnvKey)); key != "" {
		return key, nil
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("資格情報の読み込みに失敗しました: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save はキーを保存します。保存は毎回全置換で、部分更新はありません。
func (s *Store) Save(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("空の資格情報は保存できません")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("保存先ディレクトリを作成できませんでした: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(key+"\n"), 0o600); err != nil {
		return fmt.Errorf("資格情報の保存に失敗しました: %w", err)
	}
	return nil
}

// Path は保存先を返します（表示用）。
func (s *Store) Path() string {
	return s.path
}

// Masked はログ・画面表示用にキーを伏せ字化します。完全なキーは決して出力しません。
func Masked(key string) string {
	if key == "" {
		return "(未設定)"
	}
	if len(key) <= 8 {
		return "********"
	}
	return key[:6] + "..." + strings.Repeat("*", 4)
}
