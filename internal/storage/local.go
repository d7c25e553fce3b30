package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrFileTooLarge 文件超出配置的大小上限
var ErrFileTooLarge = errors.New("文件超出大小限制")

// LocalStore Store 的本地磁盘实现。
// 文件以随机 UUID 命名落盘（保留原扩展名），原始文件名只保留在数据库引用中。
type LocalStore struct {
	dir      string
	maxBytes int64
	logger   *zap.Logger
}

// NewLocalStore 创建本地磁盘存储，目录不存在时自动创建
func NewLocalStore(dir string, maxBytes int64, logger *zap.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", err)
	}
	return &LocalStore{dir: dir, maxBytes: maxBytes, logger: logger}, nil
}

func (s *LocalStore) Save(_ context.Context, data []byte, originalName, _ string) (*SavedFile, error) {
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	ext := sanitizeExt(filepath.Ext(originalName))
	name := uuid.New().String() + ext
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("写入文件失败: %w", err)
	}

	s.logger.Debug("文件已保存",
		zap.String("path", name),
		zap.String("original_name", originalName),
		zap.Int("size", len(data)),
	)

	return &SavedFile{Path: name, Name: originalName}, nil
}

func (s *LocalStore) Delete(_ context.Context, path string) error {
	// 引用是 Save 生成的纯文件名；拒绝任何带路径成分的输入
	if path == "" || path != filepath.Base(path) {
		return fmt.Errorf("非法文件引用: %q", path)
	}

	if err := os.Remove(filepath.Join(s.dir, path)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("删除文件失败: %w", err)
	}
	return nil
}

// sanitizeExt 限制扩展名为安全字符，异常输入直接丢弃扩展名
func sanitizeExt(ext string) string {
	if ext == "" || len(ext) > 10 {
		return ""
	}
	for _, r := range strings.TrimPrefix(ext, ".") {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return ""
		}
	}
	return strings.ToLower(ext)
}
