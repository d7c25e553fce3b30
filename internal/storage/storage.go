package storage

import "context"

// SavedFile 保存成功后的文件引用
type SavedFile struct {
	Path string // 存储层内部引用（相对路径）
	Name string // 原始文件名（展示用）
}

// Store 附件/回执文件存储契约。
// Save 失败会中止上层的创建/回应操作；
// Delete 由调用方按 best-effort 语义使用（失败只记日志，不回滚数据库状态）。
type Store interface {
	Save(ctx context.Context, data []byte, originalName, contentType string) (*SavedFile, error)
	Delete(ctx context.Context, path string) error
}
