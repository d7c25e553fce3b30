package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func newTestStore(t *testing.T, maxBytes int64) (*LocalStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewLocalStore(dir, maxBytes, zap.NewNop())
	if err != nil {
		t.Fatalf("创建存储失败: %v", err)
	}
	return store, dir
}

func TestLocalStore_SaveAndDelete(t *testing.T) {
	store, dir := newTestStore(t, 1024)

	saved, err := store.Save(context.Background(), []byte("hello"), "报告.PDF", "application/pdf")
	if err != nil {
		t.Fatalf("Save 应成功: %v", err)
	}
	if saved.Name != "报告.PDF" {
		t.Errorf("应保留原始文件名，实际=%s", saved.Name)
	}
	// 落盘名是随机的，只保留小写扩展名
	if filepath.Ext(saved.Path) != ".pdf" {
		t.Errorf("期望扩展名 .pdf，实际=%s", saved.Path)
	}
	if saved.Path == saved.Name {
		t.Error("落盘名不应等于原始文件名")
	}

	data, err := os.ReadFile(filepath.Join(dir, saved.Path))
	if err != nil {
		t.Fatalf("读取落盘文件失败: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("文件内容错误: %s", data)
	}

	if err := store.Delete(context.Background(), saved.Path); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, saved.Path)); !os.IsNotExist(err) {
		t.Error("删除后文件不应存在")
	}
}

func TestLocalStore_SaveTooLarge(t *testing.T) {
	store, _ := newTestStore(t, 4)

	_, err := store.Save(context.Background(), []byte("too large"), "big.bin", "")
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("期望 ErrFileTooLarge，实际: %v", err)
	}
}

func TestLocalStore_DeleteMissingIsNoop(t *testing.T) {
	store, _ := newTestStore(t, 1024)

	// 删除不存在的文件不报错（关闭流程容忍重复清理）
	if err := store.Delete(context.Background(), "nonexistent.pdf"); err != nil {
		t.Errorf("删除不存在的文件应无错: %v", err)
	}
}

func TestLocalStore_DeleteRejectsPathTraversal(t *testing.T) {
	store, _ := newTestStore(t, 1024)

	for _, p := range []string{"../etc/passwd", "a/b.pdf", ""} {
		if err := store.Delete(context.Background(), p); err == nil {
			t.Errorf("带路径成分的引用应被拒绝: %q", p)
		}
	}
}

func TestSanitizeExt(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{".PDF", ".pdf"},
		{".docx", ".docx"},
		{"", ""},
		{".p df", ""},
		{".verylongextension", ""},
	}
	for _, c := range cases {
		if got := sanitizeExt(c.in); got != c.want {
			t.Errorf("sanitizeExt(%q)=%q，期望 %q", c.in, got, c.want)
		}
	}
}
