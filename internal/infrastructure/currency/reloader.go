// Package currency 汇率快照的加载与刷新：CSV文件、文件监听、MQ快照消息
package currency

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	domain "github.com/xiebiao/bookcatalog/internal/domain/currency"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// 重载来源(指标标签)
const (
	SourceStartup = "startup"
	SourceWatch   = "watch"
	SourceAdmin   = "admin"
	SourceMQ      = "mq"
)

// Reloader 构造新汇率表并替换快照
// 失败时保留旧快照
type Reloader struct {
	store    *domain.Store
	path     string
	defaults domain.Defaults
	logger   *slog.Logger

	mu sync.Mutex // 串行化重载，避免旧文件内容覆盖新内容
}

// NewReloader 创建重载器
func NewReloader(store *domain.Store, path string, defaults domain.Defaults, logger *slog.Logger) *Reloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reloader{store: store, path: path, defaults: defaults, logger: logger}
}

// Path CSV文件路径
func (r *Reloader) Path() string {
	return r.path
}

// Store 快照存储
func (r *Reloader) Store() *domain.Store {
	return r.store
}

// ReloadFile 从CSV文件重新加载
// 启动以外的来源读到空表时返回ErrEmptySnapshot，旧快照不变
func (r *Reloader) ReloadFile(ctx context.Context, source string) (*domain.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	table, err := r.readFile()
	if err == nil && table.Len() == 0 && source != SourceStartup {
		err = fmt.Errorf("汇率文件%s没有有效行: %w", r.path, ErrEmptySnapshot)
	}
	if err != nil {
		r.record(ctx, source, nil, err)
		return nil, err
	}
	return table, r.replace(ctx, source, table)
}

// Apply 使用外部构造好的汇率表替换快照
func (r *Reloader) Apply(ctx context.Context, source string, table *domain.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.replace(ctx, source, table)
}

// Defaults 回退设置
func (r *Reloader) Defaults() domain.Defaults {
	return r.defaults
}

func (r *Reloader) readFile() (*domain.Table, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("打开汇率文件失败: %w", err)
	}
	defer func() { _ = f.Close() }()

	table, err := domain.ReadTable(f, r.defaults, r.logger)
	if err != nil {
		return nil, fmt.Errorf("解析汇率文件%s失败: %w", r.path, err)
	}
	return table, nil
}

func (r *Reloader) replace(ctx context.Context, source string, table *domain.Table) error {
	_, err := r.store.Replace(table)
	r.record(ctx, source, table, err)
	return err
}

func (r *Reloader) record(ctx context.Context, source string, table *domain.Table, err error) {
	size := 0
	if table != nil {
		size = table.Len()
	}
	metrics.RecordCurrencyReload(source, size, err)

	if err != nil {
		r.logger.ErrorContext(ctx, "汇率重载失败，保留旧快照", "source", source, "error", err)
		return
	}
	r.logger.InfoContext(ctx, "汇率已重载", "source", source, "rates", size)
}
