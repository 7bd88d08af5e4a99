package currency

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce 合并编辑器连续写入产生的多次事件
const DefaultDebounce = 200 * time.Millisecond

// Watcher 监听汇率CSV变化并重载
// 监听所在目录而不是文件本身，编辑器"写临时文件再改名"的保存方式也能感知
type Watcher struct {
	reloader *Reloader
	debounce time.Duration
}

// NewWatcher 创建文件监听
func NewWatcher(reloader *Reloader, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{reloader: reloader, debounce: debounce}
}

// Run 阻塞监听直到ctx取消
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建文件监听失败: %w", err)
	}
	defer func() { _ = fw.Close() }()

	target := filepath.Clean(w.reloader.Path())
	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("监听目录失败: %w", err)
	}

	logger := w.reloader.logger
	logger.Info("开始监听汇率文件", "path", target)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("汇率文件监听错误", "error", err)

		case <-timer.C:
			// 失败已在Reloader中记录，继续监听
			_, _ = w.reloader.ReloadFile(ctx, SourceWatch)
		}
	}
}
