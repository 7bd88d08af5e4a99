package currency

import (
	"errors"
	"sync/atomic"
)

// ErrNilTable 不允许替换为空表
var ErrNilTable = errors.New("currency: nil table")

// Store 当前汇率快照
// 读取方拿到的*Table在其生命周期内不变；重载只替换指针
type Store struct {
	current atomic.Pointer[Table]
}

// NewStore 创建快照存储，initial为nil时使用只含默认设置的空表
func NewStore(initial *Table, defaults Defaults) *Store {
	if initial == nil {
		initial = NewTable(nil, defaults)
	}
	s := &Store{}
	s.current.Store(initial)
	return s
}

// Current 当前快照
func (s *Store) Current() *Table {
	return s.current.Load()
}

// Replace 替换快照，返回旧快照
func (s *Store) Replace(t *Table) (*Table, error) {
	if t == nil {
		return nil, ErrNilTable
	}
	return s.current.Swap(t), nil
}
