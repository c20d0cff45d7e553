package account

import (
	"slices"
	"sync"

	"github.com/zx06/xacct/internal/errors"
	"github.com/zx06/xacct/internal/secret"
)

// Memory 是进程内的 Store 实现：本地 map 加可选的当前账户指针。
// 标识校验、载荷可编码性（JSON）与返回顺序与 Keychain 一致，便于在测试中互换。
type Memory[A Record] struct {
	mu       sync.RWMutex
	accounts map[string]A
	current  *string
}

func NewMemory[A Record]() *Memory[A] {
	return &Memory[A]{accounts: make(map[string]A)}
}

func (m *Memory[A]) SaveAccount(a A) error {
	id := a.Identifier()
	if err := secret.ValidateID(id); err != nil {
		return errors.Wrap(errors.CodeSerialization, "account identifier cannot be encoded", map[string]any{"id": id}, err)
	}
	if _, err := (JSONCodec{}).Marshal(a); err != nil {
		return errors.Wrap(errors.CodeSerialization, "failed to encode account", map[string]any{"id": id, "codec": JSONCodec{}.Name()}, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[id] = a
	return nil
}

func (m *Memory[A]) Accounts() ([]A, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.accounts))
	for id := range m.accounts {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]A, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.accounts[id])
	}
	return out, nil
}

func (m *Memory[A]) RemoveAccount(a A) error {
	id := a.Identifier()
	if err := secret.ValidateID(id); err != nil {
		return errors.Wrap(errors.CodeStoreWrite, "account identifier cannot be encoded", map[string]any{"id": id}, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.accounts, id)
	return nil
}

func (m *Memory[A]) RemoveAccounts() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.accounts)
	return nil
}

func (m *Memory[A]) Login(a A) {
	id := a.Identifier()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = &id
}

func (m *Memory[A]) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
}

func (m *Memory[A]) CurrentAccount(accounts []A) (A, bool, error) {
	var zero A
	m.mu.RLock()
	cur := m.current
	m.mu.RUnlock()
	if cur == nil {
		return zero, false, nil
	}
	a, err := find(accounts, *cur)
	if err != nil {
		return zero, false, err
	}
	return a, true, nil
}
