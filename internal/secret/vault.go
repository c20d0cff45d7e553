package secret

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"
)

// IndexAccount 是每个命名空间内保存条目标识列表的保留条目名。
// go-keyring 无法枚举 service 下的条目，因此由 Vault 自行维护索引。
const IndexAccount = "xacct.index"

// ErrInvalidID 表示条目标识无法作为 keyring account 使用。
var ErrInvalidID = stderrors.New("invalid entry identifier")

// Entry 是命名空间中的一条记录。
type Entry struct {
	ID   string
	Data []byte
}

// Vault 是 keyring 中的一个命名空间（service）。
// 写入采用 delete-before-insert，非事务：两步之间崩溃会丢失该条目。
// 索引是单个 keyring 值，受后端单值大小限制（Windows 凭据为 2560 字节，约 65 个 UUID 标识）；
// 超出后 Put 返回 StatusDataTooBig，已写入的条目会被回滚。
// mu 串行化同一 Vault 上的索引读改写；不同进程之间没有锁。
type Vault struct {
	mu      sync.Mutex
	kr      KeyringAPI
	service string
}

func NewVault(kr KeyringAPI, service string) *Vault {
	if kr == nil {
		kr = Default()
	}
	return &Vault{kr: kr, service: service}
}

func (v *Vault) Service() string { return v.service }

// ValidateID 检查 id 可否编码为 keyring account。
func ValidateID(id string) error {
	switch {
	case id == "":
		return fmt.Errorf("%w: empty", ErrInvalidID)
	case !utf8.ValidString(id):
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidID)
	case strings.ContainsRune(id, 0):
		return fmt.Errorf("%w: contains NUL", ErrInvalidID)
	case id == IndexAccount:
		return fmt.Errorf("%w: %q is reserved", ErrInvalidID, id)
	}
	return nil
}

// Put 替换 id 对应的条目：先删除旧值（不存在不算错误），再写入新值并登记索引。
// 索引写入失败时尽力删除刚写入的条目，避免留下无法枚举的孤儿条目。
func (v *Vault) Put(id string, data []byte) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("payload for %q is not valid UTF-8", id)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.kr.Delete(v.service, id); err != nil && StatusOf(err) != StatusNotFound {
		return backendErr("delete", v.service, id, err)
	}
	if err := v.kr.Set(v.service, id, string(data)); err != nil {
		return backendErr("set", v.service, id, err)
	}
	err := v.updateIndex(func(ids []string) ([]string, bool) {
		if slices.Contains(ids, id) {
			return ids, false
		}
		return append(ids, id), true
	})
	if err != nil {
		_ = v.kr.Delete(v.service, id)
		return err
	}
	return nil
}

// Get 读取单个条目；不存在时返回 Status 为 StatusNotFound 的 BackendError。
func (v *Vault) Get(id string) ([]byte, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	s, err := v.kr.Get(v.service, id)
	if err != nil {
		return nil, backendErr("get", v.service, id, err)
	}
	return []byte(s), nil
}

// Entries 按标识排序返回命名空间内的全部条目。
// 索引中存在但 keyring 中已缺失的条目被跳过。
func (v *Vault) Entries() ([]Entry, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	ids, err := v.readIndex()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		s, err := v.kr.Get(v.service, id)
		if err != nil {
			if StatusOf(err) == StatusNotFound {
				continue
			}
			return nil, backendErr("get", v.service, id, err)
		}
		entries = append(entries, Entry{ID: id, Data: []byte(s)})
	}
	return entries, nil
}

// Delete 删除单个条目；条目不存在视为成功。
func (v *Vault) Delete(id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.kr.Delete(v.service, id); err != nil && StatusOf(err) != StatusNotFound {
		return backendErr("delete", v.service, id, err)
	}
	return v.updateIndex(func(ids []string) ([]string, bool) {
		n := len(ids)
		ids = slices.DeleteFunc(ids, func(s string) bool { return s == id })
		return ids, len(ids) != n
	})
}

// DeleteAll 删除本命名空间下的全部条目（含索引），不触及其他 service。
func (v *Vault) DeleteAll() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.kr.DeleteAll(v.service); err != nil && StatusOf(err) != StatusNotFound {
		return backendErr("delete_all", v.service, "", err)
	}
	return nil
}

func (v *Vault) readIndex() ([]string, error) {
	s, err := v.kr.Get(v.service, IndexAccount)
	if err != nil {
		if StatusOf(err) == StatusNotFound {
			return nil, nil
		}
		return nil, backendErr("get", v.service, IndexAccount, err)
	}
	var ids []string
	if err := json.Unmarshal([]byte(s), &ids); err != nil {
		return nil, backendErr("get", v.service, IndexAccount, fmt.Errorf("corrupt index: %w", err))
	}
	slices.Sort(ids)
	return slices.Compact(ids), nil
}

// updateIndex 在持有 mu 时调用；fn 返回 false 表示索引无变化，不回写。
func (v *Vault) updateIndex(fn func([]string) ([]string, bool)) error {
	ids, err := v.readIndex()
	if err != nil {
		return err
	}
	ids, changed := fn(ids)
	if !changed {
		return nil
	}
	if len(ids) == 0 {
		if err := v.kr.Delete(v.service, IndexAccount); err != nil && StatusOf(err) != StatusNotFound {
			return backendErr("delete", v.service, IndexAccount, err)
		}
		return nil
	}
	slices.Sort(ids)
	b, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	if err := v.kr.Set(v.service, IndexAccount, string(b)); err != nil {
		return backendErr("set", v.service, IndexAccount, err)
	}
	return nil
}
