package secret

import "strings"

// KeyringAPI 是对 OS keyring 的最小抽象，便于测试与跨平台。
// service 对应 keyring 的 service name（即账户命名空间），account 对应条目标识。
type KeyringAPI interface {
	Get(service, account string) (string, error)
	Set(service, account, value string) error
	Delete(service, account string) error
	// DeleteAll 删除 service 下的全部条目；不影响其他 service。
	DeleteAll(service string) error
}

// Default 返回默认 keyring 实现（使用 zalando/go-keyring）。
// 平台相关实现见 keyring_default.go / keyring_windows.go。
func Default() KeyringAPI {
	return &osKeyring{}
}

type osKeyring struct{}

// stripNullBytes 去掉 Windows cmdkey 在字符间插入的 null 字节（UTF-16 遗留问题）。
func stripNullBytes(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}
