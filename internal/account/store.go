// Package account 在平台安全存储中保存账户记录，并通过偏好存储跟踪当前登录的账户。
//
// Store 有两个实现：Keychain 基于 OS keyring（见 secret 包），Memory 是进程内替身。
// 两者对外行为一致，调用方在构造时选择其一注入。
package account

import (
	"github.com/zx06/xacct/internal/errors"
)

// Record 是可存储账户的约束：可被 Codec 序列化，并暴露命名空间内唯一的标识。
type Record interface {
	Identifier() string
}

// Store 是账户存储的操作集合。所有失败均为 *errors.XError：
//   - XACCT_SERIALIZATION_FAILED：标识或载荷无法编码/解码
//   - XACCT_STORE_WRITE_FAILED：写入失败（details.status 为后端状态）
//   - XACCT_STORE_STATUS：删除/枚举失败（details.status 为后端状态）
//   - XACCT_ACCOUNT_NOT_FOUND：当前账户指针指向的标识不在给定列表中
type Store[A Record] interface {
	SaveAccount(a A) error
	Accounts() ([]A, error)
	RemoveAccount(a A) error
	RemoveAccounts() error
	Login(a A)
	Logout()
	CurrentAccount(accounts []A) (A, bool, error)
}

// CurrentKey 返回 service 命名空间的当前账户指针在偏好存储中的键。
func CurrentKey(service string) string {
	return "current_account." + service
}

// find 在 accounts 中查找 id；未找到返回 XACCT_ACCOUNT_NOT_FOUND。
func find[A Record](accounts []A, id string) (A, error) {
	for _, a := range accounts {
		if a.Identifier() == id {
			return a, nil
		}
	}
	var zero A
	return zero, errors.New(errors.CodeAccountNotFound, "current account is not in the account list", map[string]any{"id": id})
}
