package app

import (
	"log/slog"

	"github.com/zx06/xacct/internal/account"
	"github.com/zx06/xacct/internal/config"
	"github.com/zx06/xacct/internal/errors"
	"github.com/zx06/xacct/internal/prefs"
	"github.com/zx06/xacct/internal/secret"
)

// StoreOptions 控制 OpenStore 的依赖注入；nil 字段使用默认实现。
type StoreOptions struct {
	Keyring secret.KeyringAPI
	Prefs   prefs.Store
	Logger  *slog.Logger
}

// OpenStore 按解析后的配置构造基于 keyring 的账户存储。
func OpenStore(r config.Resolved, opts StoreOptions) (*account.Keychain[Credential], *errors.XError) {
	codec, xe := account.CodecByName(r.Codec)
	if xe != nil {
		return nil, xe
	}
	policy, xe := account.ParseListPolicy(r.ListPolicy)
	if xe != nil {
		return nil, xe
	}
	p := opts.Prefs
	if p == nil {
		if r.Preferences == "" {
			return nil, errors.New(errors.CodeCfgInvalid, "preferences path is empty", nil)
		}
		p = prefs.NewFileStore(r.Preferences)
	}
	return account.NewKeychain[Credential](account.Options{
		Service: r.Service,
		Keyring: opts.Keyring,
		Prefs:   p,
		Codec:   codec,
		Policy:  policy,
		Logger:  opts.Logger,
	}), nil
}

// Lookup 在账户列表中按标识查找。
func Lookup(accounts []Credential, id string) (Credential, *errors.XError) {
	for _, a := range accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return Credential{}, errors.New(errors.CodeAccountNotFound, "account not found", map[string]any{"id": id})
}

// ListView 返回带当前账户标记的脱敏列表；当前账户指针过期时不标记任何账户。
func ListView(s account.Store[Credential], service string) (CredentialList, *errors.XError) {
	accounts, err := s.Accounts()
	if err != nil {
		return CredentialList{}, errors.AsOrWrap(err)
	}
	cur, ok, _ := s.CurrentAccount(accounts)
	list := CredentialList{Service: service, Accounts: make([]CredentialView, 0, len(accounts))}
	for _, a := range accounts {
		list.Accounts = append(list.Accounts, a.View(ok && a.ID == cur.ID))
	}
	return list, nil
}
