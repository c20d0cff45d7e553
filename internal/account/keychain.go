package account

import (
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/zx06/xacct/internal/errors"
	"github.com/zx06/xacct/internal/log"
	"github.com/zx06/xacct/internal/prefs"
	"github.com/zx06/xacct/internal/secret"
)

// DefaultService 是未配置命名空间时使用的 service 名。
const DefaultService = "xacct"

// Options 配置 Keychain；零值字段使用默认值。
type Options struct {
	Service string            // keyring service 命名空间（默认 DefaultService）
	Keyring secret.KeyringAPI // 可注入的 keyring 实现（nil 则用 secret.Default）
	Prefs   prefs.Store       // 当前账户指针所在的偏好存储（nil 则用内存实现）
	Codec   Codec             // 默认 JSONCodec
	Policy  ListPolicy        // 默认 PolicySkip
	Logger  *slog.Logger
}

// Keychain 是基于 OS keyring 的 Store 实现。
type Keychain[A Record] struct {
	vault  *secret.Vault
	prefs  prefs.Store
	codec  Codec
	policy ListPolicy
	logger *slog.Logger
}

func NewKeychain[A Record](opts Options) *Keychain[A] {
	if opts.Service == "" {
		opts.Service = DefaultService
	}
	if opts.Prefs == nil {
		opts.Prefs = prefs.NewMemoryStore()
	}
	if opts.Codec == nil {
		opts.Codec = JSONCodec{}
	}
	if opts.Policy == "" {
		opts.Policy = PolicySkip
	}
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}
	return &Keychain[A]{
		vault:  secret.NewVault(opts.Keyring, opts.Service),
		prefs:  opts.Prefs,
		codec:  opts.Codec,
		policy: opts.Policy,
		logger: opts.Logger.With("service", opts.Service),
	}
}

func (k *Keychain[A]) Service() string { return k.vault.Service() }

func (k *Keychain[A]) SaveAccount(a A) error {
	id := a.Identifier()
	if err := secret.ValidateID(id); err != nil {
		return errors.Wrap(errors.CodeSerialization, "account identifier cannot be encoded", map[string]any{"id": id}, err)
	}
	data, err := k.codec.Marshal(a)
	if err != nil {
		return errors.Wrap(errors.CodeSerialization, "failed to encode account", map[string]any{"id": id, "codec": k.codec.Name()}, err)
	}
	if err := k.vault.Put(id, data); err != nil {
		var be *secret.BackendError
		if !stderrors.As(err, &be) {
			return errors.Wrap(errors.CodeSerialization, "account payload cannot be stored", map[string]any{"id": id}, err)
		}
		return errors.Wrap(errors.CodeStoreWrite, "failed to save account", statusDetails(id, be), err)
	}
	k.logger.Debug("account saved", "id", id)
	return nil
}

func (k *Keychain[A]) Accounts() ([]A, error) {
	entries, err := k.vault.Entries()
	if err != nil {
		return nil, storeStatusErr("failed to list accounts", "", err)
	}
	accounts := make([]A, 0, len(entries))
	for _, e := range entries {
		a, err := k.decode(e)
		if err != nil {
			if k.policy == PolicyFail {
				return nil, errors.Wrap(errors.CodeSerialization, "failed to decode account", map[string]any{"id": e.ID, "codec": k.codec.Name()}, err)
			}
			k.logger.Warn("skipping undecodable account", "id", e.ID, "err", err)
			continue
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// decode 解码一个条目；记录标识与条目名不一致也视为无法解码，以保证列表内标识唯一。
func (k *Keychain[A]) decode(e secret.Entry) (A, error) {
	var a A
	if err := k.codec.Unmarshal(e.Data, &a); err != nil {
		return a, err
	}
	if got := a.Identifier(); got != e.ID {
		return a, fmt.Errorf("record identifier %q does not match entry %q", got, e.ID)
	}
	return a, nil
}

func (k *Keychain[A]) RemoveAccount(a A) error {
	id := a.Identifier()
	if err := secret.ValidateID(id); err != nil {
		return errors.Wrap(errors.CodeStoreWrite, "account identifier cannot be encoded", map[string]any{"id": id}, err)
	}
	if err := k.vault.Delete(id); err != nil {
		return storeStatusErr("failed to remove account", id, err)
	}
	k.logger.Debug("account removed", "id", id)
	return nil
}

func (k *Keychain[A]) RemoveAccounts() error {
	if err := k.vault.DeleteAll(); err != nil {
		return storeStatusErr("failed to remove accounts", "", err)
	}
	k.logger.Debug("all accounts removed")
	return nil
}

// Login 记录当前账户。偏好存储写入失败只记录告警，不向调用方返回。
func (k *Keychain[A]) Login(a A) {
	if err := k.prefs.Set(CurrentKey(k.Service()), a.Identifier()); err != nil {
		k.logger.Warn("failed to persist current account", "id", a.Identifier(), "err", err)
	}
}

func (k *Keychain[A]) Logout() {
	if err := k.prefs.Remove(CurrentKey(k.Service())); err != nil {
		k.logger.Warn("failed to clear current account", "err", err)
	}
}

func (k *Keychain[A]) CurrentAccount(accounts []A) (A, bool, error) {
	var zero A
	id, ok, err := k.prefs.Get(CurrentKey(k.Service()))
	if err != nil {
		// 偏好存储视为不会失败：读不到即没有当前账户。
		k.logger.Warn("failed to read current account", "err", err)
		return zero, false, nil
	}
	if !ok {
		return zero, false, nil
	}
	a, xerr := find(accounts, id)
	if xerr != nil {
		return zero, false, xerr
	}
	return a, true, nil
}

func statusDetails(id string, be *secret.BackendError) map[string]any {
	d := map[string]any{
		"status":      int(be.Status),
		"status_name": be.Status.String(),
		"op":          be.Op,
	}
	if id != "" {
		d["id"] = id
	}
	return d
}

func storeStatusErr(msg, id string, err error) *errors.XError {
	var be *secret.BackendError
	if !stderrors.As(err, &be) {
		be = &secret.BackendError{Status: secret.StatusOf(err)}
	}
	return errors.Wrap(errors.CodeStoreStatus, msg, statusDetails(id, be), err)
}
