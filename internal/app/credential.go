package app

import (
	"time"

	"github.com/google/uuid"
)

// Credential 是 CLI 保存在 keyring 中的账户记录。
type Credential struct {
	ID        string    `json:"id" yaml:"id"`
	Username  string    `json:"username" yaml:"username"`
	Secret    string    `json:"secret" yaml:"secret"`
	Server    string    `json:"server,omitempty" yaml:"server,omitempty"`
	Label     string    `json:"label,omitempty" yaml:"label,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

func (c Credential) Identifier() string { return c.ID }

// NewCredential 构造一条记录；id 为空时生成 UUID。
func NewCredential(id, username, secret, server, label string, now time.Time) Credential {
	if id == "" {
		id = uuid.NewString()
	}
	return Credential{
		ID:        id,
		Username:  username,
		Secret:    secret,
		Server:    server,
		Label:     label,
		CreatedAt: now.UTC().Truncate(time.Second),
	}
}

// CredentialView 是对外展示用的脱敏视图。
type CredentialView struct {
	ID        string    `json:"id" yaml:"id"`
	Username  string    `json:"username" yaml:"username"`
	Server    string    `json:"server,omitempty" yaml:"server,omitempty"`
	Label     string    `json:"label,omitempty" yaml:"label,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Current   bool      `json:"current" yaml:"current"`
}

func (c Credential) View(current bool) CredentialView {
	return CredentialView{
		ID:        c.ID,
		Username:  c.Username,
		Server:    c.Server,
		Label:     c.Label,
		CreatedAt: c.CreatedAt,
		Current:   current,
	}
}

// CredentialList 以表格列形式渲染账户列表。
type CredentialList struct {
	Service  string           `json:"service" yaml:"service"`
	Accounts []CredentialView `json:"accounts" yaml:"accounts"`
}

func (l CredentialList) ToTableData() ([]string, []map[string]any, bool) {
	cols := []string{"id", "username", "server", "label", "current"}
	rows := make([]map[string]any, 0, len(l.Accounts))
	for _, a := range l.Accounts {
		cur := ""
		if a.Current {
			cur = "*"
		}
		rows = append(rows, map[string]any{
			"id":       a.ID,
			"username": a.Username,
			"server":   a.Server,
			"label":    a.Label,
			"current":  cur,
		})
	}
	return cols, rows, true
}
