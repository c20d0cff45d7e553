//go:build !windows

package secret

import (
	"testing"

	"github.com/zalando/go-keyring"
)

func TestDefaultKeyringCRUD(t *testing.T) {
	keyring.MockInit()

	kr := Default()
	if _, ok := kr.(*osKeyring); !ok {
		t.Fatalf("expected *osKeyring, got %T", kr)
	}

	service := "xacct-test"
	account := "acct"
	value := "secret"

	if err := kr.Set(service, account, value); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := kr.Get(service, account)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != value {
		t.Fatalf("Get returned %q, want %q", got, value)
	}

	if err := kr.Delete(service, account); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := kr.Get(service, account); StatusOf(err) != StatusNotFound {
		t.Fatalf("expected not found after Delete, got %v", err)
	}
}

func TestDefaultKeyringDeleteAllScopedToService(t *testing.T) {
	keyring.MockInit()
	kr := Default()

	_ = kr.Set("svc-a", "one", "1")
	_ = kr.Set("svc-a", "two", "2")
	_ = kr.Set("svc-b", "one", "other")

	if err := kr.DeleteAll("svc-a"); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	if _, err := kr.Get("svc-a", "one"); err == nil {
		t.Fatal("svc-a/one should be gone")
	}
	got, err := kr.Get("svc-b", "one")
	if err != nil || got != "other" {
		t.Fatalf("svc-b/one should survive, got %q, %v", got, err)
	}
}
