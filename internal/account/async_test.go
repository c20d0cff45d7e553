package account

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zx06/xacct/internal/errors"
)

// drain 读取 channel 直到关闭，返回收到的全部结果。
func drain[T any](ch <-chan Result[T]) []Result[T] {
	var out []Result[T]
	for r := range ch {
		out = append(out, r)
	}
	return out
}

func TestGo_ExactlyOnce(t *testing.T) {
	got := drain(Go(func() (int, error) { return 42, nil }))
	require.Len(t, got, 1)
	assert.Equal(t, 42, got[0].Value)
	assert.NoError(t, got[0].Err)

	boom := stderrors.New("boom")
	got = drain(Go(func() (int, error) { return 0, boom }))
	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0].Err, boom)
}

func TestGo_UnreadResultDoesNotBlock(t *testing.T) {
	done := make(chan struct{})
	_ = Go(func() (int, error) {
		defer close(done)
		return 1, nil
	})
	<-done
}

func TestAsync_Store(t *testing.T) {
	x := NewAsync[namedRecord](NewMemory[namedRecord]())

	require.Len(t, drain(x.SaveAccount(alice)), 1)
	require.Len(t, drain(x.SaveAccount(bob)), 1)

	list := drain(x.Accounts())
	require.Len(t, list, 1)
	require.NoError(t, list[0].Err)
	assert.Equal(t, []namedRecord{alice, bob}, list[0].Value)

	drain(x.Login(bob))
	cur := drain(x.CurrentAccount(list[0].Value))
	require.Len(t, cur, 1)
	require.NoError(t, cur[0].Err)
	assert.True(t, cur[0].Value.OK)
	assert.Equal(t, bob, cur[0].Value.Account)

	require.NoError(t, (<-x.RemoveAccount(bob)).Err)
	cur = drain(x.CurrentAccount([]namedRecord{alice}))
	assert.True(t, errors.HasCode(cur[0].Err, errors.CodeAccountNotFound), "got %v", cur[0].Err)

	drain(x.Logout())
	cur = drain(x.CurrentAccount(nil))
	require.NoError(t, cur[0].Err)
	assert.False(t, cur[0].Value.OK)

	require.NoError(t, (<-x.RemoveAccounts()).Err)
	list = drain(x.Accounts())
	assert.Empty(t, list[0].Value)
}

func TestAsync_SaveFailure(t *testing.T) {
	x := NewAsync[namedRecord](NewMemory[namedRecord]())
	res := drain(x.SaveAccount(namedRecord{}))
	require.Len(t, res, 1)
	assert.True(t, errors.HasCode(res[0].Err, errors.CodeSerialization), "got %v", res[0].Err)
}

func TestAsync_ConcurrentSaveOverKeychain(t *testing.T) {
	kr := newFakeKeyring()
	x := NewAsync[namedRecord](newTestKeychain(kr, Options{}))

	const n = 300
	pending := make([]<-chan Result[struct{}], 0, n)
	for i := 0; i < n; i++ {
		pending = append(pending, x.SaveAccount(namedRecord{ID: fmt.Sprintf("user-%03d", i)}))
	}
	for _, ch := range pending {
		require.NoError(t, (<-ch).Err)
	}

	list := <-x.Accounts()
	require.NoError(t, list.Err)
	assert.Len(t, list.Value, n)

	pending = pending[:0]
	for i := 0; i < n; i += 3 {
		pending = append(pending, x.RemoveAccount(namedRecord{ID: fmt.Sprintf("user-%03d", i)}))
	}
	for _, ch := range pending {
		require.NoError(t, (<-ch).Err)
	}
	list = <-x.Accounts()
	require.NoError(t, list.Err)
	assert.Len(t, list.Value, n-n/3)
}
