package account

// Result 是一次异步操作的唯一结果：Value 与 Err 二者之一有意义。
type Result[T any] struct {
	Value T
	Err   error
}

// Go 在新 goroutine 中执行 fn，返回的 channel 恰好产生一个 Result 后关闭。
// channel 带一个缓冲，调用方不接收也不会泄漏 goroutine。
func Go[T any](fn func() (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		defer close(ch)
		v, err := fn()
		ch <- Result[T]{Value: v, Err: err}
	}()
	return ch
}

// Current 是 CurrentAccount 的结果；OK=false 表示没有当前账户。
type Current[A Record] struct {
	Account A
	OK      bool
}

// Async 以单次结果 channel 的形式暴露 Store 的各项操作。
type Async[A Record] struct {
	store Store[A]
}

func NewAsync[A Record](s Store[A]) *Async[A] {
	return &Async[A]{store: s}
}

func (x *Async[A]) SaveAccount(a A) <-chan Result[struct{}] {
	return Go(func() (struct{}, error) { return struct{}{}, x.store.SaveAccount(a) })
}

func (x *Async[A]) Accounts() <-chan Result[[]A] {
	return Go(x.store.Accounts)
}

func (x *Async[A]) RemoveAccount(a A) <-chan Result[struct{}] {
	return Go(func() (struct{}, error) { return struct{}{}, x.store.RemoveAccount(a) })
}

func (x *Async[A]) RemoveAccounts() <-chan Result[struct{}] {
	return Go(func() (struct{}, error) { return struct{}{}, x.store.RemoveAccounts() })
}

func (x *Async[A]) Login(a A) <-chan Result[struct{}] {
	return Go(func() (struct{}, error) {
		x.store.Login(a)
		return struct{}{}, nil
	})
}

func (x *Async[A]) Logout() <-chan Result[struct{}] {
	return Go(func() (struct{}, error) {
		x.store.Logout()
		return struct{}{}, nil
	})
}

func (x *Async[A]) CurrentAccount(accounts []A) <-chan Result[Current[A]] {
	return Go(func() (Current[A], error) {
		a, ok, err := x.store.CurrentAccount(accounts)
		return Current[A]{Account: a, OK: ok}, err
	})
}
