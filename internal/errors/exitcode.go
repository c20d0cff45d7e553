package errors

// ExitCode 是进程退出码（稳定契约）。
type ExitCode int

const (
	ExitOK ExitCode = 0

	// 2: 参数/配置错误
	ExitConfig ExitCode = 2

	// 3: 账户编码/解码失败
	ExitSerialization ExitCode = 3

	// 4: 安全存储读写失败
	ExitStore ExitCode = 4

	// 5: 账户不存在（含过期的当前账户指针）
	ExitNotFound ExitCode = 5

	// 10: 内部错误
	ExitInternal ExitCode = 10
)

func ExitCodeFor(code Code) ExitCode {
	switch code {
	case CodeCfgNotFound, CodeCfgInvalid:
		return ExitConfig
	case CodeSerialization:
		return ExitSerialization
	case CodeStoreWrite, CodeStoreStatus:
		return ExitStore
	case CodeAccountNotFound:
		return ExitNotFound
	case CodeInternal:
		fallthrough
	default:
		return ExitInternal
	}
}
