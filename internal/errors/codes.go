package errors

// Code 是稳定错误码（字符串），供 AI/agent 与程序判断。
// 只增不改、不复用旧含义。
type Code string

const (
	// Config / args
	CodeCfgNotFound Code = "XACCT_CFG_NOT_FOUND"
	CodeCfgInvalid  Code = "XACCT_CFG_INVALID"

	// Account encoding
	CodeSerialization Code = "XACCT_SERIALIZATION_FAILED"

	// Secure store
	CodeStoreWrite  Code = "XACCT_STORE_WRITE_FAILED"
	CodeStoreStatus Code = "XACCT_STORE_STATUS"

	// Session
	CodeAccountNotFound Code = "XACCT_ACCOUNT_NOT_FOUND"

	// Internal
	CodeInternal Code = "XACCT_INTERNAL"
)

func AllCodes() []Code {
	return []Code{
		CodeCfgNotFound,
		CodeCfgInvalid,
		CodeSerialization,
		CodeStoreWrite,
		CodeStoreStatus,
		CodeAccountNotFound,
		CodeInternal,
	}
}
