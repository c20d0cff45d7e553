package secret

import (
	stderrors "errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// Status 是后端原生状态的稳定整数映射，随错误一起返回以便诊断。
type Status int

const (
	StatusSuccess Status = iota
	StatusNotFound
	StatusDataTooBig
	StatusUnsupported
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNotFound:
		return "not_found"
	case StatusDataTooBig:
		return "data_too_big"
	case StatusUnsupported:
		return "unsupported_platform"
	default:
		return "failure"
	}
}

// StatusOf 将 go-keyring 返回的错误归类为 Status；nil 即 StatusSuccess。
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case stderrors.Is(err, keyring.ErrNotFound):
		return StatusNotFound
	case stderrors.Is(err, keyring.ErrSetDataTooBig):
		return StatusDataTooBig
	case stderrors.Is(err, keyring.ErrUnsupportedPlatform):
		return StatusUnsupported
	default:
		var be *BackendError
		if stderrors.As(err, &be) {
			return be.Status
		}
		return StatusFailure
	}
}

// BackendError 记录一次失败的 keyring 调用及其状态。
type BackendError struct {
	Op      string
	Service string
	Account string
	Status  Status
	Err     error
}

func (e *BackendError) Error() string {
	if e.Account == "" {
		return fmt.Sprintf("keyring %s %s: %s: %v", e.Op, e.Service, e.Status, e.Err)
	}
	return fmt.Sprintf("keyring %s %s/%s: %s: %v", e.Op, e.Service, e.Account, e.Status, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

func backendErr(op, service, account string, err error) *BackendError {
	return &BackendError{Op: op, Service: service, Account: account, Status: StatusOf(err), Err: err}
}
