package errno

import (
	"errors"
)

// Errno defines the error code logic
type Errno struct {
	Code    int
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// Is 按错误码比较，WithMessage 派生出来的错误仍然与原始错误相等
func (e Errno) Is(target error) bool {
	switch t := target.(type) {
	case Errno:
		return e.Code == t.Code
	case *Errno:
		return t != nil && e.Code == t.Code
	}
	return false
}

// WithMessage 复制错误码并替换提示信息
func (e Errno) WithMessage(msg string) Errno {
	return Errno{Code: e.Code, Message: msg}
}

// Decode tries to convert an error to Errno
func Decode(err error) (int, string) {
	if err == nil {
		return OK.Code, OK.Message
	}

	var typed Errno
	if errors.As(err, &typed) {
		return typed.Code, err.Error()
	}
	var ptr *Errno
	if errors.As(err, &ptr) && ptr != nil {
		return ptr.Code, err.Error()
	}
	return InternalServerError.Code, err.Error()
}

// Common Errors
var (
	OK                  = Errno{Code: 0, Message: "Success"}
	InternalServerError = Errno{Code: 10001, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, Message: "Error occurred while binding the request body to the struct"}
)

// NoAccountsMessage 设备侧 "没有找到账户" 的原始提示。
// 旧版钱包只返回这条文本，所以分类时仍然要兼容字符串匹配。
const NoAccountsMessage = "No accounts were found."

// Keystone Errors (30000+)
var (
	ErrNoAccounts         = Errno{Code: 30101, Message: NoAccountsMessage}
	ErrTransportRejection = Errno{Code: 30102, Message: "Request rejected on device"}
	ErrDevice             = Errno{Code: 30103, Message: "Device error"}
	ErrDeviceUnavailable  = Errno{Code: 30104, Message: "Device not connected"}
	ErrPersistence        = Errno{Code: 30201, Message: "Persistence error"}
	ErrInvalidPath        = Errno{Code: 30202, Message: "Invalid derivation path"}
	ErrAccountNotFound    = Errno{Code: 30203, Message: "Account not found"}
)

// Kind 错误分类
type Kind int

const (
	KindGenericDevice Kind = iota
	KindNotFound
	KindTransportRejection
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindTransportRejection:
		return "transport_rejection"
	case KindPersistence:
		return "persistence"
	default:
		return "generic_device"
	}
}

// KindOf 把任意错误归类。
// NotFound 优先按错误码判断，其次按消息全文匹配 (兼容只返回文本的实现)。
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindGenericDevice
	case errors.Is(err, ErrNoAccounts), err.Error() == NoAccountsMessage:
		return KindNotFound
	case errors.Is(err, ErrTransportRejection):
		return KindTransportRejection
	case errors.Is(err, ErrPersistence):
		return KindPersistence
	default:
		return KindGenericDevice
	}
}
