package collector

import (
	"errors"
	"fmt"
)

// FailureKind 站点级失败的类别
type FailureKind string

const (
	FailureTransport  FailureKind = "transport"
	FailureUnexpected FailureKind = "unexpected"
)

// TransportError 网络错误、超时或非 2xx 状态码
type TransportError struct {
	Source     string
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: fetch %s: status %d: %v", e.Source, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: fetch %s: %v", e.Source, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UnexpectedError 解析或选择阶段的其它错误
type UnexpectedError struct {
	Source string
	Err    error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *UnexpectedError) Unwrap() error { return e.Err }

// Failure 可序列化的站点失败记录
type Failure struct {
	Source string      `json:"source"`
	Kind   FailureKind `json:"kind"`
	Reason string      `json:"reason"`
}

// NewFailure 根据错误类型生成失败记录；未分类的错误归为 unexpected
func NewFailure(source string, err error) Failure {
	kind := FailureUnexpected
	var te *TransportError
	if errors.As(err, &te) {
		kind = FailureTransport
	}
	return Failure{Source: source, Kind: kind, Reason: err.Error()}
}
