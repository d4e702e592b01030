package errs

import "fmt"

// PreconditionError 表示调用方配置缺失（frack house 未配置、signer 未连接等）。
// 属于致命错误：不重试，在做任何派生/编码工作之前立即返回给调用方。
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return "precondition failed: " + e.Reason
}

func Precondition(reason string) error {
	return &PreconditionError{Reason: reason}
}

// TruncatedBufferError 表示账户数据长度不足以按 schema 完整解码。
// 对单次解码致命；批量扫描场景下调用方应跳过该账户继续处理。
type TruncatedBufferError struct {
	Want int // schema 要求的最少字节数
	Got  int
}

func (e *TruncatedBufferError) Error() string {
	return fmt.Sprintf("truncated buffer: need at least %d bytes, got %d", e.Want, e.Got)
}

// SubmissionError 表示一笔链上交易被拒绝或超时，可在编排器的重试预算内重试。
type SubmissionError struct {
	BatchIndex int
	Err        error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("transaction submission failed at batch %d: %v", e.BatchIndex, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// OrchestrationFailedError 表示编排终止时仍有批次未提交。
// StopPoint 为最后一个成功提交批次之后的索引，调用方可据此决定续跑或放弃。
type OrchestrationFailedError struct {
	StopPoint int
	Total     int
	Err       error
}

func (e *OrchestrationFailedError) Error() string {
	return fmt.Sprintf("orchestration failed: committed %d of %d batches", e.StopPoint, e.Total)
}

func (e *OrchestrationFailedError) Unwrap() error { return e.Err }
