package orchestrator

import (
	"context"

	"frantik-client-sol/internal/errs"
	"frantik-client-sol/pkg/logger"
)

// maxStagnantTries 同一批次连续失败的次数上限，防止对确定性失败的批次无限重试
const maxStagnantTries = 3

// Submitter 负责把单个批次作为一笔交易提交上链。
// 实现方可以自带单笔级别的重试；提交失败返回 error（通常是 *errs.SubmissionError）。
type Submitter interface {
	SubmitBatch(ctx context.Context, batch Batch) error
}

// ProgressStore 记录一次编排的提交进度，供中断后续跑
type ProgressStore interface {
	SaveStopPoint(ctx context.Context, runID string, stopPoint int) error
	LoadStopPoint(ctx context.Context, runID string) (int, bool, error)
	Clear(ctx context.Context, runID string) error
}

// Orchestrator 按装配顺序提交批次链。批次之间不是原子的：
// 后面的指令引用前面批次创建的账户/状态，所以顺序不可打乱；
// 失败后从断点续提，避免重放已上链的状态变更。
type Orchestrator struct {
	submitter Submitter
	progress  ProgressStore // 可为 nil
}

func New(submitter Submitter) *Orchestrator {
	return &Orchestrator{submitter: submitter}
}

// WithProgress 挂接进度存储，Run 将以 runID 维度记录/恢复断点
func (o *Orchestrator) WithProgress(store ProgressStore) *Orchestrator {
	o.progress = store
	return o
}

// Run 提交批次链。部分完成是一等结果：失败时返回的
// *errs.OrchestrationFailedError 携带已成功提交的批次数（stopPoint）。
func (o *Orchestrator) Run(ctx context.Context, runID string, batches []Batch) error {
	total := len(batches)
	if total == 0 {
		return nil
	}

	committed := 0
	if o.progress != nil && runID != "" {
		if saved, ok, err := o.progress.LoadStopPoint(ctx, runID); err != nil {
			logger.Warnf("[Orchestrator] 读取断点失败 run=%s: %v", runID, err)
		} else if ok && saved > 0 && saved <= total {
			committed = saved
			logger.Infof("[Orchestrator] 从断点恢复 run=%s stopPoint=%d", runID, committed)
		}
	}

	remaining := batches[committed:]
	tries := 0
	lastFailed := -1
	var lastErr error

	for committed < total && tries < maxStagnantTries {
		n, err := o.submitFrom(ctx, remaining, committed)
		committed += n
		remaining = remaining[n:]
		o.saveProgress(ctx, runID, committed)

		if len(remaining) == 0 {
			break
		}

		// 卡在同一批次没有任何前进时累加 tries，有前进则重新计数
		if committed == lastFailed {
			tries++
		} else {
			tries = 1
		}
		lastFailed = committed
		lastErr = err
		logger.Warnf("[Orchestrator] 批次 %d 提交失败（第 %d 次）: %v", committed, tries, err)
	}

	if committed < total {
		return &errs.OrchestrationFailedError{StopPoint: committed, Total: total, Err: lastErr}
	}

	if o.progress != nil && runID != "" {
		if err := o.progress.Clear(ctx, runID); err != nil {
			logger.Warnf("[Orchestrator] 清理断点失败 run=%s: %v", runID, err)
		}
	}
	logger.Infof("[Orchestrator] 全部 %d 个批次提交完成", total)
	return nil
}

// submitFrom 按序提交 batches，停在第一个失败的批次上。
// 返回成功提交的批次数与触发停止的错误；error 里的 BatchIndex
// 以 offset 换算成整条批次链里的绝对下标，与 stopPoint 同一口径。
func (o *Orchestrator) submitFrom(ctx context.Context, batches []Batch, offset int) (int, error) {
	for i, batch := range batches {
		if err := o.submitter.SubmitBatch(ctx, batch); err != nil {
			return i, &errs.SubmissionError{BatchIndex: offset + i, Err: err}
		}
	}
	return len(batches), nil
}

func (o *Orchestrator) saveProgress(ctx context.Context, runID string, committed int) {
	if o.progress == nil || runID == "" {
		return
	}
	if err := o.progress.SaveStopPoint(ctx, runID, committed); err != nil {
		logger.Warnf("[Orchestrator] 写入断点失败 run=%s: %v", runID, err)
	}
}
