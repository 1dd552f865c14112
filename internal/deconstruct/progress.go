package deconstruct

import (
	"sync"
	"time"
)

// The progress sequence shown while a deconstruction call is in flight. It
// advances on a fixed timer and is purely cosmetic: the model call gives no
// real progress signal, so the stages are uncorrelated with actual work.
type ProgressStage struct {
	Percent int
	Message string
}

// ProgressStages lists the staged messages in display order. Shared by the
// CLI reporter and the TUI ticker.
var ProgressStages = []ProgressStage{
	{Percent: 15, Message: "正在上传素材到 AI 引擎..."},
	{Percent: 35, Message: "正在提取音轨与画面分镜..."},
	{Percent: 55, Message: "正在进行语音转文字 (ASR)..."},
	{Percent: 75, Message: "正在进行画面花字识别 (OCR)..."},
	{Percent: 95, Message: "正在生成深度拆解报告..."},
}

// StageInterval is the default advance rate.
const StageInterval = 1500 * time.Millisecond

// ProgressReporter drives the staged sequence on its own timer. It must be
// stopped on both the success and the failure path of the owning flow;
// Stop is idempotent and waits for the timer goroutine to exit.
type ProgressReporter struct {
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// StartProgress begins emitting stages through onStage every interval until
// the sequence is exhausted or Stop is called. onStage is called from the
// reporter's goroutine.
func StartProgress(interval time.Duration, onStage func(ProgressStage)) *ProgressReporter {
	if interval <= 0 {
		interval = StageInterval
	}
	r := &ProgressReporter{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go func() {
		defer close(r.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		next := 0
		for {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				if next >= len(ProgressStages) {
					continue
				}
				onStage(ProgressStages[next])
				next++
			}
		}
	}()
	return r
}

// Stop halts the reporter and blocks until its goroutine has exited.
func (r *ProgressReporter) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
	<-r.done
}
