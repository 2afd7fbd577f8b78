package collect

import (
	"context"
	"time"

	"go-steam-export/internal/model"
)

// Runner 顺序执行整批采集。
// 全程单线程串行：并发请求会显著提高触发平台风控的概率。
type Runner struct {
	col   *Collector
	delay time.Duration
}

// Progress 在每条记录完成后回调（index 从 0 开始）。
type Progress func(index, total int, rec model.Record)

// NewRunner 创建 Runner；delay 为相邻档案间的延迟。
func NewRunner(col *Collector, delay time.Duration) *Runner {
	return &Runner{col: col, delay: delay}
}

// Run 按输入顺序处理全部链接：
// - 每条输入恰好产出一条记录，单条失败不会中断整批
// - 除最后一条外，相邻档案之间等待 delay
// 上下文取消后不提前返回：剩余输入以失败记录收尾，保证输入输出等长。
func (r *Runner) Run(ctx context.Context, urls []string, onProgress Progress) []model.Record {
	out := make([]model.Record, 0, len(urls))
	for i, u := range urls {
		rec := r.col.Collect(ctx, u)
		out = append(out, rec)
		if onProgress != nil {
			onProgress(i, len(urls), rec)
		}
		if i < len(urls)-1 && r.delay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(r.delay):
			}
		}
	}
	return out
}
