package search

import (
	"sync"
	"time"
)

// DefaultDelay 搜索输入防抖静默期
const DefaultDelay = 300 * time.Millisecond

// Debouncer 单槽延迟任务调度器：每次 Trigger 先取消未执行的旧任务
// 再重新计时，保证静默期内至多一次重算，且总是以最新输入执行。
// 交互端嵌入搜索引擎时用它合并连续击键，服务端路由不使用。
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger 安排 fn 在静默期后执行；未到期的前一次安排被取消
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop 取消挂起的任务（若有）
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
