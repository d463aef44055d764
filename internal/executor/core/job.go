package core

import "sync/atomic"

// Job 在独立 goroutine 中运行的一次操作
// 结果只由 worker 写入, 写完后才设置完成标志; 读取方只在 Done 为 true 之后读结果
type Job[T any] struct {
	done   atomic.Bool
	finish chan struct{}
	result T
}

// StartJob 启动 worker 执行 fn
func StartJob[T any](fn func() T) *Job[T] {
	j := &Job[T]{finish: make(chan struct{})}
	go func() {
		defer close(j.finish)
		j.result = fn()
		j.done.Store(true)
	}()
	return j
}

// Done 非阻塞地查询是否完成
func (j *Job[T]) Done() bool {
	return j.done.Load()
}

// Wait 等待 worker 结束并返回结果
func (j *Job[T]) Wait() T {
	<-j.finish
	return j.result
}
