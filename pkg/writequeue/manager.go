// Package writequeue provides a serialized write queue implementation
// Package writequeue 提供串行化写队列实现
// Used to serialize SQLite write operations on the settings document to solve "database is locked" issue
// 用于串行化设置文档的 SQLite 写操作，解决 "database is locked" 问题
package writequeue

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Error definitions
// 错误定义
var (
	// ErrWriteQueueFull returned when the write queue is full
	// ErrWriteQueueFull 当写队列已满时返回
	ErrWriteQueueFull = errors.New("write queue is full")
	// ErrWriteQueueClosed returned when the write queue is closed
	// ErrWriteQueueClosed 当写队列已关闭时返回
	ErrWriteQueueClosed = errors.New("write queue is closed")
	// ErrWriteTimeout returned when write operation timeout
	// ErrWriteTimeout 当写操作超时时返回
	ErrWriteTimeout = errors.New("write operation timeout")
)

// Config write queue configuration
// Config 写队列配置
type Config struct {
	// QueueCapacity queue capacity, default 100
	// QueueCapacity 队列容量，默认 100
	QueueCapacity int
	// WriteTimeout write operation timeout, default 30 seconds
	// WriteTimeout 写操作超时时间，默认 30 秒
	WriteTimeout time.Duration
}

// DefaultConfig returns default configuration
// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		QueueCapacity: 100,
		WriteTimeout:  30 * time.Second,
	}
}

// writeOp write operation
// writeOp 写操作
type writeOp struct {
	ctx    context.Context
	fn     func() error
	result chan error
}

// Queue serializes write operations in FIFO order
// Queue 按 FIFO 顺序串行化写操作
type Queue struct {
	config Config
	logger *zap.Logger

	ch chan writeOp

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool

	workerWg sync.WaitGroup
}

// New creates a write queue
// New 创建写队列
// cfg: configuration, if nil use default configuration
// cfg: 配置，如果为 nil 则使用默认配置
// logger: zap logger, if nil use nop logger
// logger: zap 日志器，如果为 nil 则使用 nop logger
func New(cfg *Config, logger *zap.Logger) *Queue {
	if cfg == nil {
		defaultCfg := DefaultConfig()
		cfg = &defaultCfg
	}

	// Apply default values
	// 应用默认值
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = 100
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 30 * time.Second
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	q := &Queue{
		config: *cfg,
		logger: logger,
		ch:     make(chan writeOp, cfg.QueueCapacity),
		ctx:    ctx,
		cancel: cancel,
	}

	q.workerWg.Add(1)
	go q.worker()

	q.logger.Info("write queue started",
		zap.Int("queueCapacity", cfg.QueueCapacity),
		zap.Duration("writeTimeout", cfg.WriteTimeout))

	return q
}

// Execute executes a write operation
// Write operations are executed serially in FIFO order
// Execute 执行写操作
// 写操作会被串行化执行，按 FIFO 顺序处理
func (q *Queue) Execute(ctx context.Context, fn func() error) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrWriteQueueClosed
	}
	q.mu.RUnlock()

	// Create write operation
	// 创建写操作
	result := make(chan error, 1)
	op := writeOp{
		ctx:    ctx,
		fn:     fn,
		result: result,
	}

	// Try submitting to queue
	// 尝试提交到队列
	select {
	case q.ch <- op:
		// Operation submitted
		// 操作已提交
	default:
		// Queue full
		// 队列已满
		return ErrWriteQueueFull
	}

	// Wait for result or timeout
	// 等待结果或超时
	timeout := q.config.WriteTimeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining < timeout {
			timeout = remaining
		}
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(timeout):
		return ErrWriteTimeout
	case <-q.ctx.Done():
		return ErrWriteQueueClosed
	}
}

// worker goroutine handling the write queue
// worker 处理写队列的 worker goroutine
func (q *Queue) worker() {
	defer q.workerWg.Done()
	defer q.logger.Debug("write queue worker stopped")

	for {
		select {
		case <-q.ctx.Done():
			// Queue closed, handle remaining operations
			// 队列关闭，处理剩余操作
			q.drain()
			return
		case op, ok := <-q.ch:
			if !ok {
				return
			}
			q.executeOp(op)
		}
	}
}

// executeOp executes single write operation
// executeOp 执行单个写操作
func (q *Queue) executeOp(op writeOp) {
	// Check if context is cancelled
	// 检查 context 是否已取消
	select {
	case <-op.ctx.Done():
		op.result <- op.ctx.Err()
		return
	default:
	}

	// Execute write operation
	// 执行写操作
	err := op.fn()

	// Send result
	// 发送结果
	select {
	case op.result <- err:
	default:
		// result channel is closed or full
		// result channel 已关闭或已满
	}
}

// drain drains remaining operations in queue
// drain 排空队列中的剩余操作
func (q *Queue) drain() {
	for {
		select {
		case op, ok := <-q.ch:
			if !ok {
				return
			}
			q.executeOp(op)
		default:
			return
		}
	}
}

// Shutdown closes the write queue, waits for queued operations to complete
// ctx is used to control shutdown timeout
// Shutdown 关闭写队列，等待排队中的操作完成
// ctx 用于控制关闭超时
func (q *Queue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	q.mu.Unlock()

	q.logger.Info("write queue shutting down")

	done := make(chan struct{})
	go func() {
		q.cancel()
		q.workerWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		q.logger.Info("write queue shutdown completed")
		return nil
	case <-ctx.Done():
		q.logger.Warn("write queue shutdown timeout, forcing cancellation")
		return ctx.Err()
	}
}

// QueuedCount returns number of operations waiting in the queue
// QueuedCount 返回队列中等待的操作数
func (q *Queue) QueuedCount() int {
	return len(q.ch)
}

// IsClosed returns if the queue is closed
// IsClosed 返回队列是否已关闭
func (q *Queue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

// Metrics write queue metrics
// Metrics 写队列指标
type Metrics struct {
	QueueCapacity int
	Pending       int
	IsClosed      bool
}

// GetMetrics gets current metrics
// GetMetrics 获取当前指标
func (q *Queue) GetMetrics() Metrics {
	q.mu.RLock()
	closed := q.closed
	q.mu.RUnlock()

	return Metrics{
		QueueCapacity: q.config.QueueCapacity,
		Pending:       len(q.ch),
		IsClosed:      closed,
	}
}
