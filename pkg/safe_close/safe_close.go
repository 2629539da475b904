package safe_close

import "sync"

// SafeClose coordinates graceful shutdown across multiple goroutines.
// Every long-running component attaches a closure that receives the
// close signal channel and a done callback; WaitClosed blocks until the
// signal fires and every attached closure has reported done.
// SafeClose 协调多个协程的优雅关闭
type SafeClose struct {
	closeSignal chan struct{}
	closeOnce   sync.Once
	closeErr    error
	wg          sync.WaitGroup
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach 注册一个受管协程，f 必须在收到 closeSignal 后调用 done
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var once sync.Once
	done := func() {
		once.Do(s.wg.Done)
	}
	go f(done, s.closeSignal)
}

// SendCloseSignal triggers shutdown. The first caller's error is kept
// and returned by WaitClosed; later calls are no-ops.
// SendCloseSignal 发送关闭信号，仅第一次调用生效
func (s *SafeClose) SendCloseSignal(err error) {
	s.closeOnce.Do(func() {
		s.closeErr = err
		close(s.closeSignal)
	})
}

// CloseSignal 返回关闭信号通道，供只读监听
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeSignal
}

// WaitClosed 阻塞直至收到关闭信号且所有受管协程退出
func (s *SafeClose) WaitClosed() error {
	<-s.closeSignal
	s.wg.Wait()
	return s.closeErr
}
