package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/blog-engine/config"
	"github.com/d60-Lab/blog-engine/internal/model"
	"github.com/d60-Lab/blog-engine/pkg/logger"
)

const emitTimeout = 5 * time.Second

// Notifier 通知扇出入口：调用方永远拿不到通知错误。
// async 模式下由本地有界队列 + worker 异步落库，队列满直接丢弃并告警。
type Notifier struct {
	engine  NotificationService
	async   bool
	workers int
	ch      chan *model.Notification

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func NewNotifier(engine NotificationService, cfg config.NotificationsConfig) *Notifier {
	n := &Notifier{engine: engine, async: cfg.Async, workers: cfg.Workers, stopCh: make(chan struct{})}
	if n.workers <= 0 {
		n.workers = 4
	}
	if n.async {
		size := cfg.QueueSize
		if size <= 0 {
			size = 10000
		}
		n.ch = make(chan *model.Notification, size)
	}
	return n
}

// Start 启动 worker，返回的停止函数会在 ctx 截止前尽量排空队列。
// 同步模式下是空操作。
func (n *Notifier) Start() func(context.Context) error {
	if !n.async {
		return func(context.Context) error { return nil }
	}
	for i := 0; i < n.workers; i++ {
		n.wg.Add(1)
		go n.loop()
	}
	return func(ctx context.Context) error {
		n.stopOnce.Do(func() { close(n.stopCh) })
		done := make(chan struct{})
		go func() {
			n.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			logger.Warn("notifier stopped with pending notifications", zap.Int("pending", len(n.ch)))
			return ctx.Err()
		}
	}
}

func (n *Notifier) loop() {
	defer n.wg.Done()
	for {
		select {
		case note := <-n.ch:
			n.emit(note)
		case <-n.stopCh:
			for {
				select {
				case note := <-n.ch:
					n.emit(note)
				default:
					return
				}
			}
		}
	}
}

func (n *Notifier) emit(note *model.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), emitTimeout)
	defer cancel()
	n.emitCtx(ctx, note)
}

func (n *Notifier) emitCtx(ctx context.Context, note *model.Notification) {
	if _, err := n.engine.Emit(ctx, note); err != nil {
		logger.Warn("emit notification failed",
			zap.String("type", note.Type),
			zap.String("target", note.TargetUserID),
			zap.Error(err))
	}
}

// Notify 发出一条通知。actorID 与接收者相同时直接忽略。
func (n *Notifier) Notify(ctx context.Context, actorID string, note *model.Notification) {
	if n == nil || note == nil || note.TargetUserID == "" || note.TargetUserID == actorID {
		return
	}
	if !n.async {
		n.emitCtx(ctx, note)
		return
	}
	select {
	case n.ch <- note:
	default:
		logger.Warn("notification queue full, drop",
			zap.String("type", note.Type),
			zap.String("target", note.TargetUserID))
	}
}

// QueueLen 返回当前队列长度（采样值）。
func (n *Notifier) QueueLen() int { return len(n.ch) }
