package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// TestBroker_PublishToSubscribers 测试事件扇出到全部订阅者
func TestBroker_PublishToSubscribers(t *testing.T) {
	t.Parallel()

	b := NewBroker[FieldChange]()
	defer b.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch1 := b.Subscribe(ctx)
	ch2 := b.Subscribe(ctx)
	require.Equal(t, 2, b.SubscriberCount())

	change := FieldChange{Widget: "search", Field: "search_text", Old: "", New: "granite"}
	b.Publish(FieldChangedEvent, change)

	for _, ch := range []<-chan Event[FieldChange]{ch1, ch2} {
		select {
		case ev := <-ch:
			require.Equal(t, FieldChangedEvent, ev.Type)
			require.Equal(t, change, ev.Payload)
		case <-time.After(time.Second):
			t.Fatal("等待事件超时")
		}
	}
}

// TestBroker_ContextCancelUnsubscribes 测试上下文取消后自动退订
func TestBroker_ContextCancelUnsubscribes(t *testing.T) {
	t.Parallel()

	b := NewBroker[FieldChange]()
	defer b.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	ch := b.Subscribe(ctx)
	cancel()

	// 通道最终被关闭
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, 0, b.SubscriberCount())
}

// TestBroker_ShutdownClosesChannels 测试关闭代理后订阅通道关闭且发布为空操作
func TestBroker_ShutdownClosesChannels(t *testing.T) {
	t.Parallel()

	b := NewBroker[FieldChange]()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Subscribe(ctx)
	b.Shutdown()

	_, ok := <-ch
	require.False(t, ok)

	// 关闭后的发布与订阅是空操作
	b.Publish(FieldChangedEvent, FieldChange{})
	ch2 := b.Subscribe(ctx)
	_, ok = <-ch2
	require.False(t, ok)

	// 幂等关闭
	b.Shutdown()
}

// TestBroker_SlowSubscriberSkipped 测试慢订阅者不阻塞发布方
func TestBroker_SlowSubscriberSkipped(t *testing.T) {
	t.Parallel()

	b := NewBroker[int]()
	defer b.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b.Subscribe(ctx) // 没有消费者

	done := make(chan struct{})
	go func() {
		defer close(done)
		// 超出缓冲区的事件被丢弃而非阻塞
		for i := 0; i < bufferSize*2; i++ {
			b.Publish(FieldChangedEvent, i)
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("发布被慢订阅者阻塞")
	}
}
