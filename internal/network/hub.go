package network

import (
	"sync"

	"github.com/rcarvalhosa/flare-engine/pkg/api"
	"github.com/rcarvalhosa/flare-engine/pkg/logger"
)

// sendBuffer - сколько снимков может ждать медленный клиент, прежде чем
// новые начнут отбрасываться.
const sendBuffer = 64

// Broadcaster занимается только рассылкой снимков подписчикам
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: токен клиента -> Личный канал
	subscribers map[string]chan api.ServerResponse
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerResponse),
	}
}

// Register создает личный канал для клиента. Повторная регистрация
// того же токена закрывает старый канал.
func (b *Broadcaster) Register(token string) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.subscribers[token]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, sendBuffer)
	b.subscribers[token] = ch
	return ch
}

// Unregister удаляет подписчика. Канал закрывается, только если это тот же
// канал, что выдал Register: переподключение не должно терять новый канал.
func (b *Broadcaster) Unregister(token string, ch chan api.ServerResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if cur, ok := b.subscribers[token]; ok && cur == ch {
		close(cur)
		delete(b.subscribers, token)
	}
}

// SendTo отправляет сообщение конкретному клиенту (Unicast)
func (b *Broadcaster) SendTo(token string, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[token]; ok {
		select {
		case ch <- msg:
		default:
			logger.Log.WithField("token", token).Warn("Hub: channel full, dropping snapshot")
		}
	}
}

// Broadcast отправляет всем подписчикам
func (b *Broadcaster) Broadcast(msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for token, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
			logger.Log.WithField("token", token).Debug("Hub: channel full, dropping snapshot")
		}
	}
}

// HasSubscriber проверяет, подключён ли клиент с таким токеном
func (b *Broadcaster) HasSubscriber(token string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[token]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
