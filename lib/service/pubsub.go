package service

import (
	"errors"
	"sync"
	"time"

	"github.com/getAlby/lnpaywall/db/models"
	"github.com/google/uuid"
)

// AllTopics subscribers receive the events of every resource kind.
const AllTopics = "*"

const paymentEventBuffer = 64

type PaymentEvent struct {
	Type      string         `json:"type"`
	Payment   models.Payment `json:"payment"`
	Timestamp time.Time      `json:"timestamp"`
}

// Pubsub fans payment events out per resource kind. Publishing never blocks,
// an event is dropped for a subscriber whose channel is full.
type Pubsub struct {
	mu   sync.RWMutex
	subs map[string]map[string]chan PaymentEvent
}

func NewPubsub() *Pubsub {
	ps := &Pubsub{}
	ps.subs = make(map[string]map[string]chan PaymentEvent)
	return ps
}

func (ps *Pubsub) Subscribe(topic string, ch chan PaymentEvent) (subId string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		ps.subs[topic] = make(map[string]chan PaymentEvent)
	}
	subId = uuid.New().String()
	ps.subs[topic][subId] = ch
	return subId
}

func (ps *Pubsub) Unsubscribe(id string, topic string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		return
	}
	if ps.subs[topic][id] == nil {
		return
	}
	close(ps.subs[topic][id])
	delete(ps.subs[topic], id)
}

// Publish returns the number of subscribers the event was delivered to.
func (ps *Pubsub) Publish(topic string, msg PaymentEvent) (delivered int) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	for _, t := range []string{topic, AllTopics} {
		for _, ch := range ps.subs[t] {
			select {
			case ch <- msg:
				delivered++
			default:
			}
		}
	}
	return delivered
}

// SubscribePaymentEvents subscribes to the events of every resource kind.
func (svc *PaywallService) SubscribePaymentEvents() (chan PaymentEvent, func(), error) {
	if svc.EventPubSub == nil {
		return nil, nil, errors.New("payment events are not enabled")
	}
	events := make(chan PaymentEvent, paymentEventBuffer)
	subId := svc.EventPubSub.Subscribe(AllTopics, events)
	return events, func() { svc.EventPubSub.Unsubscribe(subId, AllTopics) }, nil
}
