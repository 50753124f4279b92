package service

import (
	"io"
	"testing"

	"github.com/getAlby/lnpaywall/common"
	"github.com/getAlby/lnpaywall/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ziflex/lecho/v3"
)

func TestPubsub(t *testing.T) {
	ps := NewPubsub()
	posts := make(chan PaymentEvent, 1)
	all := make(chan PaymentEvent, 1)
	postSub := ps.Subscribe(common.ResourceTypePost, posts)
	ps.Subscribe(AllTopics, all)

	event := PaymentEvent{Type: common.PaymentEventIssued, Payment: models.Payment{ID: "1"}}
	assert.Equal(t, 2, ps.Publish(common.ResourceTypePost, event))
	assert.Equal(t, event, <-posts)
	assert.Equal(t, event, <-all)

	assert.Equal(t, 1, ps.Publish(common.ResourceTypeMedia, event))

	// full subscribers are skipped instead of blocking the publisher
	assert.Equal(t, 0, ps.Publish(common.ResourceTypeMedia, event))

	ps.Unsubscribe(postSub, common.ResourceTypePost)
	_, open := <-posts
	assert.False(t, open)
	ps.Unsubscribe(postSub, common.ResourceTypePost)
}

func TestSubscribePaymentEvents(t *testing.T) {
	svc := NewPaywallService(testConfig(), lecho.New(io.Discard), nil, NewMemoryPaymentStore(), NewMemoryResourceStore())
	events, unsubscribe, err := svc.SubscribePaymentEvents()
	require.NoError(t, err)

	svc.publish(common.PaymentEventSettled, &models.Payment{ID: "1", ResourceType: common.ResourceTypeMedia})
	event := <-events
	assert.Equal(t, common.PaymentEventSettled, event.Type)

	unsubscribe()
	_, open := <-events
	assert.False(t, open)

	svc.EventPubSub = nil
	_, _, err = svc.SubscribePaymentEvents()
	assert.Error(t, err)
}
