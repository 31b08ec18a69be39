package isa

import (
	"testing"

	"github.com/pumpkindb/pumpkindb"
	"github.com/stretchr/testify/assert"
)

func TestSubscribePublishPoll(t *testing.T) {
	env := newEngineEnv(t)

	run(t, env, program([]byte("topic"), "SUBSCRIBE"))
	id, err := env.Stack.Pop()
	assert.NoError(t, err)

	run(t, env, program([]byte("hello"), []byte("topic"), "PUBLISH"))

	v, ok := env.PollSubscription(string(id))
	assert.True(t, ok)
	assert.Equal(t, pumpkindb.Value("hello"), v)

	_, ok = env.PollSubscription(string(id))
	assert.False(t, ok)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	env := newEngineEnv(t)

	run(t, env, program([]byte("topic"), "SUBSCRIBE"))
	id, err := env.Stack.Pop()
	assert.NoError(t, err)

	env.Stack.Push(id)
	run(t, env, program("UNSUBSCRIBE"))

	run(t, env, program([]byte("hello"), []byte("topic"), "PUBLISH"))

	_, ok := env.PollSubscription(string(id))
	assert.False(t, ok)
}
