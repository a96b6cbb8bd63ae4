package register

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObservers(t *testing.T) {
	assert := assert.New(t)

	obs := &Observers{}
	obs.Notify()

	var calls []string
	removeA := obs.Add(func() { calls = append(calls, "a") })
	obs.Add(func() { calls = append(calls, "b") })
	assert.Equal(2, obs.Len())

	obs.Notify()
	assert.Equal([]string{"a", "b"}, calls)

	removeA()
	assert.Equal(1, obs.Len())
	calls = nil
	obs.Notify()
	assert.Equal([]string{"b"}, calls)

	// Removing twice is harmless.
	removeA()
	assert.Equal(1, obs.Len())
}

func TestObservers_Reentrant(t *testing.T) {
	assert := assert.New(t)

	obs := &Observers{}

	count := 0
	obs.Add(func() {
		count++
		obs.Notify()
	})

	obs.Notify()
	assert.Equal(1, count)

	obs.Notify()
	assert.Equal(2, count)
}

func TestObservers_RemoveDuringNotify(t *testing.T) {
	assert := assert.New(t)

	obs := &Observers{}

	var remove func()
	count := 0
	remove = obs.Add(func() {
		count++
		remove()
	})
	obs.Add(func() { count += 10 })

	obs.Notify()
	assert.Equal(11, count)
	assert.Equal(1, obs.Len())
}
