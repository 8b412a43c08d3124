package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachine_HappyPath(t *testing.T) {
	var transitions [][2]string
	m := NewMachine(func(from, to string) {
		transitions = append(transitions, [2]string{from, to})
	})

	assert.Equal(t, StateIdle, m.Current())
	require.NoError(t, m.StartLoad())
	require.NoError(t, m.MarkLoaded())

	assert.Equal(t, StateReady, m.Current())
	assert.NoError(t, m.Err())
	assert.Equal(t, [][2]string{{StateIdle, StateLoading}, {StateLoading, StateReady}}, transitions)
}

func TestMachine_FailureIsTerminal(t *testing.T) {
	m := NewMachine(nil)
	cause := errors.New("connection refused")

	require.NoError(t, m.StartLoad())
	require.NoError(t, m.MarkFailed(cause))

	assert.Equal(t, StateFailed, m.Current())
	assert.Equal(t, cause, m.Err())
	assert.Equal(t, "connection refused", m.Status().Error)

	assert.False(t, m.CanTransition(EventStartLoad))
	assert.Error(t, m.StartLoad())
	assert.Error(t, m.MarkLoaded())
	assert.Equal(t, StateFailed, m.Current())
}

func TestMachine_ReadyIsTerminal(t *testing.T) {
	m := NewMachine(nil)
	require.NoError(t, m.StartLoad())
	require.NoError(t, m.MarkLoaded())

	assert.Error(t, m.StartLoad())
	assert.Error(t, m.MarkFailed(errors.New("late")))
	assert.Equal(t, StateReady, m.Current())
	assert.Empty(t, m.Status().Error)
}

func TestMachine_CannotFinishWithoutStarting(t *testing.T) {
	m := NewMachine(nil)

	assert.Error(t, m.MarkLoaded())
	assert.Error(t, m.MarkFailed(errors.New("x")))
	assert.Equal(t, StateIdle, m.Current())
}
