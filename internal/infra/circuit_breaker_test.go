package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSMTP = errors.New("smtp caido")

func cbDePrueba(openTimeout time.Duration) *CircuitBreaker {
	return NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 2,
		OpenTimeout:      openTimeout,
	})
}

func fallar(cb *CircuitBreaker, veces int) {
	for i := 0; i < veces; i++ {
		_ = cb.Execute(func() error { return errSMTP })
	}
}

func TestCircuitoAbreTrasFallosConsecutivos(t *testing.T) {
	cb := cbDePrueba(time.Minute)

	fallar(cb, 2)
	assert.Equal(t, CBClosed, cb.State())

	fallar(cb, 1)
	assert.Equal(t, CBOpen, cb.State())

	err := cb.Execute(func() error {
		t.Fatal("no debe ejecutarse con el circuito abierto")
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestUnExitoReiniciaElConteoDeFallos(t *testing.T) {
	cb := cbDePrueba(time.Minute)

	fallar(cb, 2)
	require.NoError(t, cb.Execute(func() error { return nil }))
	fallar(cb, 2)
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitoPasaAHalfOpenYSeCierra(t *testing.T) {
	cb := cbDePrueba(10 * time.Millisecond)

	fallar(cb, 3)
	require.Equal(t, CBOpen, cb.State())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBHalfOpen, cb.State())

	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestFalloEnHalfOpenReabreElCircuito(t *testing.T) {
	cb := cbDePrueba(10 * time.Millisecond)

	fallar(cb, 3)
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	err := cb.Execute(func() error { return errSMTP })
	assert.ErrorIs(t, err, errSMTP)
	assert.Equal(t, CBOpen, cb.State())
}
