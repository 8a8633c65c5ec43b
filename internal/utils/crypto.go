package utils

import (
	"crypto/rand"
	"math/big"
	"time"
)

// RandomInt63 returns a uniform random integer in [0, max).
func RandomInt63(max int64) int64 {
	if max <= 0 {
		return 0
	}

	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		panic("failed to generate random number: " + err.Error())
	}
	return n.Int64()
}

// RandomDuration returns a uniform random duration in [min, max].
func RandomDuration(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(RandomInt63(int64(max-min)+1))
}
