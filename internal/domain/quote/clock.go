package quote

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Clock supplies the wall time and the random quote-number suffix.
type Clock interface {
	Now() time.Time
	RandomDigits(n int) string
}

type systemClock struct{}

// SystemClock reads time.Now and math/rand.
func SystemClock() Clock { return systemClock{} }

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) RandomDigits(n int) string {
	if n <= 0 {
		return ""
	}
	limit := 1
	for i := 0; i < n; i++ {
		limit *= 10
	}
	return fmt.Sprintf("%0*d", n, rand.Intn(limit))
}

// FixedClock always returns the same instant and suffix.
type FixedClock struct {
	At     time.Time
	Digits string
}

func (c FixedClock) Now() time.Time { return c.At }

func (c FixedClock) RandomDigits(n int) string {
	d := c.Digits
	if len(d) > n {
		return d[len(d)-n:]
	}
	return strings.Repeat("0", n-len(d)) + d
}
