package backoff_test

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/hugolhafner/backoffkit/backoff"
)

func ExampleJitteredBuilder() {
	b := backoff.NewJitteredBuilder().
		Initial(2 * time.Second).
		Max(30 * time.Second).
		Multiplier(2.0).
		Build()

	fmt.Println(b.Pause())

	second := b.Pause()
	fmt.Println(second >= time.Nanosecond && second <= 2*time.Second+time.Nanosecond)
	// Output:
	// 2s
	// true
}

func ExampleJittered_Pause() {
	b := backoff.NewJittered(
		backoff.WithMax(10*time.Second),
		backoff.WithSource(rand.New(rand.NewPCG(42, 1024))),
	)

	for range 6 {
		delay := b.Pause()
		fmt.Println(delay > 0 && delay <= 10*time.Second)
	}
	fmt.Println(b.Iterations())
	// Output:
	// true
	// true
	// true
	// true
	// true
	// true
	// 6
}
