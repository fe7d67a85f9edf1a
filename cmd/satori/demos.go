package main

import (
	"fmt"

	"github.com/FalsePattern/satori/cell"
	"github.com/FalsePattern/satori/coroutine"
	"github.com/FalsePattern/satori/engine"
)

// demoInfo is one built-in coroutine scenario. Every demo speaks int on
// both sides of the transfer so the stepper can parse arguments
// uniformly; what the entry does with them is the interesting part.
type demoInfo struct {
	name      string
	desc      string
	signature string
	entry     func() engine.Entry
}

var demos = []demoInfo{
	{
		name:      "counter",
		desc:      "yields 0..n-1, then dies with -1",
		signature: "counter(n: int) -> int",
		entry: func() engine.Entry {
			return coroutine.Entry1(func(n int) int {
				for i := 0; i < n; i++ {
					coroutine.Yield[cell.Unit](i)
				}
				return -1
			})
		},
	},
	{
		name:      "accumulator",
		desc:      "adds every value sent; send 0 to finish with the total",
		signature: "accumulator(seed: int) -> int",
		entry: func() engine.Entry {
			return coroutine.Entry1(func(seed int) int {
				total := seed
				for {
					n := coroutine.Yield[int](total)
					if n == 0 {
						return total
					}
					total += n
				}
			})
		},
	},
	{
		name:      "fib",
		desc:      "yields the Fibonacci sequence forever; kill it to stop",
		signature: "fib(_: int) -> never",
		entry: func() engine.Entry {
			return coroutine.Entry1(func(int) cell.Never {
				a, b := 0, 1
				for {
					coroutine.Yield[cell.Unit](a)
					a, b = b, a+b
				}
			})
		},
	},
	{
		name:      "relay",
		desc:      "forwards each value through a nested doubler coroutine",
		signature: "relay(n: int) -> int",
		entry: func() engine.Entry {
			return coroutine.Entry1(func(n int) int {
				inner, err := coroutine.New(0, coroutine.Entry1(func(v int) int {
					for {
						v = coroutine.Yield[int](v * 2)
					}
				}))
				if err != nil {
					return -1
				}
				defer inner.Deinit()
				for {
					doubled := coroutine.Resume[int](inner, n)
					n = coroutine.Yield[int](doubled)
					if n == 0 {
						coroutine.Kill(inner, 0)
						return doubled
					}
				}
			})
		},
	},
}

func findDemo(name string) (demoInfo, bool) {
	for _, d := range demos {
		if d.name == name {
			return d, true
		}
	}
	return demoInfo{}, false
}

// step drives one resume and renders the outcome for the transcript.
func step(co *coroutine.Coroutine, arg int) string {
	out := coroutine.Resume[int](co, arg)
	return fmt.Sprintf("resume(%d) -> %d [%s]", arg, out, co.State())
}
