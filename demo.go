package main

import (
	"fmt"
	"io"

	"github.com/funny-falcon/allocdemo/alloc"
	"github.com/funny-falcon/allocdemo/alloc2"
	"github.com/funny-falcon/allocdemo/ordmap"
	"github.com/funny-falcon/allocdemo/ptrvec"
	"github.com/funny-falcon/allocdemo/vector"
)

const containerLen = 10
const dictionaryLen = 14

// factorial is computed in int, which is 64-bit here, so 13! prints in full
// rather than wrapping as a 32-bit int would.
func factorial(n int) int {
	if n == 0 {
		return 1
	}
	return n * factorial(n-1)
}

// Demo fills the same containers through the standard allocator, the custom
// pass-through one and an arena, and prints them.
type Demo struct {
	Std    *alloc.Passthrough
	Custom *alloc.Passthrough
	Arena  *alloc2.Arena

	Container  *ptrvec.Vec[int]
	Dictionary *ordmap.Map[int, int]

	releaser alloc.ReleaseHolder
}

func NewDemo(custom alloc.Source, arenaCapacity int) *Demo {
	d := &Demo{
		Std:    &alloc.Passthrough{},
		Custom: alloc.NewPassthrough(custom),
		Arena:  alloc2.NewArenaFor[int](arenaCapacity, custom),
	}
	d.Container = ptrvec.New[int](d.Arena)
	d.Dictionary = ordmap.New[int, int](d.Arena)
	return d
}

func (d *Demo) Trace() {
	d.Std.Log = "std"
	d.Custom.Log = "custom"
	d.Arena.Log = "arena"
}

func (d *Demo) Run(w io.Writer) error {
	standardMap := ordmap.New[int, int](d.Std)
	d.releaser.Add(standardMap)
	for i := 0; i < containerLen; i++ {
		standardMap.Set(i, factorial(i))
	}
	fmt.Fprintln(w, "Standard map values:")
	if err := printMap(w, standardMap); err != nil {
		return err
	}

	myContainer := vector.New[int](d.Std)
	d.releaser.Add(myContainer)
	for i := 0; i < containerLen; i++ {
		myContainer.Push(i)
	}

	myCustomContainer := vector.New[int](d.Custom)
	d.releaser.Add(myCustomContainer)
	for i := 0; i < containerLen; i++ {
		myCustomContainer.Push(i)
	}

	fmt.Fprintln(w, "My container values:")
	if err := myContainer.Display(w); err != nil {
		return err
	}
	fmt.Fprintf(w, "My custom container with %d elements:\n", containerLen)
	if err := myCustomContainer.Display(w); err != nil {
		return err
	}

	myCustomDictionary := ordmap.New[int, int](d.Custom)
	d.releaser.Add(myCustomDictionary)
	for i := 0; i < dictionaryLen; i++ {
		myCustomDictionary.Set(i, factorial(i))
	}
	fmt.Fprintf(w, "My custom dictionary with %d elements (factorials):\n", dictionaryLen)
	if err := printMap(w, myCustomDictionary); err != nil {
		return err
	}

	for i := 0; i < containerLen; i++ {
		d.Container.Push(i)
	}
	fmt.Fprintf(w, "Arena container with %d elements:\n", containerLen)
	if err := d.Container.Display(w); err != nil {
		return err
	}

	for i := 0; i < dictionaryLen; i++ {
		d.Dictionary.Set(i, factorial(i))
	}
	fmt.Fprintf(w, "Arena dictionary with %d elements (factorials):\n", dictionaryLen)
	return printMap(w, d.Dictionary)
}

func printMap(w io.Writer, m *ordmap.Map[int, int]) (err error) {
	m.Range(func(k, v int) bool {
		_, err = fmt.Fprintln(w, k, v)
		return err == nil
	})
	return err
}

type DemoStats struct {
	Std    alloc.Stats `json:"std"`
	Custom alloc.Stats `json:"custom"`
	Arena  alloc.Stats `json:"arena"`
}

func (d *Demo) Stats() DemoStats {
	return DemoStats{
		Std:    d.Std.Stats(),
		Custom: d.Custom.Stats(),
		Arena:  d.Arena.Stats(),
	}
}

// Release frees everything Run built, then the arena itself.
func (d *Demo) Release() {
	d.releaser.Release()
	d.Container.Release()
	d.Dictionary.Release()
	d.Arena.Release()
}
