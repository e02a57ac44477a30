package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/valyala/fasthttp"

	"github.com/funny-falcon/allocdemo/alloc"
	"github.com/funny-falcon/allocdemo/alloc2"
)

var arenaCapacity = flag.Int("arena", alloc2.DefaultCapacity, "initial arena capacity, in elements")
var source = flag.String("source", "mmap", "memory source of the custom allocators: mmap or heap")
var trace = flag.Bool("trace", false, "log every allocation")
var dumpStats = flag.Bool("stats", false, "log allocator stats after the run")
var port = flag.String("port", "", "serve the results on this port after the run")

func main() {
	log.SetFlags(log.Lmicroseconds | log.Lshortfile)
	flag.Parse()

	src, err := sourceByName(*source)
	if err != nil {
		log.Fatal(err)
	}
	d := NewDemo(src, *arenaCapacity)
	if *trace {
		d.Trace()
	}

	out := bufio.NewWriter(os.Stdout)
	if err = d.Run(out); err == nil {
		err = out.Flush()
	}
	if err != nil {
		log.Fatal(err)
	}

	if *dumpStats {
		b, err := config.Marshal(d.Stats())
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("stats %s", b)
	}

	if *port == "" {
		d.Release()
		return
	}
	err = fasthttp.ListenAndServe(":"+*port, d.handler)
	if err != nil {
		log.Fatal(err)
	}
}

func sourceByName(name string) (alloc.Source, error) {
	switch name {
	case "mmap":
		return alloc.Mmap{}, nil
	case "heap":
		return alloc.Heap{}, nil
	}
	return nil, fmt.Errorf("unknown source %q", name)
}
