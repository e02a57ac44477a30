package main

import (
	"log"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
)

var config = jsoniter.Config{
	OnlyTaggedField: true,
	CaseSensitive:   true,
}.Froze()

type Entry struct {
	Key   int `json:"key"`
	Value int `json:"value"`
}

// handler serves read-only views of the arena containers. Run must have
// finished before the first request.
func (d *Demo) handler(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		ctx.Error("method not allowed", fasthttp.StatusMethodNotAllowed)
		return
	}
	switch string(ctx.Path()) {
	case "/stats":
		writeJSON(ctx, d.Stats())
	case "/dictionary":
		entries := make([]Entry, 0, d.Dictionary.Len())
		d.Dictionary.Range(func(k, v int) bool {
			entries = append(entries, Entry{k, v})
			return true
		})
		writeJSON(ctx, entries)
	case "/container":
		values := make([]int, 0, d.Container.Len())
		d.Container.Each(func(_ int, v int) bool {
			values = append(values, v)
			return true
		})
		writeJSON(ctx, values)
	default:
		ctx.NotFound()
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, v interface{}) {
	b, err := config.Marshal(v)
	if err != nil {
		log.Print(err)
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetBody(b)
}
