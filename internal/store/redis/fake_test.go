package redis

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"testing"

	"github.com/redis/go-redis/v9"
)

// fakeServer answers commands from memory through a client hook, so the
// client never dials. Only the commands the store issues are supported.
type fakeServer struct {
	mu       sync.Mutex
	strings  map[string]string
	hashes   map[string]map[string]string
	commands []string
	failWith error
}

func newFakeClient(t *testing.T) (*redis.Client, *fakeServer) {
	t.Helper()
	fake := &fakeServer{
		strings: map[string]string{},
		hashes:  map[string]map[string]string{},
	}
	client := redis.NewClient(&redis.Options{Addr: "fake:6379"})
	client.AddHook(fake)
	t.Cleanup(func() { _ = client.Close() })
	return client, fake
}

func (f *fakeServer) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, fmt.Errorf("fake server does not dial %s", addr)
	}
}

func (f *fakeServer) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.apply(cmd)
	}
}

func (f *fakeServer) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failWith != nil {
			for _, cmd := range cmds {
				cmd.SetErr(f.failWith)
			}
			return f.failWith
		}
		for _, cmd := range cmds {
			if err := f.apply(cmd); err != nil {
				return err
			}
		}
		return nil
	}
}

func (f *fakeServer) apply(cmd redis.Cmder) error {
	f.commands = append(f.commands, cmd.Name())
	if f.failWith != nil {
		cmd.SetErr(f.failWith)
		return f.failWith
	}

	args := cmd.Args()
	arg := func(i int) string { return text(args[i]) }

	switch c := cmd.(type) {
	case *redis.StatusCmd:
		switch cmd.Name() {
		case "set":
			f.strings[arg(1)] = arg(2)
			c.SetVal("OK")
		default:
			// multi and ping
			c.SetVal("OK")
		}
	case *redis.StringCmd:
		v, ok := f.strings[arg(1)]
		if !ok {
			c.SetErr(redis.Nil)
			return redis.Nil
		}
		c.SetVal(v)
	case *redis.IntCmd:
		switch cmd.Name() {
		case "incr":
			n, _ := strconv.ParseInt(f.strings[arg(1)], 10, 64)
			n++
			f.strings[arg(1)] = strconv.FormatInt(n, 10)
			c.SetVal(n)
		case "hincrby":
			hash := f.hash(arg(1))
			n, _ := strconv.ParseInt(hash[arg(2)], 10, 64)
			delta, _ := strconv.ParseInt(arg(3), 10, 64)
			n += delta
			hash[arg(2)] = strconv.FormatInt(n, 10)
			c.SetVal(n)
		}
	case *redis.SliceCmd:
		values := make([]interface{}, 0, len(args)-1)
		for i := 1; i < len(args); i++ {
			if v, ok := f.strings[arg(i)]; ok {
				values = append(values, v)
			} else {
				values = append(values, nil)
			}
		}
		c.SetVal(values)
	case *redis.MapStringStringCmd:
		out := map[string]string{}
		for k, v := range f.hashes[arg(1)] {
			out[k] = v
		}
		c.SetVal(out)
	default:
		// exec of a transaction carries no value of its own
	}
	return nil
}

func (f *fakeServer) hash(key string) map[string]string {
	h, ok := f.hashes[key]
	if !ok {
		h = map[string]string{}
		f.hashes[key] = h
	}
	return h
}

func text(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
