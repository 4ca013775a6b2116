package shortener_test

import (
	"context"
	"net"
	"sync"
)

// fakeResolver resolves only the hosts it was seeded with.
type fakeResolver struct {
	mu    sync.Mutex
	hosts map[string][]string
	err   error
	calls int
}

func newFakeResolver(hosts ...string) *fakeResolver {
	r := &fakeResolver{hosts: make(map[string][]string)}
	for _, h := range hosts {
		r.hosts[h] = []string{"93.184.216.34"}
	}

	return r
}

func (f *fakeResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if f.err != nil {
		return nil, f.err
	}

	addrs, ok := f.hosts[host]
	if !ok {
		return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
	}

	return addrs, nil
}

func (f *fakeResolver) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls
}
