package validators

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeResolver struct {
	mx  map[string][]*net.MX
	ips map[string][]net.IPAddr
}

func (f fakeResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	if mx, ok := f.mx[name]; ok {
		return mx, nil
	}
	return nil, errors.New("no mx")
}

func (f fakeResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	if ips, ok := f.ips[host]; ok {
		return ips, nil
	}
	return nil, errors.New("no host")
}

func TestEmailDomainResolves(t *testing.T) {
	r := fakeResolver{
		mx:  map[string][]*net.MX{"mail.example": {{Host: "mx.mail.example."}}},
		ips: map[string][]net.IPAddr{"web.example": {{IP: net.IPv4(127, 0, 0, 1)}}},
	}

	tests := []struct {
		email string
		want  bool
	}{
		{"a@mail.example", true},
		{"a@MAIL.example", true},
		{"a@web.example", true},
		{"a@missing.example", false},
		{"a@localhost", false},
		{"@mail.example", false},
		{"a@", false},
		{"no-at-sign", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, EmailDomainResolves(context.Background(), r, tt.email))
		})
	}
}
