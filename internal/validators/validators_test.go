package validators

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"(11) 98765-4321":    "5511987654321",
		"+55 11 98765-4321":  "5511987654321",
		"11 8888-7777":       "5511988887777",
		"551188887777":       "5511988887777",
		"5511987654321":      "5511987654321",
		"12345":              "12345",
		"":                   "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePhone(in), in)
	}
}

func TestIsEmailSyntaxValid(t *testing.T) {
	assert.True(t, IsEmailSyntaxValid("maria@example.com"))
	assert.False(t, IsEmailSyntaxValid("maria@localhost"))
	assert.False(t, IsEmailSyntaxValid("Maria <maria@example.com>"))
	assert.False(t, IsEmailSyntaxValid("maria.example.com"))
	assert.Equal(t, "maria@example.com", NormalizeEmail("  Maria@Example.COM "))
}

func TestIsEmailDomainValid(t *testing.T) {
	origMX, origIP := lookupMX, lookupIP
	t.Cleanup(func() { lookupMX, lookupIP = origMX, origIP })

	lookupMX = func(domain string) ([]*net.MX, error) {
		if domain == "mail.example.com" {
			return []*net.MX{{Host: "mx.example.com."}}, nil
		}
		return nil, errors.New("no mx")
	}
	lookupIP = func(domain string) ([]net.IP, error) {
		if domain == "web.example.com" {
			return []net.IP{net.ParseIP("192.0.2.1")}, nil
		}
		return nil, errors.New("no host")
	}

	assert.True(t, IsEmailDomainValid("a@mail.example.com"))
	assert.True(t, IsEmailDomainValid("a@web.example.com"))
	assert.False(t, IsEmailDomainValid("a@nothing.invalid"))
	assert.False(t, IsEmailDomainValid("a@"))
	assert.False(t, IsEmailDomainValid("sem-arroba"))
}
