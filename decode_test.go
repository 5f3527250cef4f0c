// FILE: lixenwraith/ini/decode_test.go
package ini

import (
	"net"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const decodeINI = `[server]
host = localhost
port = 0x1F90
tls = yes
timeout = 30s
aliases = a, b
weights = 1, 0b10, 010
tags = solo
addr = 127.0.0.1
endpoint = https\://example.org/api
ratio = 0.75

[client]
retries = 3
`

type decodeServer struct {
	Host     string        `ini:"host"`
	Port     uint16        `ini:"port"`
	TLS      bool          `ini:"tls"`
	Timeout  time.Duration `ini:"timeout"`
	Aliases  []string      `ini:"aliases"`
	Weights  []int         `ini:"weights"`
	Tags     []string      `ini:"tags"`
	Addr     net.IP        `ini:"addr"`
	Endpoint *url.URL      `ini:"endpoint"`
	Ratio    float64       `ini:"ratio"`
}

// TestScan tests decoding a raw section into a struct
func TestScan(t *testing.T) {
	cfg, err := ParseString(decodeINI)
	require.NoError(t, err)

	var server decodeServer
	require.NoError(t, cfg.Scan("server", &server))

	assert.Equal(t, "localhost", server.Host)
	assert.Equal(t, uint16(8080), server.Port)
	assert.True(t, server.TLS)
	assert.Equal(t, 30*time.Second, server.Timeout)
	assert.Equal(t, []string{"a", "b"}, server.Aliases)
	assert.Equal(t, []int{1, 2, 8}, server.Weights)
	assert.Equal(t, []string{"solo"}, server.Tags)
	assert.True(t, net.ParseIP("127.0.0.1").Equal(server.Addr))
	require.NotNil(t, server.Endpoint)
	assert.Equal(t, "example.org", server.Endpoint.Host)
	assert.Equal(t, 0.75, server.Ratio)

	t.Run("Errors", func(t *testing.T) {
		assert.Error(t, cfg.Scan("server", decodeServer{}))
		var nilTarget *decodeServer
		assert.Error(t, cfg.Scan("server", nilTarget))

		err := cfg.Scan("missing", &server)
		assert.ErrorIs(t, err, ErrNotFound)

		bad, err := ParseString("[server]\ntls = maybe\n")
		require.NoError(t, err)
		err = bad.Scan("server", &server)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `section "server"`)
	})

	t.Run("ZeroFields", func(t *testing.T) {
		target := decodeServer{Host: "stale", Aliases: []string{"x", "y", "z"}}
		small, err := ParseString("[server]\naliases = only, two\n")
		require.NoError(t, err)
		require.NoError(t, small.Scan("server", &target))
		assert.Equal(t, []string{"only", "two"}, target.Aliases)
		assert.Equal(t, "stale", target.Host)
	})
}

// TestScanTyped tests decoding values already converted by validation
func TestScanTyped(t *testing.T) {
	cfg, err := ParseString(sampleINI)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate(sampleSchema(t), Relaxed))

	var section struct {
		Option1 int64     `ini:"Option 1"`
		Option2 []uint32  `ini:"Option 2"`
		Float1  float64   `ini:"float1"`
		Unknown string    `ini:"unknown_option"`
		Missing *struct{} `ini:"missing"`
	}
	require.NoError(t, cfg.Scan("Section 1", &section))
	assert.Equal(t, int64(-1285), section.Option1)
	assert.Equal(t, []uint32{5, 25, 856}, section.Option2)
	assert.Equal(t, 4.1234565e45, section.Float1)
	assert.Equal(t, "haha", section.Unknown)
	assert.Nil(t, section.Missing)
}

// TestScanAll tests decoding the whole document
func TestScanAll(t *testing.T) {
	cfg, err := ParseString(decodeINI)
	require.NoError(t, err)

	var all struct {
		Server decodeServer `ini:"server"`
		Client struct {
			Retries int `ini:"retries"`
		} `ini:"client"`
	}
	require.NoError(t, cfg.ScanAll(&all))
	assert.Equal(t, uint16(8080), all.Server.Port)
	assert.Equal(t, 3, all.Client.Retries)

	assert.Error(t, cfg.ScanAll(all))
}
