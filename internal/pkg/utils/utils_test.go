package utils

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatReportDateAndStamp(t *testing.T) {
	ts := time.Date(2026, 3, 7, 9, 5, 59, 0, time.Local)
	assert.Equal(t, "2026-03-07 09:05", FormatReportDate(ts))
	assert.Equal(t, "20260307_0905", FormatFileStamp(ts))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "850ms", FormatDuration(850*time.Millisecond))
	assert.Equal(t, "1s", FormatDuration(time.Second))
	assert.Equal(t, "2m5s", FormatDuration(125*time.Second))
	assert.Equal(t, "1h", FormatDuration(time.Hour))
	assert.Equal(t, "1h1m1s", FormatDuration(-(time.Hour + time.Minute + time.Second)))
}

func TestNormalizeIP(t *testing.T) {
	assert.Equal(t, "", NormalizeIP("  "))
	assert.Equal(t, "192.0.2.1", NormalizeIP("192.0.2.1:8443"))
	assert.Equal(t, "192.0.2.1", NormalizeIP("::ffff:192.0.2.1"))
	assert.Equal(t, "2001:db8::1", NormalizeIP("[2001:db8::1]:443"))
	assert.Equal(t, "example.com", NormalizeIP("example.com"))
}

func TestCompareAddr_Sort(t *testing.T) {
	addrs := []string{"host.example", "10.0.0.10", "10.0.0.9", "2001:db8::1", "a.example"}
	sort.Slice(addrs, func(i, j int) bool { return CompareAddr(addrs[i], addrs[j]) < 0 })
	assert.Equal(t, []string{"10.0.0.9", "10.0.0.10", "2001:db8::1", "a.example", "host.example"}, addrs)
}

func TestJoinHostPort(t *testing.T) {
	assert.Equal(t, "192.0.2.1:443", JoinHostPort("192.0.2.1", "443"))
	assert.Equal(t, "[2001:db8::1]:8443", JoinHostPort("2001:db8::1", "8443"))
}

func TestSafeFileName(t *testing.T) {
	assert.Equal(t, "example.com", SafeFileName("example.com"))
	assert.Equal(t, "10.0.0.0_24", SafeFileName("10.0.0.0/24"))
	assert.Equal(t, "https___example.com", SafeFileName("https://example.com"))
	assert.Equal(t, "target", SafeFileName(""))
	assert.True(t, IsIP("192.0.2.1"))
	assert.False(t, IsIP("example.com"))
}
