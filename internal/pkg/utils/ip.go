package utils

import (
	"net"
	"net/netip"
	"strings"
)

// NormalizeIP 标准化IP地址：
// - 若是带端口的地址，去掉端口
// - 若是 IPv4-mapped IPv6 (::ffff:192.0.2.1)，转成纯 IPv4
// - 否则按原样返回（包括真 IPv6 和主机名）
func NormalizeIP(input string) string {
	ip := strings.TrimSpace(input)
	if ip == "" {
		return ""
	}

	// 去掉端口（host:port 或 [ipv6]:port）
	if h, _, err := net.SplitHostPort(ip); err == nil {
		ip = h
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ip
	}

	if v4 := parsed.To4(); v4 != nil {
		return v4.String()
	}

	return parsed.String()
}

// IsIP 判断字符串是否为IP地址
func IsIP(input string) bool {
	return net.ParseIP(strings.TrimSpace(input)) != nil
}

// CompareAddr 比较两个主机地址, 用于稳定排序
// IP 地址按数值排序并排在主机名之前, 主机名按字典序
func CompareAddr(a, b string) int {
	pa, errA := netip.ParseAddr(a)
	pb, errB := netip.ParseAddr(b)

	switch {
	case errA == nil && errB == nil:
		return pa.Unmap().Compare(pb.Unmap())
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// JoinHostPort 拼接 host:port, IPv6 自动加方括号
func JoinHostPort(host, port string) string {
	return net.JoinHostPort(host, port)
}
