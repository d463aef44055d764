package model

import (
	"errors"
	"net/netip"
	"strings"

	"golang.org/x/net/publicsuffix"

	"reconreport/internal/pkg/utils"
)

// ErrEmptyTarget 目标为空
var ErrEmptyTarget = errors.New("target is empty")

// TargetKind 目标类型
type TargetKind string

const (
	TargetKindIP     TargetKind = "ip"     // 单个IP地址
	TargetKindDomain TargetKind = "domain" // 域名或主机名
	TargetKindRange  TargetKind = "range"  // CIDR / 范围, 交给 nmap 解释
)

// Target 一次扫描的目标
// Raw 原样传递给每个工具, Apex 只在 amass 开启 apex_domain 时使用
type Target struct {
	Raw  string     `json:"raw"`
	Kind TargetKind `json:"kind"`
	Apex string     `json:"apex,omitempty"`
}

// ParseTarget 解析用户输入的目标
// 不做严格校验, 目标格式由各个工具自行判断
func ParseTarget(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{}, ErrEmptyTarget
	}

	t := Target{Raw: raw}
	switch {
	case utils.IsIP(raw):
		t.Kind = TargetKindIP
	case isRange(raw):
		t.Kind = TargetKindRange
	default:
		t.Kind = TargetKindDomain
		host := strings.ToLower(strings.TrimSuffix(raw, "."))
		if apex, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
			t.Apex = apex
		}
	}
	return t, nil
}

// String 返回原始输入
func (t Target) String() string {
	return t.Raw
}

// EnumDomain 返回 amass 使用的域名
func (t Target) EnumDomain(apex bool) string {
	if apex && t.Apex != "" {
		return t.Apex
	}
	return t.Raw
}

// isRange 识别 CIDR (10.0.0.0/24) 和末段范围 (10.0.0.1-20)
func isRange(s string) bool {
	if _, err := netip.ParsePrefix(s); err == nil {
		return true
	}
	if i := strings.LastIndex(s, "-"); i > 0 {
		return utils.IsIP(s[:i])
	}
	return false
}
