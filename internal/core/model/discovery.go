package model

import (
	"fmt"
	"sort"
	"strings"

	"reconreport/internal/pkg/utils"
)

// 发现文档中不代表主机的元数据键
const (
	MetaRuntime     = "runtime"
	MetaStats       = "stats"
	MetaTaskResults = "task_results"
)

// MetadataKeys 遍历主机时必须排除的键, 与值的类型无关
var MetadataKeys = []string{MetaRuntime, MetaStats, MetaTaskResults}

// IsMetadataKey 判断是否为元数据键
func IsMetadataKey(key string) bool {
	for _, k := range MetadataKeys {
		if key == k {
			return true
		}
	}
	return false
}

// DiscoveryDocument 主机发现结果, 结构与 python-nmap3 的字典输出一致:
//
//	{
//	  "192.0.2.1": {"ports": [{"portid": "443", "state": "open", "service": {...}}]},
//	  "runtime": {...}, "stats": {...}, "task_results": [...]
//	}
type DiscoveryDocument map[string]interface{}

// PortRecord 单个端口的发现结果
type PortRecord struct {
	Port     string `json:"portid"`
	Protocol string `json:"protocol,omitempty"`
	State    string `json:"state"`
	Service  string `json:"service,omitempty"`
	Product  string `json:"product,omitempty"`
	Version  string `json:"version,omitempty"`
}

// IsOpen 端口是否开放
func (p PortRecord) IsOpen() bool {
	return strings.EqualFold(p.State, "open")
}

// HostRecord 单个主机及其端口
type HostRecord struct {
	Address string       `json:"address"`
	Ports   []PortRecord `json:"ports"`
}

// Endpoint 需要做 SSL 检测的 host:port
type Endpoint struct {
	Host string
	Port string
}

// String host:port 形式, IPv6 带方括号
func (e Endpoint) String() string {
	return utils.JoinHostPort(e.Host, e.Port)
}

// ExtractHosts 从发现文档中取出主机列表
// 元数据键和值不是映射的条目都会被忽略, 结果按地址升序
func ExtractHosts(doc DiscoveryDocument) []HostRecord {
	hosts := make([]HostRecord, 0, len(doc))
	for key, value := range doc {
		if IsMetadataKey(key) {
			continue
		}
		entry, ok := value.(map[string]interface{})
		if !ok {
			continue
		}
		hosts = append(hosts, HostRecord{Address: key, Ports: parsePorts(entry["ports"])})
	}

	sort.Slice(hosts, func(i, j int) bool {
		return utils.CompareAddr(hosts[i].Address, hosts[j].Address) < 0
	})
	return hosts
}

// SSLEndpoints 返回端口号在 sslPorts 中且状态为 open 的 (host, port) 对
// 端口号按字符串比较, 每一对只出现一次
func SSLEndpoints(hosts []HostRecord, sslPorts []string) []Endpoint {
	wanted := make(map[string]struct{}, len(sslPorts))
	for _, p := range sslPorts {
		wanted[strings.TrimSpace(p)] = struct{}{}
	}

	var out []Endpoint
	seen := make(map[Endpoint]struct{})
	for _, h := range hosts {
		for _, p := range h.Ports {
			if !p.IsOpen() {
				continue
			}
			if _, ok := wanted[p.Port]; !ok {
				continue
			}
			ep := Endpoint{Host: h.Address, Port: p.Port}
			if _, dup := seen[ep]; dup {
				continue
			}
			seen[ep] = struct{}{}
			out = append(out, ep)
		}
	}
	return out
}

func parsePorts(raw interface{}) []PortRecord {
	var items []map[string]interface{}
	switch v := raw.(type) {
	case []map[string]interface{}:
		items = v
	case []interface{}:
		for _, it := range v {
			if m, ok := it.(map[string]interface{}); ok {
				items = append(items, m)
			}
		}
	default:
		return nil
	}

	ports := make([]PortRecord, 0, len(items))
	for _, m := range items {
		p := PortRecord{
			Port:     stringValue(m["portid"]),
			Protocol: stringValue(m["protocol"]),
			State:    stateValue(m["state"]),
		}
		if svc, ok := m["service"].(map[string]interface{}); ok {
			p.Service = stringValue(svc["name"])
			p.Product = stringValue(svc["product"])
			p.Version = stringValue(svc["version"])
		}
		ports = append(ports, p)
	}
	return ports
}

// stateValue state 可能是字符串, 也可能是 {"state": "open", "reason": ...}
func stateValue(v interface{}) string {
	if m, ok := v.(map[string]interface{}); ok {
		return stringValue(m["state"])
	}
	return stringValue(v)
}

func stringValue(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return fmt.Sprintf("%.0f", s)
	default:
		return fmt.Sprint(s)
	}
}
