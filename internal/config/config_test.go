package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfigFromFile(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"443", "8443"}, cfg.Scan.SSLPorts)
	assert.Equal(t, time.Duration(0), cfg.Scan.StageTimeout)
	assert.Equal(t, ".", cfg.Scan.OutputDir)
	assert.False(t, cfg.Scan.ExportCSV)
	assert.True(t, cfg.Scan.Summary)

	assert.Equal(t, 100*time.Millisecond, cfg.Progress.Interval)
	assert.Equal(t, 2, cfg.Progress.Step)
	assert.Equal(t, 95, cfg.Progress.Ceiling)

	assert.Equal(t, "nmap", cfg.Tools.Nmap.Binary)
	assert.Equal(t, []string{"-sV"}, cfg.Tools.Nmap.Args)
	assert.Equal(t, "sslscan", cfg.Tools.SSLScan.Binary)
	assert.Equal(t, "{{.Binary}} --no-color {{.Target}}", cfg.Tools.WhatWeb.Template)
	assert.Equal(t, "amass", cfg.Tools.Amass.Binary)
	assert.EqualValues(t, 2, cfg.Tools.Amass.Params["max_depth"])
	assert.False(t, cfg.Tools.Amass.ApexDomain)

	assert.Equal(t, "fatal", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadConfig_FileOverrides(t *testing.T) {
	path := writeConfig(t, `
scan:
  ssl_ports: ["443", "9443"]
  stage_timeout: 30s
  output_dir: /tmp/reports
progress:
  interval: 50ms
  step: 5
tools:
  whatweb:
    binary: /opt/whatweb/whatweb
  amass:
    apex_domain: true
`)
	cfg, err := LoadConfigFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"443", "9443"}, cfg.Scan.SSLPorts)
	assert.Equal(t, 30*time.Second, cfg.Scan.StageTimeout)
	assert.Equal(t, "/tmp/reports", cfg.Scan.OutputDir)
	assert.Equal(t, 50*time.Millisecond, cfg.Progress.Interval)
	assert.Equal(t, 5, cfg.Progress.Step)
	assert.Equal(t, 95, cfg.Progress.Ceiling)
	assert.Equal(t, "/opt/whatweb/whatweb", cfg.Tools.WhatWeb.Binary)
	// 未覆盖的字段保留默认值
	assert.Equal(t, "{{.Binary}} --no-color {{.Target}}", cfg.Tools.WhatWeb.Template)
	assert.True(t, cfg.Tools.Amass.ApexDomain)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("RECONREPORT_LOG_LEVEL", "debug")
	t.Setenv("RECONREPORT_PROGRESS_CEILING", "90")

	cfg, err := LoadConfigFromFile(writeConfig(t, "{}\n"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 90, cfg.Progress.Ceiling)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	// t.Setenv 负责在结束后恢复, 先清空让 .env 生效
	t.Setenv("RECONREPORT_SCAN_OUTPUT_DIR", "")
	require.NoError(t, os.Unsetenv("RECONREPORT_SCAN_OUTPUT_DIR"))
	t.Setenv("RECONREPORT_PROGRESS_STEP", "7")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("RECONREPORT_SCAN_OUTPUT_DIR=/tmp/from-dotenv\nRECONREPORT_PROGRESS_STEP=3\n"), 0o644))

	loader := NewConfigLoader(writeConfig(t, "{}\n"), DefaultEnvPrefix)
	loader.envFiles = []string{envFile, filepath.Join(t.TempDir(), "missing.env")}

	cfg, err := loader.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-dotenv", cfg.Scan.OutputDir)
	// 已存在的环境变量不被 .env 覆盖
	assert.Equal(t, 7, cfg.Progress.Step)
}

func TestLoadConfig_ExplicitFileMissing(t *testing.T) {
	_, err := LoadConfigFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"ceiling at 100":   "progress:\n  ceiling: 100\n",
		"zero step":        "progress:\n  step: 0\n",
		"no ssl ports":     "scan:\n  ssl_ports: []\n",
		"empty tool bin":   "tools:\n  sslscan:\n    binary: \"\"\n",
		"empty template":   "tools:\n  amass:\n    template: \"\"\n",
		"negative timeout": "scan:\n  stage_timeout: -1s\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfigFromFile(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestConfig_YAML(t *testing.T) {
	cfg, err := LoadConfigFromFile(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	out, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, out, "ssl_ports:")
	assert.Contains(t, out, "sslscan:")
	// 内嵌的 ToolConfig 以 inline 方式输出
	assert.Contains(t, out, "apex_domain: false")
}
