package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultEnvPrefix 环境变量前缀, 例如 RECONREPORT_SCAN_OUTPUT_DIR
const DefaultEnvPrefix = "RECONREPORT"

// ConfigLoader 配置加载器
// 加载顺序: 默认值 < 配置文件 < .env / 环境变量
type ConfigLoader struct {
	configFile string
	envPrefix  string
	envFiles   []string // 读取配置前加载的 .env 文件, 不存在时跳过
	viper      *viper.Viper
}

// NewConfigLoader 创建配置加载器
// configFile 为空时在 ./configs 和 . 下查找 config.yaml, 找不到不算错误
func NewConfigLoader(configFile, envPrefix string) *ConfigLoader {
	if envPrefix == "" {
		envPrefix = DefaultEnvPrefix
	}

	return &ConfigLoader{
		configFile: configFile,
		envPrefix:  envPrefix,
		envFiles:   []string{".env"},
		viper:      viper.New(),
	}
}

// LoadConfig 加载配置
func (cl *ConfigLoader) LoadConfig() (*Config, error) {
	// .env 先于 AutomaticEnv 生效
	if err := cl.loadEnvFiles(); err != nil {
		return nil, err
	}

	cl.viper.SetConfigType("yaml")
	cl.viper.SetEnvPrefix(cl.envPrefix)
	cl.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cl.viper.AutomaticEnv()

	cl.setDefaults()

	if err := cl.loadConfigFile(); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	var config Config
	if err := cl.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// loadEnvFiles 把 .env 写入进程环境, 已存在的环境变量优先
func (cl *ConfigLoader) loadEnvFiles() error {
	for _, f := range cl.envFiles {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}
	return nil
}

// loadConfigFile 加载配置文件
func (cl *ConfigLoader) loadConfigFile() error {
	if cl.configFile != "" {
		// 显式指定的文件必须存在
		cl.viper.SetConfigFile(cl.configFile)
		return cl.viper.ReadInConfig()
	}

	cl.viper.AddConfigPath("./configs")
	cl.viper.AddConfigPath(".")
	cl.viper.SetConfigName("config")

	if err := cl.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

// setDefaults 设置默认值
func (cl *ConfigLoader) setDefaults() {
	// 日志默认值: CLI 模式下只输出 fatal, 避免和报告交错
	cl.viper.SetDefault("log.level", "fatal")
	cl.viper.SetDefault("log.format", "text")
	cl.viper.SetDefault("log.output", "stdout")
	cl.viper.SetDefault("log.file_path", "./logs/reconreport.log")
	cl.viper.SetDefault("log.max_size", 100)
	cl.viper.SetDefault("log.max_backups", 3)
	cl.viper.SetDefault("log.max_age", 28)
	cl.viper.SetDefault("log.compress", true)
	cl.viper.SetDefault("log.caller", false)

	// 扫描流程
	cl.viper.SetDefault("scan.ssl_ports", []string{"443", "8443"})
	cl.viper.SetDefault("scan.stage_timeout", "0s")
	cl.viper.SetDefault("scan.output_dir", ".")
	cl.viper.SetDefault("scan.export_csv", false)
	cl.viper.SetDefault("scan.summary", true)

	// 进度条
	cl.viper.SetDefault("progress.interval", "100ms")
	cl.viper.SetDefault("progress.step", 2)
	cl.viper.SetDefault("progress.ceiling", 95)

	// 外部工具
	cl.viper.SetDefault("tools.nmap.binary", "nmap")
	cl.viper.SetDefault("tools.nmap.args", []string{"-sV"})

	cl.viper.SetDefault("tools.sslscan.binary", "sslscan")
	cl.viper.SetDefault("tools.sslscan.template", "{{.Binary}} {{.Target}}")

	cl.viper.SetDefault("tools.whatweb.binary", "whatweb")
	cl.viper.SetDefault("tools.whatweb.template", "{{.Binary}} --no-color {{.Target}}")

	cl.viper.SetDefault("tools.amass.binary", "amass")
	cl.viper.SetDefault("tools.amass.template", "{{.Binary}} enum -max-depth {{.max_depth}} -timeout {{.timeout}} -d {{.Target}}")
	cl.viper.SetDefault("tools.amass.params", map[string]interface{}{
		"max_depth": 2,
		"timeout":   1,
	})
	cl.viper.SetDefault("tools.amass.apex_domain", false)
}

// GetConfigPath 获取实际使用的配置文件路径 (未使用配置文件时为空)
func (cl *ConfigLoader) GetConfigPath() string {
	return cl.viper.ConfigFileUsed()
}

// LoadConfigFromFile 从指定文件加载配置
func LoadConfigFromFile(configFile string) (*Config, error) {
	return NewConfigLoader(configFile, DefaultEnvPrefix).LoadConfig()
}
