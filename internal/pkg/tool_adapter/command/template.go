package command

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"reconreport/internal/config"
	"reconreport/internal/core/model"
)

// TemplateCommandBuilder 基于 Go Template 的命令构建器
// sslscan / whatweb / amass 的命令行都由配置中的模板生成
type TemplateCommandBuilder struct {
	BinaryPath    string                 // 二进制文件路径 (PATH 中的名字或绝对路径)
	TemplateStr   string                 // 命令模板字符串
	DefaultParams map[string]interface{} // 默认参数
	words         []*template.Template   // 模板按空白切分后的每个参数
}

// NewTemplateBuilder 创建一个新的模板构建器, 模板在这里解析一次
// 模板先在 {{ }} 之外按空白切分成参数, 每个参数单独解析, 渲染结果不再切分
// 模板中可以使用 sprig 函数, 例如 {{.Target | lower}} 或 {{default 2 .max_depth}}
func NewTemplateBuilder(binary string, tmpl string, defaults map[string]interface{}) (*TemplateCommandBuilder, error) {
	parts := splitWords(tmpl)
	words := make([]*template.Template, 0, len(parts))
	for i, part := range parts {
		// missingkey=zero: 模板中引用未配置的参数时置为空值
		parsed, err := template.New(fmt.Sprintf("%s#%d", binary, i)).
			Funcs(sprig.TxtFuncMap()).
			Option("missingkey=zero").
			Parse(part)
		if err != nil {
			return nil, fmt.Errorf("failed to parse command template for %s: %w", binary, err)
		}
		words = append(words, parsed)
	}
	return &TemplateCommandBuilder{
		BinaryPath:    binary,
		TemplateStr:   tmpl,
		DefaultParams: defaults,
		words:         words,
	}, nil
}

// FromToolConfig 根据工具配置创建构建器
func FromToolConfig(cfg config.ToolConfig) (*TemplateCommandBuilder, error) {
	return NewTemplateBuilder(cfg.Binary, cfg.Template, cfg.Params)
}

// Build 根据目标和运行时参数生成命令
// 模板上下文数据 = DefaultParams + params + {"Target": target, "Binary": binary}
// 约定模板以 {{.Binary}} (或写死的程序名) 开头, 第一个参数就是可执行文件
// 每个模板参数最多生成一个命令行参数, 目标中的空白不会拆出新的参数
func (b *TemplateCommandBuilder) Build(target string, params map[string]interface{}) (model.Command, error) {
	data := make(map[string]interface{}, len(b.DefaultParams)+len(params)+2)
	for k, v := range b.DefaultParams {
		data[k] = v
	}
	for k, v := range params {
		data[k] = v
	}
	data["Target"] = target
	data["Binary"] = b.BinaryPath

	args := make([]string, 0, len(b.words))
	for _, word := range b.words {
		var buf bytes.Buffer
		if err := word.Execute(&buf, data); err != nil {
			return model.Command{}, fmt.Errorf("failed to execute command template for %s: %w", b.BinaryPath, err)
		}
		// 渲染为空的参数 (未配置的可选参数) 直接丢弃
		arg := strings.ReplaceAll(buf.String(), "<no value>", "")
		if strings.TrimSpace(arg) == "" {
			continue
		}
		args = append(args, arg)
	}
	if len(args) == 0 {
		return model.Command{}, fmt.Errorf("generated command for %s is empty", b.BinaryPath)
	}

	return model.Command{
		Binary: args[0],
		Args:   args[1:],
	}, nil
}

// splitWords 在 {{ }} 之外按空白切分模板, 动作内部的空白 (管道, 函数参数) 保持不变
func splitWords(tmpl string) []string {
	var (
		words []string
		cur   strings.Builder
		depth int
	)
	for i := 0; i < len(tmpl); i++ {
		switch {
		case strings.HasPrefix(tmpl[i:], "{{"):
			depth++
			cur.WriteString("{{")
			i++
		case depth > 0 && strings.HasPrefix(tmpl[i:], "}}"):
			depth--
			cur.WriteString("}}")
			i++
		case depth == 0 && strings.IndexByte(" \t\r\n", tmpl[i]) >= 0:
			if cur.Len() > 0 {
				words = append(words, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteByte(tmpl[i])
		}
	}
	if cur.Len() > 0 {
		words = append(words, cur.String())
	}
	return words
}
