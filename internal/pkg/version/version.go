// ### 发布流程
// 1. **更新版本号**：修改 `internal/pkg/version/version.go`
// 2. **构建时注入**：-ldflags "-X reconreport/internal/pkg/version.GitCommit=..."
// 3. **推送代码和 Tag**：推送到远程仓库

package version

import "runtime"

var (
	Version   = "1.1.0" // 版本号 -- 发布时候更新版本号
	BuildTime string
	GitCommit string
	GoVersion = runtime.Version()
)

func GetVersion() string {
	return Version
}

// GetFullVersion 返回带构建信息的版本号, 未注入时只返回版本号
func GetFullVersion() string {
	v := Version
	if GitCommit != "" {
		v += " (" + GitCommit + ")"
	}
	if BuildTime != "" {
		v += " built " + BuildTime
	}
	return v
}
