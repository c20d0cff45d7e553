package config

// File 表示 xacct.yaml 的配置结构。
// 约束：配置优先级为 CLI > ENV > Config。
type File struct {
	Service     string `yaml:"service"`     // keyring service 命名空间
	Codec       string `yaml:"codec"`       // json | yaml
	ListPolicy  string `yaml:"list_policy"` // skip | fail
	Preferences string `yaml:"preferences"` // 偏好文件路径（当前账户指针）
	LogLevel    string `yaml:"log_level"`   // debug | info | warn | error
	Format      string `yaml:"format"`      // 输出格式
}

type Resolved struct {
	ConfigPath  string `json:"config_path" yaml:"config_path"`
	Service     string `json:"service" yaml:"service"`
	Codec       string `json:"codec" yaml:"codec"`
	ListPolicy  string `json:"list_policy" yaml:"list_policy"`
	Preferences string `json:"preferences" yaml:"preferences"`
	LogLevel    string `json:"log_level" yaml:"log_level"`
	Format      string `json:"format" yaml:"format"`
}

type Options struct {
	// ConfigPath: 若非空，则只读取该文件（不存在报错）。
	ConfigPath string

	// CLI
	CLIService    string
	CLIServiceSet bool
	CLIFormat     string
	CLIFormatSet  bool

	// ENV（由调用方注入，便于测试）
	EnvService  string
	EnvFormat   string
	EnvPrefs    string
	EnvLogLevel string

	// HomeDir 用于默认路径计算（为空则自动探测）。
	HomeDir string

	// WorkDir 用于默认路径（为空则使用进程当前工作目录）。
	WorkDir string
}
