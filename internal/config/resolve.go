package config

import (
	"path/filepath"
	"strings"

	"github.com/zx06/xacct/internal/errors"
	"github.com/zx06/xacct/internal/log"
	"github.com/zx06/xacct/internal/prefs"
)

const (
	DefaultService    = "xacct"
	DefaultCodec      = "json"
	DefaultListPolicy = "skip"
	DefaultLogLevel   = "warn"
	DefaultFormat     = "auto"
)

// Resolve 合并配置：CLI > ENV > Config > 默认值，并校验枚举取值。
func Resolve(opts Options) (Resolved, *errors.XError) {
	normalizeDirs(&opts)

	cfg, cfgPath, xe := LoadConfig(opts)
	if xe != nil {
		return Resolved{}, xe
	}

	r := Resolved{
		ConfigPath:  cfgPath,
		Service:     pick(DefaultService, cfg.Service, opts.EnvService),
		Codec:       pick(DefaultCodec, cfg.Codec),
		ListPolicy:  pick(DefaultListPolicy, cfg.ListPolicy),
		Preferences: pick("", cfg.Preferences, opts.EnvPrefs),
		LogLevel:    pick(DefaultLogLevel, cfg.LogLevel, opts.EnvLogLevel),
		Format:      pick(DefaultFormat, cfg.Format, opts.EnvFormat),
	}
	if opts.CLIServiceSet {
		r.Service = opts.CLIService
	}
	if opts.CLIFormatSet {
		r.Format = opts.CLIFormat
	}

	r.Codec = strings.ToLower(r.Codec)
	r.ListPolicy = strings.ToLower(r.ListPolicy)
	r.LogLevel = strings.ToLower(r.LogLevel)

	if strings.TrimSpace(r.Service) == "" {
		return Resolved{}, errors.New(errors.CodeCfgInvalid, "service must not be empty", nil)
	}
	switch r.Codec {
	case "json", "yaml":
	default:
		return Resolved{}, errors.New(errors.CodeCfgInvalid, "invalid codec", map[string]any{"codec": r.Codec})
	}
	switch r.ListPolicy {
	case "skip", "fail":
	default:
		return Resolved{}, errors.New(errors.CodeCfgInvalid, "invalid list_policy", map[string]any{"list_policy": r.ListPolicy})
	}
	if _, xe := log.ParseLevel(r.LogLevel); xe != nil {
		return Resolved{}, xe
	}

	// 偏好文件：未配置时放在 $HOME/.config/xacct/prefs.yaml；相对路径基于配置文件所在目录。
	switch {
	case r.Preferences == "":
		r.Preferences = prefs.DefaultPath(opts.HomeDir)
	case strings.HasPrefix(r.Preferences, "~/"):
		r.Preferences = filepath.Join(opts.HomeDir, r.Preferences[2:])
	case !filepath.IsAbs(r.Preferences):
		base := opts.WorkDir
		if cfgPath != "" && cfg.Preferences == r.Preferences {
			base = filepath.Dir(cfgPath)
		}
		r.Preferences = filepath.Join(base, r.Preferences)
	}
	return r, nil
}

// pick 返回 values 中最后一个非空值，全为空时返回 def。
func pick(def string, values ...string) string {
	out := def
	for _, v := range values {
		if v != "" {
			out = v
		}
	}
	return out
}
