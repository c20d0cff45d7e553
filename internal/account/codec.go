package account

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zx06/xacct/internal/errors"
)

// Codec 负责账户记录与存储字节之间的转换。
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSONCodec 是默认编码。
type JSONCodec struct{}

func (JSONCodec) Name() string                       { return "json" }
func (JSONCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (JSONCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

type YAMLCodec struct{}

func (YAMLCodec) Name() string                       { return "yaml" }
func (YAMLCodec) Marshal(v any) ([]byte, error)      { return yaml.Marshal(v) }
func (YAMLCodec) Unmarshal(data []byte, v any) error { return yaml.Unmarshal(data, v) }

// CodecByName 返回 json|yaml 对应的 Codec（空串为 json）。
func CodecByName(name string) (Codec, *errors.XError) {
	switch strings.ToLower(name) {
	case "", "json":
		return JSONCodec{}, nil
	case "yaml", "yml":
		return YAMLCodec{}, nil
	default:
		return nil, errors.New(errors.CodeCfgInvalid, "unsupported codec", map[string]any{"codec": name})
	}
}

// ListPolicy 决定 Accounts 遇到无法解码的条目时的行为。
type ListPolicy string

const (
	// PolicySkip 记录告警并跳过该条目，返回其余账户。
	PolicySkip ListPolicy = "skip"
	// PolicyFail 立即以 XACCT_SERIALIZATION_FAILED 失败。
	PolicyFail ListPolicy = "fail"
)

func ParseListPolicy(s string) (ListPolicy, *errors.XError) {
	switch ListPolicy(strings.ToLower(s)) {
	case "", PolicySkip:
		return PolicySkip, nil
	case PolicyFail:
		return PolicyFail, nil
	default:
		return "", errors.New(errors.CodeCfgInvalid, "invalid list policy", map[string]any{"list_policy": s})
	}
}
