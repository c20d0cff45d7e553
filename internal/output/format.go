package output

type Format string

const (
	FormatAuto  Format = "auto"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
)

func IsValid(f Format) bool {
	switch f {
	case FormatAuto, FormatJSON, FormatYAML, FormatTable, FormatCSV:
		return true
	default:
		return false
	}
}

// ResolveAuto 将 auto 解析为具体格式：终端用 table，否则用 json。
func (f Format) ResolveAuto(isTerminal bool) Format {
	if f != FormatAuto {
		return f
	}
	if isTerminal {
		return FormatTable
	}
	return FormatJSON
}
