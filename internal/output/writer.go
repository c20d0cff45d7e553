package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/zx06/xacct/internal/errors"
)

type Writer struct {
	Out io.Writer
	Err io.Writer
}

func New(out, err io.Writer) Writer {
	return Writer{Out: out, Err: err}
}

func (w Writer) WriteOK(format Format, data any) error {
	return w.write(format, Envelope{OK: true, SchemaVersion: SchemaVersion, Data: data})
}

func (w Writer) WriteError(format Format, xe *errors.XError) error {
	errObj := &ErrorObject{Code: xe.Code, Message: xe.Message, Details: xe.Details}
	return w.write(format, Envelope{OK: false, SchemaVersion: SchemaVersion, Error: errObj})
}

func (w Writer) write(format Format, env Envelope) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w.Out)
		enc.SetEscapeHTML(false)
		return enc.Encode(env)
	case FormatYAML:
		b, err := yaml.Marshal(env)
		if err != nil {
			return err
		}
		_, err = w.Out.Write(b)
		if err != nil {
			return err
		}
		if len(b) == 0 || b[len(b)-1] != '\n' {
			_, _ = w.Out.Write([]byte("\n"))
		}
		return nil
	case FormatTable:
		return writeTable(w.Out, env)
	case FormatCSV:
		return writeCSV(w.Out, env)
	default:
		return errors.New(errors.CodeCfgInvalid, "invalid output format", map[string]any{"format": string(format)})
	}
}

// tableData 提取列式数据；数据未实现 TableFormatter 时返回 ok=false。
func tableData(data any) ([]string, []map[string]any, bool) {
	tf, ok := data.(TableFormatter)
	if !ok {
		return nil, nil, false
	}
	return tf.ToTableData()
}

// flatten 将任意数据经 JSON 转成 map，按键排序输出键值对；非对象数据返回 nil。
func flatten(data any) [][2]string {
	b, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][2]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, [2]string{k, cell(m[k])})
	}
	return out
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64, bool, int, int64:
		return fmt.Sprint(x)
	default:
		b, _ := json.Marshal(x)
		return string(b)
	}
}

func writeTable(out io.Writer, env Envelope) error {
	tw := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
	if !env.OK {
		if env.Error != nil {
			_, _ = fmt.Fprintf(tw, "error\t%s\n", env.Error.Code)
			_, _ = fmt.Fprintf(tw, "message\t%s\n", env.Error.Message)
			for _, kv := range flatten(env.Error.Details) {
				_, _ = fmt.Fprintf(tw, "%s\t%s\n", kv[0], kv[1])
			}
		}
		return tw.Flush()
	}
	if cols, rows, ok := tableData(env.Data); ok {
		_, _ = fmt.Fprintln(tw, strings.Join(cols, "\t"))
		for _, row := range rows {
			vals := make([]string, len(cols))
			for i, c := range cols {
				vals[i] = cell(row[c])
			}
			_, _ = fmt.Fprintln(tw, strings.Join(vals, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		noun := "rows"
		if len(rows) == 1 {
			noun = "row"
		}
		_, err := fmt.Fprintf(out, "(%d %s)\n", len(rows), noun)
		return err
	}
	if env.Data != nil {
		kvs := flatten(env.Data)
		if kvs == nil {
			_, _ = fmt.Fprintf(tw, "%s\n", cell(env.Data))
		}
		for _, kv := range kvs {
			_, _ = fmt.Fprintf(tw, "%s\t%s\n", kv[0], kv[1])
		}
	}
	return tw.Flush()
}

func writeCSV(out io.Writer, env Envelope) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()
	if !env.OK {
		_ = cw.Write([]string{"ok", "false"})
		if env.Error != nil {
			_ = cw.Write([]string{"error.code", string(env.Error.Code)})
			_ = cw.Write([]string{"error.message", env.Error.Message})
		}
		cw.Flush()
		return cw.Error()
	}
	if cols, rows, ok := tableData(env.Data); ok {
		_ = cw.Write(cols)
		for _, row := range rows {
			vals := make([]string, len(cols))
			for i, c := range cols {
				vals[i] = cell(row[c])
			}
			_ = cw.Write(vals)
		}
		cw.Flush()
		return cw.Error()
	}
	for _, kv := range flatten(env.Data) {
		_ = cw.Write([]string{kv[0], kv[1]})
	}
	cw.Flush()
	return cw.Error()
}
