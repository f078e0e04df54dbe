package counter

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// tokeiSchema 约束 tokei 输出：顶层是 语言 -> 对象 的映射，对象至少包含非负整数 code/comments。
const tokeiSchema = `{
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "required": ["code", "comments"],
    "properties": {
      "code": {"type": "integer", "minimum": 0},
      "comments": {"type": "integer", "minimum": 0}
    }
  }
}`

// sccSchema 约束 scc 输出：顶层是对象数组，每个对象带 Name/Code/Comment。
const sccSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["Name", "Code", "Comment"],
    "properties": {
      "Name": {"type": "string"},
      "Code": {"type": "integer", "minimum": 0},
      "Comment": {"type": "integer", "minimum": 0}
    }
  }
}`

var (
	tokeiValidator = mustCompile(tokeiSchema)
	sccValidator   = mustCompile(sccSchema)
)

func mustCompile(source string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		panic(fmt.Sprintf("compile counter schema: %v", err))
	}
	return schema
}

// validate 校验 data 是否满足 schema，不满足时返回 MalformedOutputError。
func validate(tool string, schema *gojsonschema.Schema, data []byte) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return &MalformedOutputError{Tool: tool, Reason: "empty output"}
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &MalformedOutputError{Tool: tool, Reason: "invalid json", Err: err}
	}

	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, item := range result.Errors() {
			problems = append(problems, item.String())
		}
		return &MalformedOutputError{Tool: tool, Reason: strings.Join(problems, "; ")}
	}
	return nil
}
