package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// SearchCriteria 搜索表单提交的条件，JSON键与webhook约定一致
type SearchCriteria struct {
	JobTitle string `json:"job_title"`
	Location string `json:"location"`
	Industry string `json:"industry"`
}

// ProfileResult webhook返回的单条候选人记录，字段名与上游保持一致（包含空格）
type ProfileResult struct {
	Name              string `json:"Name"`
	Location          string `json:"Location"`
	JobTitle          string `json:"Job Title"`
	Company           string `json:"Company"`
	Description       string `json:"Description"`
	LinkedinURL       string `json:"Linkedin URL"`
	LinkedinFollowers string `json:"Linkedin Followers,omitempty"`
}

// profileFields 上游字段名 -> 结构体字段
var profileFields = map[string]func(p *ProfileResult) *string{
	"Name":               func(p *ProfileResult) *string { return &p.Name },
	"Location":           func(p *ProfileResult) *string { return &p.Location },
	"Job Title":          func(p *ProfileResult) *string { return &p.JobTitle },
	"Company":            func(p *ProfileResult) *string { return &p.Company },
	"Description":        func(p *ProfileResult) *string { return &p.Description },
	"Linkedin URL":       func(p *ProfileResult) *string { return &p.LinkedinURL },
	"Linkedin Followers": func(p *ProfileResult) *string { return &p.LinkedinFollowers },
}

// UnmarshalJSON 宽松解析：字段值一律视为展示字符串，数字和布尔值转为字符串，
// 缺失字段留空，非对象元素解析为空记录
func (p *ProfileResult) UnmarshalJSON(data []byte) error {
	*p = ProfileResult{}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		var probe interface{}
		if json.Unmarshal(data, &probe) != nil {
			return err
		}
		return nil
	}

	for key, field := range profileFields {
		if val, ok := raw[key]; ok {
			*field(p) = displayString(val)
		}
	}
	return nil
}

// HasFollowers 是否包含粉丝数
func (p ProfileResult) HasFollowers() bool {
	return p.LinkedinFollowers != ""
}

func displayString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}
