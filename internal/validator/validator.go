// Package validator 按声明顺序累积校验错误，最终整体返回
package validator

import "regexp"

type Validator struct {
	Messages []string
}

func New() *Validator { return &Validator{} }

func (v *Validator) Valid() bool { return len(v.Messages) == 0 }

func (v *Validator) Add(msg string) { v.Messages = append(v.Messages, msg) }

// Check 单行守卫：ok 为 false 时记录 msg
func (v *Validator) Check(ok bool, msg string) {
	if !ok {
		v.Add(msg)
	}
}

func In(value string, list ...string) bool {
	for _, item := range list {
		if value == item {
			return true
		}
	}
	return false
}

func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

// isbnChars 仅允许数字和连字符；位数另行统计
// （原正则 ^(?=(?:\D*\d){10}(?:(?:\D*\d){3})?$)[\d-]+$ 的前瞻在 RE2 不可用）
var isbnChars = regexp.MustCompile(`^[\d-]+$`)

// ValidISBN 去掉连字符后恰为 10 位或 13 位数字
func ValidISBN(s string) bool {
	if s == "" || !isbnChars.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits == 10 || digits == 13
}
