package timex

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Layout 序列化使用的时间格式
const Layout = "2006-01-02 15:04:05"

// Time wraps time.Time so database columns and JSON payloads share one
// human-readable format.
// Time 封装 time.Time，数据库与 JSON 使用统一的时间格式
type Time time.Time

// Now 返回当前时间
func Now() Time {
	return Time(time.Now())
}

// T 返回底层 time.Time
func (t Time) T() time.Time {
	return time.Time(t)
}

func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

func (t Time) Unix() int64 {
	return time.Time(t).Unix()
}

func (t Time) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

func (t Time) UnixMicro() int64 {
	return time.Time(t).UnixMicro()
}

func (t Time) UnixNano() int64 {
	return time.Time(t).UnixNano()
}

func (t Time) String() string {
	return time.Time(t).Format(Layout)
}

// MarshalJSON 按 Layout 输出，零值输出 null
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

// UnmarshalJSON 解析 Layout 格式，兼容 null 与空串
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*t = Time(time.Time{})
		return nil
	}
	parsed, err := time.ParseInLocation(`"`+Layout+`"`, s, time.Local)
	if err != nil {
		return err
	}
	*t = Time(parsed)
	return nil
}

// Value 实现 driver.Valuer，供 gorm 写入
func (t Time) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return time.Time(t), nil
}

// Scan 实现 sql.Scanner，供 gorm 读取
func (t *Time) Scan(v any) error {
	switch val := v.(type) {
	case nil:
		*t = Time(time.Time{})
		return nil
	case time.Time:
		*t = Time(val)
		return nil
	case []byte:
		return t.scanString(string(val))
	case string:
		return t.scanString(val)
	default:
		return fmt.Errorf("timex: cannot scan %T into Time", v)
	}
}

func (t *Time) scanString(s string) error {
	if s == "" {
		*t = Time(time.Time{})
		return nil
	}
	parsed, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		return err
	}
	*t = Time(parsed)
	return nil
}
